package core

import "testing"

func TestVec2Arithmetic(t *testing.T) {
	a := V(10, -20)
	b := V(5, 5)

	if got := a.Add(b); got != V(15, -15) {
		t.Errorf("Add() = %v, expected (15,-15)", got)
	}
	if got := a.Sub(b); got != V(5, -25) {
		t.Errorf("Sub() = %v, expected (5,-25)", got)
	}
	if got := Right.Scale(16); got != V(16, 0) {
		t.Errorf("Scale() = %v, expected (16,0)", got)
	}
	if !Zero.IsZero() || Up.IsZero() {
		t.Error("IsZero() mismatch")
	}
}

func TestVec2Rotate(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		cw   Vec2
	}{
		{"up turns right", Up, Right},
		{"right turns down", Right, Down},
		{"down turns left", Down, Left},
		{"left turns up", Left, Up},
		{"offset", V(2, 1), V(1, -2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.RotateCW(); got != tc.cw {
				t.Errorf("RotateCW(%v) = %v, expected %v", tc.in, got, tc.cw)
			}
			if got := tc.cw.RotateCCW(); got != tc.in {
				t.Errorf("RotateCCW(%v) = %v, expected %v", tc.cw, got, tc.in)
			}
		})
	}
}

func TestDirectionName(t *testing.T) {
	for _, d := range Directions {
		if name := DirectionName(d); name == d.String() {
			t.Errorf("DirectionName(%v) should be a word, got %q", d, name)
		}
	}
	if DirectionName(Zero) != "none" {
		t.Errorf("DirectionName(Zero) = %q", DirectionName(Zero))
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
