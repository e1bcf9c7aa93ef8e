package main

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("worms %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestListCommand(t *testing.T) {
	out := execute(t, "list")
	for _, id := range []string{"arena", "classic", "pocket"} {
		if !strings.Contains(out, id) {
			t.Errorf("list output missing %q", id)
		}
	}
}

func TestRunCommand(t *testing.T) {
	out := execute(t, "run", "pocket", "--steps", "5", "--seed", "3", "--log-level", "error")
	for _, want := range []string{"-- final --", "scenario  pocket", "seed      3", "steps     5"} {
		if !strings.Contains(out, want) {
			t.Errorf("run output missing %q:\n%s", want, out)
		}
	}

	again := execute(t, "run", "pocket", "--steps", "5", "--seed", "3", "--log-level", "error")
	if out != again {
		t.Error("same seed should print the same run")
	}
}

func TestConfigCommand(t *testing.T) {
	out := execute(t, "config", "--seed", "9")
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("config output is not YAML: %v", err)
	}
	if doc["seed"] != 9 {
		t.Errorf("seed = %v, expected 9", doc["seed"])
	}
}
