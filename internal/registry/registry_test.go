package registry

import (
	"strings"
	"testing"
)

type stubScenario struct {
	id    string
	title string
}

func (s stubScenario) ID() string       { return s.id }
func (s stubScenario) Title() string    { return s.title }
func (s stubScenario) Populate(Spawner) {}

func TestRegisterAndCreate(t *testing.T) {
	Register("test-alpha", func() Scenario { return stubScenario{"test-alpha", "Alpha"} })
	Register("test-beta", func() Scenario { return stubScenario{"test-beta", "Beta"} })

	if !Exists("test-alpha") {
		t.Error("Exists(test-alpha) = false")
	}
	s, err := Create("test-beta")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.Title() != "Beta" {
		t.Errorf("Title() = %q, expected Beta", s.Title())
	}

	var ids []string
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "test-") {
			ids = append(ids, info.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "test-alpha" || ids[1] != "test-beta" {
		t.Errorf("List() ids = %v, expected sorted [test-alpha test-beta]", ids)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-scenario"); err == nil {
		t.Error("Create() of an unknown ID should fail")
	}
	if Exists("no-such-scenario") {
		t.Error("Exists() of an unknown ID should be false")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", func() Scenario { return stubScenario{"test-dup", "Dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test-dup", func() Scenario { return stubScenario{"test-dup", "Dup"} })
}
