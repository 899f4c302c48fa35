package prompt

import (
	"errors"
	"testing"
)

func TestNonInteractive(t *testing.T) {
	var p Prompter = NonInteractive{}
	if _, err := p.Input("name?", "x", nil); !errors.Is(err, ErrNoPrompt) {
		t.Errorf("Input() error = %v, want ErrNoPrompt", err)
	}
	if _, err := p.Confirm("ok?", true); !errors.Is(err, ErrNoPrompt) {
		t.Errorf("Confirm() error = %v, want ErrNoPrompt", err)
	}
}

func TestNewDisabled(t *testing.T) {
	if _, ok := New(true).(NonInteractive); !ok {
		t.Error("New(true) should be NonInteractive")
	}
}

func TestScripted(t *testing.T) {
	s := &Scripted{Inputs: []string{"demo", "bad"}, Confirms: []bool{true}}

	v, err := s.Input("name?", "", nil)
	if err != nil || v != "demo" {
		t.Fatalf("Input() = %q, %v", v, err)
	}
	reject := errors.New("rejected")
	if _, err := s.Input("name?", "", func(string) error { return reject }); !errors.Is(err, reject) {
		t.Errorf("Input() with validator error = %v", err)
	}
	if _, err := s.Input("name?", "", nil); !errors.Is(err, ErrNoPrompt) {
		t.Errorf("exhausted Input() error = %v", err)
	}

	ok, err := s.Confirm("sure?", false)
	if err != nil || !ok {
		t.Errorf("Confirm() = %v, %v", ok, err)
	}
	if _, err := s.Confirm("sure?", false); !errors.Is(err, ErrNoPrompt) {
		t.Errorf("exhausted Confirm() error = %v", err)
	}
}
