package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestTerminalAsker_Ask(t *testing.T) {
	in := strings.NewReader("2\n")
	var out bytes.Buffer
	asker := NewTerminalAsker(in, &out)

	idx, err := asker.Ask("pick one", []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("Expected index 1, got %d", idx)
	}
	if !strings.Contains(out.String(), "1) alpha") || !strings.Contains(out.String(), "2) beta") {
		t.Errorf("Expected numbered options, got %q", out.String())
	}
}

func TestTerminalAsker_AskRetriesOnInvalid(t *testing.T) {
	in := strings.NewReader("0\nx\n3\n1\n")
	var out bytes.Buffer
	asker := NewTerminalAsker(in, &out)

	idx, err := asker.Ask("pick one", []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if idx != 0 {
		t.Errorf("Expected index 0, got %d", idx)
	}
	if !strings.Contains(out.String(), "enter a number between 1 and 2") {
		t.Errorf("Expected retry hint, got %q", out.String())
	}
}

func TestTerminalAsker_Confirm(t *testing.T) {
	cases := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"yes\n", false, true},
		{"n\n", true, false},
		{"no\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
	}

	for _, c := range cases {
		asker := NewTerminalAsker(strings.NewReader(c.input), &bytes.Buffer{})
		got, err := asker.Confirm("sure?", c.def)
		if err != nil {
			t.Fatalf("Confirm(%q) failed: %v", c.input, err)
		}
		if got != c.want {
			t.Errorf("Confirm(%q, def=%v): expected %v, got %v", c.input, c.def, c.want, got)
		}
	}
}

func TestScriptedAsker_ReplaysChoices(t *testing.T) {
	asker := &ScriptedAsker{Choices: []int{1, 0}}

	idx, err := asker.Ask("first", []string{"a", "b"})
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("Expected 1, got %d", idx)
	}

	idx, err = asker.Ask("second", []string{"a", "b"})
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if idx != 0 {
		t.Errorf("Expected 0, got %d", idx)
	}

	if len(asker.Prompts) != 2 || asker.Prompts[0] != "first" {
		t.Errorf("Expected prompts recorded, got %v", asker.Prompts)
	}
}

func TestScriptedAsker_ErrorsWhenExhausted(t *testing.T) {
	asker := &ScriptedAsker{}
	if _, err := asker.Ask("anything", []string{"a"}); err == nil {
		t.Fatal("Expected error for unscripted prompt")
	}
}

func TestScriptedAsker_ConfirmDefaultsWhenExhausted(t *testing.T) {
	asker := &ScriptedAsker{}
	got, err := asker.Confirm("sure?", true)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if !got {
		t.Errorf("Expected default true when no scripted answer")
	}
}
