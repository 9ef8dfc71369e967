package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func reader(input string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(input))
}

func TestPromptLineTrims(t *testing.T) {
	var out bytes.Buffer
	got, err := promptLine(reader("  hello  \n"), &out, "Value")
	if err != nil {
		t.Fatalf("promptLine: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(out.String(), "Value: ") {
		t.Errorf("prompt not written: %q", out.String())
	}
}

func TestPromptLineLastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	got, err := promptLine(reader("final"), &out, "Value")
	if err != nil {
		t.Fatalf("promptLine: %v", err)
	}
	if got != "final" {
		t.Errorf("got %q", got)
	}
}

func TestPromptRequiredRetries(t *testing.T) {
	var out bytes.Buffer
	got, err := promptRequired(reader("\n\nalice\n"), &out, "Username")
	if err != nil {
		t.Fatalf("promptRequired: %v", err)
	}
	if got != "alice" {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(out.String(), "A value is required.") {
		t.Error("missing retry message")
	}
}

func TestPromptChoice(t *testing.T) {
	var out bytes.Buffer
	options := []string{"Molecule", "Fibril", "Quit"}

	// Invalid answers are re-prompted until a valid index arrives.
	got, err := promptChoice(reader("0\nseven\n2\n"), &out, "Pick:", options)
	if err != nil {
		t.Fatalf("promptChoice: %v", err)
	}
	if got != 1 {
		t.Errorf("got index %d, want 1", got)
	}
	if !strings.Contains(out.String(), "Invalid choice, please try again.") {
		t.Error("missing invalid-choice message")
	}
	if !strings.Contains(out.String(), "1. Molecule") {
		t.Errorf("menu not rendered: %q", out.String())
	}
}

func TestPromptFloat(t *testing.T) {
	var out bytes.Buffer

	got, err := promptFloat(reader("\n"), &out, "Distance", 1.5)
	if err != nil {
		t.Fatalf("promptFloat: %v", err)
	}
	if got != 1.5 {
		t.Errorf("default not used: %g", got)
	}

	got, err = promptFloat(reader("abc\n2.75\n"), &out, "Distance", 1.5)
	if err != nil {
		t.Fatalf("promptFloat: %v", err)
	}
	if got != 2.75 {
		t.Errorf("got %g", got)
	}
}

func TestPromptBool(t *testing.T) {
	var out bytes.Buffer

	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"\n", true, true},
		{"\n", false, false},
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"maybe\nno\n", true, false},
	}

	for _, tt := range tests {
		got, err := promptBool(reader(tt.input), &out, "Continue?", tt.def)
		if err != nil {
			t.Fatalf("promptBool(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("promptBool(%q, def=%t) = %t", tt.input, tt.def, got)
		}
	}
}
