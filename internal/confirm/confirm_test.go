package confirm

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStaticPolicies(t *testing.T) {
	if (Keep{}).Confirm("drop?") {
		t.Fatal("Keep must not confirm")
	}
	if !(Drop{}).Confirm("drop?") {
		t.Fatal("Drop must confirm")
	}
	called := ""
	f := Func(func(p string) bool { called = p; return true })
	if !f.Confirm("track 2") || called != "track 2" {
		t.Fatalf("Func adapter not invoked correctly, got %q", called)
	}
}

func TestPromptAnswers(t *testing.T) {
	var out bytes.Buffer
	p := &Prompt{In: strings.NewReader("y\nno\noui\nmaybe\n"), Out: &out, Fallback: Drop{}}

	if !p.Confirm("first") {
		t.Error("expected y to confirm")
	}
	if p.Confirm("second") {
		t.Error("expected no to decline")
	}
	if !p.Confirm("third") {
		t.Error("expected oui to confirm")
	}
	if !p.Confirm("fourth") {
		t.Error("expected unreadable answer to use the fallback")
	}
	if !strings.Contains(out.String(), "first [y/N]") {
		t.Fatalf("expected prompt text, got %q", out.String())
	}
}

func TestPromptEOFUsesFallback(t *testing.T) {
	p := &Prompt{In: strings.NewReader(""), Fallback: Keep{}}
	if p.Confirm("anything") {
		t.Fatal("expected fallback keep on EOF")
	}
	p = &Prompt{In: strings.NewReader("")}
	if p.Confirm("anything") {
		t.Fatal("expected false without fallback")
	}
}

func TestNewPolicies(t *testing.T) {
	c, interactive, err := New(PolicyDrop, nil, nil)
	if err != nil || interactive {
		t.Fatalf("unexpected result %v %v", interactive, err)
	}
	if _, ok := c.(Drop); !ok {
		t.Fatalf("expected Drop, got %T", c)
	}

	c, _, err = New("", nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := c.(Keep); !ok {
		t.Fatalf("expected Keep default, got %T", c)
	}

	if _, _, err := New("ask", nil, nil); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestNewPromptWithoutTerminalKeeps(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer file.Close()

	c, interactive, err := New(PolicyPrompt, file, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if interactive {
		t.Fatal("a regular file must not be treated as a terminal")
	}
	if _, ok := c.(Keep); !ok {
		t.Fatalf("expected Keep fallback, got %T", c)
	}
}
