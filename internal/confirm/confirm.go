// Package confirm supplies the yes/no decision policies consulted before a
// flagged audio track is dropped.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Policy names a configured decision strategy.
type Policy string

const (
	PolicyKeep   Policy = "keep"
	PolicyDrop   Policy = "drop"
	PolicyPrompt Policy = "prompt"
)

// Confirmer answers a yes/no question. True confirms the drop.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Func adapts a function to Confirmer.
type Func func(prompt string) bool

func (f Func) Confirm(prompt string) bool { return f(prompt) }

// Keep never confirms, so flagged tracks are kept.
type Keep struct{}

func (Keep) Confirm(string) bool { return false }

// Drop always confirms.
type Drop struct{}

func (Drop) Confirm(string) bool { return true }

// Prompt asks on Out and reads one answer line from In. End of input or an
// unreadable answer falls back to Fallback.
type Prompt struct {
	In       io.Reader
	Out      io.Writer
	Fallback Confirmer

	once   sync.Once
	reader *bufio.Reader
}

func (p *Prompt) Confirm(prompt string) bool {
	p.once.Do(func() { p.reader = bufio.NewReader(p.In) })
	if p.Out != nil {
		fmt.Fprintf(p.Out, "%s [y/N] ", strings.TrimSpace(prompt))
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && strings.TrimSpace(line) == "" {
		return p.fallback(prompt)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "o", "oui":
		return true
	case "n", "no", "non", "":
		return false
	default:
		return p.fallback(prompt)
	}
}

func (p *Prompt) fallback(prompt string) bool {
	if p.Fallback == nil {
		return false
	}
	return p.Fallback.Confirm(prompt)
}

// New returns the Confirmer for policy. PolicyPrompt only prompts when in is
// a terminal; otherwise it degrades to Keep and reports false in interactive.
func New(policy Policy, in *os.File, out io.Writer) (c Confirmer, interactive bool, err error) {
	switch Policy(strings.ToLower(strings.TrimSpace(string(policy)))) {
	case PolicyKeep, "":
		return Keep{}, false, nil
	case PolicyDrop:
		return Drop{}, false, nil
	case PolicyPrompt:
		if in == nil || !(isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd())) {
			return Keep{}, false, nil
		}
		return &Prompt{In: in, Out: out, Fallback: Keep{}}, true, nil
	default:
		return nil, false, fmt.Errorf("confirm: unsupported policy %q", policy)
	}
}
