package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"av1batch/internal/services"
)

const defaultTailLines = 20

// Result reports how an invocation ended.
type Result struct {
	ExitCode int
	// Tail holds the last output lines, newest last.
	Tail []string
}

// Invoker runs the encoder with args, calling onLine for every output line
// while the process runs. A non-zero exit is reported through Result, not
// the error; the error covers failures to start or drain the process.
type Invoker interface {
	Invoke(ctx context.Context, args []string, onLine func(string)) (Result, error)
}

// CommandInvoker runs a local ffmpeg binary.
type CommandInvoker struct {
	Binary    string
	TailLines int
}

// NewCommandInvoker constructs an invoker for binary, defaulting to "ffmpeg".
func NewCommandInvoker(binary string) *CommandInvoker {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &CommandInvoker{Binary: binary, TailLines: defaultTailLines}
}

// Invoke implements Invoker.
func (c *CommandInvoker) Invoke(ctx context.Context, args []string, onLine func(string)) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("start %s: %w", c.Binary, err)
	}

	tail := newTailBuffer(c.TailLines)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		scanErr error
		once    sync.Once
	)

	forward := func(line string) {
		line = strings.TrimRight(line, " ")
		if line == "" {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		tail.add(line)
		if onLine != nil {
			onLine(line)
		}
	}

	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		scanner.Split(scanLinesOrCarriage)
		for scanner.Scan() {
			forward(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)
	wg.Wait()

	if scanErr != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return Result{ExitCode: -1, Tail: tail.lines()}, fmt.Errorf("scan output: %w", scanErr)
	}

	waitErr := cmd.Wait()
	result := Result{Tail: tail.lines()}
	if waitErr == nil {
		return result, nil
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		return result, nil
	}
	result.ExitCode = -1
	return result, fmt.Errorf("wait %s: %w", c.Binary, waitErr)
}

// Run invokes args for stage and converts a non-zero exit or an interrupted
// run into *services.EncodeFailure.
func Run(ctx context.Context, inv Invoker, stage string, args []string, onLine func(string)) error {
	if inv == nil {
		return services.Wrap(services.ErrConfiguration, stage, "invoke", "no encoder invoker configured", nil)
	}
	result, err := inv.Invoke(ctx, args, onLine)
	if err != nil {
		failure := &services.EncodeFailure{Stage: stage, ExitCode: result.ExitCode, Tail: result.Tail}
		if failure.ExitCode == 0 {
			failure.ExitCode = -1
		}
		return fmt.Errorf("%w: %w", failure, err)
	}
	if result.ExitCode != 0 {
		return &services.EncodeFailure{Stage: stage, ExitCode: result.ExitCode, Tail: result.Tail}
	}
	return nil
}

// scanLinesOrCarriage splits on \n or \r so in-place progress updates arrive
// as separate lines.
func scanLinesOrCarriage(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

type tailBuffer struct {
	size  int
	items []string
}

func newTailBuffer(size int) *tailBuffer {
	if size <= 0 {
		size = defaultTailLines
	}
	return &tailBuffer{size: size, items: make([]string, 0, size)}
}

func (t *tailBuffer) add(line string) {
	if len(t.items) == t.size {
		copy(t.items, t.items[1:])
		t.items = t.items[:t.size-1]
	}
	t.items = append(t.items, line)
}

func (t *tailBuffer) lines() []string {
	if len(t.items) == 0 {
		return nil
	}
	return append([]string(nil), t.items...)
}
