package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"av1batch/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrMoveFailure, "finalize", "move", "rename failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrMoveFailure) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"finalize", "move", "rename failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestEncodeFailureMatchesMarker(t *testing.T) {
	var err error = &services.EncodeFailure{Stage: "audio", ExitCode: 187, Tail: []string{"first", "Conversion failed!"}}
	wrapped := fmt.Errorf("job: %w", err)

	if !errors.Is(wrapped, services.ErrEncodeFailure) {
		t.Fatalf("expected ErrEncodeFailure match, got %v", wrapped)
	}
	if got := services.FailureStage(wrapped); got != "audio" {
		t.Fatalf("FailureStage = %q, want audio", got)
	}
	msg := err.Error()
	if !strings.Contains(msg, "187") || !strings.Contains(msg, "Conversion failed!") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestIsRunFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"missing temp root", services.Wrap(services.ErrNotADirectory, "run", "check", "temp", nil), true},
		{"bad config", services.Wrap(services.ErrConfiguration, "", "", "bad", nil), true},
		{"encode failure", &services.EncodeFailure{Stage: "video", ExitCode: 1}, false},
		{"probe", services.Wrap(services.ErrProbe, "video", "probe", "", nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.IsRunFatal(tt.err); got != tt.want {
				t.Fatalf("IsRunFatal = %v, want %v", got, tt.want)
			}
		})
	}
}
