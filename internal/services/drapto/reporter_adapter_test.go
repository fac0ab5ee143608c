package drapto

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	draptolib "github.com/five82/drapto"
)

func TestReporterForwardsStageProgress(t *testing.T) {
	var updates []ProgressUpdate
	rep := newLogReporter(nil, func(u ProgressUpdate) { updates = append(updates, u) })

	eta := 90 * time.Second
	rep.StageProgress(draptolib.StageProgress{Percent: 42, Stage: "analysis", Message: "crop", ETA: &eta})
	rep.StageProgress(draptolib.StageProgress{Percent: 50, Stage: "analysis"})

	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].Percent != 42 || updates[0].Stage != "analysis" || updates[0].ETA != eta {
		t.Fatalf("unexpected update %+v", updates[0])
	}
	if updates[1].ETA != 0 {
		t.Fatalf("nil ETA should map to zero, got %v", updates[1].ETA)
	}
}

func TestReporterLogsWarningsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rep := newLogReporter(logger, nil)

	rep.Warning("low disk space")
	rep.Error(draptolib.ReporterError{Title: "Encode failed", Message: "svt crashed", Suggestion: "retry"})

	out := buf.String()
	for _, want := range []string{"low disk space", "event_type=drapto_warning", "svt crashed", "error_hint=retry"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log output:\n%s", want, out)
		}
	}
}

func TestOutputPath(t *testing.T) {
	if got := OutputPath("/tmp/av1/mux_Movie.mp4", "/tmp/av1"); got != "/tmp/av1/mux_Movie.mkv" {
		t.Fatalf("unexpected output path %q", got)
	}
}

func TestLibraryValidatesArguments(t *testing.T) {
	lib := NewLibrary(nil)
	if _, err := lib.Encode(t.Context(), "", "/tmp", nil); err == nil {
		t.Fatal("expected error when input path is empty")
	}
	if _, err := lib.Encode(t.Context(), "/media/movie.mkv", "  ", nil); err == nil {
		t.Fatal("expected error when output directory is empty")
	}
}
