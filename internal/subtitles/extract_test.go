package subtitles

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"av1batch/internal/media/streaminfo"
	"av1batch/internal/services"
	"av1batch/internal/services/ffmpeg"
)

type fakeInvoker struct {
	calls  [][]string
	failOn string
}

func (f *fakeInvoker) Invoke(_ context.Context, args []string, onLine func(string)) (ffmpeg.Result, error) {
	f.calls = append(f.calls, append([]string(nil), args...))
	if onLine != nil {
		onLine("size=1kB time=00:00:01.00")
	}
	output := args[len(args)-1]
	if f.failOn != "" && strings.Contains(strings.Join(args, " "), f.failOn) {
		return ffmpeg.Result{ExitCode: 1, Tail: []string{"boom"}}, nil
	}
	if err := os.WriteFile(output, []byte("1\n00:00:01,000 --> 00:00:02,000\nHi\n"), 0o644); err != nil {
		return ffmpeg.Result{}, err
	}
	return ffmpeg.Result{}, nil
}

func TestSidecarName(t *testing.T) {
	stream := streaminfo.SubtitleStreamInfo{Index: 5, Language: "eng", Title: "English (SDH)", ForcedTag: true}
	if got := SidecarName("/videos/Movie: Part 1.mkv", stream, ".srt"); got != "Movie- Part 1.5.eng.forced.sdh.srt" {
		t.Fatalf("unexpected sidecar name %q", got)
	}
	if got := SidecarName("/videos/x.mkv", streaminfo.SubtitleStreamInfo{Index: 2}, ".vtt"); got != "x.2.und.vtt" {
		t.Fatalf("unexpected sidecar name %q", got)
	}
}

func TestExtractWritesTextTracks(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "Movie.mkv")
	if err := os.WriteFile(source, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	inv := &fakeInvoker{}
	out, err := Extract(context.Background(), inv, ExtractRequest{
		Source: source,
		Streams: []streaminfo.SubtitleStreamInfo{
			{Index: 2, Codec: "subrip", Language: "fre"},
			{Index: 3, Codec: "hdmv_pgs_subtitle", Language: "eng"},
			{Index: 4, Codec: "ass", Language: "eng", Title: "Forced"},
		},
	}, nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(out) != 2 || len(inv.calls) != 2 {
		t.Fatalf("expected 2 extracted tracks, got %+v (calls %d)", out, len(inv.calls))
	}
	if filepath.Base(out[1].Path) != "Movie.4.eng.forced.srt" {
		t.Fatalf("unexpected path %q", out[1].Path)
	}
	if !strings.Contains(strings.Join(inv.calls[0], " "), "-map 0:2 -c:s srt") {
		t.Fatalf("unexpected args %q", inv.calls[0])
	}
	for _, e := range out {
		if _, err := os.Stat(e.Path); err != nil {
			t.Fatalf("sidecar missing: %v", err)
		}
	}
}

func TestExtractContinuesAfterTrackFailure(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "Show.mp4")
	if err := os.WriteFile(source, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	inv := &fakeInvoker{failOn: "0:2"}
	out, err := Extract(context.Background(), inv, ExtractRequest{
		Source: source,
		Format: "webvtt",
		Streams: []streaminfo.SubtitleStreamInfo{
			{Index: 2, Codec: "subrip", Language: "fre"},
			{Index: 3, Codec: "subrip", Language: "eng"},
		},
	}, nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(out) != 1 || filepath.Ext(out[0].Path) != ".vtt" {
		t.Fatalf("unexpected output %+v", out)
	}
}

func TestExtractAllFailuresReturnError(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "Show.mp4")
	if err := os.WriteFile(source, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Extract(context.Background(), &fakeInvoker{failOn: "-map"}, ExtractRequest{
		Source:  source,
		Streams: []streaminfo.SubtitleStreamInfo{{Index: 2, Codec: "subrip"}},
	}, nil)
	if !errors.Is(err, services.ErrEncodeFailure) {
		t.Fatalf("expected encode failure, got %v", err)
	}
}

func TestExtractValidatesRequest(t *testing.T) {
	if _, err := Extract(context.Background(), &fakeInvoker{}, ExtractRequest{Source: filepath.Join(t.TempDir(), "missing.mkv")}, nil); !errors.Is(err, services.ErrSourceNotFound) {
		t.Fatalf("expected source not found, got %v", err)
	}
	dir := t.TempDir()
	source := filepath.Join(dir, "a.mkv")
	if err := os.WriteFile(source, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Extract(context.Background(), &fakeInvoker{}, ExtractRequest{Source: source, Format: "pgs"}, nil); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
