package subtitles

import (
	"slices"
	"strings"
	"testing"
)

func TestMuxArgs(t *testing.T) {
	plans := []Plan{
		{SourceIndex: 4, OutputIndex: 0, Language: "fra", Title: "Français (forcé)", Forced: true},
		{SourceIndex: 5, OutputIndex: 1, Language: "eng", Title: "Anglais (malentendant)", HearingImpaired: true},
	}
	args := MuxArgs("/src/Movie.mkv", "/tmp/work_Movie.mp4", plans, "")
	joined := strings.Join(args, " ")

	for _, fragment := range []string{
		"-i /src/Movie.mkv -map 0:v -c:v copy -map 0:a? -c:a copy",
		"-map 0:4 -map 0:5 -c:s mov_text",
		"-metadata:s:s:0 language=fra -metadata:s:s:0 title=Français (forcé) -disposition:s:0 forced",
		"-metadata:s:s:1 language=eng -metadata:s:s:1 title=Anglais (malentendant) -disposition:s:1 hearing_impaired",
		"-map_metadata 0 -movflags use_metadata_tags /tmp/work_Movie.mp4",
	} {
		if !strings.Contains(joined, fragment) {
			t.Errorf("expected %q in %q", fragment, joined)
		}
	}
	if args[len(args)-1] != "/tmp/work_Movie.mp4" {
		t.Fatalf("output must be last, got %q", args[len(args)-1])
	}
	if !slices.Contains(args, "title=Français (forcé)") {
		t.Fatal("title must stay a single argument")
	}
}

func TestMuxArgsWithoutSubtitles(t *testing.T) {
	args := MuxArgs("in.mkv", "out.mp4", nil, "mov_text")
	if slices.Contains(args, "-c:s") {
		t.Fatalf("no subtitle codec expected without plans: %q", args)
	}
}

func TestPlanDisposition(t *testing.T) {
	if got := (Plan{Forced: true, HearingImpaired: true}).Disposition(); got != "forced+hearing_impaired" {
		t.Fatalf("unexpected disposition %q", got)
	}
}
