package audio

import (
	"strings"
	"testing"

	"av1batch/internal/language"
	"av1batch/internal/media/streaminfo"
)

type recordingConfirmer struct {
	answer  bool
	prompts []string
}

func (r *recordingConfirmer) Confirm(prompt string) bool {
	r.prompts = append(r.prompts, prompt)
	return r.answer
}

func TestBitrateForChannels(t *testing.T) {
	tests := map[int]string{2: "192k", 6: "512k", 8: "640k", 1: "192k", 3: "192k", 0: "192k", 7: "192k"}
	for channels, want := range tests {
		if got := BitrateForChannels(channels); got != want {
			t.Errorf("BitrateForChannels(%d) = %q, want %q", channels, got, want)
		}
	}
}

func TestClassifyExclusion(t *testing.T) {
	tests := []struct {
		title string
		want  Exclusion
	}{
		{"Français VFQ", ExclusionQuebecois},
		{"QUÉBÉCOIS 5.1", ExclusionQuebecois},
		{"French (Quebecois)", ExclusionQuebecois},
		{"English AD", ExclusionAudioDescription},
		{"Audio-Description", ExclusionAudioDescription},
		{"Français (audiodescription)", ExclusionAudioDescription},
		{"Canadian English", ExclusionNone},
		{"English AD5.1", ExclusionAudioDescription},
		{"VFAD", ExclusionAudioDescription},
		{"eng-ad 2.0", ExclusionAudioDescription},
		{"Advanced Commentary", ExclusionNone},
		{"Nomad Stereo", ExclusionNone},
		{"Stereo", ExclusionNone},
		{"", ExclusionNone},
	}
	for _, tt := range tests {
		if got := ClassifyExclusion(tt.title); got != tt.want {
			t.Errorf("ClassifyExclusion(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func sampleStreams() []streaminfo.AudioStreamInfo {
	return []streaminfo.AudioStreamInfo{
		{Index: 1, Codec: "eac3", Channels: 6, Language: "fre", Title: "VFF"},
		{Index: 2, Codec: "ac3", Channels: 6, Language: "fre", Title: "VFQ"},
		{Index: 3, Codec: "aac", Channels: 2, Language: "eng", Title: "English"},
		{Index: 4, Codec: "dts", Channels: 8, Language: "xx", Title: "English AD"},
	}
}

func TestBuildPlansKeepsFlaggedWhenNotConfirmed(t *testing.T) {
	confirm := &recordingConfirmer{answer: false}
	result := BuildPlans(sampleStreams(), Options{TargetCodec: "aac", Locale: language.French, Confirm: confirm})

	if len(result.Plans) != 4 || len(result.Dropped) != 0 {
		t.Fatalf("expected all tracks kept, got %d plans %d dropped", len(result.Plans), len(result.Dropped))
	}
	if len(confirm.prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %v", confirm.prompts)
	}
	for i, p := range result.Plans {
		if p.OutputIndex != i {
			t.Fatalf("plan %d has output index %d", i, p.OutputIndex)
		}
	}
}

func TestBuildPlansDropsConfirmed(t *testing.T) {
	result := BuildPlans(sampleStreams(), Options{TargetCodec: "aac", Locale: language.French, Confirm: &recordingConfirmer{answer: true}})

	if len(result.Plans) != 2 || len(result.Dropped) != 2 {
		t.Fatalf("expected 2 plans and 2 drops, got %d/%d", len(result.Plans), len(result.Dropped))
	}
	first, second := result.Plans[0], result.Plans[1]
	if first.SourceIndex != 1 || first.OutputIndex != 0 || second.SourceIndex != 3 || second.OutputIndex != 1 {
		t.Fatalf("unexpected indices %+v %+v", first, second)
	}
	if first.Copy || first.Codec != "aac" || first.Bitrate != "512k" || first.Channels != 6 {
		t.Fatalf("unexpected transcode plan %+v", first)
	}
	if first.Title != "Français" || first.Language != "fra" {
		t.Fatalf("unexpected title/language %+v", first)
	}
	if !second.Copy || second.Codec != "copy" || second.Title != "Anglais" {
		t.Fatalf("unexpected passthrough plan %+v", second)
	}
}

func TestBuildPlansNilConfirmerKeeps(t *testing.T) {
	result := BuildPlans(sampleStreams(), Options{})
	if len(result.Plans) != 4 {
		t.Fatalf("expected 4 plans, got %d", len(result.Plans))
	}
	if got := result.Plans[3].Title; got != "Inconnu" {
		t.Fatalf("unknown language title = %q, want Inconnu", got)
	}
}

func TestArgs(t *testing.T) {
	plans := []Plan{
		{SourceIndex: 1, OutputIndex: 0, Codec: "aac", Bitrate: "512k", Channels: 6, Title: "Français", Language: "fra"},
		{SourceIndex: 3, OutputIndex: 1, Copy: true, Codec: "copy", Title: "Anglais", Language: "eng"},
	}
	args := Args("in.mp4", "out.mp4", plans)
	joined := strings.Join(args, " ")

	for _, fragment := range []string{
		"-i in.mp4 -map 0:v -c:v copy",
		"-map 0:1 -c:a:0 aac -b:a:0 512k -ac:a:0 6 -metadata:s:a:0 language=fra -metadata:s:a:0 title=Français",
		"-map 0:3 -c:a:1 copy -metadata:s:a:1 language=eng",
		"-map 0:s? -c:s copy -map 0:t? -map_metadata 0 out.mp4",
	} {
		if !strings.Contains(joined, fragment) {
			t.Errorf("expected %q in %q", fragment, joined)
		}
	}
	if strings.Contains(joined, "-b:a:1") {
		t.Fatalf("copied track must not carry a bitrate: %q", joined)
	}
}
