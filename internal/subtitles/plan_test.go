package subtitles

import (
	"testing"

	"av1batch/internal/language"
	"av1batch/internal/media/streaminfo"
)

func TestIsTextCodec(t *testing.T) {
	tests := []struct {
		codec   string
		allowed []string
		want    bool
	}{
		{"subrip", nil, true},
		{"ASS", nil, true},
		{"hdmv_pgs_subtitle", nil, false},
		{"pgs", nil, false},
		{"dvd_subtitle", nil, false},
		{"", nil, false},
		{"webvtt", []string{"webvtt"}, true},
		{"subrip", []string{"webvtt"}, false},
	}
	for _, tt := range tests {
		if got := IsTextCodec(tt.codec, tt.allowed); got != tt.want {
			t.Errorf("IsTextCodec(%q, %v) = %v, want %v", tt.codec, tt.allowed, got, tt.want)
		}
	}
}

func TestIsForced(t *testing.T) {
	tests := []struct {
		name   string
		stream streaminfo.SubtitleStreamInfo
		want   bool
	}{
		{"title overrides absent tag", streaminfo.SubtitleStreamInfo{Title: "Forced"}, true},
		{"accented french", streaminfo.SubtitleStreamInfo{Title: "Français FORCÉ"}, true},
		{"tag only", streaminfo.SubtitleStreamInfo{ForcedTag: true}, true},
		{"plain", streaminfo.SubtitleStreamInfo{Title: "Français"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsForced(tt.stream); got != tt.want {
				t.Fatalf("IsForced = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsHearingImpaired(t *testing.T) {
	tests := []struct {
		name   string
		stream streaminfo.SubtitleStreamInfo
		want   bool
	}{
		{"sdh suffix", streaminfo.SubtitleStreamInfo{Title: "English (SDH)"}, true},
		{"closed captions", streaminfo.SubtitleStreamInfo{Title: "Closed Captions"}, true},
		{"french plural", streaminfo.SubtitleStreamInfo{Title: "Français pour malentendants"}, true},
		{"french exact", streaminfo.SubtitleStreamInfo{Title: "Malentendant"}, true},
		{"hi word", streaminfo.SubtitleStreamInfo{Title: "English HI"}, true},
		{"hi inside word", streaminfo.SubtitleStreamInfo{Title: "Hindi"}, false},
		{"tag only", streaminfo.SubtitleStreamInfo{HearingImpairedTag: true}, true},
		{"empty", streaminfo.SubtitleStreamInfo{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHearingImpaired(tt.stream); got != tt.want {
				t.Fatalf("IsHearingImpaired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDisplayTitleSuffixOrder(t *testing.T) {
	if got := DisplayTitle("fre", true, true, language.French); got != "Français (malentendant) (forcé)" {
		t.Fatalf("unexpected french title %q", got)
	}
	if got := DisplayTitle("eng", true, false, language.English); got != "English (forced)" {
		t.Fatalf("unexpected english title %q", got)
	}
	if got := DisplayTitle("", false, false, language.French); got != "Inconnu" {
		t.Fatalf("unexpected unknown title %q", got)
	}
}

func TestBuildPlansAssignsDenseIndices(t *testing.T) {
	streams := []streaminfo.SubtitleStreamInfo{
		{Index: 3, Codec: "hdmv_pgs_subtitle", Language: "eng", ForcedTag: true},
		{Index: 4, Codec: "subrip", Language: "fre", Title: "Forced"},
		{Index: 5, Codec: "subrip", Language: "eng", Title: "English (SDH)"},
		{Index: 6, Codec: "dvd_subtitle", Language: "spa"},
		{Index: 7, Codec: "ass", Language: "jpn"},
	}
	result := BuildPlans(streams, Options{Locale: language.French})

	if len(result.Plans) != 3 || len(result.Dropped) != 2 {
		t.Fatalf("expected 3 kept and 2 dropped, got %d/%d", len(result.Plans), len(result.Dropped))
	}
	want := []struct {
		source int
		title  string
		disp   string
	}{
		{4, "Français (forcé)", "forced"},
		{5, "Anglais (malentendant)", "hearing_impaired"},
		{7, "Japonais", "0"},
	}
	for i, w := range want {
		p := result.Plans[i]
		if p.OutputIndex != i || p.SourceIndex != w.source || p.Title != w.title || p.Disposition() != w.disp {
			t.Errorf("plan %d = %+v (disposition %q), want %+v", i, p, p.Disposition(), w)
		}
	}
	if result.Plans[0].Language != "fra" {
		t.Fatalf("expected ISO 639-2 language, got %q", result.Plans[0].Language)
	}
}
