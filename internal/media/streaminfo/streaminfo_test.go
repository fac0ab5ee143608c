package streaminfo

import (
	"testing"

	"av1batch/internal/media/ffprobe"
)

func TestVideoFromProbe(t *testing.T) {
	result := ffprobe.Result{
		Streams: []ffprobe.Stream{{
			CodecType:      "video",
			Width:          1920,
			Height:         1080,
			PixFmt:         "yuv420p",
			RFrameRate:     "24000/1001",
			AvgFrameRate:   "0/0",
			ColorPrimaries: "unknown",
			ColorTransfer:  "BT709",
			BitRate:        "8000000",
			SideDataList:   []ffprobe.SideData{{Type: " Mastering display metadata "}, {Type: ""}},
		}},
	}
	info, ok := VideoFromProbe(result, 0)
	if !ok {
		t.Fatal("expected a video stream")
	}
	if info.BitRate != 8_000_000 {
		t.Fatalf("BitRate = %d", info.BitRate)
	}
	if info.ColorPrimaries != "" || info.ColorTransfer != "bt709" {
		t.Fatalf("unexpected color tags %q %q", info.ColorPrimaries, info.ColorTransfer)
	}
	if len(info.SideDataTypes) != 1 || info.SideDataTypes[0] != "Mastering display metadata" {
		t.Fatalf("unexpected side data %v", info.SideDataTypes)
	}
}

func TestVideoFromProbeFallbackBitRate(t *testing.T) {
	result := ffprobe.Result{
		Streams: []ffprobe.Stream{{CodecType: "video", Width: 1280, Height: 720}},
		Format:  ffprobe.Format{Duration: "100"},
	}
	info, ok := VideoFromProbe(result, 125_000_000)
	if !ok {
		t.Fatal("expected a video stream")
	}
	if info.BitRate != 10_000_000 {
		t.Fatalf("BitRate = %d, want 10000000", info.BitRate)
	}
}

func TestVideoFromProbeNoVideo(t *testing.T) {
	if _, ok := VideoFromProbe(ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "audio"}}}, 0); ok {
		t.Fatal("expected no video stream")
	}
}

func TestFallbackBitRateGuards(t *testing.T) {
	if FallbackBitRate(0, 10) != 0 || FallbackBitRate(10, 0) != 0 {
		t.Fatal("expected zero for missing inputs")
	}
}

func TestAudioFromProbeOrdersByIndex(t *testing.T) {
	result := ffprobe.Result{Streams: []ffprobe.Stream{
		{Index: 3, CodecType: "audio", CodecName: "AC3", Channels: 6, Tags: map[string]string{"language": "ENG"}},
		{Index: 1, CodecType: "audio", CodecName: "aac", Channels: 2, Tags: map[string]string{"title": "VFQ"}},
	}}
	got := AudioFromProbe(result)
	if len(got) != 2 || got[0].Index != 1 || got[1].Index != 3 {
		t.Fatalf("unexpected order %+v", got)
	}
	if got[1].Codec != "ac3" || got[1].Language != "eng" {
		t.Fatalf("unexpected normalization %+v", got[1])
	}
	if got[0].Title != "VFQ" {
		t.Fatalf("unexpected title %q", got[0].Title)
	}
}

func TestSubtitlesFromProbeFlags(t *testing.T) {
	result := ffprobe.Result{Streams: []ffprobe.Stream{
		{Index: 4, CodecType: "subtitle", CodecName: "subrip", Tags: map[string]string{"forced": "1"}},
		{Index: 5, CodecType: "subtitle", CodecName: "hdmv_pgs_subtitle", Disposition: map[string]int{"hearing_impaired": 1}},
		{Index: 6, CodecType: "subtitle", CodecName: "ass", Tags: map[string]string{"forced": "0"}},
	}}
	got := SubtitlesFromProbe(result)
	if len(got) != 3 {
		t.Fatalf("expected 3 subtitles, got %d", len(got))
	}
	if !got[0].ForcedTag || got[0].HearingImpairedTag {
		t.Fatalf("unexpected flags on first track %+v", got[0])
	}
	if !got[1].HearingImpairedTag {
		t.Fatalf("expected disposition to set hearing impaired %+v", got[1])
	}
	if got[2].ForcedTag {
		t.Fatalf("forced=0 must not set the tag flag %+v", got[2])
	}
}
