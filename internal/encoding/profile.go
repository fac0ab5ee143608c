package encoding

import (
	"math"
	"math/big"
	"strings"

	"av1batch/internal/media/streaminfo"
	"av1batch/internal/services"
)

const defaultFramerate = 24.0

// ColorTags are the color metadata written on the encoded stream.
type ColorTags struct {
	Primaries string
	Transfer  string
	Space     string
}

var (
	hdrColorTags = ColorTags{Primaries: "bt2020", Transfer: "smpte2084", Space: "bt2020nc"}
	sdrColorTags = ColorTags{Primaries: "bt709", Transfer: "bt709", Space: "bt709"}
)

const (
	hdrPixelFormat = "yuv420p10le"
	sdrPixelFormat = "yuv420p"
)

// Targets holds the rate-control values derived from a source bitrate.
type Targets struct {
	Ratio   float64
	Bitrate int64
	MaxRate int64
	BufSize int64
	CQ      int
	Tiles   int
}

// Profile is the complete parameter set for one video encode.
type Profile struct {
	Resolution  ResolutionClass
	HDR         bool
	Framerate   float64
	Targets     Targets
	GOP         int
	PixelFormat string
	Color       ColorTags
}

// ResolveFramerate prefers the nominal rate unless it is empty or 0/0, then
// the average rate. Unparseable or zero-denominator values yield 24.
func ResolveFramerate(nominal, average string) float64 {
	candidate := strings.TrimSpace(nominal)
	if candidate == "" || candidate == "0/0" {
		candidate = strings.TrimSpace(average)
	}
	fps, ok := parseRational(candidate)
	if !ok {
		return defaultFramerate
	}
	return fps
}

func parseRational(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	if num, den, found := strings.Cut(value, "/"); found {
		d, ok := new(big.Rat).SetString(strings.TrimSpace(den))
		if !ok || d.Sign() == 0 {
			return 0, false
		}
		n, ok := new(big.Rat).SetString(strings.TrimSpace(num))
		if !ok {
			return 0, false
		}
		f, _ := n.Quo(n, d).Float64()
		return f, true
	}
	r, ok := new(big.Rat).SetString(value)
	if !ok {
		return 0, false
	}
	f, _ := r.Float64()
	return f, true
}

// reductionRatio is the share of the source bitrate kept per class.
func reductionRatio(class ResolutionClass) float64 {
	switch class {
	case Res2160p:
		return 0.60
	case Res1440p:
		return 0.50
	case Res1080p:
		return 0.45
	default:
		return 0.40
	}
}

func baseCQ(class ResolutionClass, hdr bool) int {
	switch class {
	case Res2160p:
		if hdr {
			return 26
		}
		return 27
	case Res1440p:
		return 29
	case Res1080p:
		return 31
	default:
		return 33
	}
}

// strictRatio is the ratio at or below which CQ is raised by one.
const strictRatio = 0.48

// DeriveTargetBitrate computes target, VBR ceiling, buffer, CQ, and tile
// columns for a source of the given class and bitrate.
func DeriveTargetBitrate(class ResolutionClass, hdr bool, sourceBitrate int64) Targets {
	ratio := reductionRatio(class)
	cq := baseCQ(class, hdr)
	if ratio <= strictRatio {
		cq++
	}
	tiles := 1
	if class == Res2160p {
		tiles = 2
	}
	target := int64(math.Round(float64(sourceBitrate) * ratio))
	if target < 0 {
		target = 0
	}
	return Targets{
		Ratio:   ratio,
		Bitrate: target,
		MaxRate: int64(math.Round(float64(target) * 1.30)),
		BufSize: target * 2,
		CQ:      cq,
		Tiles:   tiles,
	}
}

// GOPLength returns a two second keyframe interval at fps.
func GOPLength(fps float64) int {
	if !(fps > 0) {
		fps = defaultFramerate
	}
	return int(math.Round(2 * fps))
}

// ComputeProfile derives the encode profile for a probed video stream. A nil
// info means the source has no video stream.
func ComputeProfile(info *streaminfo.VideoStreamInfo) (Profile, error) {
	if info == nil {
		return Profile{}, services.Wrap(services.ErrNoVideoStream, "video", "profile", "source has no video stream", nil)
	}
	class := ClassifyResolution(info.Width, info.Height)
	hdr := DetectHDR(*info)
	fps := ResolveFramerate(info.NominalFrameRate, info.AverageFrameRate)
	profile := Profile{
		Resolution: class,
		HDR:        hdr,
		Framerate:  fps,
		Targets:    DeriveTargetBitrate(class, hdr, info.BitRate),
		GOP:        GOPLength(fps),
	}
	if hdr {
		profile.PixelFormat = hdrPixelFormat
		profile.Color = hdrColorTags
	} else {
		profile.PixelFormat = sdrPixelFormat
		profile.Color = sdrColorTags
	}
	return profile, nil
}
