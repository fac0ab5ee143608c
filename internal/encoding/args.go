package encoding

import "strconv"

// VideoOptions carries the encoder settings that do not depend on the source.
type VideoOptions struct {
	HWAccel            string
	Preset             string
	Lookahead          int
	StatsPeriodSeconds int
}

// DefaultVideoOptions mirrors the configured defaults.
func DefaultVideoOptions() VideoOptions {
	return VideoOptions{HWAccel: "cuda", Preset: "p3", Lookahead: 32, StatsPeriodSeconds: 5}
}

// VideoArgs builds the ffmpeg argument list for an av1_nvenc encode of input
// into output. Audio and subtitle streams are copied unchanged.
func VideoArgs(opts VideoOptions, input, output string, p Profile) []string {
	args := []string{"-y", "-nostdin", "-hide_banner"}
	if opts.HWAccel != "" {
		args = append(args, "-hwaccel", opts.HWAccel)
	}
	args = append(args,
		"-i", input,
		"-map", "0:v:0",
		"-map", "0:a?",
		"-map", "0:s?",
		"-pix_fmt", p.PixelFormat,
		"-c:v", "av1_nvenc",
		"-preset", opts.Preset,
		"-rc", "vbr",
		"-b:v", strconv.FormatInt(p.Targets.Bitrate, 10),
		"-maxrate", strconv.FormatInt(p.Targets.MaxRate, 10),
		"-bufsize", strconv.FormatInt(p.Targets.BufSize, 10),
		"-cq", strconv.Itoa(p.Targets.CQ),
		"-g", strconv.Itoa(p.GOP),
		"-rc-lookahead", strconv.Itoa(opts.Lookahead),
		"-spatial-aq", "1",
		"-temporal-aq", "1",
		"-tile-columns", strconv.Itoa(p.Targets.Tiles),
		"-tile-rows", "1",
		"-color_primaries", p.Color.Primaries,
		"-color_trc", p.Color.Transfer,
		"-colorspace", p.Color.Space,
		"-color_range", "tv",
		"-c:a", "copy",
		"-c:s", "copy",
		"-movflags", "+faststart",
		"-stats",
		"-stats_period", strconv.Itoa(opts.StatsPeriodSeconds),
		"-loglevel", "info",
		output,
	)
	return args
}
