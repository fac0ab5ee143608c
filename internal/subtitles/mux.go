package subtitles

import (
	"fmt"
	"strings"
)

// DefaultMuxCodec is the subtitle codec MP4 containers accept.
const DefaultMuxCodec = "mov_text"

// MuxArgs builds the container-normalization argument list: video and audio
// copied, every planned subtitle converted to muxCodec with its language,
// title, and disposition.
func MuxArgs(input, output string, plans []Plan, muxCodec string) []string {
	muxCodec = strings.TrimSpace(muxCodec)
	if muxCodec == "" {
		muxCodec = DefaultMuxCodec
	}
	args := []string{"-y", "-nostdin", "-hide_banner",
		"-i", input,
		"-map", "0:v",
		"-c:v", "copy",
		"-map", "0:a?",
		"-c:a", "copy",
	}
	for _, p := range plans {
		args = append(args, "-map", fmt.Sprintf("0:%d", p.SourceIndex))
	}
	if len(plans) > 0 {
		args = append(args, "-c:s", muxCodec)
	}
	for _, p := range plans {
		n := p.OutputIndex
		args = append(args,
			fmt.Sprintf("-metadata:s:s:%d", n), "language="+p.Language,
			fmt.Sprintf("-metadata:s:s:%d", n), "title="+p.Title,
			fmt.Sprintf("-disposition:s:%d", n), p.Disposition(),
		)
	}
	args = append(args,
		"-map_metadata", "0",
		"-movflags", "use_metadata_tags",
		output,
	)
	return args
}
