package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const encoderListTimeout = 10 * time.Second

// CheckEncoder reports whether ffmpegBinary was built with encoder, by
// scanning the output of "ffmpeg -hide_banner -encoders".
func CheckEncoder(ctx context.Context, ffmpegBinary, encoder string) Status {
	status := Status{
		Name:        encoder,
		Command:     ffmpegBinary,
		Description: "FFmpeg encoder used by the video stage",
	}
	listCtx, cancel := context.WithTimeout(ctx, encoderListTimeout)
	defer cancel()

	out, err := exec.CommandContext(listCtx, ffmpegBinary, "-hide_banner", "-encoders").Output() //nolint:gosec
	if err != nil {
		status.Detail = fmt.Sprintf("list encoders: %v", err)
		return status
	}
	if hasEncoder(out, encoder) {
		status.Available = true
		return status
	}
	status.Detail = fmt.Sprintf("ffmpeg does not list encoder %q", encoder)
	return status
}

// hasEncoder matches the second column of the encoder table, e.g.
// " V....D av1_nvenc            NVIDIA NVENC av1 encoder".
func hasEncoder(listing []byte, encoder string) bool {
	scanner := bufio.NewScanner(bytes.NewReader(listing))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[1] == encoder {
			return true
		}
	}
	return false
}
