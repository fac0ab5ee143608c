package staging

import (
	"path/filepath"
	"strings"
)

// Stage prefixes for artifacts under the temp root.
const (
	PrefixWork  = "work_"
	PrefixMux   = "mux_"
	PrefixAudio = "audio_"
	PrefixVideo = "av1_"
)

// Prefixes lists every artifact prefix owned by the pipeline.
var Prefixes = []string{PrefixWork, PrefixMux, PrefixAudio, PrefixVideo}

// JobPaths holds the deterministic artifact locations for one source file.
type JobPaths struct {
	// Base is the source file name without directory or extension.
	Base string
	// Work receives raw encoder output before it is moved into a slot.
	Work string
	// Mux is the first slot: the normalized container, later replaced in
	// place by the audio stage result.
	Mux string
	// Audio receives the audio stage output.
	Audio string
	// Video is the second slot holding the AV1 encode.
	Video string
	// Final is the destination under the output root.
	Final string
}

// PathsFor derives the artifact layout for source. videoExt is the container
// extension of the video stage (".mp4" or ".mkv").
func PathsFor(tempDir, outputDir, source, videoExt string) JobPaths {
	base := BaseName(source)
	if videoExt == "" {
		videoExt = ".mp4"
	}
	return JobPaths{
		Base:  base,
		Work:  filepath.Join(tempDir, PrefixWork+base+".mp4"),
		Mux:   filepath.Join(tempDir, PrefixMux+base+".mp4"),
		Audio: filepath.Join(tempDir, PrefixAudio+base+".mp4"),
		Video: filepath.Join(tempDir, PrefixVideo+base+videoExt),
		Final: filepath.Join(outputDir, base+videoExt),
	}
}

// BaseName strips directory and extension from path.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// HasArtifactPrefix reports whether name carries one of Prefixes.
func HasArtifactPrefix(name string) bool {
	for _, prefix := range Prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
