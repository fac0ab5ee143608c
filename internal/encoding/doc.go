// Package encoding turns a probed video stream into the AV1 encoder
// parameters used by the video stage.
//
// ComputeProfile classifies resolution (ultrawide sources by width, the rest
// by height), detects HDR from any single color or side-data signal, and
// derives target bitrate, VBR headroom, CQ, tiles, and GOP from the source
// bitrate. VideoArgs renders a profile into an ffmpeg av1_nvenc argument list.
package encoding
