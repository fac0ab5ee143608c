package encoding

import (
	"strings"

	"av1batch/internal/media/streaminfo"
)

var (
	hdrTransfers = map[string]struct{}{"smpte2084": {}, "arib-std-b67": {}}
)

// DetectHDR reports whether any single HDR signal is present: a PQ or HLG
// transfer, BT.2020 primaries or matrix, or mastering display / content light
// metadata either on the stream or in its side data.
func DetectHDR(info streaminfo.VideoStreamInfo) bool {
	if _, ok := hdrTransfers[strings.ToLower(info.ColorTransfer)]; ok {
		return true
	}
	if strings.EqualFold(info.ColorPrimaries, "bt2020") {
		return true
	}
	if strings.EqualFold(info.ColorSpace, "bt2020nc") {
		return true
	}
	if info.MasteringDisplay || info.ContentLight {
		return true
	}
	for _, sd := range info.SideDataTypes {
		kind := strings.ToLower(strings.TrimSpace(sd))
		if strings.HasPrefix(kind, "mastering") || strings.HasPrefix(kind, "content light") {
			return true
		}
	}
	return false
}
