package drapto

import (
	"context"
	"path/filepath"
	"strings"
	"time"
)

// ProgressUpdate captures Drapto progress events.
type ProgressUpdate struct {
	Percent float64
	Stage   string
	Message string
	ETA     time.Duration
	Speed   float64
	FPS     float64
}

// Encoder encodes inputPath into outputDir and returns the produced file.
type Encoder interface {
	Encode(ctx context.Context, inputPath, outputDir string, progress func(ProgressUpdate)) (string, error)
}

// OutputPath returns where Drapto writes the encode of inputPath.
func OutputPath(inputPath, outputDir string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return filepath.Join(strings.TrimSpace(outputDir), stem+".mkv")
}
