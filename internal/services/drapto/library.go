package drapto

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	draptolib "github.com/five82/drapto"

	"av1batch/internal/logging"
)

// Library implements Encoder using the Drapto Go library directly.
type Library struct {
	logger *slog.Logger
}

// NewLibrary constructs a Library encoder.
func NewLibrary(logger *slog.Logger) *Library {
	return &Library{logger: logging.NewComponentLogger(logger, "drapto")}
}

// Encode encodes a video file using the Drapto library.
func (l *Library) Encode(ctx context.Context, inputPath, outputDir string, progress func(ProgressUpdate)) (string, error) {
	if inputPath == "" {
		return "", errors.New("input path required")
	}
	if strings.TrimSpace(outputDir) == "" {
		return "", errors.New("output directory required")
	}

	encoder, err := draptolib.New(draptolib.WithResponsive())
	if err != nil {
		return "", err
	}

	rep := newLogReporter(logging.WithContext(ctx, l.logger), progress)
	if _, err := encoder.EncodeWithReporter(ctx, inputPath, outputDir, rep); err != nil {
		return "", err
	}
	return OutputPath(inputPath, outputDir), nil
}

var _ Encoder = (*Library)(nil)
