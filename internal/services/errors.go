package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSourceNotFound = errors.New("source not found")
	ErrNotADirectory  = errors.New("not a directory")
	ErrProbe          = errors.New("probe error")
	ErrNoVideoStream  = errors.New("no video stream")
	ErrEncodeFailure  = errors.New("encode failure")
	ErrMoveFailure    = errors.New("move failure")
	ErrConfiguration  = errors.New("configuration error")
	ErrValidation     = errors.New("validation error")
	ErrExternalTool   = errors.New("external tool error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// EncodeFailure reports an external encoder run that exited non-zero.
type EncodeFailure struct {
	Stage    string
	ExitCode int
	// Tail holds the last lines the encoder printed, newest last.
	Tail []string
}

func (e *EncodeFailure) Error() string {
	stage := strings.TrimSpace(e.Stage)
	if stage == "" {
		stage = "encode"
	}
	msg := fmt.Sprintf("%s: %s exited with status %d", ErrEncodeFailure, stage, e.ExitCode)
	if n := len(e.Tail); n > 0 {
		msg += ": " + strings.TrimSpace(e.Tail[n-1])
	}
	return msg
}

// Is lets errors.Is match EncodeFailure against ErrEncodeFailure.
func (e *EncodeFailure) Is(target error) bool {
	return target == ErrEncodeFailure
}

// FailureStage returns the stage recorded on the first EncodeFailure in err's
// chain, or "" when there is none.
func FailureStage(err error) string {
	var failure *EncodeFailure
	if errors.As(err, &failure) {
		return failure.Stage
	}
	return ""
}

// IsRunFatal reports whether err must abort the whole batch instead of a
// single file.
func IsRunFatal(err error) bool {
	return errors.Is(err, ErrNotADirectory) || errors.Is(err, ErrConfiguration)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
