package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// batchFailedError reports a batch that ran to completion with failed files.
type batchFailedError struct {
	failed, total int
}

func (e *batchFailedError) Error() string {
	return fmt.Sprintf("%d of %d files failed", e.failed, e.total)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var failed *batchFailedError
	if errors.As(err, &failed) {
		return 2
	}
	return 1
}
