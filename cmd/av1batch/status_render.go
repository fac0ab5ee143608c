package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"av1batch/internal/workflow"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

var statusStyles = map[statusKind]struct{ label, color string }{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

const statusLabelWidth = 20

// renderStatusLine formats "  Label:   [KIND] message" for the check report.
func renderStatusLine(label string, kind statusKind, message string, color bool) string {
	tag := "[" + statusStyles[kind].label + "]"
	if message != "" {
		tag += " " + message
	}
	return colorize(fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", tag), kind, color)
}

func renderSectionHeader(title string, color bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	return []string{
		colorize(line, statusInfo, color),
		colorize(strings.Repeat("-", len(line)), statusInfo, color),
	}
}

func colorize(text string, kind statusKind, enabled bool) string {
	style, ok := statusStyles[kind]
	if !enabled || !ok {
		return text
	}
	return style.color + text + ansiReset
}

func jobStatusKind(result workflow.Result) statusKind {
	switch {
	case result.Succeeded():
		return statusOK
	case result.State == workflow.StateFailed:
		return statusError
	default:
		return statusWarn
	}
}

// shouldColorize reports whether writer is a terminal.
func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
