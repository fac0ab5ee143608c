package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

const consoleTimestampLayout = "2006-01-02 15:04:05"

const ansiReset = "\033[0m"

// levelStyles is ordered from most to least severe; a record takes the first
// style whose threshold it reaches.
var levelStyles = []struct {
	min   slog.Level
	label string
	color string
}{
	{slog.LevelError, "ERROR", "\033[31m"},
	{slog.LevelWarn, "WARN", "\033[33m"},
	{LevelOK, "OK", "\033[32m"},
	{slog.LevelInfo, "INFO", "\033[36m"},
	{slog.LevelDebug - 100, "DEBUG", "\033[90m"},
}

func levelStyle(level slog.Level) (label, color string) {
	for _, s := range levelStyles {
		if level >= s.min {
			return s.label, s.color
		}
	}
	last := levelStyles[len(levelStyles)-1]
	return last.label, last.color
}

func levelLabel(level slog.Level) string {
	label, _ := levelStyle(level)
	return label
}

// prettyHandler renders one line per record:
//
//	2025-01-02 15:04:05 INFO  [workflow] Movie.mkv (audio) - message key=value ... error=...
//
// component, source, and stage are lifted into the prefix; error is always
// written last.
type prettyHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     *slog.LevelVar
	attrs     []slog.Attr
	groups    []string
	addSource bool
	color     bool
}

func newPrettyHandler(w io.Writer, lvl *slog.LevelVar, addSource, color bool) slog.Handler {
	return &prettyHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource, color: color}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

type kv struct {
	key   string
	value slog.Value
}

// subject collects the fields that name what a record is about.
type subject struct {
	component, source, stage string
}

func (s *subject) take(field kv) bool {
	var slot *string
	value := attrString(field.value)
	switch field.key {
	case FieldComponent:
		slot = &s.component
	case FieldSource:
		slot = &s.source
		value = filepath.Base(value)
	case FieldStage:
		slot = &s.stage
	default:
		return false
	}
	if *slot == "" {
		*slot = strings.TrimSpace(value)
	}
	return true
}

func (s subject) String() string {
	switch {
	case s.source != "" && s.stage != "":
		return s.source + " (" + s.stage + ")"
	case s.source != "":
		return s.source
	default:
		return s.stage
	}
}

func (h *prettyHandler) Handle(_ context.Context, record slog.Record) error {
	if record.Level < h.level.Level() {
		return nil
	}
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	fields := make([]kv, 0, record.NumAttrs()+len(h.attrs))
	flattenAttrs(&fields, h.groups, h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		flattenAttr(&fields, h.groups, attr)
		return true
	})
	var subj subject
	fields = slices.DeleteFunc(fields, func(f kv) bool { return f.key == "" || subj.take(f) })
	slices.SortStableFunc(fields, func(a, b kv) int {
		switch {
		case a.key == "error" && b.key != "error":
			return 1
		case b.key == "error" && a.key != "error":
			return -1
		}
		return 0
	})

	var b strings.Builder
	b.WriteString(ts.In(time.Local).Format(consoleTimestampLayout))
	b.WriteByte(' ')
	b.WriteString(h.paintLevel(record.Level))
	if subj.component != "" {
		fmt.Fprintf(&b, " [%s]", subj.component)
	}
	if s := subj.String(); s != "" {
		b.WriteByte(' ')
		b.WriteString(s)
	}
	message := strings.TrimSpace(record.Message)
	if message == "" {
		message = "(no message)"
	}
	b.WriteString(" - ")
	b.WriteString(message)
	if h.addSource {
		if src := record.Source(); src != nil && src.File != "" {
			fmt.Fprintf(&b, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%s", f.key, formatValue(f.value))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, b.String())
	return err
}

func (h *prettyHandler) paintLevel(level slog.Level) string {
	label, color := levelStyle(level)
	label = fmt.Sprintf("%-5s", label)
	if !h.color {
		return label
	}
	return color + label + ansiReset
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(slices.Clip(h.attrs), attrs...)
	return &clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(slices.Clip(h.groups), name)
	return &clone
}

func flattenAttrs(dst *[]kv, prefix []string, attrs []slog.Attr) {
	for _, attr := range attrs {
		flattenAttr(dst, prefix, attr)
	}
}

func flattenAttr(dst *[]kv, prefix []string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		next := prefix
		if attr.Key != "" {
			next = append(slices.Clip(prefix), attr.Key)
		}
		flattenAttrs(dst, next, attr.Value.Group())
		return
	}
	key := attr.Key
	if len(prefix) > 0 {
		key = strings.Join(prefix, ".") + "." + key
	}
	*dst = append(*dst, kv{key: key, value: attr.Value})
}

// attrString renders v without quoting.
func attrString(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return v.String()
	}
}

func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().In(time.Local).Format(consoleTimestampLayout)
	}
	s := attrString(v)
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}
