package logger

import (
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

// Logger implements ports.Logger on top of charmbracelet/log.
type Logger struct {
	base *log.Logger
}

// New creates a Logger writing to w. When verbose is false everything is discarded.
func New(w io.Writer, verbose bool) *Logger {
	if w == nil || !verbose {
		w = io.Discard
	}
	base := log.NewWithOptions(w, log.Options{
		Level:           log.DebugLevel,
		Prefix:          "replize",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return &Logger{base: base}
}

// NewDiscard returns a Logger that drops every record.
func NewDiscard() *Logger {
	return New(nil, false)
}

// With returns a Logger that attaches fields to every record.
func (l *Logger) With(fields map[string]interface{}) *Logger {
	return &Logger{base: l.base.With(keyvals(fields)...)}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.base.Debug(msg, keyvals(fields)...)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.base.Info(msg, keyvals(fields)...)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.base.Warn(msg, keyvals(fields)...)
}

func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	kv := keyvals(fields)
	if err != nil {
		kv = append(kv, "err", err)
	}
	l.base.Error(msg, kv...)
}

// keyvals flattens fields in key order so records are stable.
func keyvals(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kv := make([]interface{}, 0, len(fields)*2)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}
	return kv
}
