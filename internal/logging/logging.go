package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger writes one JSON object per line. Every entry carries "ts" and "level".
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	loc *time.Location
}

// New returns a Logger writing to w with timestamps in loc.
// A nil writer falls back to stdout and a nil location to UTC.
func New(w io.Writer, loc *time.Location) *Logger {
	if w == nil {
		w = os.Stdout
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{w: w, loc: loc}
}

// Nop discards everything. Handy for tests and optional collaborators.
func Nop() *Logger {
	return New(io.Discard, time.UTC)
}

// Location is the timezone used for "ts".
func (l *Logger) Location() *time.Location {
	return l.loc
}

// Info logs msg at info level with the given fields.
func (l *Logger) Info(msg string, fields map[string]any) {
	l.write("info", msg, fields)
}

// Error logs msg at error level. err is added as "error" when not nil.
func (l *Logger) Error(msg string, err error, fields map[string]any) {
	if err != nil {
		if fields == nil {
			fields = map[string]any{}
		}
		fields["error"] = err.Error()
	}
	l.write("error", msg, fields)
}

func (l *Logger) write(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	entry["ts"] = time.Now().In(l.loc).Format(time.RFC3339Nano)
	entry["level"] = level
	entry["msg"] = msg

	b, err := json.Marshal(entry)
	if err != nil {
		return
	}
	b = append(b, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(b)
}
