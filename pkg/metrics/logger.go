package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pzverkov/suitepolicy/internal/constants"
)

// Level represents a logging level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent // Disables all logging
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "SILENT"}

// String returns the level name.
func (l Level) String() string {
	if l < LevelDebug || l > LevelSilent {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel parses a level name. Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "SILENT", "OFF", "NONE":
		return LevelSilent
	default:
		return LevelInfo
	}
}

// Fields represents structured log fields.
type Fields map[string]interface{}

// Format specifies the log output format.
type Format int

const (
	FormatText Format = iota // key=value lines for terminals
	FormatJSON               // one JSON object per line
)

// ParseFormat parses "text" or "json". Unknown names map to FormatText.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

// Logger writes leveled, structured log lines. Safe for concurrent use;
// child loggers created by With and Named share the parent's writer lock.
type Logger struct {
	mu       *sync.Mutex
	out      io.Writer
	level    Level
	format   Format
	fields   Fields
	name     string
	timeFunc func() time.Time
}

// LoggerOption configures a logger.
type LoggerOption func(*Logger)

// WithOutput sets the output writer.
func WithOutput(w io.Writer) LoggerOption {
	return func(l *Logger) { l.out = w }
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) LoggerOption {
	return func(l *Logger) { l.level = level }
}

// WithFormat sets the output format.
func WithFormat(format Format) LoggerOption {
	return func(l *Logger) { l.format = format }
}

// WithFields sets default fields for all log entries.
func WithFields(fields Fields) LoggerOption {
	return func(l *Logger) { l.fields = fields }
}

// WithName sets the logger name.
func WithName(name string) LoggerOption {
	return func(l *Logger) { l.name = name }
}

// NewLogger creates a logger. Output defaults to stderr so that command
// output on stdout stays machine-readable.
func NewLogger(opts ...LoggerOption) *Logger {
	l := &Logger{
		mu:       &sync.Mutex{},
		out:      os.Stderr,
		level:    LevelInfo,
		format:   FormatText,
		fields:   Fields{},
		name:     constants.ProjectName,
		timeFunc: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Logger) clone() *Logger {
	c := *l
	return &c
}

// With returns a child logger with additional fields.
func (l *Logger) With(fields Fields) *Logger {
	c := l.clone()
	c.fields = make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		c.fields[k] = v
	}
	for k, v := range fields {
		c.fields[k] = v
	}
	return c
}

// Named returns a child logger whose name is suffixed with name.
func (l *Logger) Named(name string) *Logger {
	c := l.clone()
	if l.name != "" {
		c.name = l.name + "." + name
	} else {
		c.name = name
	}
	return c
}

// SetLevel changes the logging level of this logger.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Enabled reports whether entries at level would be written.
func (l *Logger) Enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level && l.level != LevelSilent
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields ...Fields) { l.log(LevelDebug, msg, fields) }

// Info logs at info level.
func (l *Logger) Info(msg string, fields ...Fields) { l.log(LevelInfo, msg, fields) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields ...Fields) { l.log(LevelWarn, msg, fields) }

// Error logs at error level.
func (l *Logger) Error(msg string, fields ...Fields) { l.log(LevelError, msg, fields) }

func (l *Logger) log(level Level, msg string, extra []Fields) {
	if !l.Enabled(level) {
		return
	}

	all := make(Fields, len(l.fields))
	for k, v := range l.fields {
		all[k] = v
	}
	for _, f := range extra {
		for k, v := range f {
			all[k] = v
		}
	}

	var line []byte
	if l.format == FormatJSON {
		line = l.encodeJSON(level, msg, all)
	} else {
		line = l.encodeText(level, msg, all)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(line)
}

func (l *Logger) encodeJSON(level Level, msg string, fields Fields) []byte {
	entry := make(map[string]interface{}, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["time"] = l.timeFunc().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["msg"] = msg
	if l.name != "" {
		entry["logger"] = l.name
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return []byte(fmt.Sprintf("LOG_ERROR: %v\n", err))
	}
	return append(data, '\n')
}

func (l *Logger) encodeText(level Level, msg string, fields Fields) []byte {
	var b strings.Builder
	b.WriteString(l.timeFunc().Format("15:04:05.000"))
	fmt.Fprintf(&b, " %-5s ", level.String())
	if l.name != "" {
		b.WriteString("[")
		b.WriteString(l.name)
		b.WriteString("] ")
	}
	b.WriteString(msg)
	if len(fields) > 0 {
		b.WriteString(" ")
		b.WriteString(formatFields(fields))
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// formatFields renders fields as sorted key=value pairs. Slices of names
// are joined with commas to match the configuration syntax.
func formatFields(fields Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := fields[k].(type) {
		case []string:
			parts = append(parts, k+"="+strings.Join(v, constants.ListSeparator))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	return strings.Join(parts, " ")
}

// --- Global Logger ---

var (
	globalLogger   = NewLogger()
	globalLoggerMu sync.RWMutex
)

// SetLogger sets the global logger.
func SetLogger(l *Logger) {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	globalLogger = l
}

// GetLogger returns the global logger.
func GetLogger() *Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// NullLogger returns a logger that discards all output.
func NullLogger() *Logger {
	return NewLogger(WithOutput(io.Discard), WithLevel(LevelSilent))
}

// TestLogger returns a debug-level text logger writing to w.
func TestLogger(w io.Writer) *Logger {
	return NewLogger(WithOutput(w), WithLevel(LevelDebug), WithFormat(FormatText))
}
