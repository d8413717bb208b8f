package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel is the severity of a log entry.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Field is one structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// Logger is the logging surface wiremap components write to.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Log(level LogLevel, msg string, fields ...Field)
	WithFields(fields ...Field) Logger
	WithCategory(category string) Logger
}

// ConsoleOptions configures the console logger.
type ConsoleOptions struct {
	MinimumLevel     LogLevel
	IncludeTimestamp bool
	TimestampFormat  string
	Output           io.Writer
}

// NewConsole creates a logger writing plain text lines to opts.Output
// (stdout when nil).
func NewConsole(opts ...func(*ConsoleOptions)) Logger {
	o := ConsoleOptions{
		MinimumLevel:     LogLevelInfo,
		IncludeTimestamp: true,
		TimestampFormat:  "2006-01-02 15:04:05",
		Output:           os.Stdout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Output == nil {
		o.Output = os.Stdout
	}
	return &consoleLogger{options: o, mu: &sync.Mutex{}}
}

type consoleLogger struct {
	options  ConsoleOptions
	category string
	fields   []Field
	mu       *sync.Mutex
}

func (l *consoleLogger) Debug(msg string, fields ...Field) { l.Log(LogLevelDebug, msg, fields...) }
func (l *consoleLogger) Info(msg string, fields ...Field)  { l.Log(LogLevelInfo, msg, fields...) }
func (l *consoleLogger) Warn(msg string, fields ...Field)  { l.Log(LogLevelWarn, msg, fields...) }
func (l *consoleLogger) Error(msg string, fields ...Field) { l.Log(LogLevelError, msg, fields...) }

func (l *consoleLogger) Log(level LogLevel, msg string, fields ...Field) {
	if level < l.options.MinimumLevel {
		return
	}

	var b strings.Builder
	if l.options.IncludeTimestamp {
		b.WriteString(time.Now().Format(l.options.TimestampFormat))
		b.WriteByte(' ')
	}
	b.WriteString(level.String())
	if l.category != "" {
		b.WriteString(" [")
		b.WriteString(l.category)
		b.WriteString("]")
	}
	b.WriteByte(' ')
	b.WriteString(msg)

	all := append(l.fields[:len(l.fields):len(l.fields)], fields...)
	if len(all) > 0 {
		b.WriteString(" {")
		for i, f := range all {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Key)
			b.WriteByte('=')
			fmt.Fprintf(&b, "%v", f.Value)
		}
		b.WriteString("}")
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.options.Output, b.String())
}

func (l *consoleLogger) WithFields(fields ...Field) Logger {
	cp := *l
	cp.fields = append(l.fields[:len(l.fields):len(l.fields)], fields...)
	return &cp
}

func (l *consoleLogger) WithCategory(category string) Logger {
	cp := *l
	cp.category = category
	return &cp
}
