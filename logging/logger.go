package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

var levelColors = map[LogLevel]string{
	DEBUG: "\033[36m",       // Cyan
	INFO:  "\033[38;5;195m", // Pale Blue
	WARN:  "\033[33m",       // Yellow
	ERROR: "\033[31m",       // Red
	FATAL: "\033[35m",       // Magenta
}

const colorReset = "\033[0m"

// String returns the string representation of the log level
func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLevel converts a string level to LogLevel, defaulting to INFO
func ParseLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "fatal":
		return FATAL
	default:
		return INFO
	}
}

// Config holds logger configuration options
type Config struct {
	Level       string // "debug", "info", "warn", "error", "fatal"
	Output      io.Writer
	Prefix      string
	EnableColor bool
	LogDir      string // when set, lines are also appended to <LogDir>/<Prefix or "app">.log without color
}

// sink is shared between a logger and the loggers derived from it
type sink struct {
	mu      sync.Mutex
	console io.Writer
	file    io.WriteCloser
}

// Logger is a leveled logger with an optional component prefix
type Logger struct {
	level       LogLevel
	prefix      string
	enableColor bool
	out         *sink
	now         func() time.Time
}

// New creates a new Logger. A log file that cannot be opened is reported on
// the console and skipped.
func New(config Config) *Logger {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	s := &sink{console: config.Output}
	if config.LogDir != "" {
		name := config.Prefix
		if name == "" {
			name = "app"
		}
		if err := os.MkdirAll(config.LogDir, 0o755); err != nil {
			fmt.Fprintf(config.Output, "logging: cannot create %s: %v\n", config.LogDir, err)
		} else if f, err := os.OpenFile(filepath.Join(config.LogDir, name+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err != nil {
			fmt.Fprintf(config.Output, "logging: cannot open log file: %v\n", err)
		} else {
			s.file = f
		}
	}

	return &Logger{
		level:       ParseLevel(config.Level),
		prefix:      config.Prefix,
		enableColor: config.EnableColor,
		out:         s,
		now:         time.Now,
	}
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	if l.out.file == nil {
		return nil
	}
	err := l.out.file.Close()
	l.out.file = nil
	return err
}

// IsLevelEnabled checks if the given level is enabled
func (l *Logger) IsLevelEnabled(level LogLevel) bool {
	return level >= l.level
}

// WithPrefix returns a logger that tags lines with the given component name.
// Prefixes nest as parent:child.
func (l *Logger) WithPrefix(prefix string) *Logger {
	child := *l
	if l.prefix != "" {
		child.prefix = l.prefix + ":" + prefix
	} else {
		child.prefix = prefix
	}
	return &child
}

// formatLine renders one log line without color
func (l *Logger) formatLine(level LogLevel, message string) string {
	tag := ""
	if l.prefix != "" {
		tag = "[" + l.prefix + "] "
	}
	return fmt.Sprintf("%-5s %s %-30s%s", level, l.now().Format("2006-01-02 15:04:05.000"), tag, message)
}

func (l *Logger) write(level LogLevel, message string) {
	if !l.IsLevelEnabled(level) {
		return
	}

	line := l.formatLine(level, message)

	l.out.mu.Lock()
	if l.enableColor {
		fmt.Fprintln(l.out.console, levelColors[level]+line+colorReset)
	} else {
		fmt.Fprintln(l.out.console, line)
	}
	if l.out.file != nil {
		fmt.Fprintln(l.out.file, line)
	}
	l.out.mu.Unlock()

	if level == FATAL {
		os.Exit(1)
	}
}

// Debug logs a message at DEBUG level
func (l *Logger) Debug(args ...interface{}) { l.write(DEBUG, fmt.Sprint(args...)) }

// Debugf logs a formatted message at DEBUG level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.write(DEBUG, fmt.Sprintf(format, args...))
}

// Info logs a message at INFO level
func (l *Logger) Info(args ...interface{}) { l.write(INFO, fmt.Sprint(args...)) }

// Infof logs a formatted message at INFO level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.write(INFO, fmt.Sprintf(format, args...))
}

// Warn logs a message at WARN level
func (l *Logger) Warn(args ...interface{}) { l.write(WARN, fmt.Sprint(args...)) }

// Warnf logs a formatted message at WARN level
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.write(WARN, fmt.Sprintf(format, args...))
}

// Error logs a message at ERROR level
func (l *Logger) Error(args ...interface{}) { l.write(ERROR, fmt.Sprint(args...)) }

// Errorf logs a formatted message at ERROR level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write(ERROR, fmt.Sprintf(format, args...))
}

// Fatal logs a message at FATAL level and exits the program
func (l *Logger) Fatal(args ...interface{}) { l.write(FATAL, fmt.Sprint(args...)) }

// Fatalf logs a formatted message at FATAL level and exits the program
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.write(FATAL, fmt.Sprintf(format, args...))
}
