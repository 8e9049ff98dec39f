// Package logger provides leveled logging with optional component prefixes.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Level represents a logging level.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLevel maps a config string to a Level. Unknown values map to InfoLevel.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger provides leveled logging.
type Logger struct {
	level  Level
	logger *log.Logger
}

var defaultLogger *Logger

// Init initializes the default logger with the specified level and format.
func Init(level string, format string) {
	flags := log.LstdFlags | log.Lmicroseconds
	if strings.ToLower(format) == "text" {
		flags |= log.Lshortfile
	}

	defaultLogger = &Logger{
		level:  ParseLevel(level),
		logger: log.New(os.Stderr, "", flags),
	}
}

func output(l Level, tag, prefix, format string, args ...interface{}) {
	if defaultLogger == nil || defaultLogger.level > l {
		return
	}
	msg := fmt.Sprintf("["+tag+"] "+prefix+format, args...)
	_ = defaultLogger.logger.Output(3, msg)
}

func Debug(format string, args ...interface{}) { output(DebugLevel, "DEBUG", "", format, args...) }
func Info(format string, args ...interface{})  { output(InfoLevel, "INFO", "", format, args...) }
func Warn(format string, args ...interface{})  { output(WarnLevel, "WARN", "", format, args...) }
func Error(format string, args ...interface{}) { output(ErrorLevel, "ERROR", "", format, args...) }

func Fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf("[FATAL] "+format, args...)
	if defaultLogger != nil {
		_ = defaultLogger.logger.Output(2, msg)
	}
	os.Exit(1)
}

// Component logs through the default logger with a fixed "name: " prefix.
type Component struct {
	prefix string
}

// Named returns a component logger. Messages are dropped until Init is called.
func Named(name string) Component {
	return Component{prefix: name + ": "}
}

func (c Component) Debug(format string, args ...interface{}) {
	output(DebugLevel, "DEBUG", c.prefix, format, args...)
}

func (c Component) Info(format string, args ...interface{}) {
	output(InfoLevel, "INFO", c.prefix, format, args...)
}

func (c Component) Warn(format string, args ...interface{}) {
	output(WarnLevel, "WARN", c.prefix, format, args...)
}

func (c Component) Error(format string, args ...interface{}) {
	output(ErrorLevel, "ERROR", c.prefix, format, args...)
}
