// Package console is the logging facade used across the runtime. Output goes
// to stderr by default; tests and tools redirect it with SetOutput.
package console

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

var (
	mu     sync.Mutex
	level  = LevelInfo
	logger = log.New(os.Stderr, "", log.LstdFlags)
)

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// SetLevel sets the minimum level written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// ParseLevel maps a name such as "debug" to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "off", "none":
		return LevelOff, nil
	}
	return LevelInfo, fmt.Errorf("console: unknown level %q", name)
}

// Debug logs engine internals such as reloads and dropped specs.
func Debug(args ...any) { write(LevelDebug, args) }

// Log logs informational messages.
func Log(args ...any) { write(LevelInfo, args) }

// Warn logs recoverable problems.
func Warn(args ...any) { write(LevelWarn, args) }

// Error logs failures.
func Error(args ...any) { write(LevelError, args) }

func write(l Level, args []any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	logger.Print(levelNames[l] + " " + fmt.Sprintln(args...))
}
