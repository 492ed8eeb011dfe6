// Package debug is a tiny categorized file logger.
//
// Logging is off until Enable is called; every call is then appended to the
// log file and flushed, so the tail survives a crash or a hung terminal.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	file     *os.File
	mu       sync.Mutex
	enabled  bool
	counters = make(map[string]int)
)

// DefaultPath returns ~/.config/go-padscript/debug.log
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-padscript", "debug.log"), nil
}

// Enable starts debug logging to DefaultPath.
func Enable() error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	return EnableAt(path)
}

// EnableAt starts debug logging to path, truncating it.
func EnableAt(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	enabled = true

	// Write directly (can't call Log - we hold the mutex)
	write("debug", "=== Debug logging started ===")
	return nil
}

// Disable stops debug logging and closes the file.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	enabled = false
	counters = make(map[string]int)
}

// Enabled reports whether logging is on.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || file == nil {
		return
	}
	write(category, fmt.Sprintf(format, args...))
}

// LogEvery logs only every N calls (use for per-frame events)
func LogEvery(n int, category, format string, args ...any) {
	if n <= 0 {
		n = 1
	}
	mu.Lock()
	if !enabled {
		mu.Unlock()
		return
	}
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}

// write requires mu held
func write(category, msg string) {
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(file, "[%s] %-8s %s\n", ts, category, msg)
	file.Sync()
}
