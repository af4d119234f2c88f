// Package audit appends domain events to a local log file and optionally
// forwards them to an operational channel. Recording is fire-and-forget:
// a broken sink must never fail or block the core.
package audit

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

// Trail is an append-only audit sink.
type Trail struct {
	mu      sync.Mutex
	path    string
	forward func(text string)
}

// New creates a Trail writing to the given file. An empty path disables the
// file sink; events still reach the forward hook if one is set.
func New(path string) *Trail {
	return &Trail{path: path}
}

// SetForward installs a fire-and-forget hook, typically a webhook send,
// that receives every recorded line.
func (t *Trail) SetForward(fn func(text string)) {
	t.mu.Lock()
	t.forward = fn
	t.mu.Unlock()
}

// Record appends one timestamped event line. Errors are logged and
// swallowed.
func (t *Trail) Record(kind, format string, args ...interface{}) {
	line := fmt.Sprintf("[%s] [%s] %s",
		time.Now().UTC().Format(time.RFC3339), kind, fmt.Sprintf(format, args...))

	t.mu.Lock()
	path := t.path
	forward := t.forward
	t.mu.Unlock()

	if path != "" {
		if err := appendLine(path, line); err != nil {
			log.Printf("audit: append failed: %v", err)
		}
	}
	if forward != nil {
		forward(line)
	}
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line + "\n")
	return err
}
