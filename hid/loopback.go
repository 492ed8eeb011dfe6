package hid

import (
	"errors"
	"sync"
)

// ErrNotConfigured is returned by Loopback I/O while unconfigured.
var ErrNotConfigured = errors.New("hid: transport not configured")

// Loopback is an in-memory Transport. It records every input report written
// to it and hands out queued output reports. Used for headless runs and tests.
type Loopback struct {
	mu         sync.Mutex
	configured bool
	busy       bool // host not accepting input reports
	pending    []OutputReport
	sent       []Report
	limit      int // max recorded reports, 0 = unbounded
}

// NewLoopback creates a configured loopback transport. limit bounds how many
// written reports are kept (oldest dropped first); 0 keeps everything.
func NewLoopback(limit int) *Loopback {
	return &Loopback{
		configured: true,
		limit:      limit,
	}
}

// SetConfigured simulates enumeration (true) or a disconnect (false).
func (l *Loopback) SetConfigured(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.configured = v
}

// SetBusy makes InputReady report false until cleared.
func (l *Loopback) SetBusy(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.busy = v
}

// QueueOutput simulates the host sending an output report.
func (l *Loopback) QueueOutput(r OutputReport) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(l.pending, r)
}

// Pending returns how many output reports are waiting to be read.
func (l *Loopback) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Sent returns a copy of the recorded input reports.
func (l *Loopback) Sent() []Report {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Report, len(l.sent))
	copy(out, l.sent)
	return out
}

// Transport interface implementation

func (l *Loopback) Configured() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.configured
}

func (l *Loopback) OutputReady() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.configured && len(l.pending) > 0
}

func (l *Loopback) ReadOutput() (OutputReport, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.configured {
		return OutputReport{}, ErrNotConfigured
	}
	if len(l.pending) == 0 {
		return OutputReport{}, errors.New("hid: no output report pending")
	}
	r := l.pending[0]
	l.pending = l.pending[1:]
	return r, nil
}

func (l *Loopback) InputReady() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.configured && !l.busy
}

func (l *Loopback) WriteInput(r Report) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.configured {
		return ErrNotConfigured
	}
	l.sent = append(l.sent, r)
	if l.limit > 0 && len(l.sent) > l.limit {
		l.sent = l.sent[len(l.sent)-l.limit:]
	}
	return nil
}
