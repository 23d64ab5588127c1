package logger

import (
	"strings"
	"sync"
)

// Ring is a fixed-size line buffer usable as a zapcore.WriteSyncer.
// Writes may come from the file watcher goroutine, reads from the UI loop.
type Ring struct {
	mu    sync.Mutex
	lines []string
	next  int
	full  bool
	seq   uint64
}

// NewRing returns a Ring holding at most size lines.
func NewRing(size int) *Ring {
	if size < 1 {
		size = 1
	}
	return &Ring{lines: make([]string, size)}
}

// Write stores each newline-terminated line of p.
func (r *Ring) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range strings.Split(text, "\n") {
		r.lines[r.next] = line
		r.next = (r.next + 1) % len(r.lines)
		if r.next == 0 {
			r.full = true
		}
		r.seq++
	}
	return len(p), nil
}

func (r *Ring) Sync() error { return nil }

// Lines returns the buffered lines, oldest first.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]string(nil), r.lines[:r.next]...)
	}
	out := make([]string, 0, len(r.lines))
	out = append(out, r.lines[r.next:]...)
	return append(out, r.lines[:r.next]...)
}

// Seq counts lines written so far. The console scrolls to the bottom when it
// changes.
func (r *Ring) Seq() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

// Clear drops all buffered lines.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.lines {
		r.lines[i] = ""
	}
	r.next = 0
	r.full = false
}
