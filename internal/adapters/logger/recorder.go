package logger

import (
	"sync"

	"github.com/baditaflorin/go_tweet_sentiment/internal/ports"
)

// Entry is one recorded log call.
type Entry struct {
	Level string
	Msg   string
	KV    []interface{}
}

// Recorder keeps every log call in memory.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) record(level, msg string, kv []interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, KV: kv})
}

func (r *Recorder) Debug(msg string, kv ...interface{}) { r.record("debug", msg, kv) }
func (r *Recorder) Info(msg string, kv ...interface{})  { r.record("info", msg, kv) }
func (r *Recorder) Warn(msg string, kv ...interface{})  { r.record("warn", msg, kv) }
func (r *Recorder) Error(msg string, kv ...interface{}) { r.record("error", msg, kv) }
func (r *Recorder) Close() error                        { return nil }

// Entries returns a snapshot of the recorded calls.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the recorded messages at level, in call order.
func (r *Recorder) Messages(level string) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Msg)
		}
	}
	return out
}

var _ ports.Logger = (*Recorder)(nil)
