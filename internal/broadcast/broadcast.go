// Package broadcast implements the Broadcast Fabric: fan-out of typed
// messages to N subscriber sinks with drop-on-error semantics.
package broadcast

import (
	"context"
	"sync"
	"time"

	"github.com/sentineldr/core/internal/telemetry"
)

// Message is one broadcast frame sent to every sink.
type Message struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink receives broadcast messages. Send must be safe to call concurrently
// with Send calls for other messages to the same sink only if the caller
// serializes them; the Fabric itself calls each sink's Send from a single
// goroutine per broadcast, preserving per-sink FIFO.
type Sink interface {
	Send(ctx context.Context, msg Message) error
}

// Fabric is a process-wide registry of subscriber sinks.
type Fabric struct {
	mu    sync.Mutex
	sinks map[int]Sink
	next  int
	log   telemetry.Logger
}

// New constructs an empty Fabric.
func New(log telemetry.Logger) *Fabric {
	if log == nil {
		log = telemetry.NewNoopLogger()
	}
	return &Fabric{sinks: map[int]Sink{}, log: log}
}

// Subscribe registers a sink and returns a handle usable with Unsubscribe.
func (f *Fabric) Subscribe(s Sink) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.sinks[id] = s
	return id
}

// Unsubscribe removes a previously registered sink.
func (f *Fabric) Unsubscribe(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sinks, id)
}

// Broadcast sends {type, payload, timestamp} to every subscribed sink.
// Delivery is best-effort and unordered across sinks; sinks whose Send
// errors are removed from the registry so a dead dashboard connection
// doesn't accumulate failures forever.
func (f *Fabric) Broadcast(ctx context.Context, msgType string, payload any) {
	msg := Message{Type: msgType, Payload: payload, Timestamp: time.Now().UTC()}

	f.mu.Lock()
	targets := make(map[int]Sink, len(f.sinks))
	for id, s := range f.sinks {
		targets[id] = s
	}
	f.mu.Unlock()

	var dead []int
	for id, s := range targets {
		if err := s.Send(ctx, msg); err != nil {
			f.log.Warn(ctx, "broadcast sink send failed, dropping sink", "sink_id", id, "error", err.Error())
			dead = append(dead, id)
		}
	}
	if len(dead) == 0 {
		return
	}
	f.mu.Lock()
	for _, id := range dead {
		delete(f.sinks, id)
	}
	f.mu.Unlock()
}

// Count returns the number of currently subscribed sinks.
func (f *Fabric) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sinks)
}
