/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package diag carries diagnostic events from the state engine to whatever
// sinks the application wires up. Emission is fire-and-forget: a sink that
// fails or panics never changes the outcome of the operation that emitted.
package diag

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level of a diagnostic event.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Slog maps the level onto slog's levels.
func (l Level) Slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Event is one structured diagnostic record.
type Event struct {
	Timestamp     time.Time      `json:"timestamp"`
	Level         Level          `json:"level"`
	Message       string         `json:"message"`
	CorrelationID string         `json:"correlationId"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// Sink receives events. Implementations must not block for long.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(ev Event) { f(ev) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// Fanout delivers each event to all sinks, isolating them from each other.
func Fanout(sinks ...Sink) Sink {
	return SinkFunc(func(ev Event) {
		for _, s := range sinks {
			deliver(s, ev)
		}
	})
}

func deliver(s Sink, ev Event) {
	if s == nil {
		return
	}
	defer func() { _ = recover() }()
	s.Emit(ev)
}

// Emitter stamps events with a time and correlation id and hands them to a sink.
type Emitter struct {
	sink Sink
	now  func() time.Time
}

// NewEmitter returns an emitter for sink; a nil sink discards.
func NewEmitter(sink Sink) *Emitter {
	if sink == nil {
		sink = Discard
	}
	return &Emitter{sink: sink, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (e *Emitter) WithClock(now func() time.Time) *Emitter {
	if now != nil {
		e.now = now
	}
	return e
}

// Emit sends one event and returns its correlation id.
func (e *Emitter) Emit(level Level, msg string, meta map[string]any) string {
	if e == nil {
		return ""
	}
	ev := Event{
		Timestamp:     e.now(),
		Level:         level,
		Message:       msg,
		CorrelationID: uuid.NewString(),
		Metadata:      meta,
	}
	deliver(e.sink, ev)
	return ev.CorrelationID
}

func (e *Emitter) Debug(msg string, meta map[string]any) string { return e.Emit(LevelDebug, msg, meta) }
func (e *Emitter) Info(msg string, meta map[string]any) string  { return e.Emit(LevelInfo, msg, meta) }
func (e *Emitter) Warn(msg string, meta map[string]any) string  { return e.Emit(LevelWarn, msg, meta) }
func (e *Emitter) Error(msg string, meta map[string]any) string { return e.Emit(LevelError, msg, meta) }

// DefaultRingSize is how many events a RingSink keeps unless told otherwise.
const DefaultRingSize = 1000

// RingSink keeps the most recent events in memory.
type RingSink struct {
	mu     sync.Mutex
	max    int
	events []Event
}

func NewRingSink(max int) *RingSink {
	if max <= 0 {
		max = DefaultRingSize
	}
	return &RingSink{max: max}
}

func (r *RingSink) Emit(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	if over := len(r.events) - r.max; over > 0 {
		r.events = append([]Event(nil), r.events[over:]...)
	}
}

// Events returns a copy of the retained events, oldest first.
func (r *RingSink) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Clear drops all retained events.
func (r *RingSink) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
