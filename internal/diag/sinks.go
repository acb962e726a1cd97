/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package diag

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	applog "launchpad/internal/log"
)

// SlogSink forwards events to the application logger.
type SlogSink struct {
	log *slog.Logger
}

// NewSlogSink returns a sink logging through l, or through the "diag"
// component logger when l is nil.
func NewSlogSink(l *slog.Logger) *SlogSink {
	if l == nil {
		l = applog.WithComponent("diag")
	}
	return &SlogSink{log: l}
}

func (s *SlogSink) Emit(ev Event) {
	ctx := applog.WithCorrelation(context.Background(), ev.CorrelationID)
	attrs := make([]slog.Attr, 0, len(ev.Metadata))
	for k, v := range ev.Metadata {
		attrs = append(attrs, slog.Any(k, v))
	}
	s.log.LogAttrs(ctx, ev.Level.Slog(), ev.Message, attrs...)
}

// DefaultQueueSize bounds an AsyncSink's buffer unless told otherwise.
const DefaultQueueSize = 256

// AsyncSink hands events to another sink on a background goroutine.
// Emit never blocks: when the queue is full the event is dropped and counted.
type AsyncSink struct {
	next    Sink
	q       chan Event
	done    chan struct{}
	dropped atomic.Int64

	mu      sync.Mutex
	closed  bool
	pending int
	idle    chan struct{} // closed while pending == 0
}

func NewAsyncSink(next Sink, size int) *AsyncSink {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if next == nil {
		next = Discard
	}
	idle := make(chan struct{})
	close(idle)
	a := &AsyncSink{next: next, q: make(chan Event, size), done: make(chan struct{}), idle: idle}
	go a.loop()
	return a
}

func (a *AsyncSink) loop() {
	defer close(a.done)
	for ev := range a.q {
		deliver(a.next, ev)
		a.mu.Lock()
		a.pending--
		if a.pending == 0 {
			close(a.idle)
		}
		a.mu.Unlock()
	}
}

func (a *AsyncSink) Emit(ev Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		a.dropped.Add(1)
		return
	}
	select {
	case a.q <- ev:
		if a.pending == 0 {
			a.idle = make(chan struct{})
		}
		a.pending++
	default:
		a.dropped.Add(1)
	}
}

// Dropped reports how many events were discarded because the queue was full
// or the sink was closed.
func (a *AsyncSink) Dropped() int64 { return a.dropped.Load() }

// Flush waits until every event queued so far has been delivered or ctx is done.
func (a *AsyncSink) Flush(ctx context.Context) error {
	a.mu.Lock()
	idle := a.idle
	a.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting events and waits for the queue to drain.
func (a *AsyncSink) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.q)
	a.mu.Unlock()
	select {
	case <-a.done:
	case <-time.After(2 * time.Second):
	}
	return nil
}
