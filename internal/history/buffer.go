/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package history keeps full-state snapshots of the page hierarchy for linear
// undo/redo. Snapshots are deep copies, never diffs, and the buffer holds at
// most a fixed number of them: the oldest are dropped first.
package history

import (
	"time"

	"launchpad/internal/domain"
)

// MaxHistory is the default number of snapshots retained.
const MaxHistory = 50

// Entry is one snapshot. Pages is owned by the buffer and never handed out
// without copying.
type Entry struct {
	Pages     []domain.Page
	Timestamp time.Time
}

// Buffer is a bounded list of snapshots with a cursor at the entry that
// represents the current state. It is not safe for concurrent use.
type Buffer struct {
	max     int
	now     func() time.Time
	entries []Entry
	cursor  int
}

// New returns an empty buffer holding at most max entries (MaxHistory when
// max <= 0). now defaults to time.Now.
func New(max int, now func() time.Time) *Buffer {
	if max <= 0 {
		max = MaxHistory
	}
	if now == nil {
		now = time.Now
	}
	return &Buffer{max: max, now: now, cursor: -1}
}

// Snapshot records a deep copy of pages as the new current entry. Entries
// after the cursor (the redo branch) are discarded first. When the bound is
// exceeded the oldest entries go and the cursor shifts down with them.
// It returns how many old entries were dropped.
func (b *Buffer) Snapshot(pages []domain.Page) int {
	b.entries = b.entries[:b.cursor+1]
	b.entries = append(b.entries, Entry{Pages: domain.ClonePages(pages), Timestamp: b.now()})
	b.cursor = len(b.entries) - 1
	dropped := 0
	if over := len(b.entries) - b.max; over > 0 {
		// Copy into a fresh slice so dropped snapshots can be collected.
		b.entries = append([]Entry(nil), b.entries[over:]...)
		b.cursor -= over
		dropped = over
	}
	return dropped
}

// Undo moves the cursor back one entry and returns a copy of its pages.
func (b *Buffer) Undo() ([]domain.Page, bool) {
	if !b.CanUndo() {
		return nil, false
	}
	b.cursor--
	return domain.ClonePages(b.entries[b.cursor].Pages), true
}

// Redo moves the cursor forward one entry and returns a copy of its pages.
func (b *Buffer) Redo() ([]domain.Page, bool) {
	if !b.CanRedo() {
		return nil, false
	}
	b.cursor++
	return domain.ClonePages(b.entries[b.cursor].Pages), true
}

func (b *Buffer) CanUndo() bool { return b.cursor > 0 }

func (b *Buffer) CanRedo() bool { return b.cursor >= 0 && b.cursor < len(b.entries)-1 }

// Len returns the number of retained entries.
func (b *Buffer) Len() int { return len(b.entries) }

// Cap returns the maximum number of retained entries.
func (b *Buffer) Cap() int { return b.max }

// Cursor returns the index of the current entry, or -1 when empty.
func (b *Buffer) Cursor() int { return b.cursor }

// Current returns a copy of the pages at the cursor.
func (b *Buffer) Current() ([]domain.Page, bool) {
	if b.cursor < 0 {
		return nil, false
	}
	return domain.ClonePages(b.entries[b.cursor].Pages), true
}

// Entries returns copies of all retained entries, oldest first.
func (b *Buffer) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	for i, e := range b.entries {
		out[i] = Entry{Pages: domain.ClonePages(e.Pages), Timestamp: e.Timestamp}
	}
	return out
}
