/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package reorder

import "launchpad/internal/domain"

// State of a drag gesture.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Outcome of ending a drag.
type Outcome int

const (
	Cancelled Outcome = iota
	Committed
)

func (o Outcome) String() string {
	if o == Committed {
		return "committed"
	}
	return "cancelled"
}

// Tracker follows one drag gesture: Idle -> Dragging(active, origin) -> Idle.
// It never touches the sections it is given; committing the resolved move is
// the caller's job.
type Tracker struct {
	state    State
	activeID string
	originID string
}

// Start enters Dragging. Drags are inert outside edit mode and for ids that
// are not in the hierarchy; Start reports whether the drag began.
func (t *Tracker) Start(activeID string, sections []domain.Section, editMode bool) bool {
	if !editMode || activeID == "" {
		return false
	}
	origin := ""
	if sid, ok := ParseSectionDragID(activeID); ok {
		if domain.SectionIndex(sections, sid) < 0 {
			return false
		}
		origin = sid
	} else {
		i := sectionOfItem(sections, activeID)
		if i < 0 {
			return false
		}
		origin = sections[i].ID
	}
	t.state = Dragging
	t.activeID = activeID
	t.originID = origin
	return true
}

// End leaves Dragging and resolves the drop against sections. The outcome is
// Committed only when the drop resolved to a real move.
func (t *Tracker) End(overID string, sections []domain.Section) (Move, Outcome) {
	if t.state != Dragging {
		return NoOp{Reason: ReasonNotDragging, OverID: overID}, Cancelled
	}
	active := t.activeID
	t.Cancel()
	m := ResolveDragTarget(active, overID, sections)
	if _, ok := m.(NoOp); ok {
		return m, Cancelled
	}
	return m, Committed
}

// Cancel abandons the gesture without resolving anything.
func (t *Tracker) Cancel() {
	t.state = Idle
	t.activeID = ""
	t.originID = ""
}

func (t *Tracker) State() State { return t.state }

// Active returns the dragged id and the id of the section it started in.
func (t *Tracker) Active() (activeID, originSectionID string) { return t.activeID, t.originID }
