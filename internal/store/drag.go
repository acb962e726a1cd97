/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

import (
	"errors"

	"launchpad/internal/diag"
	"launchpad/internal/reorder"
)

var errReorderRejected = errors.New("reordered sections rejected")

// DragStart begins a drag of id, which is either an item id or a section
// draggable id (see reorder.SectionDragID). Outside edit mode, or for ids not
// on the current page, nothing happens.
func (s *Store) DragStart(id string) bool {
	if !s.drag.Start(id, s.Sections(), s.editMode) {
		s.diag.Debug("drag start ignored", map[string]any{"activeId": id, "editMode": s.editMode})
		return false
	}
	_, origin := s.drag.Active()
	s.diag.Debug("drag started", map[string]any{"activeId": id, "originSectionId": origin})
	return true
}

// DragEnd drops the dragged element onto overID ("" for no target). A
// resolved move is committed as exactly one history entry; anything else
// cancels the drag and leaves state untouched.
func (s *Store) DragEnd(overID string) reorder.Outcome {
	active, _ := s.drag.Active()
	secs := s.Sections()
	m, outcome := s.drag.End(overID, secs)
	meta := map[string]any{"activeId": active, "overId": overID, "move": m.String()}
	if noop, ok := m.(reorder.NoOp); ok {
		if noop.Miss() {
			s.diag.Warn("drag target not found", meta)
		} else {
			s.diag.Debug("drag cancelled", meta)
		}
		return outcome
	}
	err := diag.Measure(s.diag, "reorder", func() error {
		if !s.SetSections(reorder.Apply(secs, m)) {
			return errReorderRejected
		}
		return nil
	}, meta)
	if err != nil {
		return reorder.Cancelled
	}
	s.SaveToHistory()
	return outcome
}

// DragCancel abandons a drag in progress.
func (s *Store) DragCancel() {
	if s.drag.State() != reorder.Dragging {
		return
	}
	active, _ := s.drag.Active()
	s.drag.Cancel()
	s.diag.Debug("drag cancelled", map[string]any{"activeId": active})
}

// Dragging returns the id being dragged, if a drag is in progress.
func (s *Store) Dragging() (string, bool) {
	if s.drag.State() != reorder.Dragging {
		return "", false
	}
	active, _ := s.drag.Active()
	return active, true
}
