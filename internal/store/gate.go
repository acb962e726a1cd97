/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

// NavigationGate intercepts page switches while the store has unsaved
// changes. The store itself never blocks; the gate holds the requested page
// until the user confirms or cancels.
type NavigationGate struct {
	store   *Store
	pending string
	waiting bool
}

func NewNavigationGate(s *Store) *NavigationGate { return &NavigationGate{store: s} }

// Request switches to pageID immediately when there is nothing unsaved and
// reports true. Otherwise the switch is parked until Confirm or Cancel.
func (g *NavigationGate) Request(pageID string) bool {
	if !g.store.HasUnsavedChanges() {
		g.pending, g.waiting = "", false
		g.store.SetCurrentPage(pageID)
		return true
	}
	g.pending, g.waiting = pageID, true
	g.store.diag.Info("page switch awaits confirmation", map[string]any{"pageId": pageID})
	return false
}

// Pending returns the parked page id.
func (g *NavigationGate) Pending() (string, bool) { return g.pending, g.waiting }

// Confirm discards the unsaved edits and performs the parked switch.
func (g *NavigationGate) Confirm() bool {
	if !g.waiting {
		return false
	}
	id := g.pending
	g.pending, g.waiting = "", false
	g.store.DiscardChanges()
	g.store.SetCurrentPage(id)
	return true
}

// Cancel drops the parked switch.
func (g *NavigationGate) Cancel() {
	if g.waiting {
		g.store.diag.Debug("page switch cancelled", map[string]any{"pageId": g.pending})
	}
	g.pending, g.waiting = "", false
}
