/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

import (
	"launchpad/internal/domain"
	"launchpad/internal/history"
)

// Pages returns a deep copy of all pages.
func (s *Store) Pages() []domain.Page { return domain.ClonePages(s.pages) }

func (s *Store) CurrentPageID() string { return s.currentPageID }

// CurrentPage returns a copy of the selected page, if any.
func (s *Store) CurrentPage() (domain.Page, bool) {
	i := s.currentIndex()
	if i < 0 {
		return domain.Page{}, false
	}
	return s.pages[i].Clone(), true
}

// Sections returns a copy of the current page's sections; empty when no page
// is selected.
func (s *Store) Sections() []domain.Section {
	i := s.currentIndex()
	if i < 0 {
		return []domain.Section{}
	}
	return domain.CloneSections(s.pages[i].Sections)
}

// Section returns a copy of one section of the current page.
func (s *Store) Section(id string) (domain.Section, bool) {
	i := s.currentIndex()
	if i < 0 {
		return domain.Section{}, false
	}
	si := domain.SectionIndex(s.pages[i].Sections, id)
	if si < 0 {
		return domain.Section{}, false
	}
	return s.pages[i].Sections[si].Clone(), true
}

// SelectedItem returns the current selection or nil.
func (s *Store) SelectedItem() *Selection {
	if s.selected == nil {
		return nil
	}
	return &Selection{SectionID: s.selected.SectionID, Item: s.selected.Item.Clone()}
}

func (s *Store) EditMode() bool          { return s.editMode }
func (s *Store) SettingsOpen() bool      { return s.settingsOpen }
func (s *Store) SearchQuery() string     { return s.searchQuery }
func (s *Store) HasUnsavedChanges() bool { return s.unsaved }

// History returns copies of the recorded snapshots, oldest first.
func (s *Store) History() []history.Entry { return s.history.Entries() }

// HistoryIndex is the cursor into History; -1 before the first snapshot.
func (s *Store) HistoryIndex() int { return s.history.Cursor() }

// HistoryCap returns how many snapshots the history retains.
func (s *Store) HistoryCap() int { return s.history.Cap() }

// NewID draws an id from the store's generator, for callers building
// entities before handing them to AddItem or SetSections.
func (s *Store) NewID() string { return s.ids.NewID() }
