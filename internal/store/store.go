/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package store owns the launchpad's mutable state and is the only place it
// changes. Every mutation goes through a Store method, emits a diagnostics
// event, and reports failure as a no-op rather than an error or panic.
//
// A Store is not safe for concurrent use; it belongs to one event loop.
package store

import (
	"strings"
	"time"

	"launchpad/internal/diag"
	"launchpad/internal/domain"
	"launchpad/internal/history"
	"launchpad/internal/ident"
	"launchpad/internal/reorder"
)

// DefaultPageTitle names the page created for an empty store.
const DefaultPageTitle = "Home"

// Options configures a Store. Zero values pick sensible defaults.
type Options struct {
	IDs              ident.Generator
	Diagnostics      diag.Sink
	Clock            func() time.Time
	MaxHistory       int
	DefaultPageTitle string
	// Pages seeds the store; they are deep-copied.
	Pages []domain.Page
}

// Selection is a weak reference to one item and the section that owns it.
type Selection struct {
	SectionID string
	Item      domain.Item
}

// Store is the mutation facade over pages, view flags and history.
type Store struct {
	ids          ident.Generator
	diag         *diag.Emitter
	defaultTitle string

	pages         []domain.Page
	currentPageID string
	selected      *Selection
	editMode      bool
	settingsOpen  bool
	searchQuery   string
	unsaved       bool

	history *history.Buffer
	drag    reorder.Tracker
}

// New builds a store and runs Init.
func New(opts Options) *Store {
	if opts.IDs == nil {
		opts.IDs = ident.UUID{}
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = diag.NewSlogSink(nil)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = history.MaxHistory
	}
	if strings.TrimSpace(opts.DefaultPageTitle) == "" {
		opts.DefaultPageTitle = DefaultPageTitle
	}
	s := &Store{
		ids:          opts.IDs,
		diag:         diag.NewEmitter(opts.Diagnostics).WithClock(opts.Clock),
		defaultTitle: opts.DefaultPageTitle,
		pages:        domain.ClonePages(opts.Pages),
		history:      history.New(opts.MaxHistory, opts.Clock),
	}
	s.normalizeSeed()
	if len(s.pages) > 0 {
		s.currentPageID = s.pages[0].ID
	}
	s.Init()
	return s
}

// normalizeSeed gives seeded pages an id and replaces settings that fail
// validation with the defaults for the page title. Duplicate section ids are
// only reported; edits on such a page are rejected by SetSections.
func (s *Store) normalizeSeed() {
	for i := range s.pages {
		p := &s.pages[i]
		if p.ID == "" {
			p.ID = s.ids.NewID()
		}
		if err := p.Settings.Validate(); err != nil {
			p.Settings = domain.DefaultSettings(p.Title)
			s.diag.Warn("seeded page settings replaced with defaults", map[string]any{
				"pageId": p.ID,
				"error":  err.Error(),
			})
		}
		if dup := domain.DuplicateIDs(p.Sections); len(dup) > 0 {
			s.diag.Warn("seeded page has duplicate section ids", map[string]any{
				"pageId":     p.ID,
				"duplicates": dup,
			})
		}
	}
}

// Init guarantees at least one page exists and records the baseline history
// entry so the first edit can be undone. Calling it again only re-checks the
// page invariant.
func (s *Store) Init() {
	if len(s.pages) == 0 {
		s.AddPage(s.defaultTitle)
	}
	if s.history.Len() == 0 {
		s.history.Snapshot(s.pages)
		s.diag.Debug("history baseline recorded", map[string]any{"pages": len(s.pages)})
	}
}

// SetCurrentPage selects a page by id. An unknown id leaves no page selected.
func (s *Store) SetCurrentPage(id string) {
	s.currentPageID = id
	s.selected = nil
	s.drag.Cancel()
	meta := map[string]any{"pageId": id}
	if domain.PageIndex(s.pages, id) < 0 {
		s.diag.Warn("current page id matches no page", meta)
		return
	}
	s.diag.Info("current page changed", meta)
}

// AddPage appends a page with default settings and makes it current.
// A blank title falls back to the default page title.
func (s *Store) AddPage(title string) domain.Page {
	if strings.TrimSpace(title) == "" {
		title = s.defaultTitle
	}
	p := domain.NewPage(s.ids, title)
	s.pages = append(s.pages, p)
	s.currentPageID = p.ID
	s.diag.Info("added new page", map[string]any{"pageId": p.ID, "title": title})
	return p.Clone()
}

// UpdatePage applies a title change and settings patches to one page as a
// single undo step.
func (s *Store) UpdatePage(id string, u domain.PageUpdate) bool {
	i := domain.PageIndex(s.pages, id)
	if i < 0 {
		s.diag.Error("update of unknown page", map[string]any{"pageId": id})
		return false
	}
	if u.Empty() {
		s.diag.Debug("empty page update ignored", map[string]any{"pageId": id})
		return false
	}
	updated, err := u.Apply(s.pages[i])
	if err != nil {
		s.diag.Error("invalid page update", map[string]any{"pageId": id, "error": err.Error()})
		return false
	}
	s.pages[i] = updated
	s.unsaved = true
	s.diag.Info("updated page", map[string]any{"pageId": id, "patches": len(u.Settings)})
	s.SaveToHistory()
	return true
}

// SetSections replaces the current page's sections. It marks the state
// unsaved but does not record history; callers snapshot once they are done.
func (s *Store) SetSections(sections []domain.Section) bool {
	if sections == nil {
		s.diag.Error("invalid sections data", map[string]any{"reason": "nil sequence"})
		return false
	}
	if dups := domain.DuplicateIDs(sections); len(dups) > 0 {
		s.diag.Error("invalid sections data", map[string]any{"reason": "duplicate ids", "ids": dups})
		return false
	}
	i := s.currentIndex()
	if i < 0 {
		s.diag.Error("sections set without a current page", map[string]any{"pageId": s.currentPageID})
		return false
	}
	s.pages[i].Sections = domain.CloneSections(sections)
	s.unsaved = true
	s.refreshSelection()
	s.diag.Info("updating sections", map[string]any{"count": len(sections)})
	return true
}

// SetSectionsJSON decodes and validates raw sections JSON, then behaves like
// SetSections.
func (s *Store) SetSectionsJSON(raw []byte) bool {
	sections, err := domain.DecodeSections(raw)
	if err != nil {
		s.diag.Error("invalid sections data", map[string]any{"error": err.Error()})
		return false
	}
	return s.SetSections(sections)
}

// SetSelectedItem stores sel (nil clears it).
func (s *Store) SetSelectedItem(sel *Selection) {
	if sel == nil {
		s.selected = nil
		s.diag.Debug("selection cleared", nil)
		return
	}
	c := Selection{SectionID: sel.SectionID, Item: sel.Item.Clone()}
	s.selected = &c
	s.diag.Debug("item selected", map[string]any{"sectionId": sel.SectionID, "itemId": sel.Item.ID})
}

// SetEditMode toggles edit mode. Leaving it abandons any drag in progress.
func (s *Store) SetEditMode(on bool) {
	s.editMode = on
	if !on {
		s.drag.Cancel()
	}
	s.diag.Debug("edit mode set", map[string]any{"editMode": on})
}

func (s *Store) SetSettingsOpen(open bool) {
	s.settingsOpen = open
	s.diag.Debug("settings panel toggled", map[string]any{"open": open})
}

func (s *Store) SetSearchQuery(q string) {
	s.searchQuery = q
	s.diag.Debug("search query set", map[string]any{"query": q})
}

// UpdateItem replaces the item with updated.ID anywhere inside the section's
// subtree as one undo step. Misses are logged and change nothing.
func (s *Store) UpdateItem(sectionID string, updated domain.Item) bool {
	meta := map[string]any{"sectionId": sectionID, "itemId": updated.ID}
	if !updated.Type.Valid() {
		meta["type"] = string(updated.Type)
		s.diag.Error("item has unknown type", meta)
		return false
	}
	pi := s.currentIndex()
	if pi < 0 {
		s.diag.Error("item update without a current page", meta)
		return false
	}
	secs := s.pages[pi].Sections
	si := domain.SectionIndex(secs, sectionID)
	if si < 0 {
		s.diag.Warn("item update for unknown section", meta)
		return false
	}
	items, ok := domain.ReplaceItem(secs[si].Items, updated.Clone())
	if !ok {
		s.diag.Warn("item update for unknown item", meta)
		return false
	}
	secs[si].Items = items
	s.unsaved = true
	s.refreshSelection()
	s.diag.Info("updating item", meta)
	s.SaveToHistory()
	return true
}

// SaveToHistory snapshots all pages and clears the unsaved flag.
func (s *Store) SaveToHistory() {
	dropped := s.history.Snapshot(s.pages)
	s.unsaved = false
	meta := map[string]any{"historyIndex": s.history.Cursor(), "historyLength": s.history.Len()}
	if dropped > 0 {
		meta["dropped"] = dropped
	}
	s.diag.Info("saved to history", meta)
}

// Undo restores the previous snapshot. The restored pages equal a recorded
// snapshot, so the unsaved flag is cleared.
func (s *Store) Undo() bool {
	pages, ok := s.history.Undo()
	if !ok {
		s.diag.Debug("nothing to undo", nil)
		return false
	}
	s.restore(pages)
	s.diag.Info("undo", map[string]any{"historyIndex": s.history.Cursor()})
	return true
}

// Redo re-applies the next snapshot and clears the unsaved flag.
func (s *Store) Redo() bool {
	pages, ok := s.history.Redo()
	if !ok {
		s.diag.Debug("nothing to redo", nil)
		return false
	}
	s.restore(pages)
	s.diag.Info("redo", map[string]any{"historyIndex": s.history.Cursor()})
	return true
}

func (s *Store) restore(pages []domain.Page) {
	s.pages = pages
	s.unsaved = false
	s.drag.Cancel()
	s.refreshSelection()
}

// DiscardChanges restores the pages recorded at the history cursor, dropping
// edits made since the last snapshot. It reports whether there was anything
// to discard.
func (s *Store) DiscardChanges() bool {
	if !s.unsaved {
		return false
	}
	pages, ok := s.history.Current()
	if !ok {
		return false
	}
	s.restore(pages)
	s.diag.Info("unsaved changes discarded", map[string]any{"historyIndex": s.history.Cursor()})
	return true
}

func (s *Store) CanUndo() bool { return s.history.CanUndo() }
func (s *Store) CanRedo() bool { return s.history.CanRedo() }

// AddSection appends an empty section to the current page as one undo step.
func (s *Store) AddSection(title string) (domain.Section, bool) {
	if s.currentIndex() < 0 {
		s.diag.Error("section added without a current page", map[string]any{"title": title})
		return domain.Section{}, false
	}
	sec := domain.NewSection(s.ids, title)
	next := append(s.Sections(), sec)
	if !s.SetSections(next) {
		return domain.Section{}, false
	}
	s.SaveToHistory()
	return sec.Clone(), true
}

// AddItem appends it to a section of the current page as one undo step.
func (s *Store) AddItem(sectionID string, it domain.Item) bool {
	meta := map[string]any{"sectionId": sectionID, "itemId": it.ID}
	secs := s.Sections()
	si := domain.SectionIndex(secs, sectionID)
	if si < 0 {
		s.diag.Warn("item added to unknown section", meta)
		return false
	}
	if !it.Type.Valid() {
		s.diag.Error("item has unknown type", map[string]any{"itemId": it.ID, "type": string(it.Type)})
		return false
	}
	secs[si].Items = append(secs[si].Items, it.Clone())
	if !s.SetSections(secs) {
		return false
	}
	s.diag.Info("added item", meta)
	s.SaveToHistory()
	return true
}

// ToggleSectionCollapsed flips a section's collapsed flag as one undo step.
func (s *Store) ToggleSectionCollapsed(sectionID string) bool {
	pi := s.currentIndex()
	si := -1
	if pi >= 0 {
		si = domain.SectionIndex(s.pages[pi].Sections, sectionID)
	}
	if si < 0 {
		s.diag.Warn("collapse toggle for unknown section", map[string]any{"sectionId": sectionID})
		return false
	}
	sec := &s.pages[pi].Sections[si]
	sec.Collapsed = !sec.Collapsed
	s.unsaved = true
	s.diag.Info("section collapse toggled", map[string]any{"sectionId": sectionID, "collapsed": sec.Collapsed})
	s.SaveToHistory()
	return true
}

// ToggleItemCollapsed flips an item's collapsed flag as one undo step.
func (s *Store) ToggleItemCollapsed(sectionID, itemID string) bool {
	sec, ok := s.Section(sectionID)
	if !ok {
		s.diag.Warn("collapse toggle for unknown section", map[string]any{"sectionId": sectionID, "itemId": itemID})
		return false
	}
	it, ok := domain.FindItem(sec.Items, itemID)
	if !ok {
		s.diag.Warn("collapse toggle for unknown item", map[string]any{"sectionId": sectionID, "itemId": itemID})
		return false
	}
	it.Collapsed = !it.Collapsed
	return s.UpdateItem(sectionID, it)
}

// FilteredSections returns the current page's sections narrowed to items
// matching the search query. Sections without a match are left out unless
// the query is empty.
func (s *Store) FilteredSections() []domain.Section {
	secs := s.Sections()
	if strings.TrimSpace(s.searchQuery) == "" {
		return secs
	}
	out := make([]domain.Section, 0, len(secs))
	for _, sec := range secs {
		var kept []domain.Item
		for _, it := range sec.Items {
			if it.Matches(s.searchQuery) {
				kept = append(kept, it)
			}
		}
		if len(kept) == 0 {
			continue
		}
		sec.Items = kept
		out = append(out, sec)
	}
	return out
}

func (s *Store) currentIndex() int { return domain.PageIndex(s.pages, s.currentPageID) }

// refreshSelection re-reads the selected item from the model. An item that
// moved to another section is followed; one that is gone clears the selection.
func (s *Store) refreshSelection() {
	if s.selected == nil {
		return
	}
	secs := s.Sections()
	if si := domain.SectionIndex(secs, s.selected.SectionID); si > 0 {
		secs[0], secs[si] = secs[si], secs[0]
	}
	for _, sec := range secs {
		if it, ok := domain.FindItem(sec.Items, s.selected.Item.ID); ok {
			s.selected = &Selection{SectionID: sec.ID, Item: it}
			return
		}
	}
	s.selected = nil
}
