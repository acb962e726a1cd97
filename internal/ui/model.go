/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ui is the terminal front end of launchpad: a bubbletea model that
// renders the current page and turns key presses into Store operations.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"launchpad/internal/domain"
	"launchpad/internal/reorder"
	"launchpad/internal/store"
)

type rowKind int

const (
	rowSection rowKind = iota
	rowItem
	rowChild
)

// row is one selectable line of the page view.
type row struct {
	kind      rowKind
	sectionID string
	item      domain.Item
	title     string
	depth     int
	collapsed bool
	count     int
}

// dragID is the draggable id the row stands for; nested children cannot be
// dragged.
func (r row) dragID() string {
	switch r.kind {
	case rowSection:
		return reorder.SectionDragID(r.sectionID)
	case rowItem:
		return r.item.ID
	}
	return ""
}

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeConfirm
)

// Model is the bubbletea model over a Store.
type Model struct {
	store  *store.Store
	gate   *store.NavigationGate
	keys   KeyMap
	styles Styles
	help   help.Model
	search textinput.Model

	mode   mode
	rows   []row
	cursor int
	status string

	width  int
	height int
}

// Params configures New.
type Params struct {
	Store  *store.Store
	Keys   *KeyMap // optional
	Styles *Styles // optional
}

func New(p Params) Model {
	keys := DefaultKeyMap()
	if p.Keys != nil {
		keys = *p.Keys
	}
	styles := DefaultStyles()
	if p.Styles != nil {
		styles = *p.Styles
	}
	ti := textinput.New()
	ti.Placeholder = "filter items"
	ti.Prompt = "/ "
	ti.CharLimit = 120

	m := Model{
		store:  p.Store,
		gate:   store.NewNavigationGate(p.Store),
		keys:   keys,
		styles: styles,
		help:   help.New(),
		search: ti,
		width:  80,
		height: 24,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Cursor returns the index of the highlighted row.
func (m Model) Cursor() int { return m.cursor }

// Status returns the last status line message.
func (m Model) Status() string { return m.status }

// Rows returns how many rows are visible.
func (m Model) Rows() int { return len(m.rows) }

// refresh rebuilds rows from the store and clamps the cursor.
func (m *Model) refresh() {
	m.rows = make([]row, 0, len(m.rows))
	for _, sec := range m.store.FilteredSections() {
		m.rows = append(m.rows, row{kind: rowSection, sectionID: sec.ID, title: sec.Title, collapsed: sec.Collapsed, count: len(sec.Items)})
		if sec.Collapsed {
			continue
		}
		for _, it := range sec.Items {
			m.rows = append(m.rows, row{kind: rowItem, sectionID: sec.ID, item: it, title: it.Title, depth: 1, collapsed: it.Collapsed, count: len(it.Children)})
			if !it.Collapsed {
				m.appendChildren(sec.ID, it.Children, 2)
			}
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) appendChildren(sectionID string, items []domain.Item, depth int) {
	for _, it := range items {
		m.rows = append(m.rows, row{kind: rowChild, sectionID: sectionID, item: it, title: it.Title, depth: depth, collapsed: it.Collapsed, count: len(it.Children)})
		if !it.Collapsed {
			m.appendChildren(sectionID, it.Children, depth+1)
		}
	}
}

func (m Model) current() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirm:
			return m.updateConfirm(msg), nil
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.store.SetSearchQuery("")
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.store.SetSearchQuery(m.search.Value())
	m.refresh()
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.gate.Confirm()
		m.status = "switched page; unsaved edits discarded"
		m.mode = modeBrowse
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, m.keys.Deny), key.Matches(msg, m.keys.Cancel):
		m.gate.Cancel()
		m.status = "stayed on page"
		m.mode = modeBrowse
	}
	return m
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, k.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, k.Edit):
		m.store.SetEditMode(!m.store.EditMode())
		m.status = "view mode"
		if m.store.EditMode() {
			m.status = "edit mode"
		}
	case key.Matches(msg, k.Grab):
		m.grabOrDrop()
	case key.Matches(msg, k.Cancel):
		if _, dragging := m.store.Dragging(); dragging {
			m.store.DragCancel()
			m.status = "drag cancelled"
		}
	case key.Matches(msg, k.Undo):
		m.status = "nothing to undo"
		if m.store.Undo() {
			m.status = "undone"
		}
	case key.Matches(msg, k.Redo):
		m.status = "nothing to redo"
		if m.store.Redo() {
			m.status = "redone"
		}
	case key.Matches(msg, k.Save):
		m.store.SaveToHistory()
		m.status = "snapshot saved"
	case key.Matches(msg, k.Add):
		if sec, ok := m.store.AddSection(fmt.Sprintf("Section %d", len(m.store.Sections())+1)); ok {
			m.status = "added " + sec.Title
		}
	case key.Matches(msg, k.Toggle):
		m.toggle()
	case key.Matches(msg, k.NextPage):
		m.nextPage()
	case key.Matches(msg, k.Search):
		m.mode = modeSearch
		m.search.SetValue(m.store.SearchQuery())
		return m, m.search.Focus()
	}
	m.refresh()
	return m, nil
}

func (m *Model) grabOrDrop() {
	r, ok := m.current()
	if active, dragging := m.store.Dragging(); dragging {
		over := ""
		if ok {
			over = r.dragID()
		}
		switch m.store.DragEnd(over) {
		case reorder.Committed:
			m.status = "moved"
			m.follow(active)
		default:
			m.status = "drop cancelled"
		}
		return
	}
	if !m.store.EditMode() {
		m.status = "press e to enter edit mode before dragging"
		return
	}
	if !ok || r.dragID() == "" || !m.store.DragStart(r.dragID()) {
		m.status = "cannot grab this row"
		return
	}
	m.status = "grabbed " + r.title + "; move and press space to drop"
}

// follow puts the cursor on the row for a draggable id after a move.
func (m *Model) follow(dragID string) {
	m.refresh()
	for i, r := range m.rows {
		if r.dragID() == dragID {
			m.cursor = i
			return
		}
	}
}

func (m *Model) toggle() {
	r, ok := m.current()
	if !ok {
		return
	}
	switch r.kind {
	case rowSection:
		m.store.ToggleSectionCollapsed(r.sectionID)
	default:
		if r.count == 0 {
			m.status = "nothing to collapse"
			return
		}
		m.store.ToggleItemCollapsed(r.sectionID, r.item.ID)
	}
}

func (m *Model) nextPage() {
	pages := m.store.Pages()
	if len(pages) < 2 {
		m.status = "only one page"
		return
	}
	next := 0
	if i := domain.PageIndex(pages, m.store.CurrentPageID()); i >= 0 {
		next = (i + 1) % len(pages)
	}
	if m.gate.Request(pages[next].ID) {
		m.cursor = 0
		m.status = "page " + pages[next].Title
		return
	}
	m.mode = modeConfirm
	m.status = "unsaved changes: leave page? (y/n)"
}
