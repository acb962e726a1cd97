/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.tabs())
	b.WriteString("\n")
	b.WriteString(m.modeLine())
	b.WriteString("\n\n")

	grabbed, _ := m.store.Dragging()
	if len(m.rows) == 0 {
		b.WriteString(m.styles.Muted.Render("  (no sections; press e then a to add one)"))
		b.WriteString("\n")
	}
	for i, r := range m.rows {
		prefix := "  "
		if i == m.cursor {
			prefix = m.styles.Cursor.Render("> ")
		}
		b.WriteString(prefix)
		b.WriteString(strings.Repeat("  ", r.depth))
		b.WriteString(m.renderRow(r, grabbed != "" && r.dragID() == grabbed))
		b.WriteString("\n")
	}

	if m.mode == modeSearch {
		b.WriteString("\n" + m.search.View() + "\n")
	}
	if m.status != "" {
		st := m.styles.Status
		if m.mode == modeConfirm {
			st = m.styles.Warning
		}
		b.WriteString("\n" + st.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) tabs() string {
	cur := m.store.CurrentPageID()
	var tabs []string
	for _, p := range m.store.Pages() {
		if p.ID == cur {
			tabs = append(tabs, m.styles.ActiveTab.Render(p.Title))
			continue
		}
		tabs = append(tabs, m.styles.Tab.Render(p.Title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) modeLine() string {
	label := "VIEW"
	if m.store.EditMode() {
		label = "EDIT"
	}
	parts := []string{m.styles.Mode.Render(label)}
	if m.store.HasUnsavedChanges() {
		parts = append(parts, m.styles.Warning.Render("● unsaved"))
	}
	if q := m.store.SearchQuery(); q != "" {
		parts = append(parts, m.styles.Muted.Render("filter: "+q))
	}
	parts = append(parts, m.styles.Muted.Render(fmt.Sprintf("history %d/%d (max %d)", m.store.HistoryIndex()+1, len(m.store.History()), m.store.HistoryCap())))
	return strings.Join(parts, " ")
}

func (m Model) renderRow(r row, grabbed bool) string {
	var s string
	switch r.kind {
	case rowSection:
		marker := "▾"
		if r.collapsed {
			marker = "▸"
		}
		s = m.styles.Section.Render(marker + " " + r.title)
		if r.collapsed {
			s += m.styles.Muted.Render(fmt.Sprintf(" [+%d]", r.count))
		}
	default:
		s = itemLine(r.item, m.styles)
	}
	if grabbed {
		s = m.styles.Grabbed.Render("⇕ ") + s
	}
	return s
}
