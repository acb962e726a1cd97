/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import "github.com/charmbracelet/lipgloss"

// Styles used by the TUI and the tree printer.
type Styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Section   lipgloss.Style
	Item      lipgloss.Style
	Muted     lipgloss.Style
	Cursor    lipgloss.Style
	Grabbed   lipgloss.Style
	Mode      lipgloss.Style
	Status    lipgloss.Style
	Warning   lipgloss.Style
}

func DefaultStyles() Styles {
	accent := lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}
	warm := lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	muted := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(muted),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(accent),
		Section:   lipgloss.NewStyle().Bold(true),
		Item:      lipgloss.NewStyle(),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Cursor:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		Grabbed:   lipgloss.NewStyle().Foreground(warm).Bold(true),
		Mode:      lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accent),
		Status:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		Warning:   lipgloss.NewStyle().Foreground(warm).Bold(true),
	}
}

// PlainStyles renders without any decoration; used for non-terminal output.
func PlainStyles() Styles {
	p := lipgloss.NewStyle()
	return Styles{Title: p, Tab: p, ActiveTab: p, Section: p, Item: p, Muted: p, Cursor: p, Grabbed: p, Mode: p, Status: p, Warning: p}
}
