/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the launchpad TUI bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	Grab     key.Binding
	Cancel   key.Binding
	Undo     key.Binding
	Redo     key.Binding
	Save     key.Binding
	Add      key.Binding
	Toggle   key.Binding
	NextPage key.Binding
	Search   key.Binding
	Confirm  key.Binding
	Deny     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit mode")),
		Grab:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "grab/drop")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "redo")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "snapshot")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add section")),
		Toggle:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "collapse")),
		NextPage: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Confirm:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "leave page")),
		Deny:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "stay")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Grab, k.Undo, k.Redo, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.NextPage},
		{k.Edit, k.Grab, k.Cancel, k.Add},
		{k.Undo, k.Redo, k.Save, k.Search},
		{k.Help, k.Quit},
	}
}
