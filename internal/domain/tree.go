/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "strings"

// FindItem looks up id anywhere in the item tree.
func FindItem(items []Item, id string) (Item, bool) {
	for i := range items {
		if items[i].ID == id {
			return items[i], true
		}
		if it, ok := FindItem(items[i].Children, id); ok {
			return it, true
		}
	}
	return Item{}, false
}

// ReplaceItem returns a copy of items where the item with updated.ID is
// replaced, searching nested children too. Only the path to the replaced
// item is copied; untouched siblings are shared.
func ReplaceItem(items []Item, updated Item) ([]Item, bool) {
	for i := range items {
		if items[i].ID == updated.ID {
			out := append([]Item(nil), items...)
			out[i] = updated
			return out, true
		}
		if kids, ok := ReplaceItem(items[i].Children, updated); ok {
			out := append([]Item(nil), items...)
			out[i].Children = kids
			return out, true
		}
	}
	return items, false
}

// IndexOf returns the top-level position of item id, or -1.
func (s Section) IndexOf(id string) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// ContainsItem reports whether id appears anywhere in the section's subtree.
func (s Section) ContainsItem(id string) bool {
	_, ok := FindItem(s.Items, id)
	return ok
}

// SectionIndex returns the position of the section with id, or -1.
func SectionIndex(sections []Section, id string) int {
	for i := range sections {
		if sections[i].ID == id {
			return i
		}
	}
	return -1
}

// PageIndex returns the position of the page with id, or -1.
func PageIndex(pages []Page, id string) int {
	for i := range pages {
		if pages[i].ID == id {
			return i
		}
	}
	return -1
}

// Matches reports whether the item or any descendant contains query in its
// title or url, case-insensitively. An empty query matches everything.
func (it Item) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return it.matches(q)
}

func (it Item) matches(q string) bool {
	if strings.Contains(strings.ToLower(it.Title), q) || strings.Contains(strings.ToLower(it.URL), q) {
		return true
	}
	for _, c := range it.Children {
		if c.matches(q) {
			return true
		}
	}
	return false
}

// DuplicateIDs returns ids that occur more than once among the sections and
// within each section's item subtree.
func DuplicateIDs(sections []Section) []string {
	var dups []string
	seenSections := map[string]bool{}
	for _, s := range sections {
		if seenSections[s.ID] {
			dups = append(dups, s.ID)
		}
		seenSections[s.ID] = true
		seenItems := map[string]bool{}
		walkItems(s.Items, func(it Item) {
			if seenItems[it.ID] {
				dups = append(dups, it.ID)
			}
			seenItems[it.ID] = true
		})
	}
	return dups
}

func walkItems(items []Item, fn func(Item)) {
	for _, it := range items {
		fn(it)
		walkItems(it.Children, fn)
	}
}
