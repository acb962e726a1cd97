/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Clone returns a deep copy of the item including its children.
func (it Item) Clone() Item {
	out := it
	if it.Children != nil {
		out.Children = make([]Item, len(it.Children))
		for i := range it.Children {
			out.Children[i] = it.Children[i].Clone()
		}
	}
	if it.Position != nil {
		p := *it.Position
		out.Position = &p
	}
	if it.Size != nil {
		s := *it.Size
		out.Size = &s
	}
	return out
}

// Clone returns a deep copy of the section and its items.
func (s Section) Clone() Section {
	out := s
	out.Items = cloneItems(s.Items)
	return out
}

// Clone returns a deep copy of the page. Settings hold only value fields.
func (p Page) Clone() Page {
	out := p
	out.Sections = CloneSections(p.Sections)
	return out
}

// ClonePages deep-copies a page list, preserving nil.
func ClonePages(pages []Page) []Page {
	if pages == nil {
		return nil
	}
	out := make([]Page, len(pages))
	for i := range pages {
		out[i] = pages[i].Clone()
	}
	return out
}

// CloneSections deep-copies a section list, preserving nil.
func CloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	out := make([]Section, len(sections))
	for i := range sections {
		out[i] = sections[i].Clone()
	}
	return out
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}
