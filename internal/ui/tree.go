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

	"launchpad/internal/domain"
)

// RenderTree prints pages as an indented outline. The current page is
// marked with '*'; collapsed sections and items show their children count
// instead of their children.
func RenderTree(pages []domain.Page, currentPageID string, st Styles) string {
	var b strings.Builder
	for _, p := range pages {
		mark := " "
		if p.ID == currentPageID {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s %s %s\n", mark, st.Title.Render(p.Title), st.Muted.Render("("+p.ID+")"))
		for _, sec := range p.Sections {
			line := "  " + st.Section.Render(sec.Title)
			if sec.Collapsed {
				line += st.Muted.Render(fmt.Sprintf(" [+%d]", len(sec.Items)))
				b.WriteString(line + "\n")
				continue
			}
			b.WriteString(line + "\n")
			writeItems(&b, sec.Items, 2, st)
		}
	}
	return b.String()
}

func writeItems(b *strings.Builder, items []domain.Item, depth int, st Styles) {
	for _, it := range items {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(itemLine(it, st))
		b.WriteByte('\n')
		if !it.Collapsed {
			writeItems(b, it.Children, depth+1, st)
		}
	}
}

func itemLine(it domain.Item, st Styles) string {
	s := "- " + st.Item.Render(it.Title)
	if it.URL != "" {
		s += " " + st.Muted.Render("<"+it.URL+">")
	}
	if it.Type != domain.ItemBookmark && it.Type != "" {
		s += " " + st.Muted.Render("["+string(it.Type)+"]")
	}
	if it.Collapsed && len(it.Children) > 0 {
		s += st.Muted.Render(fmt.Sprintf(" [+%d]", len(it.Children)))
	}
	return s
}
