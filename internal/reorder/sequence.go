/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package reorder implements drag-and-drop reordering of sections within a
// page and of items within or across sections. Everything here is pure: the
// functions take the current sections and return new ones.
package reorder

import "strings"

// SectionPrefix marks a draggable id as referring to a section rather than an item.
const SectionPrefix = "section-"

// SectionDragID returns the draggable id for a section.
func SectionDragID(sectionID string) string { return SectionPrefix + sectionID }

// ParseSectionDragID returns the section id if id is a section draggable.
func ParseSectionDragID(id string) (string, bool) {
	if !strings.HasPrefix(id, SectionPrefix) {
		return "", false
	}
	return strings.TrimPrefix(id, SectionPrefix), true
}

// MoveWithinSequence removes the element at from and reinserts it at to,
// shifting the elements in between by one. The input is returned as is when
// from == to or either index is out of range; otherwise a new slice is
// returned and seq is left untouched.
func MoveWithinSequence[T any](seq []T, from, to int) []T {
	n := len(seq)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return seq
	}
	out := make([]T, 0, n)
	moved := seq[from]
	for i := 0; i < n; i++ {
		if i == from {
			continue
		}
		if i == to && to < from {
			out = append(out, moved)
		}
		out = append(out, seq[i])
		if i == to && to > from {
			out = append(out, moved)
		}
	}
	return out
}
