/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package reorder

import (
	"fmt"

	"launchpad/internal/domain"
)

// Move is the outcome of resolving a drop: SectionMove, ItemMove or NoOp.
type Move interface {
	fmt.Stringer
	isMove()
}

// SectionMove reorders sections within the page.
type SectionMove struct {
	From, To int
}

// ItemMove moves a top-level item within a section or into another one.
// From indexes the source section's items, To the target section's items.
type ItemMove struct {
	SourceSectionID string
	TargetSectionID string
	From, To        int
}

// Reason explains why a drop resolved to nothing.
type Reason string

const (
	ReasonNoTarget        Reason = "no-target"
	ReasonSameTarget      Reason = "same-target"
	ReasonSectionNotFound Reason = "section-not-found"
	ReasonNotDragging     Reason = "not-dragging"
)

// NoOp leaves the hierarchy unchanged.
type NoOp struct {
	Reason   Reason
	ActiveID string
	OverID   string
}

func (SectionMove) isMove() {}
func (ItemMove) isMove()    {}
func (NoOp) isMove()        {}

func (m SectionMove) String() string { return fmt.Sprintf("section %d->%d", m.From, m.To) }

func (m ItemMove) String() string {
	return fmt.Sprintf("item %s[%d]->%s[%d]", m.SourceSectionID, m.From, m.TargetSectionID, m.To)
}

func (m NoOp) String() string { return "noop(" + string(m.Reason) + ")" }

// Miss reports whether the drop referenced an id that is not in the
// hierarchy. Misses are worth a warning; other no-ops are routine.
func (m NoOp) Miss() bool { return m.Reason == ReasonSectionNotFound }

// ResolveDragTarget classifies a drop of activeID onto overID. Section
// draggables carry SectionPrefix; anything else is a raw item id. Items are
// located by a linear scan over each section's top-level items.
//
// An item dropped on a section draggable goes to the end of that section,
// which is how an item lands in an empty section.
func ResolveDragTarget(activeID, overID string, sections []domain.Section) Move {
	if overID == "" {
		return NoOp{Reason: ReasonNoTarget, ActiveID: activeID}
	}
	if activeID == overID {
		return NoOp{Reason: ReasonSameTarget, ActiveID: activeID, OverID: overID}
	}
	if sid, ok := ParseSectionDragID(activeID); ok {
		return resolveSection(sid, activeID, overID, sections)
	}
	return resolveItem(activeID, overID, sections)
}

func resolveSection(sid, activeID, overID string, sections []domain.Section) Move {
	from := domain.SectionIndex(sections, sid)
	var to int
	if overSid, ok := ParseSectionDragID(overID); ok {
		to = domain.SectionIndex(sections, overSid)
	} else {
		to = sectionOfItem(sections, overID)
	}
	if from < 0 || to < 0 {
		return NoOp{Reason: ReasonSectionNotFound, ActiveID: activeID, OverID: overID}
	}
	if from == to {
		return NoOp{Reason: ReasonSameTarget, ActiveID: activeID, OverID: overID}
	}
	return SectionMove{From: from, To: to}
}

func resolveItem(activeID, overID string, sections []domain.Section) Move {
	src := sectionOfItem(sections, activeID)
	var dst, to int
	if overSid, ok := ParseSectionDragID(overID); ok {
		dst = domain.SectionIndex(sections, overSid)
		if dst >= 0 {
			to = len(sections[dst].Items)
			if dst == src {
				to--
			}
		}
	} else {
		dst = sectionOfItem(sections, overID)
		if dst >= 0 {
			to = sections[dst].IndexOf(overID)
		}
	}
	if src < 0 || dst < 0 {
		return NoOp{Reason: ReasonSectionNotFound, ActiveID: activeID, OverID: overID}
	}
	from := sections[src].IndexOf(activeID)
	if src == dst && from == to {
		return NoOp{Reason: ReasonSameTarget, ActiveID: activeID, OverID: overID}
	}
	return ItemMove{
		SourceSectionID: sections[src].ID,
		TargetSectionID: sections[dst].ID,
		From:            from,
		To:              to,
	}
}

// sectionOfItem returns the index of the section whose top-level items contain id, or -1.
func sectionOfItem(sections []domain.Section, id string) int {
	for i := range sections {
		if sections[i].IndexOf(id) >= 0 {
			return i
		}
	}
	return -1
}

// Apply returns a deep copy of sections with m performed. Moves whose
// indices no longer fit the sections leave the copy unchanged.
func Apply(sections []domain.Section, m Move) []domain.Section {
	out := domain.CloneSections(sections)
	switch mv := m.(type) {
	case SectionMove:
		return MoveWithinSequence(out, mv.From, mv.To)
	case ItemMove:
		si := domain.SectionIndex(out, mv.SourceSectionID)
		ti := domain.SectionIndex(out, mv.TargetSectionID)
		if si < 0 || ti < 0 {
			return out
		}
		if si == ti {
			out[si].Items = MoveWithinSequence(out[si].Items, mv.From, mv.To)
			return out
		}
		src := out[si].Items
		if mv.From < 0 || mv.From >= len(src) {
			return out
		}
		moved := src[mv.From]
		out[si].Items = append(append([]domain.Item{}, src[:mv.From]...), src[mv.From+1:]...)
		dst := out[ti].Items
		to := mv.To
		if to < 0 {
			to = 0
		}
		if to > len(dst) {
			to = len(dst)
		}
		next := make([]domain.Item, 0, len(dst)+1)
		next = append(next, dst[:to]...)
		next = append(next, moved)
		next = append(next, dst[to:]...)
		out[ti].Items = next
	}
	return out
}
