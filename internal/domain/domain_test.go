/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"launchpad/internal/ident"
)

func TestNewPageDefaults(t *testing.T) {
	p := NewPage(&ident.Sequence{Prefix: "p"}, "Home")
	if p.ID != "p-1" || p.Title != "Home" {
		t.Fatalf("unexpected page identity: %+v", p)
	}
	if p.Sections == nil || len(p.Sections) != 0 {
		t.Fatalf("expected empty non-nil sections, got %#v", p.Sections)
	}
	s := p.Settings
	if s.Layout.EnableLeftSidebar || s.Layout.EnableRightSidebar || s.Layout.EnablePings {
		t.Fatalf("layout toggles should default off: %+v", s.Layout)
	}
	if s.Gridstack != (GridSettings{ColumnsSmall: 1, ColumnsMedium: 4, ColumnsLarge: 6}) {
		t.Fatalf("grid defaults: %+v", s.Gridstack)
	}
	if s.Metadata.PageTitle != "Home" || s.Metadata.MetaTitle != "Home" || s.Metadata.Logo != "" || s.Metadata.Favicon != "" {
		t.Fatalf("metadata defaults: %+v", s.Metadata)
	}
	a := s.Appearance
	if a.PrimaryColor != "#3B82F6" || a.SecondaryColor != "#F59E0B" || a.Shade != "#2563EB" {
		t.Fatalf("color defaults: %+v", a)
	}
	if a.AppOpacity != 1.0 || a.BackgroundAttachment != AttachmentFixed || a.BackgroundSize != SizeCover || a.BackgroundRepeat != RepeatNone {
		t.Fatalf("appearance defaults: %+v", a)
	}
	if s.Access.AllowAnonymous {
		t.Fatalf("anonymous access should default off")
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings should validate: %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := Page{
		ID: "p", Title: "P",
		Sections: []Section{{
			ID: "s", Title: "S",
			Items: []Item{{
				ID: "a", Type: ItemBookmark, Title: "A",
				Children: []Item{{ID: "b", Type: ItemFeed, Title: "B"}},
				Position: &Position{X: 1, Y: 2},
				Size:     &Size{W: 3, H: 4},
			}},
		}},
		Settings: DefaultSettings("P"),
	}
	c := p.Clone()
	if !reflect.DeepEqual(p, c) {
		t.Fatalf("clone differs from original")
	}
	c.Sections[0].Items[0].Children[0].Title = "changed"
	c.Sections[0].Items[0].Position.X = 99
	c.Sections[0].Title = "changed"
	if p.Sections[0].Items[0].Children[0].Title != "B" || p.Sections[0].Items[0].Position.X != 1 || p.Sections[0].Title != "S" {
		t.Fatalf("mutating the clone leaked into the original: %+v", p)
	}
	if ClonePages(nil) != nil || CloneSections(nil) != nil {
		t.Fatalf("nil lists must stay nil")
	}
}

func TestSettingsValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PageSettings)
	}{
		{"columns low", func(s *PageSettings) { s.Gridstack.ColumnsSmall = 0 }},
		{"columns high", func(s *PageSettings) { s.Gridstack.ColumnsLarge = 13 }},
		{"opacity", func(s *PageSettings) { s.Appearance.AppOpacity = 1.5 }},
		{"attachment", func(s *PageSettings) { s.Appearance.BackgroundAttachment = "local" }},
		{"size", func(s *PageSettings) { s.Appearance.BackgroundSize = "auto" }},
		{"repeat", func(s *PageSettings) { s.Appearance.BackgroundRepeat = "repeat-x" }},
		{"color", func(s *PageSettings) { s.Appearance.Shade = "blue" }},
	}
	for _, tc := range cases {
		s := DefaultSettings("x")
		tc.mutate(&s)
		if err := s.Validate(); !errors.Is(err, ErrInvalidSettings) {
			t.Fatalf("%s: expected ErrInvalidSettings, got %v", tc.name, err)
		}
	}
}

func TestApplySettingsPatches(t *testing.T) {
	base := DefaultSettings("Home")
	got, err := ApplySettings(base,
		LayoutPatch{EnableLeftSidebar: Ptr(true)},
		GridPatch{ColumnsLarge: Ptr(8)},
		MetadataPatch{Logo: Ptr("logo.png")},
		AppearancePatch{AppOpacity: Ptr(0.5), BackgroundRepeat: Ptr(Repeat)},
		AccessPatch{AllowAnonymous: Ptr(true)},
	)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !got.Layout.EnableLeftSidebar || got.Layout.EnableRightSidebar {
		t.Fatalf("layout patch: %+v", got.Layout)
	}
	if got.Gridstack.ColumnsLarge != 8 || got.Gridstack.ColumnsMedium != 4 {
		t.Fatalf("grid patch: %+v", got.Gridstack)
	}
	if got.Metadata.Logo != "logo.png" || got.Metadata.PageTitle != "Home" {
		t.Fatalf("metadata patch: %+v", got.Metadata)
	}
	if got.Appearance.AppOpacity != 0.5 || got.Appearance.BackgroundRepeat != Repeat || got.Appearance.PrimaryColor != "#3B82F6" {
		t.Fatalf("appearance patch: %+v", got.Appearance)
	}
	if !got.Access.AllowAnonymous {
		t.Fatalf("access patch not applied")
	}
	if base.Layout.EnableLeftSidebar {
		t.Fatalf("base settings were mutated")
	}
}

func TestApplySettingsRejectsInvalid(t *testing.T) {
	base := DefaultSettings("Home")
	got, err := ApplySettings(base, GridPatch{ColumnsSmall: Ptr(0)}, LayoutPatch{EnablePings: Ptr(true)})
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
	if got != base {
		t.Fatalf("settings should be unchanged on error")
	}
}

func TestPageUpdateApply(t *testing.T) {
	p := NewPage(&ident.Sequence{}, "Home")
	out, err := PageUpdate{Title: Ptr("  Work  ")}.Apply(p)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if out.Title != "Work" || p.Title != "Home" {
		t.Fatalf("title update: got %q, original %q", out.Title, p.Title)
	}
	if _, err := (PageUpdate{Title: Ptr(" ")}).Apply(p); err == nil {
		t.Fatalf("expected error for blank title")
	}
	if !(PageUpdate{}).Empty() {
		t.Fatalf("zero update should be empty")
	}
}

func TestTreeHelpers(t *testing.T) {
	items := []Item{
		{ID: "a", Title: "Alpha"},
		{ID: "b", Title: "Beta", Children: []Item{{ID: "c", Title: "Gamma", URL: "https://go.dev"}}},
	}
	if it, ok := FindItem(items, "c"); !ok || it.Title != "Gamma" {
		t.Fatalf("FindItem nested: %+v %v", it, ok)
	}
	if _, ok := FindItem(items, "zzz"); ok {
		t.Fatalf("FindItem should miss")
	}
	out, ok := ReplaceItem(items, Item{ID: "c", Title: "Delta"})
	if !ok || out[1].Children[0].Title != "Delta" {
		t.Fatalf("ReplaceItem nested: %+v", out)
	}
	if items[1].Children[0].Title != "Gamma" {
		t.Fatalf("ReplaceItem must not mutate its input")
	}
	s := Section{ID: "s", Items: items}
	if s.IndexOf("b") != 1 || s.IndexOf("c") != -1 {
		t.Fatalf("IndexOf should only see top-level items")
	}
	if !s.ContainsItem("c") {
		t.Fatalf("ContainsItem should see nested items")
	}
	if !items[1].Matches("GO.DEV") || items[0].Matches("go.dev") || !items[0].Matches("") {
		t.Fatalf("Matches mismatch")
	}
}

func TestDuplicateIDs(t *testing.T) {
	secs := []Section{
		{ID: "s1", Items: []Item{{ID: "a"}, {ID: "b", Children: []Item{{ID: "a"}}}}},
		{ID: "s1", Items: []Item{{ID: "a"}}},
	}
	got := DuplicateIDs(secs)
	if !reflect.DeepEqual(got, []string{"a", "s1"}) {
		t.Fatalf("DuplicateIDs = %v", got)
	}
}

func TestDecodeSections(t *testing.T) {
	raw := []byte(`[{"id":"s1","title":"S1","items":[{"id":"i1","type":"bookmark","title":"I1","url":"https://example.com","children":[{"id":"i2","type":"feed","title":"I2"}]}]}]`)
	secs, err := DecodeSections(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(secs) != 1 || len(secs[0].Items) != 1 || secs[0].Items[0].Children[0].ID != "i2" {
		t.Fatalf("unexpected decode result: %+v", secs)
	}

	round, err := json.Marshal(secs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again, err := DecodeSections(round)
	if err != nil || !reflect.DeepEqual(secs, again) {
		t.Fatalf("re-decode mismatch: %v", err)
	}
}

func TestDecodeSectionsRejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		``,
		`{"id":"s1"}`,
		`"sections"`,
		`[{"id":"s1","title":"S1"}]`,
		`[{"id":"s1","title":"S1","items":[{"id":"i1","type":"weather","title":"x"}]}]`,
		`[{"id":"","title":"S1","items":[]}]`,
		`[{`,
	} {
		if _, err := DecodeSections([]byte(raw)); !errors.Is(err, ErrMalformedSections) {
			t.Fatalf("%q: expected ErrMalformedSections, got %v", raw, err)
		}
	}
}

func TestItemTypeValid(t *testing.T) {
	for _, typ := range ItemTypes {
		if !typ.Valid() {
			t.Fatalf("%q should be valid", typ)
		}
	}
	if ItemType("weather").Valid() {
		t.Fatalf("unknown type should be invalid")
	}
}
