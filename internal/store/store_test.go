/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

import (
	"reflect"
	"testing"

	"launchpad/internal/diag"
	"launchpad/internal/domain"
	"launchpad/internal/history"
	"launchpad/internal/ident"
	"launchpad/internal/reorder"
)

func newTestStore(t *testing.T) (*Store, *diag.RingSink) {
	t.Helper()
	ring := diag.NewRingSink(0)
	s := New(Options{IDs: &ident.Sequence{Prefix: "id"}, Diagnostics: ring})
	return s, ring
}

func itemTitles(sec domain.Section) []string {
	out := make([]string, 0, len(sec.Items))
	for _, it := range sec.Items {
		out = append(out, it.Title)
	}
	return out
}

// seedSection adds a section with items titled as given and returns it.
func seedSection(t *testing.T, s *Store, title string, items ...string) domain.Section {
	t.Helper()
	sec, ok := s.AddSection(title)
	if !ok {
		t.Fatalf("add section %q failed", title)
	}
	for _, it := range items {
		if !s.AddItem(sec.ID, domain.NewItem(s.ids, domain.ItemBookmark, it, "https://"+it+".example")) {
			t.Fatalf("add item %q failed", it)
		}
	}
	got, _ := s.Section(sec.ID)
	return got
}

func TestNewStoreGetsHomePage(t *testing.T) {
	s, _ := newTestStore(t)
	pages := s.Pages()
	if len(pages) != 1 || pages[0].Title != "Home" {
		t.Fatalf("expected one Home page, got %+v", pages)
	}
	if s.CurrentPageID() != pages[0].ID {
		t.Fatalf("Home should be current")
	}
	st := pages[0].Settings
	if st.Gridstack != (domain.GridSettings{ColumnsSmall: 1, ColumnsMedium: 4, ColumnsLarge: 6}) {
		t.Fatalf("unexpected grid defaults: %+v", st.Gridstack)
	}
	if st.Appearance.AppOpacity != 1.0 || st.Access.AllowAnonymous {
		t.Fatalf("unexpected defaults: %+v", st)
	}
	if s.History()[0].Pages == nil || s.HistoryIndex() != 0 || s.CanUndo() {
		t.Fatalf("expected a single baseline entry")
	}
	if s.HasUnsavedChanges() {
		t.Fatalf("fresh store must not be unsaved")
	}
}

func TestSeededPagesAreKept(t *testing.T) {
	ids := &ident.Sequence{Prefix: "p"}
	seed := []domain.Page{domain.NewPage(ids, "Work"), domain.NewPage(ids, "Play")}
	s := New(Options{IDs: ids, Diagnostics: diag.Discard, Pages: seed})
	if len(s.Pages()) != 2 || s.CurrentPageID() != seed[0].ID {
		t.Fatalf("seeded pages not used: %+v", s.Pages())
	}
}

func TestSeededPageWithoutSettingsGetsDefaults(t *testing.T) {
	ring := diag.NewRingSink(0)
	s := New(Options{
		IDs:         &ident.Sequence{Prefix: "id"},
		Diagnostics: ring,
		Pages:       []domain.Page{{ID: "p1", Title: "Seed"}},
	})
	p, ok := s.CurrentPage()
	if !ok || p.ID != "p1" {
		t.Fatalf("seeded page should be current, got %+v", p)
	}
	if p.Settings != domain.DefaultSettings("Seed") {
		t.Fatalf("expected default settings, got %+v", p.Settings)
	}
	if s.History()[0].Pages[0].Settings != domain.DefaultSettings("Seed") {
		t.Fatalf("baseline should hold the filled settings")
	}
	warned := false
	for _, ev := range ring.Events() {
		if ev.Level == diag.LevelWarn && ev.Metadata["pageId"] == "p1" {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("expected a warning for the replaced settings")
	}
	if !s.UpdatePage("p1", domain.PageUpdate{Title: domain.Ptr("Renamed")}) {
		t.Fatalf("title update on a seeded page should succeed")
	}
}

func TestSeededPageWithoutIDGetsOne(t *testing.T) {
	ids := &ident.Sequence{Prefix: "id"}
	seed := domain.NewPage(ids, "Work")
	seed.ID = ""
	s := New(Options{IDs: ids, Diagnostics: diag.Discard, Pages: []domain.Page{seed}})
	if s.CurrentPageID() == "" || s.Pages()[0].ID != s.CurrentPageID() {
		t.Fatalf("seeded page should get an id, got %+v", s.Pages())
	}
}

func TestDropOnSelfIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	sec := seedSection(t, s, "S1", "I1")
	before := s.Sections()
	entries := s.History()

	s.SetEditMode(true)
	if !s.DragStart(sec.Items[0].ID) {
		t.Fatalf("drag should start in edit mode")
	}
	if out := s.DragEnd(sec.Items[0].ID); out != reorder.Cancelled {
		t.Fatalf("drop on self should cancel, got %v", out)
	}
	if !reflect.DeepEqual(before, s.Sections()) {
		t.Fatalf("sections changed")
	}
	if len(s.History()) != len(entries) {
		t.Fatalf("no history entry expected")
	}
}

func TestSameSectionMove(t *testing.T) {
	s, _ := newTestStore(t)
	sec := seedSection(t, s, "A", "I1", "I2", "I3")
	n := len(s.History())

	s.SetEditMode(true)
	s.DragStart(sec.Items[0].ID)
	if out := s.DragEnd(sec.Items[2].ID); out != reorder.Committed {
		t.Fatalf("expected commit, got %v", out)
	}
	got, _ := s.Section(sec.ID)
	if want := []string{"I2", "I3", "I1"}; !reflect.DeepEqual(itemTitles(got), want) {
		t.Fatalf("order = %v, want %v", itemTitles(got), want)
	}
	if len(s.History()) != n+1 {
		t.Fatalf("expected exactly one new history entry, got %d", len(s.History())-n)
	}
	if s.HasUnsavedChanges() {
		t.Fatalf("commit should leave no unsaved changes")
	}
	if _, dragging := s.Dragging(); dragging {
		t.Fatalf("drag should be over")
	}
}

func TestCrossSectionMove(t *testing.T) {
	s, _ := newTestStore(t)
	a := seedSection(t, s, "A", "I1", "I2")
	b := seedSection(t, s, "B", "I3")

	s.SetEditMode(true)
	s.DragStart(a.Items[0].ID)
	if out := s.DragEnd(b.Items[0].ID); out != reorder.Committed {
		t.Fatalf("expected commit, got %v", out)
	}
	gotA, _ := s.Section(a.ID)
	gotB, _ := s.Section(b.ID)
	if !reflect.DeepEqual(itemTitles(gotA), []string{"I2"}) || !reflect.DeepEqual(itemTitles(gotB), []string{"I1", "I3"}) {
		t.Fatalf("A=%v B=%v", itemTitles(gotA), itemTitles(gotB))
	}
}

func TestHistoryIsBounded(t *testing.T) {
	s, _ := newTestStore(t)
	home := s.CurrentPageID()
	for i := 0; i < history.MaxHistory+1; i++ {
		if !s.UpdatePage(home, domain.PageUpdate{Settings: []domain.SettingsPatch{
			domain.MetadataPatch{Logo: domain.Ptr(string(rune('a' + i%26)))},
		}}) {
			t.Fatalf("edit %d failed", i)
		}
	}
	if len(s.History()) != history.MaxHistory {
		t.Fatalf("history length = %d", len(s.History()))
	}
	oldest := s.History()[0].Pages
	for i := 0; i < history.MaxHistory; i++ {
		s.Undo()
	}
	if !reflect.DeepEqual(s.Pages(), oldest) {
		t.Fatalf("undo should stop at the oldest retained entry")
	}
	cur, _ := s.CurrentPage()
	if cur.Settings.Metadata.Logo == "" {
		t.Fatalf("the initial empty state should have been evicted")
	}
}

func TestUndoRedoInverse(t *testing.T) {
	s, _ := newTestStore(t)
	sec := seedSection(t, s, "A", "I1", "I2")
	s.SetEditMode(true)
	s.DragStart(sec.Items[1].ID)
	s.DragEnd(sec.Items[0].ID)
	after := s.Pages()

	n := 0
	for s.Undo() {
		n++
	}
	if n == 0 || s.CanUndo() {
		t.Fatalf("expected to undo back to the baseline")
	}
	if secs := s.Sections(); len(secs) != 0 {
		t.Fatalf("baseline should have no sections, got %d", len(secs))
	}
	for i := 0; i < n; i++ {
		if !s.Redo() {
			t.Fatalf("redo %d failed", i)
		}
	}
	if !reflect.DeepEqual(after, s.Pages()) {
		t.Fatalf("undo/redo did not restore state")
	}
	if s.Redo() {
		t.Fatalf("nothing left to redo")
	}
}

func TestRedoTruncatedByNewEdit(t *testing.T) {
	s, _ := newTestStore(t)
	seedSection(t, s, "A")
	seedSection(t, s, "B")
	s.Undo()
	if !s.CanRedo() {
		t.Fatalf("redo should be available after undo")
	}
	seedSection(t, s, "C")
	if s.CanRedo() {
		t.Fatalf("new edit must discard the redo branch")
	}
	if s.HistoryIndex() != len(s.History())-1 {
		t.Fatalf("cursor should be at the last entry")
	}
	titles := []string{}
	for _, sec := range s.Sections() {
		titles = append(titles, sec.Title)
	}
	if !reflect.DeepEqual(titles, []string{"A", "C"}) {
		t.Fatalf("sections = %v", titles)
	}
}

func TestSetSectionsValidation(t *testing.T) {
	s, ring := newTestStore(t)
	sec := seedSection(t, s, "A", "I1")
	before := s.Sections()
	ring.Clear()

	if s.SetSections(nil) {
		t.Fatalf("nil sections must be rejected")
	}
	dup := []domain.Section{sec, sec}
	if s.SetSections(dup) {
		t.Fatalf("duplicate section ids must be rejected")
	}
	if !reflect.DeepEqual(before, s.Sections()) || s.HasUnsavedChanges() {
		t.Fatalf("rejected input must not change state")
	}
	errs := 0
	for _, ev := range ring.Events() {
		if ev.Level == diag.LevelError {
			errs++
		}
	}
	if errs != 2 {
		t.Fatalf("expected 2 error events, got %d", errs)
	}

	n := len(s.History())
	if !s.SetSections([]domain.Section{}) {
		t.Fatalf("empty sequence is valid")
	}
	if !s.HasUnsavedChanges() || len(s.History()) != n {
		t.Fatalf("SetSections marks unsaved without snapshotting")
	}
}

func TestSetSectionsJSON(t *testing.T) {
	s, _ := newTestStore(t)
	raw := []byte(`[{"id":"s1","title":"Links","items":[{"id":"i1","type":"bookmark","title":"Go","url":"https://go.dev"}]}]`)
	if !s.SetSectionsJSON(raw) {
		t.Fatalf("valid JSON rejected")
	}
	if secs := s.Sections(); len(secs) != 1 || secs[0].Items[0].Title != "Go" {
		t.Fatalf("unexpected sections: %+v", secs)
	}
	if s.SetSectionsJSON([]byte(`{"id":"not-a-list"}`)) {
		t.Fatalf("non-sequence JSON must be rejected")
	}
}

func TestUpdateItemNested(t *testing.T) {
	s, _ := newTestStore(t)
	sec := seedSection(t, s, "A", "Parent")
	parent := sec.Items[0]
	child := domain.NewItem(s.ids, domain.ItemFeed, "Child", "")
	parent.Children = []domain.Item{child}
	if !s.UpdateItem(sec.ID, parent) {
		t.Fatalf("update parent failed")
	}
	s.SetSelectedItem(&Selection{SectionID: sec.ID, Item: child})

	child.Title = "Renamed"
	n := len(s.History())
	if !s.UpdateItem(sec.ID, child) {
		t.Fatalf("nested update failed")
	}
	if len(s.History()) != n+1 || s.HasUnsavedChanges() {
		t.Fatalf("item update should be one saved undo step")
	}
	got, _ := s.Section(sec.ID)
	if got.Items[0].Children[0].Title != "Renamed" {
		t.Fatalf("child not updated: %+v", got.Items[0])
	}
	if sel := s.SelectedItem(); sel == nil || sel.Item.Title != "Renamed" {
		t.Fatalf("selection should follow the update, got %+v", sel)
	}

	if s.UpdateItem(sec.ID, domain.Item{ID: "ghost"}) {
		t.Fatalf("unknown item should miss")
	}
	if s.UpdateItem("nope", child) {
		t.Fatalf("unknown section should miss")
	}
}

func TestUpdateItemCopiesChildren(t *testing.T) {
	s, _ := newTestStore(t)
	sec := seedSection(t, s, "A", "Parent")
	parent := sec.Items[0]
	parent.Children = []domain.Item{domain.NewItem(s.ids, domain.ItemBookmark, "child", "")}
	if !s.UpdateItem(sec.ID, parent) {
		t.Fatalf("update failed")
	}
	parent.Children[0].Title = "changed by caller"

	got, _ := s.Section(sec.ID)
	if got.Items[0].Children[0].Title != "child" {
		t.Fatalf("store state changed through the caller's slice: %+v", got.Items[0].Children)
	}
	last := s.History()[s.HistoryIndex()].Pages[0].Sections[0].Items[0].Children[0].Title
	if last != "child" {
		t.Fatalf("snapshot changed through the caller's slice: %q", last)
	}
}

func TestUpdatePage(t *testing.T) {
	s, _ := newTestStore(t)
	id := s.CurrentPageID()
	ok := s.UpdatePage(id, domain.PageUpdate{
		Title:    domain.Ptr("Dashboard"),
		Settings: []domain.SettingsPatch{domain.GridPatch{ColumnsLarge: domain.Ptr(8)}},
	})
	if !ok {
		t.Fatalf("update failed")
	}
	p, _ := s.CurrentPage()
	if p.Title != "Dashboard" || p.Settings.Gridstack.ColumnsLarge != 8 {
		t.Fatalf("unexpected page: %+v", p)
	}
	if s.HasUnsavedChanges() || !s.CanUndo() {
		t.Fatalf("page update should be a saved undo step")
	}
	if s.UpdatePage(id, domain.PageUpdate{Settings: []domain.SettingsPatch{domain.GridPatch{ColumnsSmall: domain.Ptr(13)}}}) {
		t.Fatalf("out of range columns must be rejected")
	}
	if s.UpdatePage("missing", domain.PageUpdate{Title: domain.Ptr("x")}) {
		t.Fatalf("unknown page must be rejected")
	}
}

func TestUndoClearsUnsavedFlag(t *testing.T) {
	s, _ := newTestStore(t)
	seedSection(t, s, "A")
	s.SetSections([]domain.Section{})
	if !s.HasUnsavedChanges() {
		t.Fatalf("expected unsaved")
	}
	s.Undo()
	if s.HasUnsavedChanges() {
		t.Fatalf("undo restores a snapshot and clears the flag")
	}
}

func TestDragInertOutsideEditMode(t *testing.T) {
	s, _ := newTestStore(t)
	sec := seedSection(t, s, "A", "I1", "I2")
	if s.DragStart(sec.Items[0].ID) {
		t.Fatalf("drag must be inert in view mode")
	}
	if out := s.DragEnd(sec.Items[1].ID); out != reorder.Cancelled {
		t.Fatalf("drop without drag should cancel")
	}
	s.SetEditMode(true)
	if s.DragStart("unknown") {
		t.Fatalf("unknown id must not start a drag")
	}
	s.DragStart(sec.Items[0].ID)
	s.SetEditMode(false)
	if _, dragging := s.Dragging(); dragging {
		t.Fatalf("leaving edit mode abandons the drag")
	}
}

func TestDragSectionsAndStaleTarget(t *testing.T) {
	s, ring := newTestStore(t)
	a := seedSection(t, s, "A", "I1")
	b := seedSection(t, s, "B")
	s.SetEditMode(true)

	s.DragStart(reorder.SectionDragID(a.ID))
	if out := s.DragEnd(reorder.SectionDragID(b.ID)); out != reorder.Committed {
		t.Fatalf("section move should commit")
	}
	secs := s.Sections()
	if secs[0].ID != b.ID || secs[1].ID != a.ID {
		t.Fatalf("sections not swapped")
	}

	ring.Clear()
	s.DragStart(a.Items[0].ID)
	if out := s.DragEnd("gone"); out != reorder.Cancelled {
		t.Fatalf("stale target should cancel")
	}
	warned := false
	for _, ev := range ring.Events() {
		warned = warned || ev.Level == diag.LevelWarn
	}
	if !warned {
		t.Fatalf("stale target should be reported as a warning")
	}

	s.DragStart(a.Items[0].ID)
	s.DragCancel()
	if _, dragging := s.Dragging(); dragging {
		t.Fatalf("cancel should end the drag")
	}
}

func TestRejectedReorderIsReportedAsFailure(t *testing.T) {
	ids := &ident.Sequence{Prefix: "id"}
	page := domain.NewPage(ids, "Dup")
	page.Sections = []domain.Section{
		{ID: "s1", Title: "A", Items: []domain.Item{
			domain.NewItem(ids, domain.ItemBookmark, "a", ""),
			domain.NewItem(ids, domain.ItemBookmark, "b", ""),
		}},
		{ID: "s1", Title: "A again"},
	}
	ring := diag.NewRingSink(0)
	s := New(Options{IDs: ids, Diagnostics: ring, Pages: []domain.Page{page}})
	s.SetEditMode(true)
	n := len(s.History())

	a, b := page.Sections[0].Items[0].ID, page.Sections[0].Items[1].ID
	if !s.DragStart(a) {
		t.Fatalf("drag should start")
	}
	if out := s.DragEnd(b); out != reorder.Cancelled {
		t.Fatalf("rejected reorder should cancel, got %v", out)
	}
	if len(s.History()) != n {
		t.Fatalf("rejected reorder must not snapshot")
	}
	if got := itemTitles(s.Sections()[0]); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("sections changed: %v", got)
	}
	var failed, completed bool
	for _, ev := range ring.Events() {
		switch ev.Message {
		case "operation failed: reorder":
			failed = ev.Level == diag.LevelError && ev.Metadata["error"] != nil
		case "operation completed: reorder":
			completed = true
		}
	}
	if !failed || completed {
		t.Fatalf("expected a failure event for the reorder, failed=%v completed=%v", failed, completed)
	}
}

func TestItemDroppedOnEmptySection(t *testing.T) {
	s, _ := newTestStore(t)
	a := seedSection(t, s, "A", "I1")
	b := seedSection(t, s, "B")
	s.SetEditMode(true)
	s.DragStart(a.Items[0].ID)
	if out := s.DragEnd(reorder.SectionDragID(b.ID)); out != reorder.Committed {
		t.Fatalf("drop on empty section should commit")
	}
	gotB, _ := s.Section(b.ID)
	if len(gotB.Items) != 1 || gotB.Items[0].Title != "I1" {
		t.Fatalf("item should land in B: %+v", gotB)
	}
}

func TestToggleCollapsed(t *testing.T) {
	s, _ := newTestStore(t)
	sec := seedSection(t, s, "A", "I1")
	if !s.ToggleSectionCollapsed(sec.ID) {
		t.Fatalf("toggle section failed")
	}
	got, _ := s.Section(sec.ID)
	if !got.Collapsed {
		t.Fatalf("section should be collapsed")
	}
	if !s.ToggleItemCollapsed(sec.ID, sec.Items[0].ID) {
		t.Fatalf("toggle item failed")
	}
	s.Undo()
	got, _ = s.Section(sec.ID)
	if got.Items[0].Collapsed || !got.Collapsed {
		t.Fatalf("undo should revert only the item toggle")
	}
	if s.ToggleSectionCollapsed("nope") || s.ToggleItemCollapsed(sec.ID, "nope") {
		t.Fatalf("unknown ids must miss")
	}
}

func TestFilteredSections(t *testing.T) {
	s, _ := newTestStore(t)
	seedSection(t, s, "News", "golang", "rust")
	seedSection(t, s, "Video", "cats")
	if len(s.FilteredSections()) != 2 {
		t.Fatalf("empty query returns everything")
	}
	s.SetSearchQuery("GO")
	got := s.FilteredSections()
	if len(got) != 1 || len(got[0].Items) != 1 || got[0].Items[0].Title != "golang" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
	if len(s.Sections()[0].Items) != 2 {
		t.Fatalf("filtering must not change the model")
	}
}

func TestUnknownCurrentPage(t *testing.T) {
	s, _ := newTestStore(t)
	seedSection(t, s, "A")
	s.SetCurrentPage("missing")
	if len(s.Sections()) != 0 {
		t.Fatalf("no page selected means no sections")
	}
	if _, ok := s.AddSection("B"); ok {
		t.Fatalf("cannot add a section without a current page")
	}
}

func TestViewFlags(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetSettingsOpen(true)
	s.SetSearchQuery("q")
	s.SetEditMode(true)
	if !s.SettingsOpen() || s.SearchQuery() != "q" || !s.EditMode() {
		t.Fatalf("flags not stored")
	}
	s.SetSelectedItem(nil)
	if s.SelectedItem() != nil {
		t.Fatalf("selection should be empty")
	}
}

func TestNavigationGate(t *testing.T) {
	s, _ := newTestStore(t)
	home := s.CurrentPageID()
	other := s.AddPage("Other")
	s.SetCurrentPage(home)
	g := NewNavigationGate(s)

	if !g.Request(other.ID) || s.CurrentPageID() != other.ID {
		t.Fatalf("clean store should switch immediately")
	}
	seedSection(t, s, "Kept")
	s.SetSections([]domain.Section{})
	if g.Request(home) {
		t.Fatalf("unsaved changes should park the switch")
	}
	if id, ok := g.Pending(); !ok || id != home || s.CurrentPageID() != other.ID {
		t.Fatalf("expected pending switch to home")
	}
	g.Cancel()
	if _, ok := g.Pending(); ok || g.Confirm() {
		t.Fatalf("cancel should drop the pending switch")
	}
	g.Request(home)
	if !g.Confirm() || s.CurrentPageID() != home {
		t.Fatalf("confirm should switch")
	}
	if s.HasUnsavedChanges() {
		t.Fatalf("confirm should discard the unsaved edits")
	}
	if back := s.Pages()[1].Sections; len(back) != 1 || back[0].Title != "Kept" {
		t.Fatalf("the saved section should be restored, got %+v", s.Pages()[1].Sections)
	}
}

func TestDiscardChanges(t *testing.T) {
	s, _ := newTestStore(t)
	if s.DiscardChanges() {
		t.Fatalf("nothing to discard on a clean store")
	}
	sec := seedSection(t, s, "A", "x", "y")
	n := len(s.History())
	s.SetSections([]domain.Section{})
	if !s.DiscardChanges() {
		t.Fatalf("expected the edit to be discarded")
	}
	got, ok := s.Section(sec.ID)
	if !ok || !reflect.DeepEqual(itemTitles(got), []string{"x", "y"}) {
		t.Fatalf("saved state not restored: %+v", s.Sections())
	}
	if s.HasUnsavedChanges() || len(s.History()) != n || s.HistoryCap() != history.MaxHistory {
		t.Fatalf("discard must not touch history: len=%d cap=%d", len(s.History()), s.HistoryCap())
	}
}

func TestEveryMutationEmits(t *testing.T) {
	s, ring := newTestStore(t)
	ring.Clear()
	s.SetEditMode(true)
	s.SetSettingsOpen(false)
	s.SetSearchQuery("")
	s.SetSelectedItem(nil)
	s.SaveToHistory()
	s.Undo()
	s.Redo()
	if got := len(ring.Events()); got != 7 {
		t.Fatalf("expected 7 events, got %d", got)
	}
}
