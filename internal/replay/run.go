/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package replay

import (
	"fmt"
	"log/slog"
	"strings"

	"launchpad/internal/domain"
	applog "launchpad/internal/log"
	"launchpad/internal/reorder"
	"launchpad/internal/store"
)

// StepError reports the step that stopped a run.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string { return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Op, e.Err) }
func (e *StepError) Unwrap() error { return e.Err }

// Result records what one step did.
type Result struct {
	Index  int
	Op     string
	OK     bool
	Detail string
}

// Report summarizes a run.
type Report struct {
	Script  string
	Results []Result
	// Refs maps script refs to the ids they resolved to.
	Refs map[string]string
}

// Applied counts the steps that changed something.
func (r Report) Applied() int {
	n := 0
	for _, res := range r.Results {
		if res.OK {
			n++
		}
	}
	return n
}

type runner struct {
	s    *store.Store
	refs map[string]string
	log  *slog.Logger
}

// Run executes every step against s in order. Store-level no-ops are
// recorded, not fatal; malformed steps and failed expectations stop the run.
func Run(s *store.Store, sc Script) (Report, error) {
	r := &runner{s: s, refs: map[string]string{}, log: applog.WithOperation(applog.WithComponent("replay"), "run")}
	rep := Report{Script: sc.Name, Refs: r.refs}
	for i, st := range sc.Steps {
		ok, detail, err := r.step(st)
		if err != nil {
			return rep, &StepError{Index: i, Op: st.Op, Err: err}
		}
		rep.Results = append(rep.Results, Result{Index: i, Op: st.Op, OK: ok, Detail: detail})
		r.log.Debug("step", slog.Int("index", i), slog.String("op", st.Op), slog.Bool("ok", ok))
		if st.Expect != nil && *st.Expect != ok {
			return rep, &StepError{Index: i, Op: st.Op, Err: fmt.Errorf("expected ok=%v, got %v", *st.Expect, ok)}
		}
	}
	return rep, nil
}

// resolve maps a ref to its id; unknown refs pass through as raw ids.
func (r *runner) resolve(ref string) string {
	if id, ok := r.refs[ref]; ok {
		return id
	}
	return ref
}

func (r *runner) bind(ref, id string) {
	if ref != "" {
		r.refs[ref] = id
	}
}

// dragID resolves a drag endpoint: "section:<ref>" or an item ref.
func (r *runner) dragID(v string) string {
	if ref, ok := strings.CutPrefix(v, "section:"); ok {
		return reorder.SectionDragID(r.resolve(ref))
	}
	return r.resolve(v)
}

func (r *runner) step(st Step) (bool, string, error) {
	s := r.s
	switch st.Op {
	case "add_page":
		p := s.AddPage(st.Title)
		r.bind(st.Ref, p.ID)
		return true, p.ID, nil
	case "set_current_page":
		id := r.resolve(st.Page)
		s.SetCurrentPage(id)
		_, ok := s.CurrentPage()
		return ok, id, nil
	case "update_page":
		id := s.CurrentPageID()
		if st.Page != "" {
			id = r.resolve(st.Page)
		}
		u := domain.PageUpdate{Settings: st.Settings.Patches()}
		if st.Title != "" {
			u.Title = domain.Ptr(st.Title)
		}
		return s.UpdatePage(id, u), id, nil
	case "add_section":
		sec, ok := s.AddSection(st.Title)
		if ok {
			r.bind(st.Ref, sec.ID)
		}
		return ok, sec.ID, nil
	case "add_item":
		return r.addItem(st)
	case "update_item":
		return r.updateItem(st)
	case "set_sections_json":
		return s.SetSectionsJSON([]byte(st.JSON)), "", nil
	case "set_edit_mode":
		on := st.On == nil || *st.On
		s.SetEditMode(on)
		return true, fmt.Sprint(on), nil
	case "drag":
		if st.Active == "" {
			return false, "", fmt.Errorf("drag needs active")
		}
		if !s.DragStart(r.dragID(st.Active)) {
			return false, "drag not started", nil
		}
		var over string
		if st.Over != "" {
			over = r.dragID(st.Over)
		}
		out := s.DragEnd(over)
		return out == reorder.Committed, out.String(), nil
	case "select":
		if st.Item == "" {
			s.SetSelectedItem(nil)
			return true, "cleared", nil
		}
		secID := r.resolve(st.Section)
		sec, ok := s.Section(secID)
		if !ok {
			return false, "", nil
		}
		it, ok := domain.FindItem(sec.Items, r.resolve(st.Item))
		if !ok {
			return false, "", nil
		}
		s.SetSelectedItem(&store.Selection{SectionID: secID, Item: it})
		return true, it.ID, nil
	case "toggle_section":
		return s.ToggleSectionCollapsed(r.resolve(st.Section)), "", nil
	case "toggle_item":
		return s.ToggleItemCollapsed(r.resolve(st.Section), r.resolve(st.Item)), "", nil
	case "search":
		s.SetSearchQuery(st.Query)
		return true, st.Query, nil
	case "settings_open":
		on := st.On == nil || *st.On
		s.SetSettingsOpen(on)
		return true, fmt.Sprint(on), nil
	case "save":
		s.SaveToHistory()
		return true, "", nil
	case "undo":
		return s.Undo(), "", nil
	case "redo":
		return s.Redo(), "", nil
	case "":
		return false, "", fmt.Errorf("missing op")
	default:
		return false, "", fmt.Errorf("unknown op %q", st.Op)
	}
}

func (r *runner) addItem(st Step) (bool, string, error) {
	typ := domain.ItemType(st.Type)
	if st.Type == "" {
		typ = domain.ItemBookmark
	}
	if !typ.Valid() {
		return false, "", fmt.Errorf("unknown item type %q", st.Type)
	}
	secID := r.resolve(st.Section)
	it := domain.Item{ID: r.s.NewID(), Type: typ, Title: st.Title, URL: st.URL, Icon: st.Icon}
	if st.Parent == "" {
		ok := r.s.AddItem(secID, it)
		if ok {
			r.bind(st.Ref, it.ID)
		}
		return ok, it.ID, nil
	}
	sec, ok := r.s.Section(secID)
	if !ok {
		return false, "", nil
	}
	parent, ok := domain.FindItem(sec.Items, r.resolve(st.Parent))
	if !ok {
		return false, "", nil
	}
	parent.Children = append(parent.Children, it)
	ok = r.s.UpdateItem(secID, parent)
	if ok {
		r.bind(st.Ref, it.ID)
	}
	return ok, it.ID, nil
}

func (r *runner) updateItem(st Step) (bool, string, error) {
	secID := r.resolve(st.Section)
	sec, ok := r.s.Section(secID)
	if !ok {
		return false, "", nil
	}
	it, ok := domain.FindItem(sec.Items, r.resolve(st.Item))
	if !ok {
		return false, "", nil
	}
	if st.Title != "" {
		it.Title = st.Title
	}
	if st.URL != "" {
		it.URL = st.URL
	}
	if st.Icon != "" {
		it.Icon = st.Icon
	}
	if st.Type != "" {
		it.Type = domain.ItemType(st.Type)
	}
	return r.s.UpdateItem(secID, it), it.ID, nil
}
