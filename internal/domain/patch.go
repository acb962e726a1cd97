/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// SettingsPatch is a typed partial update of one settings group. The
// concrete variants are LayoutPatch, GridPatch, MetadataPatch,
// AppearancePatch and AccessPatch; nil fields are left unchanged.
type SettingsPatch interface {
	Group() string
	apply(s *PageSettings)
}

type LayoutPatch struct {
	EnableLeftSidebar  *bool `yaml:"enable_left_sidebar"`
	EnableRightSidebar *bool `yaml:"enable_right_sidebar"`
	EnablePings        *bool `yaml:"enable_pings"`
}

func (LayoutPatch) Group() string { return "layout" }

func (p LayoutPatch) apply(s *PageSettings) {
	set(&s.Layout.EnableLeftSidebar, p.EnableLeftSidebar)
	set(&s.Layout.EnableRightSidebar, p.EnableRightSidebar)
	set(&s.Layout.EnablePings, p.EnablePings)
}

type GridPatch struct {
	ColumnsSmall  *int `yaml:"columns_small"`
	ColumnsMedium *int `yaml:"columns_medium"`
	ColumnsLarge  *int `yaml:"columns_large"`
}

func (GridPatch) Group() string { return "gridstack" }

func (p GridPatch) apply(s *PageSettings) {
	set(&s.Gridstack.ColumnsSmall, p.ColumnsSmall)
	set(&s.Gridstack.ColumnsMedium, p.ColumnsMedium)
	set(&s.Gridstack.ColumnsLarge, p.ColumnsLarge)
}

type MetadataPatch struct {
	PageTitle *string `yaml:"page_title"`
	MetaTitle *string `yaml:"meta_title"`
	Logo      *string `yaml:"logo"`
	Favicon   *string `yaml:"favicon"`
}

func (MetadataPatch) Group() string { return "metadata" }

func (p MetadataPatch) apply(s *PageSettings) {
	set(&s.Metadata.PageTitle, p.PageTitle)
	set(&s.Metadata.MetaTitle, p.MetaTitle)
	set(&s.Metadata.Logo, p.Logo)
	set(&s.Metadata.Favicon, p.Favicon)
}

type AppearancePatch struct {
	Background           *string               `yaml:"background"`
	BackgroundAttachment *BackgroundAttachment `yaml:"background_attachment"`
	BackgroundSize       *BackgroundSize       `yaml:"background_size"`
	BackgroundRepeat     *BackgroundRepeat     `yaml:"background_repeat"`
	PrimaryColor         *string               `yaml:"primary_color"`
	SecondaryColor       *string               `yaml:"secondary_color"`
	Shade                *string               `yaml:"shade"`
	AppOpacity           *float64              `yaml:"app_opacity"`
	CustomCSS            *string               `yaml:"custom_css"`
}

func (AppearancePatch) Group() string { return "appearance" }

func (p AppearancePatch) apply(s *PageSettings) {
	a := &s.Appearance
	set(&a.Background, p.Background)
	set(&a.BackgroundAttachment, p.BackgroundAttachment)
	set(&a.BackgroundSize, p.BackgroundSize)
	set(&a.BackgroundRepeat, p.BackgroundRepeat)
	set(&a.PrimaryColor, p.PrimaryColor)
	set(&a.SecondaryColor, p.SecondaryColor)
	set(&a.Shade, p.Shade)
	set(&a.AppOpacity, p.AppOpacity)
	set(&a.CustomCSS, p.CustomCSS)
}

type AccessPatch struct {
	AllowAnonymous *bool `yaml:"allow_anonymous"`
}

func (AccessPatch) Group() string { return "access" }

func (p AccessPatch) apply(s *PageSettings) {
	set(&s.Access.AllowAnonymous, p.AllowAnonymous)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Ptr returns a pointer to v; handy for building patches.
func Ptr[T any](v T) *T { return &v }

// PageUpdate is a partial page update. A nil Title keeps the current one.
type PageUpdate struct {
	Title    *string
	Settings []SettingsPatch
}

// Empty reports whether the update would change nothing.
func (u PageUpdate) Empty() bool { return u.Title == nil && len(u.Settings) == 0 }

// ApplySettings applies patches to a copy of s and validates the result.
// s is returned unchanged on error.
func ApplySettings(s PageSettings, patches ...SettingsPatch) (PageSettings, error) {
	next := s
	for _, p := range patches {
		if p == nil {
			return s, fmt.Errorf("%w: nil patch", ErrInvalidSettings)
		}
		p.apply(&next)
	}
	if err := next.Validate(); err != nil {
		return s, err
	}
	return next, nil
}

// Apply returns p with the update applied. p is not modified.
func (u PageUpdate) Apply(p Page) (Page, error) {
	out := p
	if u.Title != nil {
		t := strings.TrimSpace(*u.Title)
		if t == "" {
			return p, errors.New("page title must not be empty")
		}
		out.Title = t
	}
	settings, err := ApplySettings(p.Settings, u.Settings...)
	if err != nil {
		return p, err
	}
	out.Settings = settings
	return out, nil
}
