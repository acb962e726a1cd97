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
	"regexp"
)

// ErrInvalidSettings is wrapped by every settings validation failure.
var ErrInvalidSettings = errors.New("invalid page settings")

type BackgroundAttachment string

const (
	AttachmentFixed  BackgroundAttachment = "fixed"
	AttachmentScroll BackgroundAttachment = "scroll"
)

type BackgroundSize string

const (
	SizeCover   BackgroundSize = "cover"
	SizeContain BackgroundSize = "contain"
)

type BackgroundRepeat string

const (
	RepeatNone BackgroundRepeat = "no-repeat"
	Repeat     BackgroundRepeat = "repeat"
)

// Grid column bounds for every breakpoint.
const (
	MinColumns = 1
	MaxColumns = 12
)

type LayoutSettings struct {
	EnableLeftSidebar  bool `json:"enableLeftSidebar" yaml:"enable_left_sidebar"`
	EnableRightSidebar bool `json:"enableRightSidebar" yaml:"enable_right_sidebar"`
	EnablePings        bool `json:"enablePings" yaml:"enable_pings"`
}

type GridSettings struct {
	ColumnsSmall  int `json:"columnsSmall" yaml:"columns_small"`
	ColumnsMedium int `json:"columnsMedium" yaml:"columns_medium"`
	ColumnsLarge  int `json:"columnsLarge" yaml:"columns_large"`
}

type MetadataSettings struct {
	PageTitle string `json:"pageTitle" yaml:"page_title"`
	MetaTitle string `json:"metaTitle" yaml:"meta_title"`
	Logo      string `json:"logo" yaml:"logo"`
	Favicon   string `json:"favicon" yaml:"favicon"`
}

type AppearanceSettings struct {
	Background           string               `json:"background" yaml:"background"`
	BackgroundAttachment BackgroundAttachment `json:"backgroundAttachment" yaml:"background_attachment"`
	BackgroundSize       BackgroundSize       `json:"backgroundSize" yaml:"background_size"`
	BackgroundRepeat     BackgroundRepeat     `json:"backgroundRepeat" yaml:"background_repeat"`
	PrimaryColor         string               `json:"primaryColor" yaml:"primary_color"`
	SecondaryColor       string               `json:"secondaryColor" yaml:"secondary_color"`
	Shade                string               `json:"shade" yaml:"shade"`
	AppOpacity           float64              `json:"appOpacity" yaml:"app_opacity"`
	CustomCSS            string               `json:"customCSS" yaml:"custom_css"`
}

type AccessSettings struct {
	AllowAnonymous bool `json:"allowAnonymous" yaml:"allow_anonymous"`
}

// PageSettings is always fully populated; there are no optional groups.
type PageSettings struct {
	Layout     LayoutSettings     `json:"layout"`
	Gridstack  GridSettings       `json:"gridstack"`
	Metadata   MetadataSettings   `json:"metadata"`
	Appearance AppearanceSettings `json:"appearance"`
	Access     AccessSettings     `json:"access"`
}

// DefaultSettings returns the settings a new page starts with. The metadata
// titles are seeded from the page title.
func DefaultSettings(title string) PageSettings {
	return PageSettings{
		Layout:    LayoutSettings{},
		Gridstack: GridSettings{ColumnsSmall: 1, ColumnsMedium: 4, ColumnsLarge: 6},
		Metadata:  MetadataSettings{PageTitle: title, MetaTitle: title},
		Appearance: AppearanceSettings{
			BackgroundAttachment: AttachmentFixed,
			BackgroundSize:       SizeCover,
			BackgroundRepeat:     RepeatNone,
			PrimaryColor:         "#3B82F6",
			SecondaryColor:       "#F59E0B",
			Shade:                "#2563EB",
			AppOpacity:           1.0,
		},
		Access: AccessSettings{AllowAnonymous: false},
	}
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate checks ranges and enumerations of every group.
func (s PageSettings) Validate() error {
	if err := s.Gridstack.validate(); err != nil {
		return err
	}
	return s.Appearance.validate()
}

func (g GridSettings) validate() error {
	for name, v := range map[string]int{
		"columnsSmall":  g.ColumnsSmall,
		"columnsMedium": g.ColumnsMedium,
		"columnsLarge":  g.ColumnsLarge,
	} {
		if v < MinColumns || v > MaxColumns {
			return fmt.Errorf("%w: gridstack.%s=%d out of range %d..%d", ErrInvalidSettings, name, v, MinColumns, MaxColumns)
		}
	}
	return nil
}

func (a AppearanceSettings) validate() error {
	switch a.BackgroundAttachment {
	case AttachmentFixed, AttachmentScroll:
	default:
		return fmt.Errorf("%w: appearance.backgroundAttachment=%q", ErrInvalidSettings, a.BackgroundAttachment)
	}
	switch a.BackgroundSize {
	case SizeCover, SizeContain:
	default:
		return fmt.Errorf("%w: appearance.backgroundSize=%q", ErrInvalidSettings, a.BackgroundSize)
	}
	switch a.BackgroundRepeat {
	case RepeatNone, Repeat:
	default:
		return fmt.Errorf("%w: appearance.backgroundRepeat=%q", ErrInvalidSettings, a.BackgroundRepeat)
	}
	for name, c := range map[string]string{
		"primaryColor":   a.PrimaryColor,
		"secondaryColor": a.SecondaryColor,
		"shade":          a.Shade,
	} {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("%w: appearance.%s=%q is not a hex color", ErrInvalidSettings, name, c)
		}
	}
	if a.AppOpacity < 0 || a.AppOpacity > 1 {
		return fmt.Errorf("%w: appearance.appOpacity=%g out of range 0..1", ErrInvalidSettings, a.AppOpacity)
	}
	return nil
}
