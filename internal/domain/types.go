/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package domain defines the launchpad data model: pages holding ordered
// sections, sections holding ordered (possibly nested) items, and the
// per-page settings record. The types carry no behavior beyond construction,
// copying and tree lookups; all mutation goes through the store.
package domain

import (
	"launchpad/internal/ident"
)

// ItemType is the kind of tile an item renders as.
type ItemType string

const (
	ItemBookmark ItemType = "bookmark"
	ItemFeed     ItemType = "feed"
	ItemYouTube  ItemType = "youtube"
	ItemTwitter  ItemType = "twitter"
	ItemStock    ItemType = "stock"
	ItemCrypto   ItemType = "crypto"
)

// ItemTypes lists every valid item type in display order.
var ItemTypes = []ItemType{ItemBookmark, ItemFeed, ItemYouTube, ItemTwitter, ItemStock, ItemCrypto}

func (t ItemType) Valid() bool {
	for _, v := range ItemTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Position is the optional grid placement of an item.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is the optional grid footprint of an item.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Item is a tile (bookmark, feed, widget). Items may nest through Children;
// ids are unique within the owning section's whole subtree.
type Item struct {
	ID        string    `json:"id"`
	Type      ItemType  `json:"type"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	Children  []Item    `json:"children,omitempty"`
	Collapsed bool      `json:"collapsed"`
	Position  *Position `json:"position,omitempty"`
	Size      *Size     `json:"size,omitempty"`
}

// Section is a titled, collapsible group of items. It owns its items exclusively.
type Section struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Items     []Item `json:"items"`
	Collapsed bool   `json:"collapsed"`
}

// Page is a named canvas of sections with its own settings.
type Page struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Sections []Section    `json:"sections"`
	Settings PageSettings `json:"settings"`
}

// NewPage creates a page with a fresh id and fully populated default settings.
func NewPage(ids ident.Generator, title string) Page {
	return Page{
		ID:       ids.NewID(),
		Title:    title,
		Sections: []Section{},
		Settings: DefaultSettings(title),
	}
}

// NewSection creates an empty, expanded section.
func NewSection(ids ident.Generator, title string) Section {
	return Section{ID: ids.NewID(), Title: title, Items: []Item{}}
}

// NewItem creates a leaf item of the given type.
func NewItem(ids ident.Generator, typ ItemType, title, url string) Item {
	return Item{ID: ids.NewID(), Type: typ, Title: title, URL: url}
}
