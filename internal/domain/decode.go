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
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ErrMalformedSections is wrapped when a sections document is not an ordered
// list of well-formed sections.
var ErrMalformedSections = errors.New("malformed sections")

const sectionsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {"$ref": "#/definitions/section"},
  "definitions": {
    "section": {
      "type": "object",
      "required": ["id", "title", "items"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "title": {"type": "string"},
        "collapsed": {"type": "boolean"},
        "items": {"type": "array", "items": {"$ref": "#/definitions/item"}}
      }
    },
    "item": {
      "type": "object",
      "required": ["id", "type", "title"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "type": {"enum": ["bookmark", "feed", "youtube", "twitter", "stock", "crypto"]},
        "title": {"type": "string"},
        "url": {"type": "string"},
        "icon": {"type": "string"},
        "collapsed": {"type": "boolean"},
        "children": {"type": "array", "items": {"$ref": "#/definitions/item"}},
        "position": {
          "type": "object",
          "required": ["x", "y"],
          "properties": {"x": {"type": "integer"}, "y": {"type": "integer"}}
        },
        "size": {
          "type": "object",
          "required": ["w", "h"],
          "properties": {"w": {"type": "integer"}, "h": {"type": "integer"}}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSectionsSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(sectionsSchema))
	})
	return schema, schemaErr
}

// DecodeSections validates raw JSON against the sections schema and decodes it.
// Anything that is not an array of sections fails with ErrMalformedSections.
func DecodeSections(raw []byte) ([]Section, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedSections)
	}
	s, err := compiledSectionsSchema()
	if err != nil {
		return nil, fmt.Errorf("compile sections schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSections, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrMalformedSections, strings.Join(msgs, "; "))
	}
	var out []Section
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSections, err)
	}
	for i := range out {
		if out[i].Items == nil {
			out[i].Items = []Item{}
		}
	}
	return out, nil
}
