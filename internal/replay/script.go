/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package replay drives a Store from a YAML edit script. Scripts name the
// entities they create with refs so later steps can point at them without
// knowing the generated ids.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"launchpad/internal/domain"

	"gopkg.in/yaml.v3"
)

// Script is a parsed edit script.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one operation. Which fields matter depends on Op.
type Step struct {
	Op string `yaml:"op"`
	// Ref names the entity the step creates.
	Ref string `yaml:"ref,omitempty"`

	Title   string `yaml:"title,omitempty"`
	Page    string `yaml:"page,omitempty"`
	Section string `yaml:"section,omitempty"`
	Item    string `yaml:"item,omitempty"`
	Parent  string `yaml:"parent,omitempty"`
	Type    string `yaml:"type,omitempty"`
	URL     string `yaml:"url,omitempty"`
	Icon    string `yaml:"icon,omitempty"`
	On      *bool  `yaml:"on,omitempty"`
	// Active and Over are item refs, or "section:<ref>" for a section.
	Active string `yaml:"active,omitempty"`
	Over   string `yaml:"over,omitempty"`
	Query  string `yaml:"query,omitempty"`
	JSON   string `yaml:"json,omitempty"`

	Settings *SettingsStep `yaml:"settings,omitempty"`

	// Expect, when set, fails the run if the step's ok result differs.
	Expect *bool `yaml:"expect,omitempty"`
}

// SettingsStep lists per-group settings patches for update_page.
type SettingsStep struct {
	Layout     *domain.LayoutPatch     `yaml:"layout,omitempty"`
	Gridstack  *domain.GridPatch       `yaml:"gridstack,omitempty"`
	Metadata   *domain.MetadataPatch   `yaml:"metadata,omitempty"`
	Appearance *domain.AppearancePatch `yaml:"appearance,omitempty"`
	Access     *domain.AccessPatch     `yaml:"access,omitempty"`
}

// Patches returns the non-empty groups in a fixed order.
func (s *SettingsStep) Patches() []domain.SettingsPatch {
	if s == nil {
		return nil
	}
	var out []domain.SettingsPatch
	if s.Layout != nil {
		out = append(out, *s.Layout)
	}
	if s.Gridstack != nil {
		out = append(out, *s.Gridstack)
	}
	if s.Metadata != nil {
		out = append(out, *s.Metadata)
	}
	if s.Appearance != nil {
		out = append(out, *s.Appearance)
	}
	if s.Access != nil {
		out = append(out, *s.Access)
	}
	return out
}

var ErrEmptyScript = errors.New("script has no steps")

// Parse decodes a script. Unknown keys are rejected so typos do not
// silently turn into no-op steps.
func Parse(r io.Reader) (Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sc Script
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, ErrEmptyScript
		}
		return Script{}, fmt.Errorf("decode script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return Script{}, ErrEmptyScript
	}
	return sc, nil
}

// ParseFile reads and parses the script at path.
func ParseFile(path string) (Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	sc, err := Parse(bytes.NewReader(b))
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}
