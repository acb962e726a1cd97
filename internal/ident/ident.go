/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ident produces entity identifiers.
package ident

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator hands out ids that are unique for the lifetime of the process.
type Generator interface {
	NewID() string
}

// UUID generates random RFC 4122 version 4 ids.
type UUID struct{}

func (UUID) NewID() string { return uuid.NewString() }

// Sequence generates predictable ids of the form <prefix>-<n>. Useful for
// scripted runs and tests where stable ids make output comparable.
type Sequence struct {
	Prefix string

	mu sync.Mutex
	n  int
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	p := s.Prefix
	if p == "" {
		p = "id"
	}
	return fmt.Sprintf("%s-%d", p, s.n)
}

// Func adapts a plain function to Generator.
type Func func() string

func (f Func) NewID() string { return f() }
