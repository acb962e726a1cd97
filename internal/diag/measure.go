/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package diag

import (
	"time"
)

// Measure runs fn and emits one event with its duration in milliseconds.
// A failing fn is reported at error level with the error text attached.
// The error is returned unchanged.
func Measure(e *Emitter, op string, fn func() error, meta map[string]any) error {
	start := time.Now()
	err := fn()
	md := make(map[string]any, len(meta)+3)
	for k, v := range meta {
		md[k] = v
	}
	md["op"] = op
	md["durationMs"] = float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		md["error"] = err.Error()
		e.Error("operation failed: "+op, md)
		return err
	}
	e.Debug("operation completed: "+op, md)
	return nil
}
