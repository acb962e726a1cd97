/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic in the CLI into a report file and a
// diagnostics event before exiting.
package crash

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"launchpad/internal/diag"
	applog "launchpad/internal/log"
	"launchpad/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Guard describes what to do with a recovered panic. The zero value writes
// the report to the temp dir and emits nothing.
type Guard struct {
	// Dir receives crash-<stamp>.log; os.TempDir() when empty.
	Dir         string
	Diagnostics diag.Sink
	// State, when set, is dumped as JSON into the report so the pages at the
	// moment of the crash are not lost.
	State func() any
	// Flush runs after the event is emitted and before the process exits.
	Flush func()
}

// Recover captures a panic, logs an error with stacktrace, writes an error
// report file, emits an error event and exits with code 2.
//
// Usage: defer crash.Recover(guard)
func Recover(g *Guard) {
	if r := recover(); r != nil {
		if g == nil {
			g = &Guard{}
		}
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, err := writeReport(g, r, stack)
		if err != nil {
			l.Error("write crash report failed", slog.Any("err", err))
		}
		diag.NewEmitter(g.Diagnostics).Error("panic recovered", map[string]any{
			"panic":  fmt.Sprint(r),
			"report": reportPath,
		})

		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		if g.Flush != nil {
			g.Flush()
		}
		exitFn(2)
	}
}

func writeReport(g *Guard, panicVal any, stack []byte) (string, error) {
	dir := g.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash dir: %w", err)
	}
	stamp := time.Now().Format("20060102-150405.000")
	path := filepath.Join(dir, fmt.Sprintf("crash-%s.log", stamp))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Launchpad Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))
	if g.State != nil {
		_, _ = fmt.Fprintf(&buf, "\nState:\n")
		if b, err := dumpState(g.State); err != nil {
			_, _ = fmt.Fprintf(&buf, "unavailable: %v\n", err)
		} else {
			buf.Write(b)
			buf.WriteByte('\n')
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	_ = f.Sync()
	return path, nil
}

// dumpState marshals the state callback's result. The callback runs during
// a panic, so it may itself panic.
func dumpState(state func() any) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("state callback panicked: %v", r)
		}
	}()
	return json.MarshalIndent(state(), "", "  ")
}
