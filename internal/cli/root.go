/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cli wires configuration, logging, diagnostics and the Store into
// the launchpad command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"launchpad/internal/config"
	"launchpad/internal/crash"
	"launchpad/internal/diag"
	applog "launchpad/internal/log"
	"launchpad/internal/store"

	"github.com/spf13/cobra"
)

// App carries what the commands share for one invocation.
type App struct {
	ConfigPath string
	Journal    string
	LogLevel   string

	cfg     config.AppConfig
	stderr  io.Writer
	ring    *diag.RingSink
	async   *diag.AsyncSink
	journal *diag.JournalSink
	sink    diag.Sink
	store   *store.Store
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) (code int) {
	app := &App{stderr: stderr}
	defer app.close()
	defer crash.Recover(&crash.Guard{
		Diagnostics: diag.SinkFunc(func(ev diag.Event) {
			if app.sink != nil {
				app.sink.Emit(ev)
			}
		}),
		State: func() any {
			if app.store == nil {
				return nil
			}
			return app.store.Pages()
		},
		Flush: app.close,
	})

	cmd := NewRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "launchpad",
		Short:        "Launchpad dashboard state engine",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse and rearrange a dashboard in the terminal
  launchpad tui

  # Apply a scripted edit session and print the result
  launchpad replay session.yaml

  # Inspect recorded diagnostics
  launchpad diag tail --journal ~/.local/state/launchpad/journal.sqlite
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config.yaml (default: user config dir)")
	cmd.PersistentFlags().StringVar(&app.Journal, "journal", "", "SQLite diagnostics journal (overrides config)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newReplayCmd(app))
	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newDiagCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	return cmd
}

func (app *App) setup(cmd *cobra.Command) error {
	var (
		cfg config.AppConfig
		err error
	)
	if app.ConfigPath != "" {
		cfg, err = config.LoadFrom(app.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: config:", err)
	}
	if app.Journal != "" {
		cfg.Diagnostics.JournalPath = app.Journal
	}
	if app.LogLevel != "" {
		cfg.Logging.Level = app.LogLevel
	}
	app.cfg = cfg

	opts := cfg.LogOptions()
	opts.Console = app.stderr
	if cmd.Name() == "tui" {
		// The TUI owns the terminal; only the log file (if any) gets records.
		opts.Console = io.Discard
	}
	applog.Init(opts)

	app.ring = diag.NewRingSink(cfg.Diagnostics.RingSize)
	sinks := []diag.Sink{app.ring, diag.NewSlogSink(applog.WithComponent("store"))}
	if p := cfg.Diagnostics.JournalPath; p != "" {
		j, err := diag.OpenJournal(p)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		app.journal = j
		app.async = diag.NewAsyncSink(j, cfg.Diagnostics.AsyncQueue)
		sinks = append(sinks, app.async)
	}
	app.sink = diag.Fanout(sinks...)
	return nil
}

// newStore builds the Store for commands that edit state, seeding the first
// page from the configured sections file if there is one.
func (app *App) newStore() (*store.Store, error) {
	s := store.New(store.Options{
		Diagnostics:      app.sink,
		MaxHistory:       app.cfg.History.MaxEntries,
		DefaultPageTitle: app.cfg.UI.DefaultPageTitle,
	})
	app.store = s
	if seed := app.cfg.UI.SeedFile; seed != "" {
		raw, err := os.ReadFile(seed)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		if !s.SetSectionsJSON(raw) {
			return nil, fmt.Errorf("seed file %s does not hold valid sections", seed)
		}
		s.SaveToHistory()
	}
	return s, nil
}

// close drains the diagnostics pipeline and trims the journal. It is safe to
// call twice.
func (app *App) close() {
	l := applog.WithComponent("cli")
	if app.async != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := app.async.Flush(ctx); err != nil {
			l.Warn("diagnostics flush timed out", slog.Any("err", err))
		}
		cancel()
		_ = app.async.Close()
		if n := app.async.Dropped(); n > 0 {
			l.Warn("diagnostic events dropped", slog.Int64("count", n))
		}
		app.async = nil
	}
	if app.journal != nil {
		if keep := app.cfg.Diagnostics.JournalKeep; keep > 0 {
			if _, err := app.journal.Prune(context.Background(), keep); err != nil {
				l.Warn("journal prune failed", slog.Any("err", err))
			}
		}
		_ = app.journal.Close()
		app.journal = nil
	}
	_ = applog.Close()
}
