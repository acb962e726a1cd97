/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"launchpad/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errNoJournal = errors.New("no journal configured (use --journal or diagnostics.journal_path)")

func newDiagCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag",
		Short: "Inspect the diagnostics journal",
	}

	var limit int
	tail := &cobra.Command{
		Use:   "tail",
		Short: "Print the most recent events, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.journal == nil {
				return errNoJournal
			}
			evs, err := app.journal.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, ev := range evs {
				fmt.Fprintf(out, "%s %-5s %s", ev.Timestamp.Local().Format(time.DateTime), strings.ToUpper(string(ev.Level)), ev.Message)
				keys := make([]string, 0, len(ev.Metadata))
				for k := range ev.Metadata {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(out, " %s=%v", k, ev.Metadata[k])
				}
				fmt.Fprintf(out, " cid=%s\n", ev.CorrelationID)
			}
			return nil
		},
	}
	tail.Flags().IntVarP(&limit, "limit", "n", 20, "Number of events to show")

	var keep int
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.journal == nil {
				return errNoJournal
			}
			n, err := app.journal.Prune(cmd.Context(), keep)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %d events\n", n)
			return err
		},
	}
	prune.Flags().IntVar(&keep, "keep", 1000, "Number of events to keep")

	cmd.AddCommand(tail, prune)
	return cmd
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
	}
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := yaml.Marshal(app.cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(b); err != nil {
				return err
			}
			for _, key := range []string{
				"history.max_entries", "diagnostics.ring_size", "diagnostics.journal_path",
				"ui.default_page_title", "logging.level", "logging.format", "logging.source", "logging.file",
			} {
				if env, ok := config.EnvOverrideFor(key); ok {
					fmt.Fprintf(out, "# %s overridden by %s\n", key, env)
				}
			}
			return nil
		},
	}
	cmd.AddCommand(show)
	return cmd
}
