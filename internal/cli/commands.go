/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"encoding/json"
	"fmt"

	"launchpad/internal/replay"
	"launchpad/internal/ui"
	"launchpad/internal/version"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "launchpad", version.String())
			return err
		},
	}
}

func newReplayCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Apply a scripted edit session and print the resulting dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := replay.ParseFile(args[0])
			if err != nil {
				return err
			}
			s, err := app.newStore()
			if err != nil {
				return err
			}
			rep, runErr := replay.Run(s, sc)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(s.Pages()); err != nil {
					return err
				}
			} else {
				fmt.Fprint(out, ui.RenderTree(s.Pages(), s.CurrentPageID(), ui.PlainStyles()))
				fmt.Fprintf(out, "\n%d/%d steps applied, history %d/%d\n",
					rep.Applied(), len(sc.Steps), s.HistoryIndex()+1, len(s.History()))
			}
			return runErr
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the resulting pages as JSON")
	return cmd
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and rearrange the dashboard in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newStore()
			if err != nil {
				return err
			}
			p := ui.Params{Store: s}
			if termenv.EnvNoColor() {
				plain := ui.PlainStyles()
				p.Styles = &plain
			}
			_, err = tea.NewProgram(ui.New(p), tea.WithAltScreen()).Run()
			return err
		},
	}
}
