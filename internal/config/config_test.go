/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv neutralises overrides inherited from the developer's shell.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvMaxHistory, EnvJournalPath, EnvRingSize, EnvPageTitle, EnvLogLevel, EnvLogFormat, EnvLogSource, EnvLogFile} {
		t.Setenv(k, "")
	}
}

func TestConfigPathPrecedence(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := ConfigPath()
	if err != nil || p != filepath.Join("/xdg", "launchpad", "config.yaml") {
		t.Fatalf("ConfigPath() = %q, %v", p, err)
	}
	t.Setenv(EnvConfigFile, "/explicit/lp.yaml")
	if p, _ := ConfigPath(); p != "/explicit/lp.yaml" {
		t.Fatalf("LPD_CONFIG should win, got %q", p)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "none.yaml"))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.History.MaxEntries != 50 || cfg.UI.DefaultPageTitle != "Home" || cfg.Diagnostics.RingSize != 1000 {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	t.Setenv(EnvConfigFile, path)
	cfg := Defaults()
	cfg.History.MaxEntries = 20
	cfg.Diagnostics.JournalPath = "/tmp/lp.sqlite"
	cfg.Logging.Source = true
	cfg.UI.DefaultPageTitle = "Start"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, cfg)
	}
}

func TestLoadFromBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("history: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg.History.MaxEntries != 50 {
		t.Fatalf("defaults should still be returned")
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = " DEBUG "
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/lp.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/lp.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestMergeKeepsDefaultsForZeroValues(t *testing.T) {
	dst := Defaults()
	mergeInto(&dst, &AppConfig{})
	if dst.History.MaxEntries != 50 || dst.Diagnostics.AsyncQueue == 0 || dst.UI.DefaultPageTitle != "Home" {
		t.Fatalf("zero values should not clobber defaults: %#v", dst)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv(EnvMaxHistory, "10")
	t.Setenv(EnvRingSize, "not-a-number")
	t.Setenv(EnvJournalPath, "/var/lp.sqlite")
	t.Setenv(EnvPageTitle, "Dash")
	t.Setenv(EnvLogLevel, "ERROR")
	t.Setenv(EnvLogSource, "yes")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.History.MaxEntries != 10 || cfg.Diagnostics.RingSize != 1000 || cfg.Diagnostics.JournalPath != "/var/lp.sqlite" {
		t.Fatalf("unexpected overrides: %#v", cfg)
	}
	if cfg.UI.DefaultPageTitle != "Dash" || cfg.Logging.Level != "error" || !cfg.Logging.Source {
		t.Fatalf("unexpected overrides: %#v", cfg)
	}
	if env, ok := EnvOverrideFor("history.max_entries"); !ok || env != EnvMaxHistory {
		t.Fatalf("EnvOverrideFor(history.max_entries) = %q, %v", env, ok)
	}
	if _, ok := EnvOverrideFor("logging.file"); ok {
		t.Fatalf("logging.file is not overridden")
	}
	if _, ok := EnvOverrideFor("unknown.key"); ok {
		t.Fatalf("unknown keys are never overridden")
	}
}

func TestLogOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Logging.File = "/tmp/x.log"
	o := cfg.LogOptions()
	if o.Level != "info" || o.Format != "console" || o.File != "/tmp/x.log" {
		t.Fatalf("unexpected log options: %#v", o)
	}
}
