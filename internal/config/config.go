/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user's launchpad configuration from a YAML file
// and applies environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"launchpad/internal/diag"
	"launchpad/internal/history"
	applog "launchpad/internal/log"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int               `yaml:"config_version"`
	History       HistoryConfig     `yaml:"history"`
	Diagnostics   DiagnosticsConfig `yaml:"diagnostics"`
	Logging       LoggingConfig     `yaml:"logging"`
	UI            UIConfig          `yaml:"ui"`
}

type HistoryConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

type DiagnosticsConfig struct {
	RingSize int `yaml:"ring_size"`
	// JournalPath enables the SQLite event journal when set.
	JournalPath string `yaml:"journal_path"`
	JournalKeep int    `yaml:"journal_keep"`
	AsyncQueue  int    `yaml:"async_queue"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type UIConfig struct {
	DefaultPageTitle string `yaml:"default_page_title"`
	// SeedFile is a sections JSON file loaded into the first page on startup.
	SeedFile string `yaml:"seed_file"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		History:       HistoryConfig{MaxEntries: history.MaxHistory},
		Diagnostics:   DiagnosticsConfig{RingSize: diag.DefaultRingSize, JournalKeep: 5000, AsyncQueue: diag.DefaultQueueSize},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
		UI:            UIConfig{DefaultPageTitle: "Home"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigFile  = "LPD_CONFIG"
	EnvMaxHistory  = "LPD_HISTORY_MAX"
	EnvJournalPath = "LPD_JOURNAL"
	EnvRingSize    = "LPD_DIAG_RING"
	EnvPageTitle   = "LPD_DEFAULT_PAGE"
	EnvLogLevel    = applog.EnvLevel
	EnvLogFormat   = applog.EnvFormat
	EnvLogSource   = applog.EnvSource
	EnvLogFile     = applog.EnvFile
)

// ConfigPath returns the per-user config file path. LPD_CONFIG wins, then
// $XDG_CONFIG_HOME, then the platform's usual location.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p, nil
	}
	var base string
	switch {
	case os.Getenv("XDG_CONFIG_HOME") != "":
		base = filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "launchpad")
	case runtime.GOOS == "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Launchpad")
	case runtime.GOOS == "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Launchpad")
	default:
		if home := os.Getenv("HOME"); home != "" {
			base = filepath.Join(home, ".config", "launchpad")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load for an explicit file. A missing file is not an error; a
// file that does not parse is, but the defaults are still returned.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	var loadErr error
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			loadErr = fmt.Errorf("parse %s: %w", path, err)
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		loadErr = fmt.Errorf("read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, loadErr
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

func SaveTo(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LogOptions converts the logging section for log.Init.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{Level: c.Logging.Level, Format: c.Logging.Format, AddSource: c.Logging.Source, File: c.Logging.File}
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.History.MaxEntries > 0 {
		dst.History.MaxEntries = src.History.MaxEntries
	}
	if src.Diagnostics.RingSize > 0 {
		dst.Diagnostics.RingSize = src.Diagnostics.RingSize
	}
	if strings.TrimSpace(src.Diagnostics.JournalPath) != "" {
		dst.Diagnostics.JournalPath = strings.TrimSpace(src.Diagnostics.JournalPath)
	}
	if src.Diagnostics.JournalKeep > 0 {
		dst.Diagnostics.JournalKeep = src.Diagnostics.JournalKeep
	}
	if src.Diagnostics.AsyncQueue > 0 {
		dst.Diagnostics.AsyncQueue = src.Diagnostics.AsyncQueue
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
	if strings.TrimSpace(src.UI.DefaultPageTitle) != "" {
		dst.UI.DefaultPageTitle = strings.TrimSpace(src.UI.DefaultPageTitle)
	}
	if strings.TrimSpace(src.UI.SeedFile) != "" {
		dst.UI.SeedFile = strings.TrimSpace(src.UI.SeedFile)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvMaxHistory)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.History.MaxEntries = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvRingSize)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Diagnostics.RingSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvJournalPath)); v != "" {
		cfg.Diagnostics.JournalPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPageTitle)); v != "" {
		cfg.UI.DefaultPageTitle = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env := map[string]string{
		"history.max_entries":      EnvMaxHistory,
		"diagnostics.ring_size":    EnvRingSize,
		"diagnostics.journal_path": EnvJournalPath,
		"ui.default_page_title":    EnvPageTitle,
		"logging.level":            EnvLogLevel,
		"logging.format":           EnvLogFormat,
		"logging.source":           EnvLogSource,
		"logging.file":             EnvLogFile,
	}[key]
	if env != "" && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}
