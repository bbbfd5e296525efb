/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal.

// EditorConfig seeds a new document store and its editor-session defaults.
type EditorConfig struct {
	PageWidth    float64 `yaml:"page_width"`
	PageHeight   float64 `yaml:"page_height"`
	MarginTop    float64 `yaml:"margin_top"`
	MarginBottom float64 `yaml:"margin_bottom"`
	MarginLeft   float64 `yaml:"margin_left"`
	MarginRight  float64 `yaml:"margin_right"`
	GridSize     float64 `yaml:"grid_size"`
	GridEnabled  bool    `yaml:"grid_enabled"`
	Zoom         float64 `yaml:"zoom"`

	// Placement of new elements, in grid units (rows) and page units.
	TextRowOffset float64 `yaml:"text_row_offset"`
	ShapeAnchor   float64 `yaml:"shape_anchor"`
	FreePosition  float64 `yaml:"free_position"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Editor        EditorConfig  `yaml:"editor"`
	Logging       LoggingConfig `yaml:"logging"`
}

// fileConfig is the on-disk shape used when reading. Editor fields are pointers so an
// explicit 0 in the file is told apart from an absent key.
type fileConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Editor        fileEditor    `yaml:"editor"`
	Logging       LoggingConfig `yaml:"logging"`
}

type fileEditor struct {
	PageWidth     *float64 `yaml:"page_width"`
	PageHeight    *float64 `yaml:"page_height"`
	MarginTop     *float64 `yaml:"margin_top"`
	MarginBottom  *float64 `yaml:"margin_bottom"`
	MarginLeft    *float64 `yaml:"margin_left"`
	MarginRight   *float64 `yaml:"margin_right"`
	GridSize      *float64 `yaml:"grid_size"`
	GridEnabled   *bool    `yaml:"grid_enabled"`
	Zoom          *float64 `yaml:"zoom"`
	TextRowOffset *float64 `yaml:"text_row_offset"`
	ShapeAnchor   *float64 `yaml:"shape_anchor"`
	FreePosition  *float64 `yaml:"free_position"`
}

// Defaults returns the application defaults (A4 at 96 dpi).
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Editor: EditorConfig{
			PageWidth: 794, PageHeight: 1123,
			MarginTop: 60, MarginBottom: 60, MarginLeft: 60, MarginRight: 60,
			GridSize: 24, GridEnabled: false, Zoom: 1,
			TextRowOffset: 2, ShapeAnchor: 100, FreePosition: 100,
		},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath  = "PCW_CONFIG"
	EnvPageWidth   = "PCW_PAGE_WIDTH"
	EnvPageHeight  = "PCW_PAGE_HEIGHT"
	EnvMargin      = "PCW_MARGIN" // applies to all four sides
	EnvGridSize    = "PCW_GRID_SIZE"
	EnvGridEnabled = "PCW_GRID_ENABLED"
	EnvZoom        = "PCW_ZOOM"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "PCW_LOG_LEVEL"
	EnvLogFormat = "PCW_LOG_FORMAT"
	EnvLogSource = "PCW_LOG_SOURCE"
	EnvLogFile   = "PCW_LOG_FILE"
)

// ConfigPath returns the per-user config file path. PCW_CONFIG takes precedence.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "PageComposer")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "PageComposer")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "pagecomposer")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "pagecomposer")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path. A missing file yields defaults plus env overrides;
// a malformed file is an error.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg fileConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg to path, creating parent directories.
func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *fileConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	e, s := &dst.Editor, &src.Editor
	mergeFloat(&e.PageWidth, s.PageWidth)
	mergeFloat(&e.PageHeight, s.PageHeight)
	mergeFloat(&e.MarginTop, s.MarginTop)
	mergeFloat(&e.MarginBottom, s.MarginBottom)
	mergeFloat(&e.MarginLeft, s.MarginLeft)
	mergeFloat(&e.MarginRight, s.MarginRight)
	mergeFloat(&e.GridSize, s.GridSize)
	mergeFloat(&e.Zoom, s.Zoom)
	mergeFloat(&e.TextRowOffset, s.TextRowOffset)
	mergeFloat(&e.ShapeAnchor, s.ShapeAnchor)
	mergeFloat(&e.FreePosition, s.FreePosition)
	if s.GridEnabled != nil {
		e.GridEnabled = *s.GridEnabled
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

// mergeFloat copies v when the key was present in the file, zero included.
func mergeFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func envFloat(key string, dst *float64) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	envFloat(EnvPageWidth, &cfg.Editor.PageWidth)
	envFloat(EnvPageHeight, &cfg.Editor.PageHeight)
	if v := strings.TrimSpace(os.Getenv(EnvMargin)); v != "" {
		if m, err := strconv.ParseFloat(v, 64); err == nil && m >= 0 {
			cfg.Editor.MarginTop, cfg.Editor.MarginBottom = m, m
			cfg.Editor.MarginLeft, cfg.Editor.MarginRight = m, m
		}
	}
	envFloat(EnvGridSize, &cfg.Editor.GridSize)
	if v := strings.TrimSpace(os.Getenv(EnvGridEnabled)); v != "" {
		cfg.Editor.GridEnabled = parseBool(v)
	}
	envFloat(EnvZoom, &cfg.Editor.Zoom)
	// logging overrides
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

var envKeys = map[string][]string{
	"editor.page_width":    {EnvPageWidth},
	"editor.page_height":   {EnvPageHeight},
	"editor.margin_top":    {EnvMargin},
	"editor.margin_bottom": {EnvMargin},
	"editor.margin_left":   {EnvMargin},
	"editor.margin_right":  {EnvMargin},
	"editor.grid_size":     {EnvGridSize},
	"editor.grid_enabled":  {EnvGridEnabled},
	"editor.zoom":          {EnvZoom},
	"logging.level":        {EnvLogLevel},
	"logging.format":       {EnvLogFormat},
	"logging.source":       {EnvLogSource},
	"logging.file":         {EnvLogFile},
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	for _, name := range envKeys[key] {
		if os.Getenv(name) != "" {
			return name, true
		}
	}
	return "", false
}

// OverrideKeys lists the config keys that can be overridden from the environment.
func OverrideKeys() []string {
	return []string{
		"editor.page_width", "editor.page_height",
		"editor.margin_top", "editor.margin_bottom", "editor.margin_left", "editor.margin_right",
		"editor.grid_size", "editor.grid_enabled", "editor.zoom",
		"logging.level", "logging.format", "logging.source", "logging.file",
	}
}

// Validate validates the whole configuration.
func (c *AppConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.ConfigVersion, validation.Required, validation.Min(1)),
	); err != nil {
		return err
	}
	if err := c.Editor.Validate(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Validate validates the editor section. Margins must leave a positive body area.
func (c *EditorConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.PageWidth, validation.Required, validation.Min(1.0)),
		validation.Field(&c.PageHeight, validation.Required, validation.Min(1.0)),
		validation.Field(&c.MarginTop, validation.Min(0.0)),
		validation.Field(&c.MarginBottom, validation.Min(0.0)),
		validation.Field(&c.MarginLeft, validation.Min(0.0)),
		validation.Field(&c.MarginRight, validation.Min(0.0)),
		validation.Field(&c.GridSize, validation.Required, validation.Min(1.0)),
		validation.Field(&c.Zoom, validation.Required, validation.Min(0.01)),
		validation.Field(&c.TextRowOffset, validation.Min(0.0)),
		validation.Field(&c.ShapeAnchor, validation.Min(0.0)),
		validation.Field(&c.FreePosition, validation.Min(0.0)),
	); err != nil {
		return err
	}
	if c.MarginLeft+c.MarginRight >= c.PageWidth || c.MarginTop+c.MarginBottom >= c.PageHeight {
		return errors.New("margins leave no body area")
	}
	return nil
}

// Validate validates the logging section.
func (c *LoggingConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "warning", "error")),
		validation.Field(&c.Format, validation.In("console", "json")),
	)
}
