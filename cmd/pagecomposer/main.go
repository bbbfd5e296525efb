/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Command pagecomposer is a developer harness around the document store: it runs the
// example editing scenario, prints the effective configuration and can follow config
// changes live.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"pagecomposer/internal/config"
	"pagecomposer/internal/document"
	"pagecomposer/internal/domain"
	applog "pagecomposer/internal/log"
	"pagecomposer/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "pagecomposer",
		Usage:   "Page composer document store harness",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: per-user config dir)",
				Sources: cli.EnvVars(config.EnvConfigPath),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(_ context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintln(cmd.Root().Writer, version.String())
					return err
				},
			},
			{
				Name:  "demo",
				Usage: "Run the example editing scenario and print the resulting document",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Print the snapshot as JSON"},
				},
				Action: runDemo,
			},
			{
				Name:   "config",
				Usage:  "Print the effective configuration",
				Action: runConfig,
			},
			{
				Name:   "watch",
				Usage:  "Hold a document open and apply editor settings from the config file as it changes",
				Action: runWatch,
			},
		},
	}
}

// setup loads the configuration and initializes logging from it.
func setup(cmd *cli.Command) (config.AppConfig, string, error) {
	path := cmd.String("config")
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return config.Defaults(), "", err
		}
		path = p
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return cfg, path, fmt.Errorf("failed to load config: %w", err)
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return cfg, path, fmt.Errorf("invalid config %s: %w", path, err)
	}
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	applog.WithComponent("cli").Debug("config loaded", slog.String("path", path))
	return cfg, path, nil
}

// storeConfig maps the editor section onto the store's configuration.
func storeConfig(e config.EditorConfig) document.Config {
	return document.Config{
		PageWidth:  e.PageWidth,
		PageHeight: e.PageHeight,
		Margins: &domain.Margins{
			Top: e.MarginTop, Bottom: e.MarginBottom, Left: e.MarginLeft, Right: e.MarginRight,
		},
		GridSize:      e.GridSize,
		GridEnabled:   e.GridEnabled,
		Zoom:          e.Zoom,
		TextRowOffset: domain.Ptr(e.TextRowOffset),
		ShapeAnchor:   domain.Ptr(e.ShapeAnchor),
		FreePosition:  domain.Ptr(e.FreePosition),
	}
}
