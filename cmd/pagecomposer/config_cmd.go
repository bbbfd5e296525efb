/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"pagecomposer/internal/config"
)

func runConfig(_ context.Context, cmd *cli.Command) error {
	cfg, path, err := setup(cmd)
	if err != nil {
		return err
	}
	return printConfig(cmd.Root().Writer, path, cfg)
}

func printConfig(w io.Writer, path string, cfg config.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# %s\n%s", path, data); err != nil {
		return err
	}
	for _, key := range config.OverrideKeys() {
		if env, ok := config.EnvOverrideFor(key); ok {
			_, _ = fmt.Fprintf(w, "# %s overridden by %s\n", key, env)
		}
	}
	return nil
}
