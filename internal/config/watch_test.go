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
	"context"
	"testing"
	"time"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	p := isolate(t)
	if err := SaveFile(p, Defaults()); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan AppConfig, 4)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, p, func(c AppConfig) { got <- c }) }()

	// Give the watcher time to register before the write.
	time.Sleep(100 * time.Millisecond)
	cfg := Defaults()
	cfg.Editor.GridEnabled = true
	cfg.Editor.GridSize = 16
	if err := SaveFile(p, cfg); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	select {
	case c := <-got:
		if !c.Editor.GridEnabled || c.Editor.GridSize != 16 {
			t.Fatalf("reloaded config mismatch: %#v", c.Editor)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no reload observed")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Watch did not stop on cancel")
	}
}

func TestWatchSkipsInvalidConfig(t *testing.T) {
	p := isolate(t)
	if err := SaveFile(p, Defaults()); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan AppConfig, 4)
	go func() { _ = Watch(ctx, p, func(c AppConfig) { got <- c }) }()

	time.Sleep(100 * time.Millisecond)
	bad := Defaults()
	bad.Logging.Format = "xml"
	if err := SaveFile(p, bad); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	select {
	case c := <-got:
		t.Fatalf("invalid config should not be delivered: %#v", c)
	case <-time.After(500 * time.Millisecond):
	}
}
