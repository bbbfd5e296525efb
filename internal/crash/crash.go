/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a report file that describes the document being edited.
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
	"strings"
	"time"

	"pagecomposer/internal/document"
	applog "pagecomposer/internal/log"
	"pagecomposer/internal/version"
)

// EnvReportDir overrides where crash reports are written (default: the OS temp dir).
const EnvReportDir = "PCW_CRASH_DIR"

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Recover captures a panic, logs an error with stacktrace, writes a crash report including
// the state of st (if provided) and exits with code 2.
//
// Usage: defer crash.Recover(store)
func Recover(st *document.Store) {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, err := writeReport(ReportDir(), st, r, stack)
		if err != nil {
			l.Error("crash report failed", slog.Any("err", err))
		}

		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		exitFn(2)
	}
}

// ReportDir returns the directory crash reports go to.
func ReportDir() string {
	if d := strings.TrimSpace(os.Getenv(EnvReportDir)); d != "" {
		return d
	}
	return os.TempDir()
}

func writeReport(dir string, st *document.Store, panicVal any, stack []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("crash-%s.log", stamp))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Page Composer Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if st != nil {
		writeDocumentSection(&buf, st)
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}
	return path, nil
}

// writeDocumentSection summarizes the document and embeds its snapshot for post-mortem use.
func writeDocumentSection(buf *bytes.Buffer, st *document.Store) {
	snap := st.Snapshot()
	_, _ = fmt.Fprintf(buf, "\nDocument:\n")
	_, _ = fmt.Fprintf(buf, "  Revision: %d\n", snap.Revision)
	_, _ = fmt.Fprintf(buf, "  Pages: %d\n", len(snap.Pages))
	_, _ = fmt.Fprintf(buf, "  Elements: %d\n", len(snap.Elements))
	_, _ = fmt.Fprintf(buf, "  ActivePage: %s\n", snap.ActivePageID)
	_, _ = fmt.Fprintf(buf, "  Selected: %d\n", len(snap.SelectedElementIDs))
	if err := st.CheckInvariants(); err != nil {
		_, _ = fmt.Fprintf(buf, "  Invariants: VIOLATED (%v)\n", err)
	} else {
		_, _ = fmt.Fprintf(buf, "  Invariants: ok\n")
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(buf, "  Snapshot: unavailable (%v)\n", err)
		return
	}
	_, _ = fmt.Fprintf(buf, "\nSnapshot:\n%s\n", data)
}
