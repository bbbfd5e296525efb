/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pagecomposer/internal/document"
	"pagecomposer/internal/domain"
)

func TestWriteReportWithoutDocument(t *testing.T) {
	dir := t.TempDir()
	path, err := writeReport(dir, nil, "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "Page Composer Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") || !strings.Contains(s, "stacktrace") {
		t.Fatalf("panic content missing: %s", s)
	}
	if strings.Contains(s, "Document:") {
		t.Fatalf("document section should be absent without a store")
	}
}

func TestWriteReportSummarizesDocument(t *testing.T) {
	st := document.NewStore(document.Config{})
	st.AddPage()
	st.AddElement(st.Snapshot().ActivePageID, domain.ElementRect)

	path, err := writeReport(t.TempDir(), st, "kaboom", []byte("stack"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	b, _ := os.ReadFile(path)
	s := string(b)
	for _, want := range []string{"Pages: 2", "Elements: 3", "Invariants: ok", `"activePageId"`} {
		if !strings.Contains(s, want) {
			t.Fatalf("report missing %q:\n%s", want, s)
		}
	}
}

func TestReportDirFromEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	t.Setenv(EnvReportDir, dir)
	if got := ReportDir(); got != dir {
		t.Fatalf("ReportDir = %q, want %q", got, dir)
	}
	t.Setenv(EnvReportDir, "")
	if got := ReportDir(); got != os.TempDir() {
		t.Fatalf("ReportDir default = %q", got)
	}
}

// TestRecover_Panicking ensures Recover handles a panic, writes a report and
// does not terminate the test process due to injected exitFn.
func TestRecover_Panicking(t *testing.T) {
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r)
	}()

	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	dir := t.TempDir()
	t.Setenv(EnvReportDir, dir)
	st := document.NewStore(document.Config{})

	func() {
		defer Recover(st)
		panic("boom")
	}()

	files, _ := os.ReadDir(dir)
	var found string
	for _, f := range files {
		if strings.HasPrefix(f.Name(), "crash-") && strings.HasSuffix(f.Name(), ".log") {
			found = filepath.Join(dir, f.Name())
			break
		}
	}
	if found == "" {
		t.Fatalf("expected crash report file in %s", dir)
	}
	b, err := os.ReadFile(found)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(b), "Panic: boom") || !strings.Contains(string(b), "Pages: 1") {
		t.Fatalf("report content: %s", string(b))
	}
	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
}
