// Copyright 2023 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package buildtree creates build directory trees for tests.
package buildtree

import (
	"os"
	"path/filepath"
	"testing"
)

// Setup creates a temporary build root, removed when the test ends, and writes the
// given files under it. Keys are paths relative to the root.
func Setup(t *testing.T, files map[string]string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}
	AddFiles(t, root, files)
	return root
}

// AddFiles writes files with their content under root, creating parent directories.
func AddFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for f, content := range files {
		p := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("Failed to create directory %v under build root %v: %v", filepath.Dir(f), root, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write file %v under build root %v: %v", f, root, err)
		}
	}
}

// AddDirs creates the given directories under root.
func AddDirs(t *testing.T, root string, dirs []string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatalf("Failed to create directory %v under build root %v: %v", d, root, err)
		}
	}
}
