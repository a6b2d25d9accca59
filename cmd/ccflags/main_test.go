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

package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/bazelbuild/ccflags/internal/pkg/aggregator"
	"github.com/bazelbuild/ccflags/internal/pkg/buildtree"
	"github.com/bazelbuild/ccflags/internal/pkg/compilecmd"
	"github.com/bazelbuild/ccflags/internal/pkg/features"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const database = `[
    {
        "directory": "/b",
        "command": "gcc -D_DEBUG -I../src -std=gnu11 -c -o m.o m.c",
        "file": "/src/m.c"
    },
    {
        "directory": "/b",
        "command": "g++ -DCXX -I../src -std=gnu++14 -c -o n.o n.cpp",
        "file": "/src/n.cpp"
    }
]`

func TestCollect(t *testing.T) {
	tests := []struct {
		name     string
		features *features.Config
		want     *aggregator.Result
	}{{
		name: "all sources",
		want: &aggregator.Result{
			PreprocessorFlags: []string{"-D_DEBUG", "-I/src", "-DCXX"},
			CFlags:            []string{"-D_DEBUG", "-I/src", "-std=gnu11", "-DCXX"},
			CXXFlags:          []string{"-D_DEBUG", "-I/src", "-DCXX", "-std=gnu++14"},
		},
	}, {
		name:     "by language",
		features: &features.Config{RouteByLanguage: true},
		want: &aggregator.Result{
			PreprocessorFlags: []string{"-D_DEBUG", "-I/src", "-DCXX"},
			CFlags:            []string{"-D_DEBUG", "-I/src", "-std=gnu11"},
			CXXFlags:          []string{"-DCXX", "-I/src", "-std=gnu++14"},
		},
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := buildtree.Setup(t, map[string]string{"out/compile_commands.json": database})
			got, err := collect(context.Background(), collectOptions{
				buildDir: filepath.Join(root, "out"),
				baseDir:  root,
				jobs:     2,
				features: tc.features,
			})
			if err != nil {
				t.Fatalf("collect() failed: %v", err)
			}
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("collect() returned diff (-want +got): %s", diff)
			}
		})
	}
}

func TestCollectExplicitPaths(t *testing.T) {
	root := buildtree.Setup(t, map[string]string{
		"a/compile_commands.json": database,
		"b/compile_commands.json": `[{"directory": "b", "command": "clang -Iinc -std=c11 -c x.c", "file": "x.c"}]`,
		"c/compile_commands.json": `[{"directory": "/c", "command": "clang -DIGNORED -c y.c", "file": "y.c"}]`,
	})
	got, err := collect(context.Background(), collectOptions{
		paths:    []string{filepath.Join(root, "b", "compile_commands.json")},
		baseDir:  root,
		features: &features.Config{DefaultCXXStandard: "-std=c++1z"},
	})
	if err != nil {
		t.Fatalf("collect() failed: %v", err)
	}
	inc := "-I" + filepath.Join(root, "b", "inc")
	want := &aggregator.Result{
		PreprocessorFlags: []string{inc},
		CFlags:            []string{inc, "-std=c11"},
		CXXFlags:          []string{inc, "-std=c++1z"},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("collect() returned diff (-want +got): %s", diff)
	}
}

func TestCollectNoDatabases(t *testing.T) {
	root := buildtree.Setup(t, map[string]string{"src/main.c": "int main() {}"})
	if _, err := collect(context.Background(), collectOptions{baseDir: root}); err == nil {
		t.Errorf("collect() without compilation databases succeeded, want error")
	}
}

func TestCollectInvalidEntry(t *testing.T) {
	const db = `[
    {"directory": "/b", "command": "cc -DA -c a.c", "file": "a.c"},
    {"directory": "/b", "file": "b.c"}
]`
	root := buildtree.Setup(t, map[string]string{"compile_commands.json": db})

	_, err := collect(context.Background(), collectOptions{baseDir: root})
	var vErr *compilecmd.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("collect() = %v, want a *compilecmd.ValidationError", err)
	}
	if vErr.Field != compilecmd.FieldCommand {
		t.Errorf("collect() failed on field %q, want %q", vErr.Field, compilecmd.FieldCommand)
	}

	got, err := collect(context.Background(), collectOptions{
		baseDir:  root,
		features: &features.Config{SkipInvalidEntries: true},
	})
	if err != nil {
		t.Fatalf("collect() with skipped invalid entries failed: %v", err)
	}
	want := &aggregator.Result{
		PreprocessorFlags: []string{"-DA"},
		CFlags:            []string{"-DA"},
		CXXFlags:          []string{"-DA"},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("collect() returned diff (-want +got): %s", diff)
	}
}
