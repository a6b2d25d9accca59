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

// Package compiledb reads compile command databases (compile_commands.json) and
// transforms their entries into compile command records.
package compiledb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bazelbuild/ccflags/internal/pkg/compilecmd"

	log "github.com/golang/glog"
	"github.com/karrick/godirwalk"
	"golang.org/x/sync/errgroup"
)

// FileName is the name build systems give to compile command databases.
const FileName = "compile_commands.json"

// Load reads a compile command database and returns its entries in file order. Entries
// are not validated: an element that is not an object is returned as decoded and fails
// later, in TransformAll, on its own.
func Load(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []any
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode compile command database %v: %w", path, err)
	}
	log.V(1).Infof("Loaded %d compile commands from %v", len(entries), path)
	return entries, nil
}

// LoadAll loads every database in paths and concatenates their entries in order.
func LoadAll(paths []string) ([]any, error) {
	var all []any
	for _, p := range paths {
		entries, err := Load(p)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// Discover returns the paths of all compile command databases under root, sorted.
// Hidden directories such as .git are not searched.
func Discover(root string) ([]string, error) {
	root = filepath.Clean(root)
	var found []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				if path != root && len(de.Name()) > 1 && de.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if de.Name() == FileName {
				found = append(found, path)
			}
			return nil
		},
		Unsorted: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search %v for %v: %w", root, FileName, err)
	}
	sort.Strings(found)
	return found, nil
}

// Options configure TransformAll.
type Options struct {
	// Jobs is the maximum number of entries transformed at the same time. Values
	// below 1 mean no limit.
	Jobs int

	// SkipInvalid skips entries failing validation instead of failing the pass.
	SkipInvalid bool

	// OnDone, if set, is called once per entry after it was transformed or skipped.
	// It may be called concurrently.
	OnDone func()
}

// TransformAll transforms database entries. The returned records are in entry order;
// skipped entries have no record. Without SkipInvalid the first invalid entry fails the
// whole call with an error wrapping its *compilecmd.ValidationError.
func TransformAll(ctx context.Context, entries []any, baseDir string, opts Options) ([]*compilecmd.Record, error) {
	records := make([]*compilecmd.Record, len(entries))
	g, gCtx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, entry := range entries {
		if gCtx.Err() != nil {
			break
		}
		i, entry := i, entry
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if opts.OnDone != nil {
				defer opts.OnDone()
			}
			r, err := compilecmd.Transform(entry, baseDir)
			if err != nil {
				var verr *compilecmd.ValidationError
				if opts.SkipInvalid && errors.As(err, &verr) {
					log.Warningf("Skipping compile command entry %d: %v", i, err)
					return nil
				}
				return fmt.Errorf("invalid compile command entry %d: %w", i, err)
			}
			records[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := make([]*compilecmd.Record, 0, len(records))
	for _, r := range records {
		if r != nil {
			res = append(res, r)
		}
	}
	return res, nil
}
