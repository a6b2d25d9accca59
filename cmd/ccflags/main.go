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

// Package main is the main package for the ccflags binary which collects the compiler
// flags of compilation databases into editor settings.
//
// Use this by running:
// $ ccflags --build_dir=out --settings_path=.vscode/settings.json
//
// Without --settings_path the C and C++ flag lists are printed to stdout as JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/bazelbuild/ccflags/internal/pkg/aggregator"
	"github.com/bazelbuild/ccflags/internal/pkg/cfgflag"
	"github.com/bazelbuild/ccflags/internal/pkg/compiledb"
	"github.com/bazelbuild/ccflags/internal/pkg/features"
	"github.com/bazelbuild/ccflags/internal/pkg/printer"
	"github.com/bazelbuild/ccflags/internal/pkg/settings"
	"github.com/bazelbuild/ccflags/pkg/version"

	"github.com/bazelbuild/remote-apis-sdks/go/pkg/moreflag"
	log "github.com/golang/glog"
)

var (
	compileCommands []string
	buildDir        = flag.String("build_dir", "", "Directory searched for compile_commands.json files when --compile_commands is not set. Defaults to --base_dir.")
	baseDir         = flag.String("base_dir", "", "Directory relative compile command directories are resolved against. Defaults to the current working directory.")
	settingsPath    = flag.String("settings_path", "", "Path of the settings JSON file to update. If empty, the flags are printed to stdout.")
	cFlagsKey       = flag.String("c_flags_key", settings.DefaultKeys.CFlags, "Settings key the C flags are written to.")
	cxxFlagsKey     = flag.String("cxx_flags_key", settings.DefaultKeys.CXXFlags, "Settings key the C++ flags are written to.")
	jobs            = flag.Int("jobs", runtime.NumCPU(), "Maximum number of compile commands processed in parallel.")
	colorize        = flag.String("color", "auto", "Control the output color mode; one of (off, on, auto)")
)

type collectOptions struct {
	paths    []string
	buildDir string
	baseDir  string
	jobs     int
	features *features.Config
	progress bool
}

func main() {
	defer log.Flush()
	flag.Var((*moreflag.StringListValue)(&compileCommands), "compile_commands", "Comma-separated list of compilation database paths.")
	cfgflag.Parse()
	version.PrintAndExitOnVersionFlag(true)
	if err := printer.SetColorMode(*colorize); err != nil {
		log.Warningf("Ignoring --color: %v", err)
		printer.Error(fmt.Sprintf("ERROR: %v", err))
	}
	cfgflag.LogAllFlags(1)

	bd := *baseDir
	if bd == "" {
		wd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Failed to get working directory: %v", err)
		}
		bd = wd
	}
	res, err := collect(context.Background(), collectOptions{
		paths:    compileCommands,
		buildDir: *buildDir,
		baseDir:  bd,
		jobs:     *jobs,
		features: features.GetConfig(),
		progress: *settingsPath != "",
	})
	if err != nil {
		log.Errorf("Failed to collect compiler flags: %v", err)
		printer.Fatal(fmt.Sprintf("Failed to collect compiler flags: %v", err))
	}

	keys := settings.Keys{CFlags: *cFlagsKey, CXXFlags: *cxxFlagsKey}
	if *settingsPath == "" {
		out, err := settings.Merge(nil, keys, res)
		if err != nil {
			log.Fatalf("Failed to encode compiler flags: %v", err)
		}
		if _, err := os.Stdout.Write(out); err != nil {
			log.Fatalf("Failed to write compiler flags: %v", err)
		}
		return
	}
	if res.Empty() {
		printer.Warning(fmt.Sprintf("No compiler flags found, %v is unchanged", *settingsPath))
		return
	}
	if err := settings.Update(*settingsPath, keys, res); err != nil {
		log.Errorf("Failed to update %v: %v", *settingsPath, err)
		printer.Fatal(fmt.Sprintf("Failed to update %v: %v", *settingsPath, err))
	}
	printer.Flags(*cFlagsKey, res.CFlags)
	printer.Flags(*cxxFlagsKey, res.CXXFlags)
	printer.Success(fmt.Sprintf("Updated %v", *settingsPath))
}

// collect loads the compilation databases, transforms their entries and aggregates the
// resulting records.
func collect(ctx context.Context, opts collectOptions) (*aggregator.Result, error) {
	paths := opts.paths
	if len(paths) == 0 {
		root := opts.buildDir
		if root == "" {
			root = opts.baseDir
		}
		found, err := compiledb.Discover(root)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no %v found under %v", compiledb.FileName, root)
		}
		log.Infof("Found %d compilation databases under %v", len(found), root)
		paths = found
	}
	entries, err := compiledb.LoadAll(paths)
	if err != nil {
		return nil, err
	}

	cfg := opts.features
	if cfg == nil {
		cfg = &features.Config{}
	}
	tOpts := compiledb.Options{
		Jobs:        opts.jobs,
		SkipInvalid: cfg.SkipInvalidEntries,
	}
	if opts.progress {
		advance, done := printer.StartFunc(fmt.Sprintf("Processing %d compile commands...", len(entries)), len(entries))
		defer done()
		var mu sync.Mutex
		tOpts.OnDone = func() {
			mu.Lock()
			defer mu.Unlock()
			advance(1)
		}
	}
	records, err := compiledb.TransformAll(ctx, entries, opts.baseDir, tOpts)
	if err != nil {
		return nil, err
	}
	if skipped := len(entries) - len(records); skipped > 0 {
		log.Warningf("Skipped %d invalid compile commands", skipped)
	}
	return aggregator.Aggregate(records, cfg.AggregatorOptions()), nil
}
