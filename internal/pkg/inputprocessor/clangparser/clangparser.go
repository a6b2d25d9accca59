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

// Package clangparser provides functionalities to understand the gcc/clang flags of a
// compile command that matter to editor tooling.
//
// Scanning is permissive: arguments that are not spelled exactly as one of the
// recognized flags, and -std= values that are not known standards, are ignored.
// None of the functions here return errors.
package clangparser

import (
	"strings"

	"github.com/bazelbuild/ccflags/internal/pkg/inputprocessor/args"
	"github.com/bazelbuild/ccflags/internal/pkg/inputprocessor/flags"
	"github.com/bazelbuild/ccflags/internal/pkg/langstd"
)

// Table is the set of flag spellings a scanner recognizes.
type Table struct {
	Flags      map[string]int
	Joined     []args.PrefixOption
	Normalized map[string]string
}

var (
	// PreprocessorTable recognizes -I<dir> and -D<macro>. The two argument
	// form -I <dir> is not recognized.
	PreprocessorTable = Table{
		Joined: []args.PrefixOption{
			{Prefix: "-I"},
			{Prefix: "-D"},
		},
	}

	// CTable recognizes -std=, --sysroot=, -target <triple> and --target=<triple>.
	// --target <triple> and -target=<triple> are not accepted by clang and are not
	// recognized here either.
	CTable = Table{
		Flags: map[string]int{
			"-target": 1,
		},
		Joined: []args.PrefixOption{
			{Prefix: "-std="},
			{Prefix: "--sysroot="},
			{Prefix: "--target="},
		},
		Normalized: map[string]string{
			"--target=": "-target",
		},
	}

	// CXXTable is CTable plus -stdlib=.
	CXXTable = Table{
		Flags: map[string]int{
			"-target": 1,
		},
		Joined: []args.PrefixOption{
			{Prefix: "-std="},
			{Prefix: "--sysroot="},
			{Prefix: "-stdlib="},
			{Prefix: "--target="},
		},
		Normalized: map[string]string{
			"--target=": "-target",
		},
	}
)

// New returns arguments scanner over the command line for the given table.
func New(commandLine string, t Table) *args.Scanner {
	return &args.Scanner{
		Args:       args.Split(commandLine),
		Flags:      t.Flags,
		Joined:     t.Joined,
		Normalized: t.Normalized,
	}
}

// ScanPreprocessor returns the include paths and macro definitions of the command line.
// Flags without a value, such as a lone -I, are dropped.
func ScanPreprocessor(commandLine string) *flags.PreprocessorArgs {
	res := &flags.PreprocessorArgs{
		IncludePaths: []string{},
		MacroDefines: []string{},
	}
	s := New(commandLine, PreprocessorTable)
	for s.HasNext() {
		nextRes := s.NextResult()
		if !nextRes.Joined {
			continue
		}
		v := strings.TrimSpace(nextRes.Values[0])
		if v == "" {
			continue
		}
		switch nextRes.NormalizedKey {
		case "-I":
			res.IncludePaths = append(res.IncludePaths, v)
		case "-D":
			res.MacroDefines = append(res.MacroDefines, v)
		}
	}
	return res
}

// ScanC returns the C compiler flags of the command line.
func ScanC(commandLine string) *flags.CArgs {
	state := State{Standards: langstd.C}
	scan(commandLine, CTable, &state)
	return &flags.CArgs{
		LangStandard: state.LangStandard,
		SystemRoot:   state.SystemRoot,
		CrossTarget:  state.CrossTarget,
	}
}

// ScanCXX returns the C++ compiler flags of the command line.
func ScanCXX(commandLine string) *flags.CXXArgs {
	state := State{Standards: langstd.CXX}
	scan(commandLine, CXXTable, &state)
	return &flags.CXXArgs{
		LangStandard: state.LangStandard,
		SystemRoot:   state.SystemRoot,
		CrossTarget:  state.CrossTarget,
		StdLibrary:   state.StdLibrary,
	}
}

func scan(commandLine string, t Table, state *State) {
	s := New(commandLine, t)
	for s.HasNext() {
		state.HandleCompilerFlag(s.NextResult())
	}
}

// State holds the compiler flags found so far while scanning a command line.
// A later occurrence of a flag replaces an earlier one.
type State struct {
	// Standards are the values accepted for -std=.
	Standards langstd.Catalog

	LangStandard string
	SystemRoot   string
	CrossTarget  string
	StdLibrary   string
}

// HandleCompilerFlag updates the State with the passed scanner result.
func (s *State) HandleCompilerFlag(nextRes *args.NextResult) {
	if !nextRes.Joined {
		// -target <triple>. The argument after -target is the triple, whatever it
		// looks like. A -target ending the command line leaves the state as is.
		if nextRes.OriginalKey == "-target" && len(nextRes.Values) > 0 {
			s.CrossTarget = strings.TrimSpace(nextRes.Values[0])
		}
		return
	}
	v := nextRes.Values[0]
	switch nextRes.NormalizedKey {
	case "-std=":
		if s.Standards.Contains(v) {
			s.LangStandard = v
		}
	case "--sysroot=":
		s.SystemRoot = v
	case "-stdlib=":
		s.StdLibrary = v
	case "-target":
		s.CrossTarget = v
	}
}
