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

// Package compilecmd turns compile command database entries into the compiler flags
// editor tooling needs.
//
// An entry is one object of a compile_commands.json file. Transforming it scans the
// command with the clangparser scanners, makes include directories absolute, and
// guesses the source language from the file extension.
package compilecmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/bazelbuild/ccflags/internal/pkg/inputprocessor/clangparser"
	"github.com/bazelbuild/ccflags/internal/pkg/pathtranslator"
)

// Language is the source language of a translation unit.
type Language string

const (
	// LangUnknown is used for files whose extension is not recognized.
	LangUnknown Language = ""
	// LangC is used for .c files.
	LangC Language = "c"
	// LangCXX is used for .cc, .cxx and .cpp files.
	LangCXX Language = "c++"
	// LangObjC is used for .m files.
	LangObjC Language = "objc"
)

var extLanguages = map[string]Language{
	".c":   LangC,
	".cc":  LangCXX,
	".cxx": LangCXX,
	".cpp": LangCXX,
	".m":   LangObjC,
}

// Required entry fields, in the order they are validated.
const (
	FieldDirectory = "directory"
	FieldCommand   = "command"
	FieldFile      = "file"
)

// ValidationError is returned for an entry missing one of the required string fields,
// or holding a value of another type in it.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("compile command must contain string '%s' field", e.Field)
}

// Entry is a validated compile command database entry.
type Entry struct {
	// Directory is the working directory of the compilation.
	Directory string
	// Command is the compile command, arguments separated by single spaces.
	Command string
	// File is the translation unit.
	File string
}

// NewEntry validates a decoded compile command value. Keys other than directory,
// command and file are ignored. A value that is not an object, such as a string or
// null element of the database, fails on the directory field.
func NewEntry(obj any) (*Entry, error) {
	m, _ := obj.(map[string]any)
	var vals [3]string
	for i, field := range []string{FieldDirectory, FieldCommand, FieldFile} {
		v, ok := m[field].(string)
		if !ok {
			return nil, &ValidationError{Field: field}
		}
		vals[i] = v
	}
	return &Entry{Directory: vals[0], Command: vals[1], File: vals[2]}, nil
}

// DecodeEntry decodes a single JSON encoded compile command and validates it.
func DecodeEntry(data []byte) (*Entry, error) {
	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to decode compile command: %w", err)
	}
	return NewEntry(obj)
}

// Record holds the flags distilled from one compile command.
type Record struct {
	// Language is guessed from the extension of the file. It does not affect which
	// flags are collected.
	Language Language

	// PreprocessorFlags are -D<macro> flags followed by -I<dir> flags. Include
	// directories are absolute.
	PreprocessorFlags []string

	// CFlags are -std=, --sysroot= and -target <triple>, in that order, as
	// understood by the C scanner.
	CFlags []string

	// CXXFlags are -std=, --sysroot=, -target <triple> and -stdlib=, in that order,
	// as understood by the C++ scanner.
	CXXFlags []string

	// ObjCFlags is always empty.
	ObjCFlags []string
}

// Transform validates a decoded compile command value and transforms it.
// Relative entry directories are taken relative to baseDir, or to the process
// working directory if baseDir is empty.
func Transform(obj any, baseDir string) (*Record, error) {
	e, err := NewEntry(obj)
	if err != nil {
		return nil, err
	}
	return e.Transform(baseDir), nil
}

// Transform scans the entry command and builds its Record.
func (e *Entry) Transform(baseDir string) *Record {
	pp := clangparser.ScanPreprocessor(e.Command)
	c := clangparser.ScanC(e.Command)
	cxx := clangparser.ScanCXX(e.Command)

	r := &Record{
		Language:          Classify(e.File),
		PreprocessorFlags: make([]string, 0, len(pp.MacroDefines)+len(pp.IncludePaths)),
		CFlags:            compilerFlags(c.LangStandard, c.SystemRoot, c.CrossTarget),
		CXXFlags:          compilerFlags(cxx.LangStandard, cxx.SystemRoot, cxx.CrossTarget),
		ObjCFlags:         []string{},
	}
	for _, m := range pp.MacroDefines {
		r.PreprocessorFlags = append(r.PreprocessorFlags, "-D"+m)
	}
	wd := pathtranslator.WorkingDir(baseDir, e.Directory)
	for _, dir := range pathtranslator.ListAbsToWorkingDir(wd, pp.IncludePaths) {
		r.PreprocessorFlags = append(r.PreprocessorFlags, "-I"+dir)
	}
	if cxx.StdLibrary != "" {
		r.CXXFlags = append(r.CXXFlags, "-stdlib="+cxx.StdLibrary)
	}
	return r
}

// compilerFlags renders the flags shared by C and C++. The target is always written
// in the two argument form, whichever form the command used.
func compilerFlags(std, sysroot, target string) []string {
	res := []string{}
	if std != "" {
		res = append(res, "-std="+std)
	}
	if sysroot != "" {
		res = append(res, "--sysroot="+sysroot)
	}
	if target != "" {
		res = append(res, "-target", target)
	}
	return res
}

// Classify returns the language of file from its extension. The comparison is case
// sensitive, so main.C is LangUnknown. A leading dot of the file name does not start
// an extension.
func Classify(file string) Language {
	base := filepath.Base(file)
	ext := filepath.Ext(base)
	if ext == base {
		return LangUnknown
	}
	return extLanguages[ext]
}
