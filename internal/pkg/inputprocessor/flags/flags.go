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

// Package flags provides structs for holding the compiler flags recognized on a command line.
package flags

// PreprocessorArgs is the in-memory representation of the preprocessor flags found in a
// compile command.
type PreprocessorArgs struct {
	// IncludePaths are the -I<dir> values in command line order, as written.
	// Directories added with -isystem or with the two argument -I <dir> form are not
	// included.
	IncludePaths []string

	// MacroDefines are the -D<macro> values in command line order, e.g. "FOO" or
	// "FOO=1". Shell expansions in values are not evaluated.
	MacroDefines []string
}

// CArgs is the in-memory representation of the C compiler flags found in a compile
// command. Every field is empty when the flag was not found.
type CArgs struct {
	// LangStandard is the -std= value, only set if it is a known C standard.
	LangStandard string

	// SystemRoot is the --sysroot= value.
	SystemRoot string

	// CrossTarget is the target triple given with -target <triple> or --target=<triple>.
	CrossTarget string
}

// CXXArgs is the in-memory representation of the C++ compiler flags found in a compile
// command. Every field is empty when the flag was not found.
type CXXArgs struct {
	// LangStandard is the -std= value, only set if it is a known C++ standard.
	LangStandard string

	// SystemRoot is the --sysroot= value.
	SystemRoot string

	// CrossTarget is the target triple given with -target <triple> or --target=<triple>.
	CrossTarget string

	// StdLibrary is the -stdlib= value.
	StdLibrary string
}
