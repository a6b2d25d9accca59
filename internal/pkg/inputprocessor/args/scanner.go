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

// Package args provides a table driven scanner over compiler command line arguments.
package args

import (
	"strings"
)

// Split splits a command line into arguments on single ASCII spaces.
//
// No quoting is understood: an argument with an embedded space becomes two arguments.
// Consecutive spaces produce empty arguments, which are kept so that a flag expecting
// a separate value still consumes exactly the next argument.
func Split(commandLine string) []string {
	return strings.Split(commandLine, " ")
}

// Scanner scans command line arguments.
// it scans args and gets (flag, args, value) in each NextResult call.
//
// for `-flagname`, it is recognized as flag by default,
// and it returns ("-flagname", ["-flagname"], nil).
//
// for `-flagnameflagvalue`, need to set "-flagname" in joined,
// and it returns ("-flagname", ["-flagnameflagvalue"], ["flagvalue"]).
//
// for `-flagname flagvalue`, need to set flags["-flagname"] = 1,
// and it returns ("-flagname", ["-flagname", "flagvalue"], ["flagvalue"]).
// The argument after the flag is consumed whatever it looks like, even if it
// is another flag. If the command line ends before the value, the flag is
// returned without values.
//
// for non-flag "parameter", it returns ("", ["parameter"], ["parameter"]).
//
// A flag only has the spellings listed for it: "-target" in flags does not
// make "-target=value" or "--target value" recognized.
type Scanner struct {
	// Args is remaining arguments.
	Args []string

	// Flags are map keyed by -flag, spelled as it appears on the command line,
	// and number of argments for the flag.
	// The flag requires additional value from args if value > 0.
	// The flag doesn't require additional value from args if value == 0
	Flags map[string]int

	// Joined are prefixes of flag that has value in the same arg.
	// Prefixes are tried in order and the first match wins.
	Joined []PrefixOption

	// flag normalization.
	Normalized map[string]string
}

// NextResult is a result of Scanner's Next operation
type NextResult struct {
	Args          []string
	NormalizedKey string
	OriginalKey   string
	Values        []string
	Joined        bool
}

// PrefixOption is option for joined flags.
type PrefixOption struct {
	Prefix  string
	NumArgs int
}

func newNextResult(normalizedKey, originalKey string, args, values []string, joined bool) *NextResult {
	return &NextResult{NormalizedKey: normalizedKey, OriginalKey: originalKey, Args: args, Values: values, Joined: joined}
}

// HasNext returns true if there is more args to process.
func (s *Scanner) HasNext() bool {
	return len(s.Args) > 0
}

// NextResult returns next flag.
// NormalizedKey is normalized flag,
// or empty string if not started with "-".
// OriginalKey is a key before the normalization
// Args are consumed arguments.
// Values are flag value if flag needs value (next arg in args) or
// Joined (rest after prefix in the arg).
func (s *Scanner) NextResult() *NextResult {
	flag := s.Args[0]
	normalizedFlag, values := s.normalizedFlag(flag), []string{}
	if numArgs, ok := s.Flags[flag]; ok {
		args := s.take(numArgs)
		if len(args) > 1 {
			values = args[1:]
		}
		return newNextResult(normalizedFlag, flag, args, values, false)
	}
	for _, f := range s.Joined {
		if strings.HasPrefix(flag, f.Prefix) {
			values = []string{strings.TrimPrefix(flag, f.Prefix)}
			args := s.take(f.NumArgs)
			values = append(values, args[1:]...)
			return newNextResult(s.normalizedFlag(f.Prefix), f.Prefix, args, values, true)
		}
	}
	args := s.take(0)
	if strings.HasPrefix(flag, "-") {
		return newNextResult(flag, flag, args, values, false)
	}
	return newNextResult("", "", args, args, false)
}

// take consumes the current argument plus up to numArgs following ones.
// numArgs < 0 consumes everything left.
func (s *Scanner) take(numArgs int) []string {
	n := numArgs + 1
	if numArgs < 0 || n > len(s.Args) {
		n = len(s.Args)
	}
	args := s.Args[:n]
	s.Args = s.Args[n:]
	return args
}

func (s *Scanner) normalizedFlag(flag string) string {
	if normalizedFlag, ok := s.Normalized[flag]; ok {
		return normalizedFlag
	}
	return flag
}
