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

package args

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func scanAll(s *Scanner) []*NextResult {
	var got []*NextResult
	for s.HasNext() {
		got = append(got, s.NextResult())
	}
	return got
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{{
		name: "single spaces",
		line: "gcc -c foo.c",
		want: []string{"gcc", "-c", "foo.c"},
	}, {
		name: "double space keeps empty argument",
		line: "gcc  -c",
		want: []string{"gcc", "", "-c"},
	}, {
		name: "quotes are not understood",
		line: `-DMSG="a b"`,
		want: []string{`-DMSG="a`, `b"`},
	}, {
		name: "empty",
		line: "",
		want: []string{""},
	}}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if diff := cmp.Diff(test.want, Split(test.line)); diff != "" {
				t.Errorf("Split(%q) returned diff (-want +got): %s", test.line, diff)
			}
		})
	}
}

func TestScanner(t *testing.T) {
	args := Split("-I include-dir -Iother-include-dir -target target-name --target=other-target -O @rspfile foo.cc")
	s := &Scanner{
		Args: args,
		Flags: map[string]int{
			"-target": 1,
		},
		Joined: []PrefixOption{
			{Prefix: "--target="},
			{Prefix: "-I"},
		},
		Normalized: map[string]string{
			"--target=": "-target",
		},
	}
	want := []*NextResult{
		{
			NormalizedKey: "-I",
			OriginalKey:   "-I",
			Args:          []string{"-I"},
			Values:        []string{""},
			Joined:        true,
		},
		{
			Args:   []string{"include-dir"},
			Values: []string{"include-dir"},
		},
		{
			NormalizedKey: "-I",
			OriginalKey:   "-I",
			Args:          []string{"-Iother-include-dir"},
			Values:        []string{"other-include-dir"},
			Joined:        true,
		},
		{
			NormalizedKey: "-target",
			OriginalKey:   "-target",
			Args:          []string{"-target", "target-name"},
			Values:        []string{"target-name"},
		},
		{
			NormalizedKey: "-target",
			OriginalKey:   "--target=",
			Args:          []string{"--target=other-target"},
			Values:        []string{"other-target"},
			Joined:        true,
		},
		{
			NormalizedKey: "-O",
			OriginalKey:   "-O",
			Args:          []string{"-O"},
			Values:        []string{},
		},
		{
			Args:   []string{"@rspfile"},
			Values: []string{"@rspfile"},
		},
		{
			Args:   []string{"foo.cc"},
			Values: []string{"foo.cc"},
		},
	}
	if diff := cmp.Diff(want, scanAll(s)); diff != "" {
		t.Errorf("scan %q: -want +got %s", args, diff)
	}
}

func TestScannerValueConsumedUnconditionally(t *testing.T) {
	args := Split("-target -c -o x.o")
	s := &Scanner{
		Args:  args,
		Flags: map[string]int{"-target": 1},
	}
	want := []*NextResult{
		{
			NormalizedKey: "-target",
			OriginalKey:   "-target",
			Args:          []string{"-target", "-c"},
			Values:        []string{"-c"},
		},
		{
			NormalizedKey: "-o",
			OriginalKey:   "-o",
			Args:          []string{"-o"},
			Values:        []string{},
		},
		{
			Args:   []string{"x.o"},
			Values: []string{"x.o"},
		},
	}
	if diff := cmp.Diff(want, scanAll(s)); diff != "" {
		t.Errorf("scan %q: -want +got %s", args, diff)
	}
}

func TestScannerMissingValue(t *testing.T) {
	args := Split("-c -target")
	s := &Scanner{
		Args:  args,
		Flags: map[string]int{"-target": 1},
	}
	want := []*NextResult{
		{
			NormalizedKey: "-c",
			OriginalKey:   "-c",
			Args:          []string{"-c"},
			Values:        []string{},
		},
		{
			NormalizedKey: "-target",
			OriginalKey:   "-target",
			Args:          []string{"-target"},
			Values:        []string{},
		},
	}
	if diff := cmp.Diff(want, scanAll(s)); diff != "" {
		t.Errorf("scan %q: -want +got %s", args, diff)
	}
}

func TestScannerSpellingsAreExact(t *testing.T) {
	args := Split("--target x -target=y")
	s := &Scanner{
		Args:       args,
		Flags:      map[string]int{"-target": 1},
		Joined:     []PrefixOption{{Prefix: "--target="}},
		Normalized: map[string]string{"--target=": "-target"},
	}
	for _, res := range scanAll(s) {
		if res.NormalizedKey == "-target" {
			t.Errorf("scan %q: got -target result %+v, want none", args, res)
		}
	}
}
