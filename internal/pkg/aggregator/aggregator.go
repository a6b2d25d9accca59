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

// Package aggregator folds compile command records into the deduplicated C and C++ flag
// lists of a whole project.
package aggregator

import (
	"strings"
	"sync"

	"github.com/bazelbuild/ccflags/internal/pkg/compilecmd"

	log "github.com/golang/glog"
	"github.com/google/uuid"
)

// Routing decides which language buckets a record contributes to.
type Routing int

const (
	// RouteAll adds every record to both the C and the C++ bucket, whatever its
	// language.
	RouteAll Routing = iota
	// RouteByLanguage adds C records to the C bucket and C++ records to the C++
	// bucket. Objective-C and unrecognized records only contribute preprocessor
	// flags to Result.PreprocessorFlags.
	RouteByLanguage
)

// String returns the flag spelling of the routing.
func (r Routing) String() string {
	switch r {
	case RouteByLanguage:
		return "language"
	default:
		return "all"
	}
}

// Options configure an Aggregator.
type Options struct {
	Routing Routing

	// DefaultCStandard is appended to the C bucket, e.g. "-std=c11", when no record
	// put a -std= flag there. Empty means no default.
	DefaultCStandard string

	// DefaultCXXStandard is the C++ counterpart of DefaultCStandard.
	DefaultCXXStandard string
}

// Result holds the flag lists of an aggregation pass. Each list is free of duplicates
// and keeps the order in which flags were first seen.
type Result struct {
	// PreprocessorFlags are the preprocessor flags of all records.
	PreprocessorFlags []string
	// CFlags are the preprocessor and C flags of the records routed to C.
	CFlags []string
	// CXXFlags are the preprocessor and C++ flags of the records routed to C++.
	CXXFlags []string
}

// Empty reports whether neither language bucket has flags.
func (r *Result) Empty() bool {
	return len(r.CFlags) == 0 && len(r.CXXFlags) == 0
}

// orderedSet is a list of strings that ignores repeated additions.
type orderedSet struct {
	list []string
	seen map[string]bool
}

func newOrderedSet() *orderedSet {
	return &orderedSet{list: []string{}, seen: map[string]bool{}}
}

func (s *orderedSet) add(flags ...string) {
	for _, f := range flags {
		if s.seen[f] {
			continue
		}
		s.seen[f] = true
		s.list = append(s.list, f)
	}
}

func (s *orderedSet) hasPrefix(prefix string) bool {
	for _, f := range s.list {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}

func (s *orderedSet) values() []string {
	return append([]string{}, s.list...)
}

// Aggregator accumulates records of one aggregation pass. It is safe for concurrent
// use, but the order of flags then depends on the order Add calls happen in.
type Aggregator struct {
	opts Options

	mu     sync.Mutex
	passID string
	count  int
	pp     *orderedSet
	c      *orderedSet
	cxx    *orderedSet
}

// New returns an empty Aggregator.
func New(opts Options) *Aggregator {
	a := &Aggregator{opts: opts}
	a.Reset()
	return a
}

// Reset clears the accumulated flags and starts a new pass.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.passID = uuid.New().String()
	a.count = 0
	a.pp = newOrderedSet()
	a.c = newOrderedSet()
	a.cxx = newOrderedSet()
	log.V(2).Infof("Aggregation pass %v started with routing %v", a.passID, a.opts.Routing)
}

// Add adds the flags of a record. Nil records are ignored.
func (a *Aggregator) Add(r *compilecmd.Record) {
	if r == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.count++
	a.pp.add(r.PreprocessorFlags...)
	toC, toCXX := true, true
	if a.opts.Routing == RouteByLanguage {
		toC, toCXX = r.Language == compilecmd.LangC, r.Language == compilecmd.LangCXX
	}
	if toC {
		a.c.add(r.PreprocessorFlags...)
		a.c.add(r.CFlags...)
	}
	if toCXX {
		a.cxx.add(r.PreprocessorFlags...)
		a.cxx.add(r.CXXFlags...)
	}
}

// Result returns the flags accumulated so far, with the default standards applied.
// The Aggregator is not modified.
func (a *Aggregator) Result() *Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	res := &Result{
		PreprocessorFlags: a.pp.values(),
		CFlags:            a.c.values(),
		CXXFlags:          a.cxx.values(),
	}
	if a.opts.DefaultCStandard != "" && !a.c.hasPrefix("-std=") {
		res.CFlags = append(res.CFlags, a.opts.DefaultCStandard)
	}
	if a.opts.DefaultCXXStandard != "" && !a.cxx.hasPrefix("-std=") {
		res.CXXFlags = append(res.CXXFlags, a.opts.DefaultCXXStandard)
	}
	log.V(1).Infof("Aggregation pass %v: %d records, %d C flags, %d C++ flags", a.passID, a.count, len(res.CFlags), len(res.CXXFlags))
	return res
}

// Aggregate folds records, in order, with a fresh Aggregator.
func Aggregate(records []*compilecmd.Record, opts Options) *Result {
	a := New(opts)
	for _, r := range records {
		a.Add(r)
	}
	return a.Result()
}
