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

// Package langstd holds the language standards accepted by -std= for C and C++.
//
// The lists mirror clang's LangStandards.def and are closed: a -std= value that is
// not listed here is not a recognized standard.
package langstd

// Catalog is an ordered, closed list of language standard identifiers.
type Catalog []string

// C lists the recognized C language standards.
var C = Catalog{
	"c89",
	"c90",
	"iso9899:1990",
	"iso9899:199409",
	"gnu89",
	"gnu90",
	"c99",
	"iso9899:1999",
	"c9x",
	"iso9899:199x",
	"gnu99",
	"gnu9x",
	"c11",
	"iso9899:2011",
	"c1x",
	"iso9899:201x",
	"gnu11",
	"gnu1x",
	"c17",
	"iso9899:2017",
	"gnu17",
}

// CXX lists the recognized C++ language standards.
var CXX = Catalog{
	"c++98",
	"c++03",
	"gnu++98",
	"gnu++03",
	"c++11",
	"c++0x",
	"gnu++11",
	"gnu++0x",
	"c++14",
	"c++1y",
	"gnu++14",
	"gnu++1y",
	"c++17",
	"c++1z",
	"gnu++17",
	"gnu++1z",
	"c++2a",
	"gnu++2a",
}

// Contains reports whether std is in the catalog. Matching is exact and case-sensitive.
func (c Catalog) Contains(std string) bool {
	for _, s := range c {
		if s == std {
			return true
		}
	}
	return false
}
