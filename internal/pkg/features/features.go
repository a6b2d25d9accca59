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

// Package features defines features enabled conditionally via flags.
package features

import (
	"flag"

	"github.com/bazelbuild/ccflags/internal/pkg/aggregator"
)

// Config is the feature configuration in use.
type Config struct {
	// RouteByLanguage restricts the C flag list to flags of .c translation units and
	// the C++ flag list to flags of C++ translation units. By default every
	// translation unit contributes to both lists.
	RouteByLanguage bool

	// DefaultCStandard is added to the C flags, e.g. "-std=c11", when the compile
	// commands do not select a standard.
	DefaultCStandard string

	// DefaultCXXStandard is added to the C++ flags, e.g. "-std=c++1z", when the
	// compile commands do not select a standard.
	DefaultCXXStandard string

	// SkipInvalidEntries skips compile command entries missing a required field
	// instead of failing the whole run.
	SkipInvalidEntries bool
}

var config = &Config{}

// GetConfig retrieves the singleton instance of the features config.
func GetConfig() *Config {
	return config
}

// AggregatorOptions returns the aggregator options selected by the config.
func (c *Config) AggregatorOptions() aggregator.Options {
	opts := aggregator.Options{
		DefaultCStandard:   c.DefaultCStandard,
		DefaultCXXStandard: c.DefaultCXXStandard,
	}
	if c.RouteByLanguage {
		opts.Routing = aggregator.RouteByLanguage
	}
	return opts
}

func init() {
	flag.BoolVar(&GetConfig().RouteByLanguage, "route_by_language", false, "Only add flags of C sources to the C flags and flags of C++ sources to the C++ flags. By default every source contributes to both.")
	flag.StringVar(&GetConfig().DefaultCStandard, "default_c_std", "", "Flag added to the C flags when no compile command selects a C standard, e.g. -std=c11.")
	flag.StringVar(&GetConfig().DefaultCXXStandard, "default_cxx_std", "", "Flag added to the C++ flags when no compile command selects a C++ standard, e.g. -std=c++1z.")
	flag.BoolVar(&GetConfig().SkipInvalidEntries, "skip_invalid", false, "Skip compile command entries missing a directory, command or file instead of failing.")
}
