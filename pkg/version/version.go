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

// Package version is used to define and print the version of the ccflags binary.
//
// The release and commit are set at link time, e.g.
//
//	go build -ldflags "-X github.com/bazelbuild/ccflags/pkg/version.release=0.2.0 -X github.com/bazelbuild/ccflags/pkg/version.commit=$(git rev-parse HEAD)"
//
// Without a linked commit, the VCS revision recorded by the go tool is used.
package version

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/bazelbuild/ccflags/internal/pkg/cfgflag"

	log "github.com/golang/glog"
)

// commitLen is the number of commit hash characters shown in a version.
const commitLen = 12

var (
	// release is the semantic version of ccflags.
	release = "0.1.0"

	// commit is the git commit ccflags is built from.
	commit = ""

	// readBuildInfo is replaced in tests.
	readBuildInfo = debug.ReadBuildInfo

	versionFlag = flag.Bool("version", false, "If provided, print the current binary version and exit.")
)

// PrintAndExitOnVersionFlag checks if the --version flag is specified, and if it is, then
// it prints the current version and exits. If info is true, the version is also printed to
// the Info log.
func PrintAndExitOnVersionFlag(info bool) {
	cfgflag.Parse()
	v := CurrentVersion()
	if info {
		log.Infof("Version: %s\n", v)
	}
	if *versionFlag {
		fmt.Printf("ccflags %s\n", v)
		os.Exit(0)
	}
}

// CurrentVersion returns the release, with the abbreviated commit as build metadata
// when it is known, e.g. "0.1.0+1a2b3c4d5e6f".
func CurrentVersion() string {
	c := commit
	if c == "" {
		c = buildRevision()
	}
	if c == "" {
		return release
	}
	if len(c) > commitLen {
		c = c[:commitLen]
	}
	return release + "+" + c
}

// buildRevision returns the vcs.revision the go tool stamped into the binary, if any.
func buildRevision() string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
