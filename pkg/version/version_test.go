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

package version

import (
	"regexp"
	"runtime/debug"
	"testing"
)

var expectedVersionFormat = regexp.MustCompile(`^\d+\.\d+\.\d+(\+[0-9a-f]{1,12})?$`)

func TestVersionInExpectedFormat(t *testing.T) {
	if v := CurrentVersion(); !expectedVersionFormat.MatchString(v) {
		t.Errorf("CurrentVersion()=%v, not in expected format %v", v, expectedVersionFormat)
	}
}

func TestCurrentVersion(t *testing.T) {
	oldRelease, oldCommit, oldRead := release, commit, readBuildInfo
	t.Cleanup(func() {
		release, commit, readBuildInfo = oldRelease, oldCommit, oldRead
	})
	stamped := func(rev string) func() (*debug.BuildInfo, bool) {
		return func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Settings: []debug.BuildSetting{
				{Key: "vcs", Value: "git"},
				{Key: "vcs.revision", Value: rev},
			}}, true
		}
	}
	noBuildInfo := func() (*debug.BuildInfo, bool) { return nil, false }

	tests := []struct {
		name      string
		commit    string
		buildInfo func() (*debug.BuildInfo, bool)
		want      string
	}{{
		name:      "linked commit",
		commit:    "abc123",
		buildInfo: stamped("fedcba9876543210"),
		want:      "1.2.3+abc123",
	}, {
		name:      "long linked commit",
		commit:    "0123456789abcdef0123",
		buildInfo: noBuildInfo,
		want:      "1.2.3+0123456789ab",
	}, {
		name:      "build info revision",
		buildInfo: stamped("fedcba9876543210"),
		want:      "1.2.3+fedcba987654",
	}, {
		name:      "no revision",
		buildInfo: func() (*debug.BuildInfo, bool) { return &debug.BuildInfo{}, true },
		want:      "1.2.3",
	}, {
		name:      "no build info",
		buildInfo: noBuildInfo,
		want:      "1.2.3",
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			release, commit, readBuildInfo = "1.2.3", tc.commit, tc.buildInfo
			if got := CurrentVersion(); got != tc.want {
				t.Errorf("CurrentVersion()=%v, want %v", got, tc.want)
			}
		})
	}
}
