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

// Package pathtranslator provides path translation functions.
package pathtranslator

import (
	"path/filepath"

	log "github.com/golang/glog"
)

// WorkingDir returns the absolute directory a command ran in. dir is the directory
// recorded for the command; if it is relative it is taken relative to baseDir. A
// relative or empty baseDir is itself taken relative to the process working directory.
// Output path is operating system defined file path.
func WorkingDir(baseDir, dir string) string {
	wd := dir
	if !filepath.IsAbs(dir) {
		wd = filepath.Join(baseDir, dir)
	}
	abs, err := filepath.Abs(wd)
	if err != nil {
		log.Warningf("Failed to make %v absolute: %v", wd, err)
		return filepath.Clean(wd)
	}
	return abs
}

// ListAbsToWorkingDir converts a list of paths that are either relative to workingDir or
// absolute, to absolute paths. Empty paths are dropped.
func ListAbsToWorkingDir(workingDir string, paths []string) []string {
	res := make([]string, 0, len(paths))
	for _, p := range paths {
		if abs := AbsToWorkingDir(workingDir, p); abs != "" {
			res = append(res, abs)
		}
	}
	return res
}

// AbsToWorkingDir converts a path relative to workingDir to an absolute, cleaned path.
// Absolute paths are returned unchanged.
// It returns empty string if path is empty.
func AbsToWorkingDir(workingDir, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workingDir, p)
}
