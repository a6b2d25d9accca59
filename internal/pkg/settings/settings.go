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

// Package settings writes aggregated compiler flags into an editor settings document.
//
// The document is a JSON object. Only the keys holding the C and C++ flag lists are
// replaced; every other key is kept.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bazelbuild/ccflags/internal/pkg/aggregator"

	log "github.com/golang/glog"
)

// Keys name the settings entries the flag lists are written to.
type Keys struct {
	CFlags   string
	CXXFlags string
}

// DefaultKeys are the keys read by the clang editor extension.
var DefaultKeys = Keys{
	CFlags:   "clang.cflags",
	CXXFlags: "clang.cxxflags",
}

// Merge returns doc with the flag lists of res stored under keys. An empty or blank
// doc is treated as an empty object; anything following the object is an error. Object keys of the result are sorted.
func Merge(doc []byte, keys Keys, res *aggregator.Result) ([]byte, error) {
	settings := map[string]any{}
	if len(bytes.TrimSpace(doc)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(doc))
		dec.UseNumber()
		if err := dec.Decode(&settings); err != nil {
			return nil, fmt.Errorf("failed to decode settings: %w", err)
		}
		var extra json.RawMessage
		if err := dec.Decode(&extra); err != io.EOF {
			return nil, fmt.Errorf("failed to decode settings: unexpected data after the settings object at offset %d", dec.InputOffset())
		}
		if settings == nil {
			settings = map[string]any{}
		}
	}
	settings[keys.CFlags] = res.CFlags
	settings[keys.CXXFlags] = res.CXXFlags
	return Encode(settings)
}

// Encode encodes v the way settings documents are written: indented by four spaces,
// without HTML escaping.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Update merges res into the settings file at path. A missing file and its parent
// directory are created. The file is not touched when res holds no flags.
func Update(path string, keys Keys, res *aggregator.Result) error {
	if res.Empty() {
		log.Infof("No compiler flags found, leaving %v unchanged", path)
		return nil
	}
	mode := fs.FileMode(0o644)
	doc, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		doc = nil
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if st, err := os.Stat(path); err == nil {
			mode = st.Mode().Perm()
		}
	}
	out, err := Merge(doc, keys, res)
	if err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}
	if err := os.WriteFile(path, out, mode); err != nil {
		return err
	}
	log.Infof("Wrote %d C flags and %d C++ flags to %v", len(res.CFlags), len(res.CXXFlags), path)
	return nil
}
