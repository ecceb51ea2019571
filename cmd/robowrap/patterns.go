// Copyright 2025 walteh LLC
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

package main

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/robowrap/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🔍 expandPatterns turns job arguments into a sorted list of unique paths.
// An argument without glob syntax that matches nothing is kept as is, so the
// runner can report it as missing.
func expandPatterns(ctx context.Context, patterns []string) ([]string, error) {
	logger := log.FromContext(ctx)

	seen := make(map[string]struct{})
	files := []string{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Errorf("bad pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			if hasMeta(pattern) {
				logger.Warningf("pattern %s matched no files", pattern)
				continue
			}
			matches = []string{pattern}
		}

		for _, m := range matches {
			m = filepath.Clean(m)
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}

	slices.Sort(files)
	return files, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
