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

package config

import (
	"bytes"
	"context"
	"io"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return hasExt(filename, ".yaml", ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, filename string, data []byte) (*Job, error) {
	var job Job
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&job); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Errorf("parsing YAML: empty document")
		}
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &job, nil
}
