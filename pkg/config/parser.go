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
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrMalformed marks a job file whose content could not be parsed
	ErrMalformed = errors.New("malformed job description")

	// ErrUnsupported marks a job file with no registered parser
	ErrUnsupported = errors.New("unsupported job file extension")
)

// 🔌 Parser is the interface for job file parsers
type Parser interface {
	// 📝 Parse parses a job description from bytes
	Parse(ctx context.Context, filename string, data []byte) (*Job, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// 🎯 Load reads and parses a job file. It does not validate the result.
func Load(ctx context.Context, path string) (*Job, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading job file")

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("%w: %s", ErrUnsupported, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading job file: %w", err)
	}

	job, err := p.Parse(ctx, path, data)
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrMalformed, err)
	}

	return job, nil
}
