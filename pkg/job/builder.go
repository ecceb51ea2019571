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

package job

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/robowrap/pkg/config"
	"github.com/walteh/robowrap/pkg/text"
	"github.com/walteh/robowrap/pkg/volume"
	"gitlab.com/tozd/go/errors"
)

// 🧭 DriveResolver finds the current mount path of a volume
type DriveResolver interface {
	Resolve(ctx context.Context, c volume.Criteria) (string, error)
}

// SourceNotFoundError is returned when the resolved source path does not exist
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source doesn't exist: %s", e.Path)
}

// 🏗️ Builder turns job descriptions into resolved jobs
type Builder struct {
	resolver DriveResolver
	subst    *text.Substituter
	now      func() time.Time
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithClock sets the source of the job's captured time
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

// WithSubstituter sets the placeholder engine
func WithSubstituter(s *text.Substituter) BuilderOption {
	return func(b *Builder) {
		b.subst = s
	}
}

// 🏭 NewBuilder creates a builder that resolves volume criteria with resolver
func NewBuilder(resolver DriveResolver, opts ...BuilderOption) *Builder {
	b := &Builder{
		resolver: resolver,
		subst:    text.NewSubstituter(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// 🔨 Build validates desc and resolves it into a Job. Either every field of
// the returned job is populated or an error is returned.
func (b *Builder) Build(ctx context.Context, desc *config.Job) (*Job, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("job", desc.Name).Logger()

	// defaults
	j := &Job{
		name:        desc.Name,
		source:      desc.Source.Clone(),
		destination: desc.Destination.Clone(),
		time:        b.now(),
		timeFormat:  DefaultTimeFormat,
		options:     []string{},
		fileTypes:   DefaultFileTypes,
	}

	if desc.Settings != nil && desc.Settings.TimeFormat != nil {
		j.timeFormat = *desc.Settings.TimeFormat
	}

	var err error
	j.srcPath, j.srcDrive, err = b.resolveLocation(ctx, "source", j.source, j.Timestamp())
	if err != nil {
		return nil, err
	}
	j.dstPath, j.dstDrive, err = b.resolveLocation(ctx, "destination", j.destination, j.Timestamp())
	if err != nil {
		return nil, err
	}

	// the destination may not exist yet, the copy tool creates it
	if _, err := os.Stat(j.srcPath); err != nil {
		return nil, errors.WithStack(&SourceNotFoundError{Path: j.srcPath})
	}

	if r := desc.Robocopy; r != nil {
		if r.Options != nil {
			j.options = strings.Fields(*r.Options)
		}
		if r.Log != nil {
			j.logPath = b.subst.Expand(*r.Log, j.Values())
			j.options = append(j.options, LogOptionPrefix+j.logPath)
			logger.Debug().Str("log", j.logPath).Msg("log will be saved")
		}
		if r.Files != nil {
			j.fileTypes = *r.Files
		}
	}

	logger.Debug().
		Str("src_path", j.srcPath).
		Str("dst_path", j.dstPath).
		Str("src_drive", j.srcDrive).
		Str("dst_drive", j.dstDrive).
		Strs("options", j.options).
		Msg("resolved job")

	return j, nil
}

// resolveLocation expands the location path and finds its drive. Volume
// criteria win over any drive written in the path itself.
func (b *Builder) resolveLocation(ctx context.Context, which string, loc config.Location, timestamp string) (path, drive string, err error) {
	path = b.subst.Expand(*loc.Path, text.Values{text.Timestamp: timestamp})

	if !loc.HasCriteria() {
		return path, SplitDrive(path), nil
	}

	if b.resolver == nil {
		return "", "", errors.Errorf("resolving %s drive: no volume resolver configured", which)
	}

	drive, err = b.resolver.Resolve(ctx, volume.Criteria{Serial: loc.Serial, Name: loc.Name})
	if err != nil {
		return "", "", errors.Errorf("resolving %s drive: %w", which, err)
	}

	return JoinDrive(drive, path), drive, nil
}
