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

	"github.com/rs/zerolog"
	"github.com/walteh/robowrap/pkg/config"
	"github.com/walteh/robowrap/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// SafetyFlagMissingError is returned when a location's flag file is absent.
// It usually means the wrong physical device is mounted under the drive.
type SafetyFlagMissingError struct {
	Location string // "source" or "destination"
	Flag     string // expanded flag path that was checked
}

func (e *SafetyFlagMissingError) Error() string {
	return fmt.Sprintf("could not find %s safety flag: %s", e.Location, e.Flag)
}

// 🚦 Gate checks the optional safety flag files of a job
type Gate struct {
	subst *text.Substituter
}

// 🏭 NewGate creates a gate expanding flag templates with subst
func NewGate(subst *text.Substituter) *Gate {
	if subst == nil {
		subst = text.NewSubstituter()
	}
	return &Gate{subst: subst}
}

// CheckFlag reports whether the flag file of loc exists as a regular file.
// A location without a flag always passes. The expanded flag path is
// returned for diagnostics.
func (g *Gate) CheckFlag(loc config.Location, drive, path string) (bool, string) {
	if loc.Flag == nil {
		return true, ""
	}

	flag := g.subst.Expand(*loc.Flag, text.Values{
		text.Drive: drive,
		text.Path:  path,
	})

	info, err := os.Stat(flag)
	if err != nil {
		return false, flag
	}
	return info.Mode().IsRegular(), flag
}

// 🔒 Check verifies the source flag, then the destination flag
func (g *Gate) Check(ctx context.Context, j *Job) error {
	logger := zerolog.Ctx(ctx)

	checks := []struct {
		which string
		loc   config.Location
		drive string
		path  string
	}{
		{"source", j.source, j.srcDrive, j.srcPath},
		{"destination", j.destination, j.dstDrive, j.dstPath},
	}

	for _, c := range checks {
		ok, flag := g.CheckFlag(c.loc, c.drive, c.path)
		if flag != "" {
			logger.Debug().Str("location", c.which).Str("flag", flag).Bool("found", ok).Msg("checked safety flag")
		}
		if !ok {
			return errors.WithStack(&SafetyFlagMissingError{Location: c.which, Flag: flag})
		}
	}

	return nil
}
