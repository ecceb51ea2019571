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
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📍 Location describes one end of a job, the source or the destination.
// A nil field was not given in the job file.
type Location struct {
	Path   *string `yaml:"path" hcl:"path,optional"`     // Path, possibly containing placeholders
	Serial *string `yaml:"serial" hcl:"serial,optional"` // Volume serial number to locate the drive
	Name   *string `yaml:"name" hcl:"name,optional"`     // Volume label to locate the drive
	Flag   *string `yaml:"flag" hcl:"flag,optional"`     // Safety flag file template
}

// Clone returns a copy that shares no pointers with l
func (l *Location) Clone() Location {
	return Location{
		Path:   cloneString(l.Path),
		Serial: cloneString(l.Serial),
		Name:   cloneString(l.Name),
		Flag:   cloneString(l.Flag),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// HasCriteria reports whether the location identifies its volume by serial or label
func (l *Location) HasCriteria() bool {
	return l.Serial != nil || l.Name != nil
}

// ⚙️ Settings holds generic job settings
type Settings struct {
	TimeFormat *string `yaml:"time_format" hcl:"time_format,optional"`
}

// 🤖 Robocopy holds settings passed through to the copy tool
type Robocopy struct {
	Options *string `yaml:"options" hcl:"options,optional"` // Space delimited option tokens
	Log     *string `yaml:"log" hcl:"log,optional"`         // Log path template
	Files   *string `yaml:"files" hcl:"files,optional"`     // File type glob
}

// 📚 Job is a job description as authored in a job file
type Job struct {
	Name        string    `yaml:"name" hcl:"name,optional"`
	Source      *Location `yaml:"source" hcl:"source,block"`
	Destination *Location `yaml:"destination" hcl:"destination,block"`
	Settings    *Settings `yaml:"settings" hcl:"settings,block"`
	Robocopy    *Robocopy `yaml:"robocopy" hcl:"robocopy,block"`
}

// ValidationError reports a missing or invalid required job field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func required(field string) error {
	return errors.WithStack(&ValidationError{Field: field, Reason: "is required"})
}

// 🔍 Validate checks that every required field is present
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Name) == "" {
		return required("name")
	}
	if j.Source == nil {
		return required("source")
	}
	if j.Destination == nil {
		return required("destination")
	}
	if j.Source.Path == nil {
		return required("source.path")
	}
	if j.Destination.Path == nil {
		return required("destination.path")
	}
	return nil
}

// 📝 String returns a short description of the job
func (j *Job) String() string {
	src, dst := "?", "?"
	if j.Source != nil && j.Source.Path != nil {
		src = *j.Source.Path
	}
	if j.Destination != nil && j.Destination.Path != nil {
		dst = *j.Destination.Path
	}
	return fmt.Sprintf("%s: %s -> %s", j.Name, src, dst)
}
