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
	"slices"
	"time"

	"github.com/walteh/robowrap/pkg/config"
	"github.com/walteh/robowrap/pkg/text"
)

const (
	// DefaultTimeFormat is close to ISO 8601 but without colons, which are not
	// allowed in Windows file names
	DefaultTimeFormat = "%Y-%m-%dT%H%M%S%z"

	// DefaultFileTypes copies every file
	DefaultFileTypes = "*.*"

	// LogOptionPrefix introduces the copy tool's log file option
	LogOptionPrefix = "/LOG:"
)

// 📦 Job is a fully resolved job, ready to execute. It is built once by a
// Builder and never modified afterwards.
type Job struct {
	name        string
	source      config.Location
	destination config.Location

	srcPath  string
	dstPath  string
	srcDrive string
	dstDrive string

	time       time.Time
	timeFormat string
	options    []string
	fileTypes  string
	logPath    string
}

func (j *Job) Name() string                 { return j.name }
func (j *Job) Source() config.Location      { return j.source }
func (j *Job) Destination() config.Location { return j.destination }
func (j *Job) SrcPath() string              { return j.srcPath }
func (j *Job) DstPath() string              { return j.dstPath }
func (j *Job) SrcDrive() string             { return j.srcDrive }
func (j *Job) DstDrive() string             { return j.dstDrive }
func (j *Job) Time() time.Time              { return j.time }
func (j *Job) TimeFormat() string           { return j.timeFormat }
func (j *Job) FileTypes() string            { return j.fileTypes }
func (j *Job) LogPath() string              { return j.logPath }
func (j *Job) Options() []string            { return slices.Clone(j.options) }
func (j *Job) Timestamp() string            { return text.FormatTimestamp(j.time, j.timeFormat) }

// Values returns the derived placeholder values of the job
func (j *Job) Values() text.Values {
	return text.Values{
		text.SrcPath:   j.srcPath,
		text.DstPath:   j.dstPath,
		text.SrcDrive:  j.srcDrive,
		text.DstDrive:  j.dstDrive,
		text.Timestamp: j.Timestamp(),
	}
}
