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

package status

import (
	"fmt"
	"time"
)

// 📊 Status is the outcome of one job file
type Status int

const (
	StatusUnknown   Status = iota
	StatusSucceeded        // Job ran (or dry-ran) and the copy tool reported success
	StatusFailed           // Job failed at any stage
	StatusSkipped          // File was not a job file and was not run
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// 🏷️ Reason classifies why a job did not succeed
type Reason int

const (
	ReasonNone           Reason = iota
	ReasonFileNotFound          // Job file missing or not a regular file
	ReasonPermission            // Job file not readable
	ReasonUnsupported           // No parser for the job file extension
	ReasonMalformed             // Job file could not be parsed
	ReasonValidation            // Required job field missing
	ReasonDriveNotFound         // No mounted volume matched the criteria
	ReasonSourceNotFound        // Resolved source path does not exist
	ReasonSafetyFlag            // Safety flag file absent
	ReasonExecution             // Copy tool failed or could not be started
	ReasonInternal              // Anything else
)

// String returns a string representation of Reason
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonFileNotFound:
		return "file not found"
	case ReasonPermission:
		return "permission denied"
	case ReasonUnsupported:
		return "unsupported file"
	case ReasonMalformed:
		return "malformed job"
	case ReasonValidation:
		return "configuration problem"
	case ReasonDriveNotFound:
		return "drive not found"
	case ReasonSourceNotFound:
		return "source not found"
	case ReasonSafetyFlag:
		return "safety flag missing"
	case ReasonExecution:
		return "execution failed"
	default:
		return "internal error"
	}
}

// 📄 Result is the outcome of running one job file
type Result struct {
	File     string        // Job file path
	Job      string        // Job name, empty if the file never parsed
	Status   Status        // Final status
	Reason   Reason        // Why the job did not succeed
	Err      error         // Underlying error, nil on success
	Command  []string      // Copy tool argument vector, if one was built
	Duration time.Duration // Wall time spent on the job
}

// Diagnostic returns a one line human readable explanation
func (r Result) Diagnostic() string {
	name := r.File
	if r.Job != "" {
		name = fmt.Sprintf("%s (%s)", r.Job, r.File)
	}
	switch {
	case r.Status == StatusSucceeded:
		return fmt.Sprintf("%s: ok", name)
	case r.Err != nil:
		return fmt.Sprintf("%s: %s: %v", name, r.Reason, r.Err)
	default:
		return fmt.Sprintf("%s: %s", name, r.Reason)
	}
}

// 📋 Report collects the results of a batch in run order
type Report struct {
	Results []Result
}

// Add appends a result
func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
}

func (r *Report) count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Succeeded returns the number of jobs that succeeded
func (r *Report) Succeeded() int { return r.count(StatusSucceeded) }

// Failed returns the number of jobs that failed
func (r *Report) Failed() int { return r.count(StatusFailed) }

// Skipped returns the number of files that were not run
func (r *Report) Skipped() int { return r.count(StatusSkipped) }
