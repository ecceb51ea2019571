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
)

// Formatter defines how job results and batch tallies are rendered
type Formatter interface {
	// FormatResult formats the outcome of one job
	FormatResult(res Result) string

	// FormatTally formats the batch summary
	FormatTally(report *Report) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatResult formats a job outcome with emojis
func (f *DefaultFormatter) FormatResult(res Result) string {
	switch res.Status {
	case StatusSucceeded:
		return fmt.Sprintf("✅ %s", res.Diagnostic())
	case StatusSkipped:
		return fmt.Sprintf("⏭️  Ignoring %s", res.File)
	case StatusFailed:
		if res.Reason == ReasonSafetyFlag {
			return fmt.Sprintf("🚩 %s", res.Diagnostic())
		}
		return fmt.Sprintf("❌ %s", res.Diagnostic())
	default:
		return fmt.Sprintf("❔ %s", res.Diagnostic())
	}
}

// FormatTally formats the final count of succeeded and failed jobs
func (f *DefaultFormatter) FormatTally(report *Report) string {
	msg := fmt.Sprintf("Finished: %d succeeded and %d failed", report.Succeeded(), report.Failed())
	if n := report.Skipped(); n > 0 {
		msg += fmt.Sprintf(" (%d ignored)", n)
	}
	return msg
}
