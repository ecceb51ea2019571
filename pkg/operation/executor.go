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

package operation

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/robowrap/pkg/job"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultTool is the copy tool launched when none is configured
	DefaultTool = "robocopy"
	// FailureThreshold is the lowest exit code robocopy uses for a failed copy.
	// Codes below it describe what was copied.
	FailureThreshold = 8
)

// ❌ ExecutionFailureError is returned when the copy tool exits at or above
// FailureThreshold
type ExecutionFailureError struct {
	ExitCode int
}

func (e *ExecutionFailureError) Error() string {
	return fmt.Sprintf("copy tool failed with exit code %d", e.ExitCode)
}

// 🔧 ExecutorOptions configures an Executor
type ExecutorOptions struct {
	// Tool is the executable name or path, DefaultTool when empty
	Tool string
	// Launcher starts the tool, an ExecLauncher when nil
	Launcher Launcher
	// Output receives the tool's stdout and stderr when the default launcher
	// is used. Nil discards it.
	Output io.Writer
	// Timeout bounds a single run of the tool. Zero waits forever.
	Timeout time.Duration
}

// ⚙️ Executor builds the copy tool command line for a job and runs it
type Executor struct {
	tool     string
	launcher Launcher
	timeout  time.Duration
}

// 🏭 NewExecutor creates an executor with the given options
func NewExecutor(opts ExecutorOptions) *Executor {
	tool := opts.Tool
	if tool == "" {
		tool = DefaultTool
	}
	launcher := opts.Launcher
	if launcher == nil {
		launcher = &ExecLauncher{Stdout: opts.Output, Stderr: opts.Output}
	}
	return &Executor{
		tool:     tool,
		launcher: launcher,
		timeout:  opts.Timeout,
	}
}

// 📝 Command returns the argument vector for j: the tool, source path,
// destination path, file types, then every option in order
func (e *Executor) Command(j *job.Job) []string {
	opts := j.Options()
	argv := make([]string, 0, 4+len(opts))
	argv = append(argv, e.tool, j.SrcPath(), j.DstPath(), j.FileTypes())
	return append(argv, opts...)
}

// 🏃 Execute runs the copy tool for j and reports whether it succeeded. A dry
// run reports success without launching anything.
func (e *Executor) Execute(ctx context.Context, j *job.Job, dryRun bool) (bool, error) {
	logger := zerolog.Ctx(ctx).With().Str("job", j.Name()).Logger()
	argv := e.Command(j)

	if dryRun {
		logger.Info().Strs("command", argv).Msg("dry run, not launching copy tool")
		return true, nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	logger.Debug().Strs("command", argv).Msg("launching copy tool")

	code, err := e.launcher.Launch(ctx, argv)
	if err != nil {
		return false, errors.Errorf("running copy tool: %w", err)
	}

	logger.Debug().Int("exit_code", code).Msg("copy tool exited")

	if code >= FailureThreshold {
		return false, errors.WithStack(&ExecutionFailureError{ExitCode: code})
	}
	return true, nil
}
