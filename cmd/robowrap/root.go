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
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/robowrap/cmd/robowrap/opts"
	"github.com/walteh/robowrap/pkg/job"
	"github.com/walteh/robowrap/pkg/log"
	"github.com/walteh/robowrap/pkg/operation"
	"github.com/walteh/robowrap/pkg/status"
	"github.com/walteh/robowrap/pkg/text"
	"github.com/walteh/robowrap/pkg/volume"
	"gitlab.com/tozd/go/errors"
)

// ErrNoJobs is returned when neither job patterns nor --drives were given
var ErrNoJobs = errors.New("no job files given")

// 🎮 Handler runs one invocation of the command
type Handler struct {
	opts opts.RootOpts

	stdout   io.Writer
	stderr   io.Writer
	lister   volume.Lister
	launcher operation.Launcher
}

// 🏭 NewCommand creates the root command wired to the host
func NewCommand() *cobra.Command {
	return newCommand(&Handler{
		stdout: os.Stdout,
		stderr: os.Stderr,
		lister: volume.NewHostLister(),
	})
}

func newCommand(h *Handler) *cobra.Command {
	info := GetVersionInfo()

	cmd := &cobra.Command{
		Use:   "robowrap [flags] [job files or patterns...]",
		Short: "Run robocopy jobs described in job files",
		Long: `robowrap runs copy jobs described in YAML or HCL job files.

Drives can be located by volume serial or label instead of a fixed letter,
paths may use $src_drive$, $dst_drive$, $timestamp$ and allow-listed
environment variables, and an optional safety flag file must exist on a
volume before anything is copied to or from it.

Patterns support ** and are expanded before any job runs.`,
		Version:       info.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !h.opts.Drives {
				_ = cmd.Usage()
				return ErrNoJobs
			}
			return h.Run(cmd.Context(), args)
		},
	}
	cmd.SetVersionTemplate(FormatVersion(info))
	cmd.SetOut(h.stdout)
	cmd.SetErr(h.stderr)

	flags := cmd.Flags()
	flags.BoolVarP(&h.opts.DryRun, "dry-run", "d", false, "resolve and check every job without copying")
	flags.CountVarP(&h.opts.Verbose, "verbose", "v", "increase log verbosity (-v debug, -vv trace and copy tool output)")
	flags.BoolVar(&h.opts.Drives, "drives", false, "list mounted drives with their serial and name, then exit")
	flags.DurationVar(&h.opts.Timeout, "timeout", 0, "kill the copy tool after this long (0 waits forever)")
	flags.StringVar(&h.opts.Tool, "tool", operation.DefaultTool, "copy tool to launch")

	return cmd
}

// 🏃 Run lists drives and runs the jobs matched by patterns
func (h *Handler) Run(ctx context.Context, patterns []string) error {
	if err := h.opts.Validate(); err != nil {
		return err
	}

	logger := log.New(h.stdout, h.stderr, h.opts.Level())
	ctx = logger.WithContext(ctx)

	dir := volume.NewDirectory(h.lister)

	if h.opts.Drives {
		if err := printDrives(ctx, dir, h.stdout); err != nil {
			return errors.Errorf("listing drives: %w", err)
		}
		return nil
	}

	files, err := expandPatterns(ctx, patterns)
	if err != nil {
		return errors.Errorf("expanding job patterns: %w", err)
	}

	var output io.Writer
	if h.opts.PassThrough() {
		output = h.stdout
	}

	subst := text.NewSubstituter()
	onResult := func(res status.Result) {
		logger.LogResult(ctx, res)
	}

	runner, err := operation.NewRunner(operation.RunnerOptions{
		Builder: job.NewBuilder(volume.NewResolver(dir), job.WithSubstituter(subst)),
		Gate:    job.NewGate(subst),
		Executor: operation.NewExecutor(operation.ExecutorOptions{
			Tool:     h.opts.Tool,
			Launcher: h.launcher,
			Output:   output,
			Timeout:  h.opts.Timeout,
		}),
		DryRun:   h.opts.DryRun,
		OnResult: onResult,
	})
	if err != nil {
		return errors.Errorf("creating runner: %w", err)
	}

	header := "running jobs"
	if h.opts.DryRun {
		header += " (dry run)"
	}
	logger.Header(header)

	if h.opts.DryRun {
		logger.Warningf("--dry-run given, %s will not be launched", h.opts.Tool)
	}
	logger.Infof("found %d job file(s) to run", len(files))

	zerolog.Ctx(ctx).Debug().Strs("files", files).Msg("expanded job patterns")

	report, err := runner.RunBatch(ctx, files)
	logger.LogReport(ctx, report)
	if err != nil {
		return err
	}

	return nil
}
