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
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/robowrap/pkg/config"
	"github.com/walteh/robowrap/pkg/job"
	"github.com/walteh/robowrap/pkg/status"
	"github.com/walteh/robowrap/pkg/volume"
	"gitlab.com/tozd/go/errors"
)

// 🔧 RunnerOptions configures a Runner
type RunnerOptions struct {
	// Builder resolves job descriptions into jobs
	Builder *job.Builder
	// Gate checks safety flags before anything is copied
	Gate *job.Gate
	// Executor launches the copy tool
	Executor *Executor
	// DryRun resolves and checks every job without copying
	DryRun bool
	// OnResult, if set, is called after every job with its result
	OnResult func(status.Result)
}

// 🏃 Runner runs job files one after another
type Runner struct {
	builder  *job.Builder
	gate     *job.Gate
	executor *Executor
	dryRun   bool
	onResult func(status.Result)
	now      func() time.Time
}

// 🏭 NewRunner creates a runner with the given options
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Builder == nil {
		return nil, errors.Errorf("builder is required")
	}
	if opts.Gate == nil {
		return nil, errors.Errorf("gate is required")
	}
	if opts.Executor == nil {
		return nil, errors.Errorf("executor is required")
	}
	return &Runner{
		builder:  opts.Builder,
		gate:     opts.Gate,
		executor: opts.Executor,
		dryRun:   opts.DryRun,
		onResult: opts.OnResult,
		now:      time.Now,
	}, nil
}

// 🎯 Run loads, resolves, checks and executes a single job file. Problems with
// the job end up in the result. The returned error is reserved for failures
// that make every later job pointless, such as the volume query failing.
func (r *Runner) Run(ctx context.Context, file string) (status.Result, error) {
	start := r.now()
	res, err := r.run(ctx, file)
	res.Duration = r.now().Sub(start)

	if r.onResult != nil {
		r.onResult(res)
	}
	return res, err
}

func (r *Runner) run(ctx context.Context, file string) (status.Result, error) {
	res := status.Result{File: file}
	logger := zerolog.Ctx(ctx).With().Str("run_id", uuid.NewString()).Str("file", file).Logger()
	ctx = logger.WithContext(ctx)

	logger.Info().Msg("running job")

	info, err := os.Stat(file)
	if err == nil && !info.Mode().IsRegular() {
		err = errors.Errorf("%s is not a regular file", file)
	}
	if err != nil {
		logger.Error().Err(err).Msg("could not find job file")
		return fail(res, status.ReasonFileNotFound, err), nil
	}

	if config.GetParser(file) == nil {
		logger.Warn().Msg("ignoring file with unsupported extension")
		res.Status = status.StatusSkipped
		res.Reason = status.ReasonUnsupported
		return res, nil
	}

	desc, err := config.Load(ctx, file)
	if err != nil {
		reason := status.ReasonInternal
		switch {
		case errors.Is(err, fs.ErrPermission):
			reason = status.ReasonPermission
		case errors.Is(err, fs.ErrNotExist):
			reason = status.ReasonFileNotFound
		case errors.Is(err, config.ErrMalformed):
			reason = status.ReasonMalformed
		}
		logger.Error().Err(err).Str("reason", reason.String()).Msg("could not load job file")
		return fail(res, reason, err), nil
	}
	res.Job = desc.Name

	j, err := r.builder.Build(ctx, desc)
	if err != nil {
		if errors.Is(err, volume.ErrQuery) {
			logger.Error().Err(err).Msg("could not query mounted volumes")
			return fail(res, status.ReasonInternal, err), err
		}
		reason := classify(err)
		logger.Error().Err(err).Str("job", desc.Name).Str("reason", reason.String()).Msg("could not resolve job")
		return fail(res, reason, err), nil
	}

	if err := r.gate.Check(ctx, j); err != nil {
		logger.Error().Err(err).Str("job", j.Name()).Msg("safety flag missing, is the right device mounted?")
		return fail(res, status.ReasonSafetyFlag, err), nil
	}

	res.Command = r.executor.Command(j)

	ok, err := r.executor.Execute(ctx, j, r.dryRun)
	if !ok {
		if err == nil {
			err = errors.New("copy tool reported failure")
		}
		logger.Error().Err(err).Str("job", j.Name()).Msg("copy failed")
		return fail(res, status.ReasonExecution, err), nil
	}

	logger.Info().Str("job", j.Name()).Bool("dry_run", r.dryRun).Msg("job succeeded")
	res.Status = status.StatusSucceeded
	return res, nil
}

// 📚 RunBatch runs each file in order. It stops early only if the context is
// cancelled between jobs or Run reports a fatal error.
func (r *Runner) RunBatch(ctx context.Context, files []string) (*status.Report, error) {
	report := &status.Report{}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, errors.Errorf("batch cancelled: %w", err)
		}

		res, err := r.Run(ctx, file)
		report.Add(res)
		if err != nil {
			return report, errors.Errorf("running %s: %w", file, err)
		}
	}

	zerolog.Ctx(ctx).Debug().
		Int("succeeded", report.Succeeded()).
		Int("failed", report.Failed()).
		Int("skipped", report.Skipped()).
		Msg("batch finished")

	return report, nil
}

func fail(res status.Result, reason status.Reason, err error) status.Result {
	res.Status = status.StatusFailed
	res.Reason = reason
	res.Err = err
	return res
}

func classify(err error) status.Reason {
	var (
		validation *config.ValidationError
		notFound   *volume.DriveNotFoundError
		noSource   *job.SourceNotFoundError
	)
	switch {
	case errors.As(err, &validation):
		return status.ReasonValidation
	case errors.As(err, &notFound):
		return status.ReasonDriveNotFound
	case errors.As(err, &noSource):
		return status.ReasonSourceNotFound
	default:
		return status.ReasonInternal
	}
}
