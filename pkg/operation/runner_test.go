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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/robowrap/pkg/job"
	"github.com/walteh/robowrap/pkg/status"
	"github.com/walteh/robowrap/pkg/text"
	"github.com/walteh/robowrap/pkg/volume"
	"gitlab.com/tozd/go/errors"
)

// 🔧 MockLister is a mock implementation of volume.Lister
type MockLister struct {
	mock.Mock
}

func (m *MockLister) ListVolumes(ctx context.Context) ([]volume.Volume, error) {
	args := m.Called(ctx)
	vols, _ := args.Get(0).([]volume.Volume)
	return vols, args.Error(1)
}

type runnerFixture struct {
	runner   *Runner
	launcher *MockLauncher
	lister   *MockLister
	results  []status.Result
}

func newRunnerFixture(t *testing.T, dryRun bool) *runnerFixture {
	t.Helper()
	f := &runnerFixture{
		launcher: new(MockLauncher),
		lister:   new(MockLister),
	}

	noEnv := text.NewSubstituter(text.WithLookup(func(string) (string, bool) { return "", false }))
	resolver := volume.NewResolver(volume.NewDirectory(f.lister))

	runner, err := NewRunner(RunnerOptions{
		Builder:  job.NewBuilder(resolver, job.WithSubstituter(noEnv)),
		Gate:     job.NewGate(noEnv),
		Executor: NewExecutor(ExecutorOptions{Launcher: f.launcher}),
		DryRun:   dryRun,
		OnResult: func(res status.Result) { f.results = append(f.results, res) },
	})
	require.NoError(t, err, "creating runner")
	f.runner = runner
	return f
}

// loc renders a YAML location block with the given path and extra keys
func loc(path string, extra ...string) string {
	s := fmt.Sprintf("  path: '%s'\n", path)
	for _, e := range extra {
		s += "  " + e + "\n"
	}
	return s
}

func jobYAML(name, src, dst, extra string) string {
	return fmt.Sprintf("name: %s\nsource:\n%sdestination:\n%s%s", name, src, dst, extra)
}

func writeFile(t *testing.T, dir, file, body string) string {
	t.Helper()
	path := filepath.Join(dir, file)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNewRunnerRequiresParts(t *testing.T) {
	_, err := NewRunner(RunnerOptions{})
	assert.Error(t, err)

	_, err = NewRunner(RunnerOptions{Builder: job.NewBuilder(nil)})
	assert.Error(t, err)

	_, err = NewRunner(RunnerOptions{Builder: job.NewBuilder(nil), Gate: job.NewGate(nil)})
	assert.Error(t, err)
}

func TestRunSuccess(t *testing.T) {
	f := newRunnerFixture(t, false)
	dir := t.TempDir()
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "backup")
	file := writeFile(t, dir, "photos.yaml", jobYAML("photos", loc(src), loc(dst), "robocopy:\n  options: /MIR\n"))

	f.launcher.On("Launch", mock.Anything, []string{DefaultTool, src, dst, job.DefaultFileTypes, "/MIR"}).Return(1, nil)

	res, err := f.runner.Run(testContext(), file)
	require.NoError(t, err)
	assert.Equal(t, status.StatusSucceeded, res.Status)
	assert.Equal(t, status.ReasonNone, res.Reason)
	assert.Equal(t, "photos", res.Job)
	assert.Equal(t, file, res.File)
	assert.Equal(t, []string{DefaultTool, src, dst, job.DefaultFileTypes, "/MIR"}, res.Command)
	assert.NoError(t, res.Err)
	require.Len(t, f.results, 1, "OnResult should be called once")
	f.launcher.AssertExpectations(t)
	f.lister.AssertNotCalled(t, "ListVolumes", mock.Anything)
}

func TestRunDryRunNeverLaunches(t *testing.T) {
	f := newRunnerFixture(t, true)
	file := writeFile(t, t.TempDir(), "job.yaml", jobYAML("dry", loc(t.TempDir()), loc(t.TempDir()), ""))

	res, err := f.runner.Run(testContext(), file)
	require.NoError(t, err)
	assert.Equal(t, status.StatusSucceeded, res.Status)
	assert.NotEmpty(t, res.Command, "dry run should still build the command")
	f.launcher.AssertNotCalled(t, "Launch", mock.Anything, mock.Anything)
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T, f *runnerFixture, dir string) string
		wantStatus status.Status
		wantReason status.Reason
		wantJob    string
	}{
		{
			name: "missing_file",
			setup: func(t *testing.T, f *runnerFixture, dir string) string {
				return filepath.Join(dir, "nope.yaml")
			},
			wantStatus: status.StatusFailed,
			wantReason: status.ReasonFileNotFound,
		},
		{
			name: "directory",
			setup: func(t *testing.T, f *runnerFixture, dir string) string {
				sub := filepath.Join(dir, "jobs.yaml")
				require.NoError(t, os.Mkdir(sub, 0o755))
				return sub
			},
			wantStatus: status.StatusFailed,
			wantReason: status.ReasonFileNotFound,
		},
		{
			name: "unsupported_extension",
			setup: func(t *testing.T, f *runnerFixture, dir string) string {
				path := filepath.Join(dir, "notes.txt")
				require.NoError(t, os.WriteFile(path, []byte("name: x"), 0o644))
				return path
			},
			wantStatus: status.StatusSkipped,
			wantReason: status.ReasonUnsupported,
		},
		{
			name: "malformed",
			setup: func(t *testing.T, f *runnerFixture, dir string) string {
				path := filepath.Join(dir, "broken.yaml")
				require.NoError(t, os.WriteFile(path, []byte("name: [unclosed\n"), 0o644))
				return path
			},
			wantStatus: status.StatusFailed,
			wantReason: status.ReasonMalformed,
		},
		{
			name: "missing_destination",
			setup: func(t *testing.T, f *runnerFixture, dir string) string {
				path := filepath.Join(dir, "half.yaml")
				body := fmt.Sprintf("name: half\nsource:\n  path: '%s'\n", t.TempDir())
				require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
				return path
			},
			wantStatus: status.StatusFailed,
			wantReason: status.ReasonValidation,
			wantJob:    "half",
		},
		{
			name: "drive_not_found",
			setup: func(t *testing.T, f *runnerFixture, dir string) string {
				f.lister.On("ListVolumes", mock.Anything).Return([]volume.Volume{{Path: "E:", Serial: "AAAA1111", Label: "KINGSTON"}}, nil)
				return writeFile(t, dir, "usb.yaml", jobYAML("usb", loc(t.TempDir()), loc("\\backup", "serial: BBBB2222"), ""))
			},
			wantStatus: status.StatusFailed,
			wantReason: status.ReasonDriveNotFound,
			wantJob:    "usb",
		},
		{
			name: "source_not_found",
			setup: func(t *testing.T, f *runnerFixture, dir string) string {
				return writeFile(t, dir, "gone.yaml", jobYAML("gone", loc(filepath.Join(dir, "does-not-exist")), loc(t.TempDir()), ""))
			},
			wantStatus: status.StatusFailed,
			wantReason: status.ReasonSourceNotFound,
			wantJob:    "gone",
		},
		{
			name: "safety_flag_missing",
			setup: func(t *testing.T, f *runnerFixture, dir string) string {
				return writeFile(t, dir, "flagged.yaml", jobYAML("flagged", loc(t.TempDir(), "flag: '$path$/FLAG.TXT'"), loc(t.TempDir()), ""))
			},
			wantStatus: status.StatusFailed,
			wantReason: status.ReasonSafetyFlag,
			wantJob:    "flagged",
		},
		{
			name: "copy_failed",
			setup: func(t *testing.T, f *runnerFixture, dir string) string {
				f.launcher.On("Launch", mock.Anything, mock.Anything).Return(16, nil)
				return writeFile(t, dir, "bad.yaml", jobYAML("bad", loc(t.TempDir()), loc(t.TempDir()), ""))
			},
			wantStatus: status.StatusFailed,
			wantReason: status.ReasonExecution,
			wantJob:    "bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRunnerFixture(t, false)
			dir := t.TempDir()
			file := tt.setup(t, f, dir)

			res, err := f.runner.Run(testContext(), file)
			require.NoError(t, err, "per-job failures must not be fatal")
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantReason, res.Reason, "diagnostic: %s", res.Diagnostic())
			assert.Equal(t, tt.wantJob, res.Job)
			if tt.wantStatus == status.StatusFailed {
				assert.Error(t, res.Err)
			}
			if tt.wantReason != status.ReasonExecution {
				f.launcher.AssertNotCalled(t, "Launch", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestRunBatchContinuesPastFailures(t *testing.T) {
	f := newRunnerFixture(t, false)
	dir := t.TempDir()

	first := writeFile(t, dir, "1.yaml", jobYAML("first", loc(t.TempDir()), loc(t.TempDir()), ""))
	broken := writeFile(t, dir, "2.yaml", "name: [unclosed\n")
	third := writeFile(t, dir, "3.yaml", jobYAML("third", loc(t.TempDir()), loc(t.TempDir()), ""))

	f.launcher.On("Launch", mock.Anything, mock.Anything).Return(0, nil)

	report, err := f.runner.RunBatch(testContext(), []string{first, broken, third})
	require.NoError(t, err)
	require.Len(t, report.Results, 3)

	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 0, report.Skipped())
	assert.Equal(t, []string{first, broken, third}, []string{report.Results[0].File, report.Results[1].File, report.Results[2].File})
	assert.Equal(t, status.ReasonMalformed, report.Results[1].Reason)
	f.launcher.AssertNumberOfCalls(t, "Launch", 2)
	assert.Len(t, f.results, 3)
}

func TestRunBatchSkipsUnsupported(t *testing.T) {
	f := newRunnerFixture(t, true)
	dir := t.TempDir()

	jobFile := writeFile(t, dir, "a.yaml", jobYAML("a", loc(t.TempDir()), loc(t.TempDir()), ""))
	notes := writeFile(t, dir, "b.md", "# notes")

	report, err := f.runner.RunBatch(testContext(), []string{jobFile, notes})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded())
	assert.Equal(t, 0, report.Failed())
	assert.Equal(t, 1, report.Skipped())
}

func TestRunBatchStopsOnVolumeQueryFailure(t *testing.T) {
	f := newRunnerFixture(t, false)
	dir := t.TempDir()

	f.lister.On("ListVolumes", mock.Anything).Return(nil, errors.New("access denied"))

	usb := writeFile(t, dir, "1.yaml", jobYAML("usb", loc("\\photos", "name: KINGSTON"), loc(t.TempDir()), ""))
	local := writeFile(t, dir, "2.yaml", jobYAML("local", loc(t.TempDir()), loc(t.TempDir()), ""))

	report, err := f.runner.RunBatch(testContext(), []string{usb, local})
	require.Error(t, err)
	assert.True(t, errors.Is(err, volume.ErrQuery), "expected ErrQuery, got %v", err)
	require.Len(t, report.Results, 1, "the batch should stop at the failed query")
	assert.Equal(t, status.StatusFailed, report.Results[0].Status)
	f.launcher.AssertNotCalled(t, "Launch", mock.Anything, mock.Anything)
}

func TestRunBatchCancelled(t *testing.T) {
	f := newRunnerFixture(t, true)
	file := writeFile(t, t.TempDir(), "a.yaml", jobYAML("a", loc(t.TempDir()), loc(t.TempDir()), ""))

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	report, err := f.runner.RunBatch(ctx, []string{file})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, report.Results)
}
