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
	"io"
	"os/exec"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🚀 Launcher starts a process and waits for its exit code
type Launcher interface {
	// Launch runs argv[0] with argv[1:] and blocks until it exits. A non-zero
	// exit is reported through the code, not the error.
	Launch(ctx context.Context, argv []string) (int, error)
}

// 🔧 ExecLauncher launches real processes. Output is discarded unless a
// writer is set.
type ExecLauncher struct {
	Stdout io.Writer
	Stderr io.Writer
}

// 🏗️ NewExecLauncher creates a launcher that discards tool output
func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{}
}

// 🏃 Launch implements Launcher
func (l *ExecLauncher) Launch(ctx context.Context, argv []string) (int, error) {
	if len(argv) == 0 {
		return -1, errors.New("empty command")
	}

	logger := zerolog.Ctx(ctx)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	if err := cmd.Start(); err != nil {
		return -1, errors.Errorf("starting %s: %w", argv[0], err)
	}
	logger.Trace().Int("pid", cmd.Process.Pid).Str("tool", argv[0]).Msg("copy tool started")

	err := cmd.Wait()
	if ctx.Err() != nil {
		return -1, errors.Errorf("waiting for %s: %w", argv[0], ctx.Err())
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, errors.Errorf("waiting for %s: %w", argv[0], err)
	}

	return 0, nil
}
