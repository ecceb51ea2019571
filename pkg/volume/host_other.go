//go:build !linux && !windows

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

package volume

import (
	"context"
	"runtime"

	"gitlab.com/tozd/go/errors"
)

type unsupportedLister struct{}

// NewHostLister returns the lister for the running platform
func NewHostLister() Lister {
	return unsupportedLister{}
}

func (unsupportedLister) ListVolumes(ctx context.Context) ([]Volume, error) {
	return nil, errors.Errorf("volume enumeration is not supported on %s", runtime.GOOS)
}
