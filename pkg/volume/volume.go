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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrQuery is returned when the host volume table cannot be read. Nothing that
// needs volume identity can proceed after it, so callers treat it as fatal.
var ErrQuery = errors.New("querying mounted volumes")

// 💾 Volume is a snapshot of one mounted volume as reported by the host
type Volume struct {
	Path   string // Mount path (drive letter like "E:" or a mount point)
	Serial string // Platform formatted serial number
	Label  string // Volume label, may be empty
}

// 🔌 Lister enumerates the volumes currently mounted on the host
type Lister interface {
	ListVolumes(ctx context.Context) ([]Volume, error)
}

// 📇 Directory caches the host volume table for the lifetime of the process.
//
// The first call to Volumes queries the Lister; every later call returns the
// same snapshot. A failed query is not cached. Directory is not safe for
// concurrent use.
type Directory struct {
	lister  Lister
	cached  bool
	volumes []Volume
}

// 🏭 NewDirectory creates a directory backed by the given lister
func NewDirectory(lister Lister) *Directory {
	return &Directory{lister: lister}
}

// Cached reports whether the host has already been queried successfully
func (d *Directory) Cached() bool {
	return d.cached
}

// 📋 Volumes returns the cached volume snapshot, querying the host on first use
func (d *Directory) Volumes(ctx context.Context) ([]Volume, error) {
	if d.cached {
		return d.volumes, nil
	}

	vols, err := d.lister.ListVolumes(ctx)
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrQuery, err)
	}

	zerolog.Ctx(ctx).Debug().Int("count", len(vols)).Msg("loaded volume table")

	d.volumes = vols
	d.cached = true
	return d.volumes, nil
}
