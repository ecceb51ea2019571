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
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Criteria identifies a volume by serial number and/or label.
// A nil field means the criterion was not given.
type Criteria struct {
	Serial *string
	Name   *string
}

// IsZero reports whether no criterion is set
func (c Criteria) IsZero() bool {
	return c.Serial == nil && c.Name == nil
}

// DriveNotFoundError is returned when no mounted volume matches any criterion
type DriveNotFoundError struct {
	Tried []string
}

func (e *DriveNotFoundError) Error() string {
	if len(e.Tried) == 0 {
		return "couldn't find drive: no criteria given"
	}
	return fmt.Sprintf("couldn't find drive, tried: %s", strings.Join(e.Tried, ", "))
}

// 🧭 Resolver maps identity criteria to the current mount path of a volume
type Resolver struct {
	dir *Directory
}

// 🏭 NewResolver creates a resolver over the given volume directory
func NewResolver(dir *Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve returns the mount path of the first volume matching the criteria.
// Serial is always tried before name, and only exact matches count.
func (r *Resolver) Resolve(ctx context.Context, c Criteria) (string, error) {
	vols, err := r.dir.Volumes(ctx)
	if err != nil {
		return "", err
	}

	logger := zerolog.Ctx(ctx)
	tried := make([]string, 0, 2)

	if c.Serial != nil {
		tried = append(tried, "serial: "+*c.Serial)
		for _, v := range vols {
			if v.Serial == *c.Serial {
				logger.Debug().Str("serial", v.Serial).Str("drive", v.Path).Msg("resolved drive by serial")
				return v.Path, nil
			}
		}
	}

	if c.Name != nil {
		tried = append(tried, "name: "+*c.Name)
		for _, v := range vols {
			if v.Label == *c.Name {
				logger.Debug().Str("name", v.Label).Str("drive", v.Path).Msg("resolved drive by name")
				return v.Path, nil
			}
		}
	}

	return "", errors.WithStack(&DriveNotFoundError{Tried: tried})
}
