//go:build windows

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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sys/windows"
)

// 🪟 logicalDiskLister enumerates drive letters and reads each volume's
// serial number and label, matching what Win32_LogicalDisk reports.
type logicalDiskLister struct{}

// NewHostLister returns the lister for the running platform
func NewHostLister() Lister {
	return logicalDiskLister{}
}

func (logicalDiskLister) ListVolumes(ctx context.Context) ([]Volume, error) {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return nil, errors.Errorf("getting logical drives: %w", err)
	}

	// suppress "no disk in drive" dialogs for empty card readers and optical drives
	prev := windows.SetErrorMode(windows.SEM_FAILCRITICALERRORS)
	defer windows.SetErrorMode(prev)

	logger := zerolog.Ctx(ctx)
	var vols []Volume

	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		drive := string(rune('A'+i)) + ":"
		vol := Volume{Path: drive}

		root, err := windows.UTF16PtrFromString(drive + `\`)
		if err != nil {
			return nil, errors.Errorf("encoding drive %s: %w", drive, err)
		}

		var label [windows.MAX_PATH + 1]uint16
		var serial uint32
		err = windows.GetVolumeInformation(root, &label[0], uint32(len(label)), &serial, nil, nil, nil, 0)
		if err != nil {
			// not ready drives still show up, just without identity
			logger.Trace().Str("drive", drive).Err(err).Msg("volume information unavailable")
		} else {
			vol.Serial = fmt.Sprintf("%08X", serial)
			vol.Label = windows.UTF16ToString(label[:])
		}

		vols = append(vols, vol)
	}

	return vols, nil
}
