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
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🗂️ MountTableLister builds the volume table from a Linux style mount table
// (block device mounts only; pseudo filesystems have no absolute source)
// and the udev by-uuid / by-label symlink directories.
//
// Serial is the filesystem UUID upper-cased with dashes removed, which makes
// FAT and exFAT volumes report the same serial Windows does ("ABCD-1234"
// becomes "ABCD1234").
type MountTableLister struct {
	MountInfo string // e.g. /proc/self/mountinfo
	ByUUID    string // e.g. /dev/disk/by-uuid
	ByLabel   string // e.g. /dev/disk/by-label
}

// ListVolumes implements Lister
func (l *MountTableLister) ListVolumes(ctx context.Context) ([]Volume, error) {
	var serials, labels map[string]string

	grp, _ := errgroup.WithContext(ctx)
	grp.Go(func() error {
		var err error
		serials, err = readLinkIndex(l.ByUUID, normalizeUUID)
		return err
	})
	grp.Go(func() error {
		var err error
		labels, err = readLinkIndex(l.ByLabel, unescapeUdev)
		return err
	})
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.MountInfo)
	if err != nil {
		return nil, errors.Errorf("opening mount table: %w", err)
	}
	defer f.Close()

	logger := zerolog.Ctx(ctx)
	seen := make(map[string]bool)
	var vols []Volume

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		mountPoint, source, ok := parseMountInfoLine(scanner.Text())
		if !ok || !strings.HasPrefix(source, "/") || seen[mountPoint] {
			continue
		}
		seen[mountPoint] = true

		dev := canonicalDevice(source)
		vols = append(vols, Volume{
			Path:   mountPoint,
			Serial: serials[dev],
			Label:  labels[dev],
		})
		logger.Trace().Str("mount", mountPoint).Str("device", dev).Msg("found mounted volume")
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading mount table: %w", err)
	}

	return vols, nil
}

// parseMountInfoLine extracts the mount point and mount source from one
// mountinfo line. Fields after the " - " separator are fstype and source.
func parseMountInfoLine(line string) (mountPoint, source string, ok bool) {
	fields := strings.Fields(line)
	sep := -1
	for i, f := range fields {
		if f == "-" {
			sep = i
			break
		}
	}
	if sep < 5 || len(fields) < sep+3 {
		return "", "", false
	}
	return unescapeOctal(fields[4]), unescapeOctal(fields[sep+2]), true
}

// readLinkIndex maps each symlink target device in dir to its decoded name.
// A missing directory yields an empty index.
func readLinkIndex(dir string, decode func(string) string) (map[string]string, error) {
	index := make(map[string]string)
	if dir == "" {
		return index, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return index, nil
		}
		return nil, errors.Errorf("reading %s: %w", dir, err)
	}

	for _, e := range entries {
		target, err := filepath.EvalSymlinks(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		index[target] = decode(e.Name())
	}
	return index, nil
}

func canonicalDevice(source string) string {
	if dev, err := filepath.EvalSymlinks(source); err == nil {
		return dev
	}
	return source
}

func normalizeUUID(name string) string {
	return strings.ToUpper(strings.ReplaceAll(unescapeUdev(name), "-", ""))
}

// unescapeOctal decodes the \040 style escapes used in mountinfo
func unescapeOctal(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+4 <= len(s) {
			if n, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// unescapeUdev decodes the \x20 style escapes udev uses in link names
func unescapeUdev(s string) string {
	if !strings.Contains(s, `\x`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+4 <= len(s) && s[i+1] == 'x' {
			if n, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
