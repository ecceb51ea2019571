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

package job

import (
	"path/filepath"
	"strings"
)

func isSlash(c byte) bool {
	return c == '\\' || c == '/'
}

func isDriveLetter(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// SplitDrive returns the drive part of a path written in Windows form: a
// drive letter ("E:") or a UNC share ("\\server\share"). Paths without a
// drive return the host's volume name, which is empty outside Windows.
func SplitDrive(p string) string {
	if isDriveLetter(p) {
		return p[:2]
	}

	if len(p) > 2 && isSlash(p[0]) && isSlash(p[1]) && !isSlash(p[2]) {
		rest := p[2:]
		server := strings.IndexAny(rest, `\/`)
		if server <= 0 {
			return ""
		}
		share := strings.IndexAny(rest[server+1:], `\/`)
		switch {
		case share == 0:
			return ""
		case share < 0:
			return p
		default:
			return p[:2+server+1+share]
		}
	}

	return filepath.VolumeName(p)
}

// JoinDrive places p under drive, discarding any drive already written in p.
// Windows drives and shares join with a backslash; mount points use the host
// separator.
func JoinDrive(drive, p string) string {
	rest := strings.TrimLeft(p[len(SplitDrive(p)):], `\/`)

	if isDriveLetter(drive) || (len(drive) > 1 && isSlash(drive[0]) && isSlash(drive[1])) {
		return strings.TrimRight(drive, `\/`) + `\` + rest
	}

	return filepath.Join(drive, rest)
}
