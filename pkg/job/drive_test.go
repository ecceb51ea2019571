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
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitDrive(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{`E:\photos`, "E:"},
		{`e:photos`, "e:"},
		{`F:`, "F:"},
		{`\\nas\share\backup`, `\\nas\share`},
		{`//nas/share/backup`, `//nas/share`},
		{`\\nas\share`, `\\nas\share`},
		{`\\nas`, ""},
		{`\\nas\\share`, ""},
		{`\photos`, ""},
		{`relative\path`, ""},
		{`1:\nope`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitDrive(tt.path))
		})
	}
}

func TestJoinDrive(t *testing.T) {
	tests := []struct {
		name  string
		drive string
		path  string
		want  string
	}{
		{"rooted", "E:", `\DCIM`, `E:\DCIM`},
		{"relative", "E:", `DCIM\100`, `E:\DCIM\100`},
		{"literal_drive_dropped", "E:", `Z:\DCIM`, `E:\DCIM`},
		{"drive_root", "E:", ``, `E:\`},
		{"unc_share", `\\nas\share`, `\backup`, `\\nas\share\backup`},
	}

	if runtime.GOOS != "windows" {
		tests = append(tests,
			struct {
				name  string
				drive string
				path  string
				want  string
			}{"mount_point", "/media/usb", `\DCIM`, filepath.Join("/media/usb", "DCIM")},
		)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinDrive(tt.drive, tt.path))
		})
	}
}
