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

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/walteh/robowrap/pkg/operation"
)

const modulePath = "github.com/walteh/robowrap"

// VersionInfo describes the running robowrap binary
type VersionInfo struct {
	Module           string `json:"module"`
	Version          string `json:"version"`
	Revision         string `json:"revision"`
	Time             string `json:"time"`
	Modified         bool   `json:"modified"`
	GoVersion        string `json:"go_version"`
	Platform         string `json:"platform"`
	Tool             string `json:"tool"`
	FailureThreshold int    `json:"failure_threshold"`
}

// GetVersionInfo returns the version information from build info
func GetVersionInfo() *VersionInfo {
	info := &VersionInfo{
		Module:           modulePath,
		Version:          "dev",
		GoVersion:        runtime.Version(),
		Platform:         fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Tool:             operation.DefaultTool,
		FailureThreshold: operation.FailureThreshold,
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if buildInfo.Main.Path != "" {
		info.Module = buildInfo.Main.Path
	}
	if buildInfo.Main.Version != "" {
		info.Version = buildInfo.Main.Version
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Revision = setting.Value
		case "vcs.time":
			info.Time = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}

	return info
}

// FormatVersion renders info for --version
func FormatVersion(info *VersionInfo) string {
	revision := info.Revision
	if revision == "" {
		revision = "unknown"
	}
	if info.Modified {
		revision += " (modified)"
	}
	return fmt.Sprintf(`🚀 robowrap %s
Module:    %s
Revision:  %s
Platform:  %s (%s)
Copy tool: %s (exit code >= %d fails a job)
`, info.Version, info.Module, revision, info.Platform, info.GoVersion, info.Tool, info.FailureThreshold)
}
