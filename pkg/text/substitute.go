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

// Package text expands $name$ placeholders inside path templates.
//
// Expansion is best-effort: a placeholder that is not recognised, or whose
// value is unknown, is left in the output untouched. Job files rely on this
// for convenience templates such as safety flag paths.
package text

import (
	"os"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// 🏷️ Placeholder is the name of a derived value, written as $name$ in templates
type Placeholder string

const (
	SrcPath   Placeholder = "src_path"
	DstPath   Placeholder = "dst_path"
	SrcDrive  Placeholder = "src_drive"
	DstDrive  Placeholder = "dst_drive"
	Timestamp Placeholder = "timestamp"
	Drive     Placeholder = "drive"
	Path      Placeholder = "path"
)

// Placeholders is the closed set of derived placeholder names
var Placeholders = []Placeholder{SrcPath, DstPath, SrcDrive, DstDrive, Timestamp, Drive, Path}

// Token returns the placeholder as it appears in a template
func (p Placeholder) Token() string {
	return "$" + string(p) + "$"
}

// EnvAllowList names the environment values eligible for $NAME$ expansion.
// Anything else in the host environment is never read.
var EnvAllowList = []string{
	"SYSTEMROOT", "TMP", "COMPUTERNAME", "USERDOMAIN",
	"PROGRAMFILES", "PROGRAMFILES(X86)", "COMMONPROGRAMFILES(X86)",
	"ALLUSERSPROFILE", "LOCALAPPDATA", "HOMEPATH", "PROGRAMW6432",
	"USERNAME", "PROGRAMDATA", "WINDIR", "APPDATA", "HOMEDRIVE",
	"SYSTEMDRIVE", "COMMONPROGRAMW6432", "PUBLIC", "USERPROFILE",
	"HOME", "USER", "HOSTNAME", "TMPDIR",
}

// FormatTimestamp renders t with a strftime style format such as %Y%m%d
func FormatTimestamp(t time.Time, format string) string {
	return strftime.Format(format, t)
}

// Values holds the derived placeholder values known at expansion time
type Values map[Placeholder]string

// LookupFunc reads one environment value
type LookupFunc func(key string) (string, bool)

// Environment returns the allow-listed environment values that are set
func Environment(lookup LookupFunc) map[string]string {
	env := make(map[string]string, len(EnvAllowList))
	for _, name := range EnvAllowList {
		if v, ok := lookup(name); ok {
			env[name] = v
		}
	}
	return env
}

// 🔄 Substituter expands placeholders in a single pass
type Substituter struct {
	lookup LookupFunc
}

// Option configures a Substituter
type Option func(*Substituter)

// WithLookup replaces the environment source (os.LookupEnv by default)
func WithLookup(lookup LookupFunc) Option {
	return func(s *Substituter) {
		s.lookup = lookup
	}
}

// 🏭 NewSubstituter creates a substituter reading the process environment
func NewSubstituter(opts ...Option) *Substituter {
	s := &Substituter{lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Expand replaces every known derived placeholder in values and every set
// allow-listed environment value. Replaced text is never rescanned.
func (s *Substituter) Expand(template string, values Values) string {
	if !strings.Contains(template, "$") {
		return template
	}

	pairs := make([]string, 0, 2*(len(values)+len(EnvAllowList)))
	for _, p := range Placeholders {
		if v, ok := values[p]; ok {
			pairs = append(pairs, p.Token(), v)
		}
	}
	for name, v := range Environment(s.lookup) {
		pairs = append(pairs, "$"+name+"$", v)
	}
	if len(pairs) == 0 {
		return template
	}

	return strings.NewReplacer(pairs...).Replace(template)
}

// ExpandEnv replaces allow-listed environment values only
func (s *Substituter) ExpandEnv(template string) string {
	return s.Expand(template, nil)
}
