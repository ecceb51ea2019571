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

package config

import (
	"context"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/robowrap/pkg/text"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
// Allow-listed environment values are available to expressions as
// env.NAME, e.g. path = "${env.USERPROFILE}\\Documents".
type HCLParser struct {
	Lookup text.LookupFunc // defaults to the process environment
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return hasExt(filename, ".hcl")
}

// 📝 Parse parses the job from HCL
func (p *HCLParser) Parse(ctx context.Context, filename string, data []byte) (*Job, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	var job Job
	diags = gohcl.DecodeBody(hclFile.Body, p.evalContext(), &job)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &job, nil
}

func (p *HCLParser) evalContext() *hcl.EvalContext {
	lookup := p.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	env := make(map[string]cty.Value)
	for name, v := range text.Environment(lookup) {
		env[name] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}
