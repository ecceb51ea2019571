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
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/walteh/robowrap/pkg/volume"
	"gitlab.com/tozd/go/errors"
)

// 💾 printDrives writes the mounted volumes as a table
func printDrives(ctx context.Context, dir *volume.Directory, w io.Writer) error {
	vols, err := dir.Volumes(ctx)
	if err != nil {
		return err
	}

	table, err := renderDrives(vols)
	if err != nil {
		return errors.Errorf("rendering drive table: %w", err)
	}

	fmt.Fprintln(w, table)
	return nil
}

func renderDrives(vols []volume.Volume) (string, error) {
	data := pterm.TableData{{"Drive", "Serial", "Name"}}
	for _, v := range vols {
		data = append(data, []string{v.Path, v.Serial, v.Label})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}
