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
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/paramfix/pkg/rewrite"
)

// buildInfo is what the version command reports: the binary's build and
// the rewrite steps it will run, in order.
type buildInfo struct {
	Version  string   `json:"version"`
	Revision string   `json:"revision,omitempty"`
	Dirty    bool     `json:"dirty,omitempty"`
	Go       string   `json:"go"`
	Platform string   `json:"platform"`
	Steps    []string `json:"rewrite_steps"`
}

func readBuildInfo() buildInfo {
	info := buildInfo{
		Version:  "dev",
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Steps:    rewrite.NewNextParamsPipeline().Steps(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Revision = setting.Value
			if len(info.Revision) > 12 {
				info.Revision = info.Revision[:12]
			}
		case "vcs.modified":
			info.Dirty = setting.Value == "true"
		}
	}
	return info
}

func (b buildInfo) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🚀 paramfix %s", b.Version)
	switch {
	case b.Revision != "" && b.Dirty:
		fmt.Fprintf(&sb, " (%s, dirty)", b.Revision)
	case b.Revision != "":
		fmt.Fprintf(&sb, " (%s)", b.Revision)
	}
	fmt.Fprintf(&sb, "\n   %s %s\n   rewrite steps:\n", b.Go, b.Platform)
	for i, step := range b.Steps {
		fmt.Fprintf(&sb, "     %d. %s\n", i+1, step)
	}
	return sb.String()
}

// newVersionCmd creates the version command. It skips config loading.
func newVersionCmd(out io.Writer) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:               "version",
		Short:             "Print build information and the rewrite steps",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			info := readBuildInfo()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err := fmt.Fprint(out, info)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
