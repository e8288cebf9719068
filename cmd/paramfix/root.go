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
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/paramfix/cmd/paramfix/commands"
	"github.com/walteh/paramfix/cmd/paramfix/opts"
	"github.com/walteh/paramfix/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// rootFlags are the flags shared by every command
type rootFlags struct {
	configFile string
	root       string
	filename   string
	ignore     []string
	dryRun     bool
	diff       bool
	debug      bool
}

// newRootCmd builds the command tree. Running it with no subcommand runs fix.
func newRootCmd(console, logOut io.Writer) *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{Console: console}

	cmd := &cobra.Command{
		Use:   "paramfix",
		Short: "Rewrite Next.js route handlers for the Next.js 15 async params API",
		Long: `paramfix rewrites every app/api/**/route.ts under the working directory so
that route handler params are typed and used as a Promise, as Next.js 15
requires. Run it from the project root, then review the result.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging(logOut, flags.debug)
			cmd.SetContext(logger.WithContext(cmd.Context()))

			cfg, err := newRootConfig(cmd, flags)
			if err != nil {
				return err
			}
			rootOpts.Config = cfg
			logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunFix(cmd, rootOpts)
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewFixCmd(rootOpts),
		newVersionCmd(console),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", config.DefaultFile, "config file path (.yaml, .yml or .hcl)")
	pf.StringVar(&flags.root, "root", "", "directory to scan (default "+config.DefaultRoot+")")
	pf.StringVar(&flags.filename, "filename", "", "route handler file name (default "+config.DefaultFilename+")")
	pf.StringArrayVar(&flags.ignore, "ignore", nil, "glob, relative to root, of files to skip (repeatable)")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "report what would change without writing")
	pf.BoolVar(&flags.diff, "diff", false, "print changed lines for each rewritten file")
	pf.BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
}

// newRootConfig loads the config file and applies flag overrides
func newRootConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	pf := cmd.Flags()

	cfg, err := config.LoadOrDefault(cmd.Context(), flags.configFile, pf.Changed("config"))
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if pf.Changed("root") {
		cfg.Root = flags.root
	}
	if pf.Changed("filename") {
		cfg.Filename = flags.filename
	}
	if pf.Changed("ignore") {
		cfg.Ignore = append(cfg.Ignore, flags.ignore...)
	}
	if pf.Changed("dry-run") {
		cfg.DryRun = flags.dryRun
	}
	if pf.Changed("diff") {
		cfg.Diff = flags.diff
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// setupLogging creates the debug logger. It is silent unless debug is set.
func setupLogging(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	if out == nil {
		out = os.Stderr
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out}).Level(level).With().Timestamp().Logger()
}
