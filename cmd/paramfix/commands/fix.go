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

package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/paramfix/cmd/paramfix/opts"
	"github.com/walteh/paramfix/pkg/log"
	"github.com/walteh/paramfix/pkg/operation"
	"github.com/walteh/paramfix/pkg/rewrite"
	"github.com/walteh/paramfix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewFixCmd creates a new fix command
func NewFixCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Rewrite route handlers to await params (default command)",
		Long: `Fix walks the configured root for route handler files and rewrites
each one for the Next.js 15 async params signature. It will:
1. Wrap { params: { id: string } } in Promise<...>
2. Insert const { id } = await params after the first session.role check
3. Rewrite params.id and params.memberId accesses
4. Write back only the files that changed

Files are rewritten in place. No backup is taken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunFix(cmd, opts)
		},
	}

	return cmd
}

// RunFix runs the fix operation with the loaded options
func RunFix(cmd *cobra.Command, opts *opts.RootOpts) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx).With().Str("command", "fix").Logger()
	ctx = logger.WithContext(ctx)

	pipeline := rewrite.NewNextParamsPipeline()
	if err := rewrite.ValidateSteps(rewrite.NextParamsSteps()); err != nil {
		return errors.Errorf("invalid rewrite steps: %w", err)
	}

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	ctx = log.NewContext(ctx, log.New(console, logger))

	op, err := operation.NewFixOperation(operation.Options{
		Config:   opts.Config,
		Files:    status.New(opts.Config.DryRun),
		Pipeline: pipeline,
	})
	if err != nil {
		return errors.Errorf("creating fix operation: %w", err)
	}

	if err := operation.NewRunner(&logger).Run(ctx, op); err != nil {
		return errors.Errorf("fixing route handlers: %w", err)
	}

	return nil
}
