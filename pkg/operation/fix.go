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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/paramfix/pkg/log"
	"github.com/walteh/paramfix/pkg/scan"
	"github.com/walteh/paramfix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ReminderTitle heads the manual review checklist printed after every run
const ReminderTitle = "IMPORTANT: Manually review all files and fix any remaining issues:"

// Reminders is the manual review checklist
var Reminders = []string{
	"Check destructuring is in the right place",
	"Verify await params is used correctly",
	"Test build with: npm run build",
}

// 📊 Summary is what a fix run did
type Summary struct {
	Fixed    int
	Skipped  int
	WouldFix int
	Files    []status.FileInfo
}

// Changed is the number of files whose content the rewrite changed
func (s Summary) Changed() int {
	return s.Fixed + s.WouldFix
}

// 🔧 FixOperation rewrites every target file under the configured root
type FixOperation struct {
	BaseOperation
	summary Summary
}

// 🏭 NewFixOperation creates a new fix operation
func NewFixOperation(opts Options) (*FixOperation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &FixOperation{BaseOperation: base}, nil
}

// 🏃 Execute scans for target files and processes them one at a time.
// The first error aborts the run; files already fixed stay fixed.
func (op *FixOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	out := log.FromContext(ctx)

	files, err := scan.Files(ctx, scan.Options{
		Root:           op.Config.Root,
		Filename:       op.Config.Filename,
		IgnorePatterns: op.Config.Ignore,
	})
	if err != nil {
		return errors.Errorf("scanning: %w", err)
	}

	out.Header("fixing Next.js 15 params in " + op.Config.String())
	logger.Debug().Int("files", len(files)).Strs("steps", op.Pipeline.Steps()).Msg("starting fix")
	if len(files) == 0 {
		out.Infof("no %s files found under %s", op.Config.Filename, op.Config.Root)
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("fix interrupted before %s: %w", file, err)
		}
		if err := op.processFile(ctx, file); err != nil {
			return errors.Errorf("processing file %s: %w", file, err)
		}
	}

	op.summary.Files = op.Files.Files()
	op.summary.Fixed = op.Files.Count(status.StatusFixed)
	op.summary.Skipped = op.Files.Count(status.StatusSkipped)
	op.summary.WouldFix = op.Files.Count(status.StatusWouldFix)

	out.Summary(op.summary.Changed(), op.Config.DryRun)
	out.Reminders(ReminderTitle, Reminders)

	return nil
}

// 📊 Summary returns the result of the last Execute
func (op *FixOperation) Summary() Summary {
	return op.summary
}

// 📄 processFile reads, rewrites and conditionally writes back one file
func (op *FixOperation) processFile(ctx context.Context, file string) error {
	original, err := op.Files.ReadFile(ctx, file)
	if err != nil {
		return err
	}

	result, err := op.Pipeline.Apply(ctx, original)
	if err != nil {
		return errors.Errorf("rewriting: %w", err)
	}

	info, err := op.Files.WriteFileIfChanged(ctx, file, original, result.ModifiedContent)
	if err != nil {
		return err
	}
	info.Steps = result.AppliedSteps
	info.Notes = result.Notes
	op.Files.Track(info)

	out := log.FromContext(ctx)
	out.LogFileOperation(ctx, info)
	for _, note := range info.Notes {
		out.Warningf("review %s: %s", file, note)
	}
	if op.Config.Diff && result.WasModified {
		out.LogDiff(ctx, file, original, result.ModifiedContent)
	}

	return nil
}
