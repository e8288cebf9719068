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

package operation_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/paramfix/pkg/config"
	"github.com/walteh/paramfix/pkg/log"
	"github.com/walteh/paramfix/pkg/operation"
	"github.com/walteh/paramfix/pkg/rewrite"
	"github.com/walteh/paramfix/pkg/status"
	"github.com/walteh/paramfix/pkg/testutils"
	"gitlab.com/tozd/go/errors"
)

const (
	singleRoute  = "luaran/[id]/route.ts"
	twoRoute     = "proposal/[id]/members/[memberId]/route.ts"
	correctRoute = "skema/[id]/route.ts"
	pageFile     = "skema/[id]/page.tsx"
)

// 🧪 testEnv is a project tree with an app/api directory
type testEnv struct {
	ctx     context.Context
	root    string
	console *bytes.Buffer
	logger  *zerolog.Logger
}

// 🧪 createTestEnv creates a test environment
func createTestEnv(t *testing.T, files map[string]string) *testEnv {
	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})

	root := filepath.Join(t.TempDir(), "app", "api")
	testutils.WriteTree(t, root, files)

	logger := zerolog.New(zerolog.NewTestWriter(t))
	console := &bytes.Buffer{}
	return &testEnv{
		ctx:     log.NewContext(logger.WithContext(context.Background()), log.New(console, logger)),
		root:    root,
		console: console,
		logger:  &logger,
	}
}

func (e *testEnv) run(t *testing.T, mutate func(cfg *config.Config)) (operation.Summary, error) {
	t.Helper()
	cfg := e.config(t, mutate)
	return e.runWith(t, cfg, status.New(cfg.DryRun))
}

func (e *testEnv) config(t *testing.T, mutate func(cfg *config.Config)) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Root = e.root
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func (e *testEnv) runWith(t *testing.T, cfg *config.Config, files status.FileManager) (operation.Summary, error) {
	t.Helper()
	e.console.Reset()

	op, err := operation.NewFixOperation(operation.Options{
		Config:   cfg,
		Files:    files,
		Pipeline: rewrite.NewNextParamsPipeline(),
	})
	require.NoError(t, err)

	err = operation.NewRunner(e.logger).Run(e.ctx, op)
	return op.Summary(), err
}

func standardTree() map[string]string {
	return map[string]string{
		singleRoute:  testutils.SingleFieldRoute,
		twoRoute:     testutils.TwoFieldRoute,
		correctRoute: testutils.CorrectRoute,
		pageFile:     "export default function Page({ params }) { return params.id }\n",
	}
}

// 🧪 TestFixOperation runs the three-file scenario end to end
func TestFixOperation(t *testing.T) {
	env := createTestEnv(t, standardTree())

	summary, err := env.run(t, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Fixed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.WouldFix)
	require.Len(t, summary.Files, 3)

	out := env.console.String()
	assert.Contains(t, out, "Fixed: "+filepath.Join(env.root, singleRoute))
	assert.Contains(t, out, "Fixed: "+filepath.Join(env.root, twoRoute))
	assert.Contains(t, out, "Skipped: "+filepath.Join(env.root, correctRoute)+" (no changes needed)")
	assert.Contains(t, out, "Fixed 2 files!")
	assert.Contains(t, out, operation.ReminderTitle)
	for _, r := range operation.Reminders {
		assert.Contains(t, out, r)
	}
	assert.Less(t, strings.Index(out, "Fixed 2 files!"), strings.Index(out, operation.ReminderTitle))

	assert.Equal(t, testutils.SingleFieldRouteFixed, testutils.ReadFile(t, env.root, singleRoute))
	assert.Equal(t, testutils.TwoFieldRouteFixed, testutils.ReadFile(t, env.root, twoRoute))
	assert.Equal(t, testutils.CorrectRoute, testutils.ReadFile(t, env.root, correctRoute))
	assert.Equal(t, standardTree()[pageFile], testutils.ReadFile(t, env.root, pageFile), "non-target files must not change")
}

// 🧪 TestFixOperationIdempotent checks a second run changes nothing
func TestFixOperationIdempotent(t *testing.T) {
	env := createTestEnv(t, standardTree())

	_, err := env.run(t, nil)
	require.NoError(t, err)
	first := map[string]string{}
	for rel := range standardTree() {
		first[rel] = testutils.ReadFile(t, env.root, rel)
	}

	summary, err := env.run(t, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Fixed)
	assert.Equal(t, 3, summary.Skipped)
	assert.Contains(t, env.console.String(), "Fixed 0 files!")

	for rel, want := range first {
		assert.Equal(t, want, testutils.ReadFile(t, env.root, rel), "%s changed on second run", rel)
	}
}

// 🧪 TestFixOperationLeavesUnchangedFilesAlone checks mtimes of skipped and non-target files
func TestFixOperationLeavesUnchangedFilesAlone(t *testing.T) {
	env := createTestEnv(t, standardTree())

	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	for rel := range standardTree() {
		require.NoError(t, os.Chtimes(filepath.Join(env.root, rel), past, past))
	}

	_, err := env.run(t, nil)
	require.NoError(t, err)

	for rel, wantTouched := range map[string]bool{
		singleRoute:  true,
		twoRoute:     true,
		correctRoute: false,
		pageFile:     false,
	} {
		stat, err := os.Stat(filepath.Join(env.root, rel))
		require.NoError(t, err)
		assert.Equal(t, wantTouched, !stat.ModTime().Equal(past), "%s touched", rel)
	}
}

// 🧪 TestFixOperationDryRun checks nothing is written in dry-run mode
func TestFixOperationDryRun(t *testing.T) {
	env := createTestEnv(t, standardTree())

	summary, err := env.run(t, func(cfg *config.Config) {
		cfg.DryRun = true
		cfg.Diff = true
	})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Fixed)
	assert.Equal(t, 2, summary.WouldFix)
	assert.Equal(t, 2, summary.Changed())

	out := env.console.String()
	assert.Contains(t, out, "Would fix: "+filepath.Join(env.root, singleRoute))
	assert.Contains(t, out, "Would fix 2 files")
	assert.Contains(t, out, "+   { params }: { params: Promise<{ id: string }> }")
	assert.Contains(t, out, "-   { params }: { params: { id: string } }")

	for rel, want := range standardTree() {
		assert.Equal(t, want, testutils.ReadFile(t, env.root, rel), "%s written during dry run", rel)
	}
}

// 🧪 TestFixOperationNotes checks review notes reach the console
func TestFixOperationNotes(t *testing.T) {
	env := createTestEnv(t, map[string]string{
		"seminar/[id]/route.ts": testutils.MultiHandlerRoute,
	})

	summary, err := env.run(t, nil)
	require.NoError(t, err)
	require.Len(t, summary.Files, 1)
	require.Len(t, summary.Files[0].Notes, 1)

	path := filepath.Join(env.root, "seminar", "[id]", "route.ts")
	out := env.console.String()
	assert.Contains(t, out, "⚠️  review "+path+": 2 handlers take")
	assert.Less(t, strings.Index(out, "Fixed: "+path), strings.Index(out, "review "+path))
}

// 🧪 TestFixOperationNoFiles checks an empty tree still reports and reminds
func TestFixOperationNoFiles(t *testing.T) {
	env := createTestEnv(t, map[string]string{"skema/[id]/page.tsx": "export default function Page() {}\n"})

	summary, err := env.run(t, nil)
	require.NoError(t, err)
	assert.Empty(t, summary.Files)

	out := env.console.String()
	assert.Contains(t, out, "ℹ️  no route.ts files found under "+env.root)
	assert.Contains(t, out, "Fixed 0 files!")
	assert.Contains(t, out, operation.ReminderTitle)
}

// failingWrites is a FileManager whose writes always fail
type failingWrites struct {
	*status.Manager
}

func (f failingWrites) WriteFileIfChanged(ctx context.Context, path string, original, modified []byte) (status.FileInfo, error) {
	return status.FileInfo{Path: path}, errors.New("disk full")
}

// 🧪 TestFixOperationFileManager checks the operation goes through the
// FileManager it is given
func TestFixOperationFileManager(t *testing.T) {
	env := createTestEnv(t, standardTree())

	_, err := env.runWith(t, env.config(t, nil), failingWrites{status.New(false)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "processing file "+filepath.Join(env.root, singleRoute))
	assert.Equal(t, testutils.SingleFieldRoute, testutils.ReadFile(t, env.root, singleRoute))
}

// 🧪 TestFixOperationIgnore checks ignore globs exclude matches
func TestFixOperationIgnore(t *testing.T) {
	env := createTestEnv(t, standardTree())

	summary, err := env.run(t, func(cfg *config.Config) {
		cfg.Ignore = []string{"proposal/**"}
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Fixed)
	assert.Equal(t, testutils.TwoFieldRoute, testutils.ReadFile(t, env.root, twoRoute))
}

// 🧪 TestFixOperationErrors checks failures abort the run
func TestFixOperationErrors(t *testing.T) {
	t.Run("missing_root", func(t *testing.T) {
		env := createTestEnv(t, nil)
		_, err := env.run(t, func(cfg *config.Config) {
			cfg.Root = filepath.Join(env.root, "does-not-exist")
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scanning")
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("undecodable_file_aborts", func(t *testing.T) {
		env := createTestEnv(t, map[string]string{
			"a/route.ts": testutils.SingleFieldRoute,
			"b/route.ts": string([]byte{0xff, 0xfe, 0xfd}),
			"c/route.ts": testutils.SingleFieldRoute,
		})

		_, err := env.run(t, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "processing file "+filepath.Join(env.root, "b", "route.ts"))
		assert.Contains(t, err.Error(), "not valid UTF-8")

		// processed in order: a was fixed before the failure, c never reached
		assert.Equal(t, testutils.SingleFieldRouteFixed, testutils.ReadFile(t, env.root, "a/route.ts"))
		assert.Equal(t, testutils.SingleFieldRoute, testutils.ReadFile(t, env.root, "c/route.ts"))
		assert.NotContains(t, env.console.String(), "Fixed 1 files!")
	})

	t.Run("cancelled_context", func(t *testing.T) {
		env := createTestEnv(t, standardTree())
		ctx, cancel := context.WithCancel(env.ctx)
		cancel()
		env.ctx = ctx

		_, err := env.run(t, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, testutils.SingleFieldRoute, testutils.ReadFile(t, env.root, singleRoute))
	})
}

func TestNewFixOperationValidation(t *testing.T) {
	_, err := operation.NewFixOperation(operation.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is required")

	_, err = operation.NewFixOperation(operation.Options{Config: config.Default()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file manager is required")
}
