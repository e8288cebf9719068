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

// Package scan finds route handler files under a root directory.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrRootNotDir is returned when the scan root exists but is not a directory
var ErrRootNotDir = errors.Base("scan root is not a directory")

// 🔍 Options controls which files a scan returns
type Options struct {
	Root           string   // Directory to search
	Filename       string   // Exact base name to match, e.g. route.ts
	IgnorePatterns []string // Doublestar globs, relative to Root, to skip
}

// 📂 Files returns the paths (joined with Root) of every regular file under
// Root named Filename, in lexical order. A symlink counts when it resolves
// to a regular file; dangling links are skipped. Files are never opened.
func Files(ctx context.Context, opts Options) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if opts.Filename == "" {
		return nil, errors.Errorf("filename is required")
	}
	if path.Base(opts.Filename) != opts.Filename || !doublestar.ValidatePattern(opts.Filename) {
		return nil, errors.Errorf("invalid filename %q", opts.Filename)
	}
	for _, pattern := range opts.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, errors.Errorf("reading scan root %s: %w", opts.Root, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%w: %s", ErrRootNotDir, opts.Root)
	}

	pattern := "**/" + doublestar.EscapeMeta(opts.Filename)
	logger.Debug().Str("root", opts.Root).Str("pattern", pattern).Msg("scanning for files")

	fsys := os.DirFS(opts.Root)

	var files []string
	err = doublestar.GlobWalk(fsys, pattern, func(rel string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !isRegular(fsys, rel, d) {
			logger.Debug().Str("path", rel).Str("type", d.Type().String()).Msg("skipping non-regular match")
			return nil
		}
		if shouldIgnore(ctx, opts.IgnorePatterns, rel) {
			return nil
		}
		files = append(files, filepath.Join(opts.Root, filepath.FromSlash(rel)))
		return nil
	}, doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", opts.Root, err)
	}

	sort.Strings(files)
	logger.Debug().Int("count", len(files)).Msg("scan complete")
	return files, nil
}

func isRegular(fsys fs.FS, rel string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	target, err := fs.Stat(fsys, rel)
	return err == nil && target.Mode().IsRegular()
}

// 🚫 shouldIgnore checks a slash-separated relative path against the ignore globs
func shouldIgnore(ctx context.Context, patterns []string, rel string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("file", rel).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}
