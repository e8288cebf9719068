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

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents what happened to a file during a run
type FileStatus int

const (
	StatusUnknown  FileStatus = iota
	StatusFixed               // Content changed and was written back
	StatusSkipped             // Content unchanged, file untouched
	StatusWouldFix            // Content would change, dry run left it untouched
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusFixed:
		return "fixed"
	case StatusSkipped:
		return "skipped"
	case StatusWouldFix:
		return "would-fix"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains what a run learned about one file
type FileInfo struct {
	Path             string      // Path as discovered by the scan
	Status           FileStatus  // Outcome
	Mode             os.FileMode // File permissions, preserved on write
	OriginalChecksum string      // SHA-256 of content read
	Checksum         string      // SHA-256 of content on disk afterwards
	Steps            []string    // Rewrite steps that changed the content
	Notes            []string    // Things a human should review
}

// 💾 FileManager reads files, writes them back only when they changed and
// keeps the per-file record a run reports from.
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileIfChanged(ctx context.Context, path string, original, modified []byte) (FileInfo, error)
	Track(info FileInfo)
	Files() []FileInfo
	Count(s FileStatus) int
}

var _ FileManager = (*Manager)(nil)

// 🔧 Manager implements FileManager on the local filesystem and keeps a
// record of every file it has seen, in order.
type Manager struct {
	dryRun bool
	files  []FileInfo
}

// 🏭 New creates a new status manager. In dry-run mode nothing is written.
func New(dryRun bool) *Manager {
	return &Manager{dryRun: dryRun}
}

// 🔍 Checksum generates a SHA-256 hash of the content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// 📖 ReadFile reads the whole file
func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// ✍️ WriteFileIfChanged writes modified to path when its checksum differs
// from original. Unchanged files are never opened for writing.
func (m *Manager) WriteFileIfChanged(ctx context.Context, path string, original, modified []byte) (FileInfo, error) {
	logger := zerolog.Ctx(ctx)

	info := FileInfo{
		Path:             path,
		OriginalChecksum: Checksum(original),
		Checksum:         Checksum(modified),
	}

	stat, err := os.Stat(path)
	if err != nil {
		return info, errors.Errorf("checking file: %w", err)
	}
	info.Mode = stat.Mode().Perm()

	switch {
	case info.Checksum == info.OriginalChecksum:
		info.Status = StatusSkipped
	case m.dryRun:
		info.Status = StatusWouldFix
		info.Checksum = info.OriginalChecksum
	default:
		if err := WriteFileAtomic(path, modified, info.Mode); err != nil {
			return info, errors.Errorf("writing file: %w", err)
		}
		info.Status = StatusFixed
	}

	logger.Debug().
		Str("path", path).
		Str("status", info.Status.String()).
		Str("checksum", info.Checksum).
		Msg("file processed")

	return info, nil
}

// 📝 Track records the final info for a file
func (m *Manager) Track(info FileInfo) {
	m.files = append(m.files, info)
}

// 📋 Files returns every tracked file in the order it was tracked
func (m *Manager) Files() []FileInfo {
	return append([]FileInfo(nil), m.files...)
}

// 🔢 Count returns how many tracked files have the given status
func (m *Manager) Count(s FileStatus) int {
	n := 0
	for _, f := range m.files {
		if f.Status == s {
			n++
		}
	}
	return n
}

// 🔒 WriteFileAtomic writes content to a temp file next to path and renames
// it into place, so readers never see a half-written file. A symlinked path
// is resolved first so the link survives and its target gets the content.
// Hard links to path are not preserved: the rename gives path a new inode.
func WriteFileAtomic(path string, content []byte, mode os.FileMode) error {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return errors.Errorf("resolving path: %w", err)
	}
	path = resolved
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// WriteFile is subject to umask
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
