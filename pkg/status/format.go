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
	"fmt"
)

// FileFormatter defines how per-file results and the run summary are worded
type FileFormatter interface {
	// FormatFileOperation formats the status line for one file
	FormatFileOperation(info FileInfo) string

	// FormatSummary formats the final count line
	FormatSummary(changed int, dryRun bool) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a file status line with emojis
func (f *DefaultFileFormatter) FormatFileOperation(info FileInfo) string {
	switch info.Status {
	case StatusFixed:
		return fmt.Sprintf("✅ Fixed: %s", info.Path)
	case StatusWouldFix:
		return fmt.Sprintf("📝 Would fix: %s", info.Path)
	case StatusSkipped:
		return fmt.Sprintf("⏭️  Skipped: %s (no changes needed)", info.Path)
	default:
		return fmt.Sprintf("❓ Unknown: %s", info.Path)
	}
}

// FormatSummary formats the count of changed files
func (f *DefaultFileFormatter) FormatSummary(changed int, dryRun bool) string {
	if dryRun {
		return fmt.Sprintf("🔎 Would fix %d files (dry run, nothing written)", changed)
	}
	return fmt.Sprintf("🎉 Fixed %d files!", changed)
}
