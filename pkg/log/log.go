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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/paramfix/pkg/status"
)

// 🎨 Display configuration
const (
	diffIndent = 5 // spaces to indent diff lines under a file line
)

// 🎯 Logger writes the human-facing run report to the console and mirrors
// every event to zerolog.
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	formatter status.FileFormatter
	mu        sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:      zlog,
		console:   console,
		formatter: status.NewDefaultFileFormatter(),
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation colors the formatter's line by status
func (l *Logger) formatFileOperation(info status.FileInfo) string {
	line := l.formatter.FormatFileOperation(info)
	switch info.Status {
	case status.StatusFixed:
		return color.GreenString(line)
	case status.StatusWouldFix:
		return color.BlueString(line)
	case status.StatusSkipped:
		return color.HiBlackString(line)
	default:
		return color.YellowString(line)
	}
}

// 📝 LogFileOperation prints the status line for one file. Review notes
// are mirrored to zerolog here; the caller prints them with Warningf.
func (l *Logger) LogFileOperation(ctx context.Context, info status.FileInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileOperation(info))

	event := l.zlog.Info()
	if len(info.Notes) > 0 {
		event = l.zlog.Warn().Strs("notes", info.Notes)
	}
	event.
		Str("file", info.Path).
		Str("status", info.Status.String()).
		Strs("steps", info.Steps).
		Msg("file operation")
}

// 🔀 LogDiff prints a line diff between two versions of a file
func (l *Logger) LogDiff(ctx context.Context, path string, original, modified []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	indent := strings.Repeat(" ", diffIndent)
	for _, line := range lineDiff(string(original), string(modified)) {
		switch line[0] {
		case '+':
			fmt.Fprintln(l.console, indent+color.GreenString(line))
		case '-':
			fmt.Fprintln(l.console, indent+color.RedString(line))
		}
	}

	l.zlog.Debug().Str("file", path).Msg("diff printed")
}

// lineDiff returns the changed lines prefixed with "+ " or "- "
func lineDiff(a, b string) []string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out []string
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, prefix+strings.TrimSuffix(line, "\n"))
		}
	}
	return out
}

// 📋 Reminders prints a warning followed by a numbered checklist
func (l *Logger) Reminders(title string, items []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "\n⚠️  %s\n", color.New(color.FgYellow, color.Bold).Sprint(title))

	list := make([]pterm.BulletListItem, 0, len(items))
	for i, item := range items {
		list = append(list, pterm.BulletListItem{
			Level:  3,
			Text:   item,
			Bullet: fmt.Sprintf("%d.", i+1),
		})
	}
	if err := pterm.DefaultBulletList.WithItems(list).WithWriter(l.console).Render(); err != nil {
		l.zlog.Error().Err(err).Msg("rendering reminders")
	}

	l.zlog.Info().Strs("reminders", items).Msg(title)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("paramfix")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Summary prints the final count line
func (l *Logger) Summary(changed int, dryRun bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := l.formatter.FormatSummary(changed, dryRun)
	fmt.Fprintf(l.console, "\n%s\n", color.New(color.Bold).Sprint(msg))
	l.zlog.Info().Int("changed", changed).Bool("dry_run", dryRun).Msg("run complete")
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
