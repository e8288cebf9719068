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

package config

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultRoot is where a Next.js App Router keeps its API routes
	DefaultRoot = "app/api"
	// DefaultFilename is the App Router route handler convention
	DefaultFilename = "route.ts"
	// DefaultFile is the config file looked up when none is given
	DefaultFile = ".paramfix.yaml"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	Root     string   `json:"root" yaml:"root" hcl:"root,optional"`             // Directory to scan
	Filename string   `json:"filename" yaml:"filename" hcl:"filename,optional"` // Base name of target files
	Ignore   []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`
	DryRun   bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
	Diff     bool     `json:"diff,omitempty" yaml:"diff,omitempty" hcl:"diff,optional"`
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Root:     DefaultRoot,
		Filename: DefaultFilename,
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🎯 LoadOrDefault loads path, falling back to Default when the file does
// not exist and required is false.
func LoadOrDefault(ctx context.Context, path string, required bool) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !required {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return Default(), nil
	}
	return Load(ctx, path)
}

// 🔍 Validate fills defaults and checks the configuration
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.Filename == "" {
		cfg.Filename = DefaultFilename
	}

	if path.Base(cfg.Filename) != cfg.Filename || filepath.Base(cfg.Filename) != cfg.Filename {
		return errors.Errorf("filename must be a base name, got %q", cfg.Filename)
	}
	for _, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	cfg.Root = filepath.Clean(cfg.Root)
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	mode := "write"
	if cfg.DryRun {
		mode = "dry-run"
	}
	return fmt.Sprintf("%s/**/%s (%s)", filepath.ToSlash(cfg.Root), cfg.Filename, mode)
}
