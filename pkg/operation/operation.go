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

	"github.com/walteh/paramfix/pkg/config"
	"github.com/walteh/paramfix/pkg/rewrite"
	"github.com/walteh/paramfix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a single batch run. The console logger travels in ctx
// (see log.NewContext).
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains everything an operation needs
type Options struct {
	// Config says where to look and whether to write
	Config *config.Config
	// Files reads, writes and tracks target files
	Files status.FileManager
	// Pipeline is the ordered list of rewrite steps
	Pipeline *rewrite.Pipeline
}

// 🧱 BaseOperation holds the shared dependencies
type BaseOperation struct {
	Options
}

// 🏭 NewBaseOperation checks opts and wraps them
func NewBaseOperation(opts Options) (BaseOperation, error) {
	if opts.Config == nil {
		return BaseOperation{}, errors.Errorf("config is required")
	}
	if opts.Files == nil {
		return BaseOperation{}, errors.Errorf("file manager is required")
	}
	if opts.Pipeline == nil {
		return BaseOperation{}, errors.Errorf("pipeline is required")
	}
	return BaseOperation{Options: opts}, nil
}
