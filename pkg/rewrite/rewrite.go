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

package rewrite

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Step is a single named text transform.
// Apply must be pure: the same input always yields the same output.
type Step struct {
	Name  string
	Apply func(content string) string
}

// 📝 Result holds the outcome of running a pipeline over one file
type Result struct {
	OriginalContent []byte
	ModifiedContent []byte
	WasModified     bool
	AppliedSteps    []string // names of steps that changed the content, in order
	Notes           []string // things a human should look at before trusting the rewrite
}

// 🔍 Inspector looks at the original and final content and returns review notes
type Inspector func(original, modified string) []string

// 🏗️ Pipeline runs steps in order, each one seeing the previous one's output
type Pipeline struct {
	steps      []Step
	inspectors []Inspector
}

// 🏭 NewPipeline creates a pipeline from the given steps
func NewPipeline(steps []Step, inspectors ...Inspector) *Pipeline {
	return &Pipeline{
		steps:      steps,
		inspectors: inspectors,
	}
}

// 📋 Steps returns the step names in execution order
func (p *Pipeline) Steps() []string {
	names := make([]string, 0, len(p.steps))
	for _, s := range p.steps {
		names = append(names, s.Name)
	}
	return names
}

// 🏃 Apply runs every step over content and reports what changed.
// Content must be valid UTF-8.
func (p *Pipeline) Apply(ctx context.Context, content []byte) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if !utf8.Valid(content) {
		return nil, errors.Errorf("content is not valid UTF-8")
	}

	result := &Result{
		OriginalContent: content,
		ModifiedContent: content,
	}

	original := string(content)
	current := original
	for _, step := range p.steps {
		next := step.Apply(current)
		if next != current {
			logger.Debug().Str("step", step.Name).Msg("step changed content")
			result.AppliedSteps = append(result.AppliedSteps, step.Name)
		}
		current = next
	}

	for _, inspect := range p.inspectors {
		result.Notes = append(result.Notes, inspect(original, current)...)
	}

	result.WasModified = current != original
	result.ModifiedContent = []byte(current)
	return result, nil
}

// ValidateSteps checks that every step has a name and a function
func ValidateSteps(steps []Step) error {
	seen := make(map[string]bool, len(steps))
	for i, s := range steps {
		if s.Name == "" {
			return errors.Errorf("step %d: name is required", i)
		}
		if s.Apply == nil {
			return errors.Errorf("step %d (%s): apply func is required", i, s.Name)
		}
		if seen[s.Name] {
			return errors.Errorf("step %d: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
