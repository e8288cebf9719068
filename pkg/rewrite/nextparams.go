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
	"fmt"
	"regexp"
	"strings"
)

// Markers the Next.js 15 rules key off. They are matched literally.
const (
	WrappedSingleField  = "Promise<{ id: string }>"
	WrappedTwoField     = "Promise<{ id: string; memberId: string }>"
	DestructureID       = "const { id } = await params"
	DestructureIDMember = "const { id, memberId } = await params"

	InlineID       = "(await params).id"
	InlineMemberID = "(await params).memberId"

	// inserted after the first authorization check block
	destructureInsert = "\n\n    " + DestructureID
)

// unicodeSpace is the full Unicode whitespace set. RE2's \s is ASCII-only
// and misses \v, the \x1c-\x1f separators, NEL and U+00A0 and friends.
const unicodeSpace = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

var (
	singleFieldSignature = regexp.MustCompile(`\{ params \}: \{ params: \{ id: string \} \}`)
	twoFieldSignature    = regexp.MustCompile(`\{ params \}: \{ params: \{ id: string; memberId: string \} \}`)
	authCheckBlock       = regexp.MustCompile(`(` + unicodeSpace + `+)(if \(session\.role[^\}]+\}` + unicodeSpace + `+\})`)
	idAccess             = regexp.MustCompile(`params\.id`)
	memberIDAccess       = regexp.MustCompile(`params\.memberId`)
)

// 🎯 NextParamsSteps returns the ordered rules that move route handlers to
// the Next.js 15 async params signature.
func NextParamsSteps() []Step {
	return []Step{
		{Name: "wrap-single-field", Apply: wrapSingleField},
		{Name: "wrap-two-field", Apply: wrapTwoField},
		{Name: "insert-destructuring", Apply: insertDestructuring},
		{Name: "rewrite-id-access", Apply: rewriteIDAccess},
		{Name: "rewrite-member-id-access", Apply: rewriteMemberIDAccess},
	}
}

// 🏭 NewNextParamsPipeline builds the pipeline with its review inspectors
func NewNextParamsPipeline() *Pipeline {
	return NewPipeline(NextParamsSteps(), inspectDestructuringCoverage, inspectMissingAuthAnchor, inspectTwoFieldAccess)
}

func wrapSingleField(content string) string {
	return singleFieldSignature.ReplaceAllLiteralString(content, "{ params }: { params: "+WrappedSingleField+" }")
}

func wrapTwoField(content string) string {
	return twoFieldSignature.ReplaceAllLiteralString(content, "{ params }: { params: "+WrappedTwoField+" }")
}

func insertDestructuring(content string) string {
	if !strings.Contains(content, WrappedSingleField) || strings.Contains(content, DestructureID) {
		return content
	}
	loc := authCheckBlock.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[1]] + destructureInsert + content[loc[1]:]
}

func rewriteIDAccess(content string) string {
	if strings.Contains(content, DestructureID) {
		return idAccess.ReplaceAllLiteralString(content, "id")
	}
	return idAccess.ReplaceAllLiteralString(content, InlineID)
}

func rewriteMemberIDAccess(content string) string {
	switch {
	case strings.Contains(content, DestructureIDMember):
		return memberIDAccess.ReplaceAllLiteralString(content, "memberId")
	case strings.Contains(content, "memberId"):
		return memberIDAccess.ReplaceAllLiteralString(content, InlineMemberID)
	default:
		return content
	}
}

// The bare-name policy is chosen per file. A file with several handlers
// gets one inserted destructuring, so later handlers may use an unbound id.
func inspectDestructuringCoverage(_, modified string) []string {
	wrapped := strings.Count(modified, WrappedSingleField)
	destructured := strings.Count(modified, DestructureID)
	if destructured == 0 || wrapped <= destructured {
		return nil
	}
	return []string{fmt.Sprintf("%d handlers take %s but only %d destructure it; check id is bound in each handler", wrapped, WrappedSingleField, destructured)}
}

func inspectMissingAuthAnchor(original, modified string) []string {
	if !strings.Contains(modified, WrappedSingleField) || strings.Contains(modified, DestructureID) {
		return nil
	}
	if !strings.Contains(modified, InlineID) || strings.Contains(original, InlineID) {
		return nil
	}
	return []string{"no session.role check found to anchor destructuring; params.id rewritten inline as " + InlineID}
}

func inspectTwoFieldAccess(original, modified string) []string {
	if !strings.Contains(modified, WrappedTwoField) || strings.Contains(modified, DestructureIDMember) {
		return nil
	}
	if !strings.Contains(original, "params.memberId") {
		return nil
	}
	return []string{"two-field params accessed inline; consider adding " + DestructureIDMember}
}
