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

// Package rules defines ordered text replacement rules and the pipeline
// that applies them to a schema buffer.
package rules

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is a single named transformation over the schema text.
// Apply returns the new content and the number of matches replaced.
type Rule interface {
	Name() string
	Apply(content string) (string, int)
}

// 📝 Literal replaces every occurrence of From with To.
type Literal struct {
	RuleName string
	From     string
	To       string
}

func (r Literal) Name() string {
	return r.RuleName
}

func (r Literal) Apply(content string) (string, int) {
	count := strings.Count(content, r.From)
	if count == 0 {
		return content, 0
	}
	return strings.ReplaceAll(content, r.From, r.To), count
}

// 📝 Regexp replaces every match of Pattern with Replace.
// Replace may use $1-style group references.
type Regexp struct {
	RuleName string
	Pattern  *regexp.Regexp
	Replace  string
}

func (r Regexp) Name() string {
	return r.RuleName
}

func (r Regexp) Apply(content string) (string, int) {
	count := len(r.Pattern.FindAllStringIndex(content, -1))
	if count == 0 {
		return content, 0
	}
	return r.Pattern.ReplaceAllString(content, r.Replace), count
}

// 📝 Prepend inserts Text at the very top of the buffer, unconditionally.
type Prepend struct {
	RuleName string
	Text     string
}

func (r Prepend) Name() string {
	return r.RuleName
}

func (r Prepend) Apply(content string) (string, int) {
	return r.Text + content, 1
}

// 📚 Ruleset is an ordered list of rules. Order matters: each rule sees the
// cumulative output of all prior rules.
type Ruleset []Rule

// 📊 RuleResult records what a single rule did during an Apply pass.
type RuleResult struct {
	Rule    string
	Matches int
}

// 🏃 Apply threads content through every rule in order and returns the final
// text along with the per-rule match counts.
func (rs Ruleset) Apply(content string) (string, []RuleResult) {
	results := make([]RuleResult, 0, len(rs))
	for _, rule := range rs {
		next, matches := rule.Apply(content)
		results = append(results, RuleResult{Rule: rule.Name(), Matches: matches})
		content = next
	}
	return content, results
}

// 🔍 Validate checks that every rule is well-formed before running.
func (rs Ruleset) Validate() error {
	for i, rule := range rs {
		if rule.Name() == "" {
			return errors.Errorf("rule %d: name is required", i)
		}
		switch r := rule.(type) {
		case Literal:
			if r.From == "" {
				return errors.Errorf("rule %d (%s): from text is required", i, r.RuleName)
			}
		case Regexp:
			if r.Pattern == nil {
				return errors.Errorf("rule %d (%s): pattern is required", i, r.RuleName)
			}
		case Prepend:
			if r.Text == "" {
				return errors.Errorf("rule %d (%s): text is required", i, r.RuleName)
			}
		}
	}
	return nil
}

// 🏷️ Kind returns a short label for a rule's mechanism, for display.
func Kind(rule Rule) string {
	switch rule.(type) {
	case Literal:
		return "literal"
	case Regexp:
		return "regexp"
	case Prepend:
		return "prepend"
	default:
		return "custom"
	}
}
