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

// Package translate applies a rules.Ruleset to schema files.
package translate

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/pg2sqlite/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// 📊 Result contains the outcome of a translation pass.
type Result struct {
	// OriginalContent is the content before translation
	OriginalContent []byte

	// TranslatedContent is the content after all rules ran
	TranslatedContent []byte

	// WasModified indicates if any rule matched
	WasModified bool

	// ReplacementCount is the total number of matches across all rules
	ReplacementCount int

	// RuleResults holds the per-rule match counts, in pipeline order
	RuleResults []rules.RuleResult
}

// 🎯 Translator runs an ordered ruleset over schema text.
type Translator struct {
	ruleset rules.Ruleset
}

// 🏭 New creates a Translator after validating the ruleset.
func New(ruleset rules.Ruleset) (*Translator, error) {
	if len(ruleset) == 0 {
		return nil, errors.Errorf("ruleset is required")
	}
	if err := ruleset.Validate(); err != nil {
		return nil, errors.Errorf("validating ruleset: %w", err)
	}
	return &Translator{ruleset: ruleset}, nil
}

// 📚 Ruleset returns the pipeline, in order.
func (t *Translator) Ruleset() rules.Ruleset {
	return t.ruleset
}

// 🔄 Translate reads all content and threads it through the pipeline.
// The buffer is held fully in memory; schema files are small.
func (t *Translator) Translate(ctx context.Context, content io.Reader) (*Result, error) {
	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	translated, ruleResults := t.ruleset.Apply(string(original))

	result := &Result{
		OriginalContent:   original,
		TranslatedContent: []byte(translated),
		RuleResults:       ruleResults,
	}
	for _, rr := range ruleResults {
		result.ReplacementCount += rr.Matches
	}
	result.WasModified = translated != string(original)

	return result, nil
}

// 📄 ConvertFile translates src and writes the result to dst, overwriting it
// unconditionally. The write is atomic: content lands in a temp file in the
// destination directory and is renamed into place, so a write fault never
// leaves a partially written destination.
func (t *Translator) ConvertFile(ctx context.Context, src, dst string) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("source", src).Str("destination", dst).Msg("converting schema file")

	f, err := os.Open(src)
	if err != nil {
		return nil, errors.Errorf("opening source file: %w", err)
	}
	defer f.Close()

	result, err := t.Translate(ctx, f)
	if err != nil {
		return nil, errors.Errorf("translating %s: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return nil, errors.Errorf("creating parent directories: %w", err)
	}

	if err := writeFileAtomic(dst, result.TranslatedContent); err != nil {
		return nil, errors.Errorf("writing destination file: %w", err)
	}

	logger.Debug().
		Str("destination", dst).
		Int("replacements", result.ReplacementCount).
		Msg("schema file written")

	return result, nil
}

// 📝 writeFileAtomic writes content via a temp file and rename.
func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
