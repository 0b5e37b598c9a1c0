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
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/pg2sqlite/pkg/config"
	"github.com/walteh/pg2sqlite/pkg/log"
	"github.com/walteh/pg2sqlite/pkg/rules"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📦 NewConvertOperation creates a new convert operation
func NewConvertOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}
	return &convertOperation{opts: opts}, nil
}

// 📦 convertOperation implements the convert operation
type convertOperation struct {
	opts Options
}

// 🏃 Execute runs every configured conversion. With async enabled the
// conversions run concurrently; each individual file is still a single
// sequential pipeline pass.
func (op *convertOperation) Execute(ctx context.Context) error {
	conversions := op.opts.Config.Conversions

	if op.opts.Config.Async && len(conversions) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		for _, c := range conversions {
			c := c
			g.Go(func() error {
				return op.runConversion(gctx, c)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for _, c := range conversions {
			if err := op.runConversion(ctx, c); err != nil {
				return err
			}
		}
	}

	op.opts.UserLogger.LogCompletion("Conversion complete!")
	return nil
}

// 🔄 runConversion translates every source file matched by one conversion
func (op *convertOperation) runConversion(ctx context.Context, c config.Conversion) error {
	translator, err := translatorFor(c)
	if err != nil {
		return errors.Errorf("conversion %s: %w", c.Source, err)
	}

	sources, err := expandSources(c.Source)
	if err != nil {
		return errors.Errorf("expanding sources: %w", err)
	}

	for _, src := range sources {
		dst := destinationFor(src, c.Destination, len(sources) > 1)

		op.opts.Logger.StartFileOperation(ctx, log.FileOperation{
			Source:      src,
			Destination: dst,
		})

		result, err := translator.ConvertFile(ctx, src, dst)
		if err != nil {
			op.opts.UserLogger.LogFileChange(log.FileChange{
				Type:  log.FileError,
				Path:  src,
				Error: err,
			})
			return errors.Errorf("converting %s: %w", src, err)
		}

		showAll := zerolog.Ctx(ctx).GetLevel() <= zerolog.DebugLevel
		for _, rr := range result.RuleResults {
			if rr.Matches == 0 && !showAll {
				continue
			}
			op.opts.Logger.LogRuleOperation(ctx, log.RuleOperation{
				Rule:    rr.Rule,
				Kind:    ruleKind(translator.Ruleset(), rr.Rule),
				Matches: rr.Matches,
			})
		}

		op.opts.Logger.EndFileOperation(ctx, log.FileOperation{
			Source:       src,
			Destination:  dst,
			IsModified:   result.WasModified,
			Replacements: result.ReplacementCount,
		})

		op.opts.UserLogger.LogFileChange(log.FileChange{
			Type:        log.FileConverted,
			Path:        dst,
			Description: fmt.Sprintf("%d replacements", result.ReplacementCount),
		})
	}

	return nil
}

// 🔍 expandSources resolves a source path that may contain glob patterns.
// A plain path is returned as-is so that a missing file surfaces as an open
// error instead of an empty match list.
func expandSources(source string) ([]string, error) {
	if !hasGlobMeta(source) {
		return []string{source}, nil
	}

	matches, err := doublestar.FilepathGlob(source)
	if err != nil {
		return nil, errors.Errorf("matching pattern %s: %w", source, err)
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("pattern %s matched no files", source)
	}
	return matches, nil
}

// 🔍 hasGlobMeta reports whether the path contains glob metacharacters
func hasGlobMeta(path string) bool {
	for _, r := range path {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// 📝 destinationFor picks the output path for one source file. When a glob
// matched multiple sources the destination is treated as a directory.
func destinationFor(src, dst string, multi bool) string {
	if !multi {
		return dst
	}
	return filepath.Join(dst, filepath.Base(src))
}

// 🏷️ ruleKind looks up the mechanism label for a named rule
func ruleKind(rs rules.Ruleset, name string) string {
	for _, r := range rs {
		if r.Name() == name {
			return rules.Kind(r)
		}
	}
	return "custom"
}
