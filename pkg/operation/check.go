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
	"bytes"
	"context"
	"os"

	"github.com/walteh/pg2sqlite/pkg/config"
	"github.com/walteh/pg2sqlite/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewCheckOperation creates a new check operation
func NewCheckOperation(opts Options) (*CheckOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}
	return &CheckOperation{opts: opts}, nil
}

// 🔍 CheckOperation computes the translation in memory and diffs it against
// the existing destination, without writing anything.
type CheckOperation struct {
	opts  Options
	stale int
}

// 📊 Stale reports how many destinations were missing or out of date after
// the last Execute.
func (op *CheckOperation) Stale() int {
	return op.stale
}

// 🏃 Execute runs the check for every configured conversion
func (op *CheckOperation) Execute(ctx context.Context) error {
	op.stale = 0

	for _, c := range op.opts.Config.Conversions {
		if err := op.checkConversion(ctx, c); err != nil {
			return err
		}
	}

	if op.stale == 0 {
		op.opts.UserLogger.LogValidation(true, "All destinations are up to date", nil)
	} else {
		op.opts.UserLogger.LogValidation(false, "Destinations need conversion", nil)
	}

	return nil
}

// 🔍 checkConversion diffs the would-be output for one conversion
func (op *CheckOperation) checkConversion(ctx context.Context, c config.Conversion) error {
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

		f, err := os.Open(src)
		if err != nil {
			return errors.Errorf("opening source file: %w", err)
		}

		result, err := translator.Translate(ctx, f)
		f.Close()
		if err != nil {
			return errors.Errorf("translating %s: %w", src, err)
		}

		current, err := os.ReadFile(dst)
		switch {
		case os.IsNotExist(err):
			op.stale++
			op.opts.UserLogger.LogFileChange(log.FileChange{
				Type:        log.FileMissing,
				Path:        dst,
				Description: "destination does not exist",
			})
		case err != nil:
			return errors.Errorf("reading destination file: %w", err)
		case bytes.Equal(current, result.TranslatedContent):
			op.opts.UserLogger.LogFileChange(log.FileChange{
				Type: log.FileUpToDate,
				Path: dst,
			})
		default:
			op.stale++
			op.opts.UserLogger.LogFileChange(log.FileChange{
				Type:        log.FileStale,
				Path:        dst,
				Description: "content differs from translation",
			})
		}
	}

	return nil
}
