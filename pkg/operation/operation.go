// Package operation provides the convert and check operations over schema files
package operation

import (
	"context"

	"github.com/walteh/pg2sqlite/pkg/config"
	"github.com/walteh/pg2sqlite/pkg/log"
	"github.com/walteh/pg2sqlite/pkg/rules"
	"github.com/walteh/pg2sqlite/pkg/translate"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a single executable unit of work
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for operations
type Options struct {
	// Config is the pg2sqlite configuration
	Config *config.Config
	// Logger renders per-file and per-rule console output
	Logger *log.Logger
	// UserLogger renders user-facing outcome messages
	UserLogger *log.UserLogger
}

// 🔍 validate checks that required options are present
func (o Options) validate() error {
	if o.Config == nil {
		return errors.Errorf("config is required")
	}
	if o.Logger == nil {
		return errors.Errorf("logger is required")
	}
	if o.UserLogger == nil {
		return errors.Errorf("user logger is required")
	}
	return nil
}

// 🏭 translatorFor builds a translator for one conversion, extending the
// stock enum/boolean column lists with any configured extras.
func translatorFor(c config.Conversion) (*translate.Translator, error) {
	enumColumns := append([]rules.EnumColumn{}, rules.DefaultEnumColumns...)
	for _, ec := range c.EnumColumns {
		enumColumns = append(enumColumns, rules.EnumColumn{Enum: ec.Enum, Column: ec.Column})
	}

	booleanColumns := append([]string{}, rules.DefaultBooleanColumns...)
	booleanColumns = append(booleanColumns, c.BooleanColumns...)

	t, err := translate.New(rules.DrizzleRuleset(enumColumns, booleanColumns))
	if err != nil {
		return nil, errors.Errorf("building translator: %w", err)
	}
	return t, nil
}
