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

// Package config loads pg2sqlite configuration from YAML or HCL files.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Stock paths from the original migration workflow. Used whenever no config
// file is present, so the zero-config invocation behaves like the script it
// replaces.
const (
	DefaultSource      = "shared/schema.pg.backup.ts"
	DefaultDestination = "shared/schema.ts"
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

// 🔄 EnumColumn pairs an enum constructor with a column name to flatten
type EnumColumn struct {
	Enum   string `json:"enum" yaml:"enum" hcl:"enum"`
	Column string `json:"column" yaml:"column" hcl:"column"`
}

// 🔧 Conversion represents one schema file translation
type Conversion struct {
	Source         string       `json:"source" yaml:"source" hcl:"source,optional"`
	Destination    string       `json:"destination" yaml:"destination" hcl:"destination,optional"`
	EnumColumns    []EnumColumn `json:"enum_columns,omitempty" yaml:"enum_columns,omitempty" hcl:"enum_column,block"`
	BooleanColumns []string     `json:"boolean_columns,omitempty" yaml:"boolean_columns,omitempty" hcl:"boolean_columns,optional"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Conversions []Conversion `json:"conversions" yaml:"conversions" hcl:"conversion,block"`
	Async       bool         `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`
}

// 🏭 Default returns the configuration used when no config file exists:
// a single conversion on the stock paths.
func Default() *Config {
	return &Config{
		Conversions: []Conversion{
			{Source: DefaultSource, Destination: DefaultDestination},
		},
	}
}

// 🎯 Load loads the configuration from a file. A missing file is not an
// error: the default single-conversion config is returned instead.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no config file, using defaults")
			return Default(), nil
		}
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

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Conversions) == 0 {
		return errors.Errorf("at least one conversion is required")
	}

	for i := range cfg.Conversions {
		c := &cfg.Conversions[i]

		// Set defaults
		if c.Source == "" {
			c.Source = DefaultSource
		}
		if c.Destination == "" {
			c.Destination = DefaultDestination
		}

		// Clean up paths
		c.Source = filepath.Clean(c.Source)
		c.Destination = filepath.Clean(c.Destination)

		for j, ec := range c.EnumColumns {
			if ec.Enum == "" {
				return errors.Errorf("conversion %d: enum_columns[%d].enum is required", i, j)
			}
			if ec.Column == "" {
				return errors.Errorf("conversion %d: enum_columns[%d].column is required", i, j)
			}
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	parts := make([]string, 0, len(cfg.Conversions))
	for _, c := range cfg.Conversions {
		parts = append(parts, fmt.Sprintf("%s -> %s", c.Source, c.Destination))
	}
	return strings.Join(parts, ", ")
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
