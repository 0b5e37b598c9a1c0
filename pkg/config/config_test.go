package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, ".pg2sqlite.yaml", `
conversions:
  - source: shared/schema.pg.backup.ts
    destination: shared/schema.ts
    enum_columns:
      - enum: regionEnum
        column: region
    boolean_columns:
      - is_archived
async: true
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Len(t, cfg.Conversions, 1)
	c := cfg.Conversions[0]
	assert.Equal(t, filepath.Clean("shared/schema.pg.backup.ts"), c.Source)
	assert.Equal(t, filepath.Clean("shared/schema.ts"), c.Destination)
	require.Len(t, c.EnumColumns, 1)
	assert.Equal(t, EnumColumn{Enum: "regionEnum", Column: "region"}, c.EnumColumns[0])
	assert.Equal(t, []string{"is_archived"}, c.BooleanColumns)
	assert.True(t, cfg.Async)
}

func TestLoad_YAML_UnknownField(t *testing.T) {
	path := writeConfig(t, ".pg2sqlite.yaml", `
conversions:
  - source: a.ts
    destination: b.ts
unknown_field: true
`)

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_HCL(t *testing.T) {
	path := writeConfig(t, ".pg2sqlite.hcl", `
async = true

conversion {
  source      = "shared/schema.pg.backup.ts"
  destination = "shared/schema.ts"

  enum_column {
    enum   = "regionEnum"
    column = "region"
  }

  boolean_columns = ["is_archived"]
}
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, cfg.Conversions, 1)
	c := cfg.Conversions[0]
	assert.Equal(t, filepath.Clean("shared/schema.pg.backup.ts"), c.Source)
	require.Len(t, c.EnumColumns, 1)
	assert.Equal(t, "regionEnum", c.EnumColumns[0].Enum)
	assert.Equal(t, []string{"is_archived"}, c.BooleanColumns)
	assert.True(t, cfg.Async)
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pg2sqlite.yaml")

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	// Falls back to the stock single conversion
	require.Len(t, cfg.Conversions, 1)
	assert.Equal(t, filepath.Clean(DefaultSource), cfg.Conversions[0].Source)
	assert.Equal(t, filepath.Clean(DefaultDestination), cfg.Conversions[0].Destination)
	assert.False(t, cfg.Async)
}

func TestLoad_NoParser(t *testing.T) {
	path := writeConfig(t, "config.toml", `whatever = true`)

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parser found")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantError string
	}{
		{
			name: "valid",
			cfg: Config{
				Conversions: []Conversion{{Source: "a.ts", Destination: "b.ts"}},
			},
		},
		{
			name:      "no_conversions",
			cfg:       Config{},
			wantError: "at least one conversion is required",
		},
		{
			name: "missing_enum_name",
			cfg: Config{
				Conversions: []Conversion{{
					Source:      "a.ts",
					Destination: "b.ts",
					EnumColumns: []EnumColumn{{Column: "status"}},
				}},
			},
			wantError: "enum is required",
		},
		{
			name: "missing_enum_column",
			cfg: Config{
				Conversions: []Conversion{{
					Source:      "a.ts",
					Destination: "b.ts",
					EnumColumns: []EnumColumn{{Enum: "statusEnum"}},
				}},
			},
			wantError: "column is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestConfig_Validate_Defaults(t *testing.T) {
	cfg := Config{Conversions: []Conversion{{}}}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Clean(DefaultSource), cfg.Conversions[0].Source)
	assert.Equal(t, filepath.Clean(DefaultDestination), cfg.Conversions[0].Destination)
}

func TestConfig_String(t *testing.T) {
	cfg := Config{Conversions: []Conversion{
		{Source: "a.ts", Destination: "b.ts"},
		{Source: "c.ts", Destination: "d.ts"},
	}}

	assert.Equal(t, "a.ts -> b.ts, c.ts -> d.ts", cfg.String())
}
