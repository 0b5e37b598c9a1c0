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

package rules

import (
	"fmt"
	"regexp"
)

// 🎯 EnumColumn pairs a pg-core enum constructor with the column name it is
// invoked on. Matching is exact on both; combinations outside the list pass
// through untouched.
type EnumColumn struct {
	Enum   string // enum constructor identifier, e.g. "statusEnum"
	Column string // literal column name string, e.g. "status"
}

// 📋 DefaultEnumColumns lists the enum/column pairs flattened to text columns.
var DefaultEnumColumns = []EnumColumn{
	{Enum: "statusEnum", Column: "status"},
	{Enum: "warehouseCategoryEnum", Column: "category"},
	{Enum: "warehouseStatusEnum", Column: "status"},
	{Enum: "transactionTypeEnum", Column: "type"},
	{Enum: "financialTypeEnum", Column: "type"},
	{Enum: "installationStatusEnum", Column: "status"},
	{Enum: "priorityEnum", Column: "priority"},
	{Enum: "documentTypeEnum", Column: "type"},
	{Enum: "messageTypeEnum", Column: "message_type"},
	{Enum: "dealDocumentTypeEnum", Column: "document_type"},
	{Enum: "customFieldTypeEnum", Column: "field_type"},
}

// 📋 DefaultBooleanColumns lists columns that hold boolean-semantic data and
// get a { mode: "boolean" } annotation on their integer column. Only calls
// with no existing options object are annotated.
var DefaultBooleanColumns = []string{
	"can_create_deals",
	"can_edit_deals",
	"can_delete_deals",
	"is_signed",
	"is_active",
}

var (
	enumDeclPattern      = regexp.MustCompile(`export const \w+Enum = pgEnum\([^)]+\);`)
	numericCallPattern   = regexp.MustCompile(`numeric\([^)]+\)`)
	timestampOptsPattern = regexp.MustCompile(`timestamp\(("[^"]+"),\s*\{[^}]*\}\)`)
)

// nanoid replaces pg's gen_random_uuid(); sqlite-core has no builtin
// random-identifier generation, so the prelude defines a wrapper used by
// the $defaultFn rewrites below.
const nanoidPrelude = "import { nanoid } from \"nanoid\";\nconst genId = () => nanoid();\n\n"

// 🏭 DrizzleRuleset builds the ordered pg-core to sqlite-core pipeline.
// Rule order is load-bearing: the two-argument timestamp rewrite must run
// before the bare timestamp( rewrite, and the enum-column flattening must run
// after the enum declarations are dropped.
func DrizzleRuleset(enumColumns []EnumColumn, booleanColumns []string) Ruleset {
	rs := Ruleset{
		Literal{
			RuleName: "import_rewrite",
			From:     `import { pgTable, text, varchar, integer, timestamp, pgEnum, numeric, boolean, jsonb } from "drizzle-orm/pg-core";`,
			To:       `import { sqliteTable, text, integer, real } from "drizzle-orm/sqlite-core";`,
		},
		Literal{
			RuleName: "drop_sql_import",
			From:     `import { sql } from "drizzle-orm";`,
			To:       "",
		},
		Prepend{
			RuleName: "nanoid_prelude",
			Text:     nanoidPrelude,
		},
		Regexp{
			RuleName: "drop_enum_decls",
			Pattern:  enumDeclPattern,
			Replace:  "",
		},
		Literal{
			RuleName: "table_constructor",
			From:     "pgTable",
			To:       "sqliteTable",
		},
		Literal{
			RuleName: "varchar_to_text",
			From:     "varchar",
			To:       "text",
		},
		Regexp{
			RuleName: "numeric_to_real",
			Pattern:  numericCallPattern,
			Replace:  "real",
		},
		Regexp{
			RuleName: "timestamp_with_options",
			Pattern:  timestampOptsPattern,
			Replace:  `integer(${1}, { mode: "timestamp" })`,
		},
		Literal{
			RuleName: "timestamp_call",
			From:     "timestamp(",
			To:       "integer(",
		},
		Literal{
			RuleName: "boolean_call",
			From:     "boolean(",
			To:       "integer(",
		},
		Literal{
			RuleName: "jsonb_call",
			From:     "jsonb(",
			To:       "text(",
		},
		Literal{
			RuleName: "drop_array_modifier",
			From:     ".array()",
			To:       "",
		},
		Literal{
			RuleName: "uuid_default",
			From:     ".default(sql`gen_random_uuid()`)",
			To:       ".$defaultFn(() => genId())",
		},
	}

	for _, ec := range enumColumns {
		rs = append(rs, Literal{
			RuleName: fmt.Sprintf("enum_column_%s", ec.Enum),
			From:     fmt.Sprintf(`%s("%s")`, ec.Enum, ec.Column),
			To:       fmt.Sprintf(`text("%s")`, ec.Column),
		})
	}

	rs = append(rs,
		Literal{
			RuleName: "default_true",
			From:     ".default(true)",
			To:       ".default(1)",
		},
		Literal{
			RuleName: "default_false",
			From:     ".default(false)",
			To:       ".default(0)",
		},
		Literal{
			RuleName: "default_now",
			From:     ".defaultNow()",
			To:       ".$defaultFn(() => new Date())",
		},
	)

	for _, col := range booleanColumns {
		rs = append(rs, Literal{
			RuleName: fmt.Sprintf("boolean_mode_%s", col),
			From:     fmt.Sprintf(`integer("%s")`, col),
			To:       fmt.Sprintf(`integer("%s", { mode: "boolean" })`, col),
		})
	}

	return rs
}

// 🏭 DefaultRuleset builds the pipeline with the stock column lists.
func DefaultRuleset() Ruleset {
	return DrizzleRuleset(DefaultEnumColumns, DefaultBooleanColumns)
}
