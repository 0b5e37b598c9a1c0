package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run applies the stock pipeline to content and returns the result.
func run(t *testing.T, content string) string {
	t.Helper()
	rs := DefaultRuleset()
	require.NoError(t, rs.Validate())
	got, _ := rs.Apply(content)
	return got
}

func TestDrizzleRuleset_ImportRewrite(t *testing.T) {
	content := `import { pgTable, text, varchar, integer, timestamp, pgEnum, numeric, boolean, jsonb } from "drizzle-orm/pg-core";` + "\n" +
		`import { relations } from "drizzle-orm/relations";` + "\n"

	got := run(t, content)

	assert.Contains(t, got, `import { sqliteTable, text, integer, real } from "drizzle-orm/sqlite-core";`)
	assert.NotContains(t, got, "pg-core")
	// Unrelated import lines are untouched
	assert.Contains(t, got, `import { relations } from "drizzle-orm/relations";`)
}

func TestDrizzleRuleset_NanoidPrelude(t *testing.T) {
	got := run(t, "export const x = 1;\n")

	assert.True(t, strings.HasPrefix(got, "import { nanoid } from \"nanoid\";\nconst genId = () => nanoid();\n\n"))
}

func TestDrizzleRuleset_EnumDeclarationRemoved(t *testing.T) {
	content := `export const statusEnum = pgEnum("status", ["a", "b"]);` + "\n" +
		`export const deals = pgTable("deals", {});` + "\n"

	got := run(t, content)

	assert.NotContains(t, got, "pgEnum")
	assert.NotContains(t, got, "statusEnum =")
	assert.Contains(t, got, `export const deals = sqliteTable("deals", {});`)
}

func TestDrizzleRuleset_NumericToReal(t *testing.T) {
	got := run(t, `amount: numeric("amount", 10, 2),`)

	assert.Equal(t, expectedWithPrelude(`amount: real,`), got)
}

func TestDrizzleRuleset_TimestampWithOptions(t *testing.T) {
	// The specific two-argument rule must fire before the general rewrite,
	// otherwise the options object would survive untranslated.
	got := run(t, `created_at: timestamp("created_at", { withTimezone: true }),`)

	assert.Equal(t, expectedWithPrelude(`created_at: integer("created_at", { mode: "timestamp" }),`), got)
}

func TestDrizzleRuleset_TimestampGeneral(t *testing.T) {
	got := run(t, `updated_at: timestamp("updated_at"),`)

	assert.Equal(t, expectedWithPrelude(`updated_at: integer("updated_at"),`), got)
}

func TestDrizzleRuleset_TableConstructorIsTextual(t *testing.T) {
	// The transformation is purely textual: pgTable is replaced anywhere,
	// including inside comments.
	content := "// pgTable is great\nexport const deals = pgTable(\"deals\", {});\n"

	got := run(t, content)

	assert.Contains(t, got, "// sqliteTable is great")
	assert.Contains(t, got, `sqliteTable("deals", {});`)
	assert.NotContains(t, got, "pgTable")
}

func TestDrizzleRuleset_EnumColumnExactMatch(t *testing.T) {
	content := `status: statusEnum("status"),` + "\n" +
		`other: statusEnum("other_column"),` + "\n"

	got := run(t, content)

	// Listed pair is flattened to text
	assert.Contains(t, got, `status: text("status"),`)
	// Unlisted column name passes through silently
	assert.Contains(t, got, `other: statusEnum("other_column"),`)
}

func TestDrizzleRuleset_BooleanDefaults(t *testing.T) {
	content := `a: boolean("a").default(true),` + "\n" +
		`b: boolean("b").default(false),` + "\n"

	got := run(t, content)

	assert.Contains(t, got, `a: integer("a").default(1),`)
	assert.Contains(t, got, `b: integer("b").default(0),`)
}

func TestDrizzleRuleset_BooleanModeAnnotation(t *testing.T) {
	content := `is_active: integer("is_active"),` + "\n" +
		`is_old: integer("is_active", { mode: "something_else" }),` + "\n"

	got := run(t, content)

	// Bare call in the list gets the mode annotation
	assert.Contains(t, got, `is_active: integer("is_active", { mode: "boolean" }),`)
	// Calls that already carry an options object are left alone
	assert.Contains(t, got, `is_old: integer("is_active", { mode: "something_else" }),`)
}

func TestDrizzleRuleset_UUIDDefault(t *testing.T) {
	got := run(t, "id: varchar(\"id\").primaryKey().default(sql`gen_random_uuid()`),")

	assert.Equal(t, expectedWithPrelude(`id: text("id").primaryKey().$defaultFn(() => genId()),`), got)
}

func TestDrizzleRuleset_DefaultNow(t *testing.T) {
	got := run(t, `created_at: timestamp("created_at").defaultNow(),`)

	assert.Equal(t, expectedWithPrelude(`created_at: integer("created_at").$defaultFn(() => new Date()),`), got)
}

func TestDrizzleRuleset_ArrayModifierRemoved(t *testing.T) {
	got := run(t, `tags: text("tags").array(),`)

	assert.Equal(t, expectedWithPrelude(`tags: text("tags"),`), got)
}

func TestDrizzleRuleset_JsonbToText(t *testing.T) {
	got := run(t, `meta: jsonb("meta"),`)

	assert.Equal(t, expectedWithPrelude(`meta: text("meta"),`), got)
}

func TestDrizzleRuleset_SQLImportRemoved(t *testing.T) {
	got := run(t, `import { sql } from "drizzle-orm";`+"\n")

	assert.NotContains(t, got, `import { sql }`)
}

func TestDrizzleRuleset_ExtraColumns(t *testing.T) {
	enumColumns := append([]EnumColumn{}, DefaultEnumColumns...)
	enumColumns = append(enumColumns, EnumColumn{Enum: "regionEnum", Column: "region"})

	booleanColumns := append([]string{}, DefaultBooleanColumns...)
	booleanColumns = append(booleanColumns, "is_archived")

	rs := DrizzleRuleset(enumColumns, booleanColumns)
	got, _ := rs.Apply(`region: regionEnum("region"), is_archived: boolean("is_archived"),`)

	assert.Contains(t, got, `region: text("region"),`)
	assert.Contains(t, got, `is_archived: integer("is_archived", { mode: "boolean" }),`)
}

func TestDefaultLists(t *testing.T) {
	// Eleven enum pairs and five boolean columns ship as defaults.
	assert.Len(t, DefaultEnumColumns, 11)
	assert.Len(t, DefaultBooleanColumns, 5)
}

// expectedWithPrelude prefixes the nanoid prelude the pipeline always adds.
func expectedWithPrelude(body string) string {
	return "import { nanoid } from \"nanoid\";\nconst genId = () => nanoid();\n\n" + body
}
