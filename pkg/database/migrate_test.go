package database_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uniqueIndex = regexp.MustCompile(`(?is)CREATE UNIQUE INDEX IF NOT EXISTS (\w+) ON (\w+)\s*\([^;]*?\)([^;]*);`)

// Soft-deleted rows must not block re-creating the same record.
func TestUniqueIndexesOnSoftDeletedTablesIgnoreInactiveRows(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "migrations", "000001_init_schema.up.sql"))
	require.NoError(t, err)

	indexes := map[string]string{}
	for _, m := range uniqueIndex.FindAllStringSubmatch(string(raw), -1) {
		indexes[m[1]] = m[3]
	}

	require.Contains(t, indexes, "ux_patients_name_phone")
	assert.Regexp(t, `(?i)WHERE\s+is_active`, indexes["ux_patients_name_phone"])
}
