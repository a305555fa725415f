package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsHaveGooseDirectives(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	for _, name := range names {
		b, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		assert.Contains(t, string(b), "-- +goose Up", name)
		assert.Contains(t, string(b), "-- +goose Down", name)
	}
}
