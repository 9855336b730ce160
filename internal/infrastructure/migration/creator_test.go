package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Cart Records")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_cart_records.up.sql"), mf.UpPath)
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_cart_records.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add Cart Records")

	_, err = os.Stat(mf.DownPath)
	assert.NoError(t, err)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Add Cart Records", "add_cart_records"},
		{"add-dispensaries", "add_dispensaries"},
		{"weird!!chars##", "weirdchars"},
		{"trailing ", "trailing"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in), tt.in)
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty directory", func(t *testing.T) {
		got, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("missing directory is not an error", func(t *testing.T) {
		got, err := ListMigrations(dir + "/nope")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("pairs are listed once", func(t *testing.T) {
		_, err := CreateMigration(dir, "first")
		require.NoError(t, err)

		got, err := ListMigrations(dir)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, strings.HasSuffix(got[0], "_first"))
	})
}
