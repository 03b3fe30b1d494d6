package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "tilawah.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_SetGetDelete(t *testing.T) {
	repo := newTestRepo(t)

	_, ok, err := repo.Get("notes")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set("notes", `{"2:255":"throne"}`))
	v, ok, err := repo.Get("notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"2:255":"throne"}`, v)

	require.NoError(t, repo.Set("notes", `{}`))
	v, _, err = repo.Get("notes")
	require.NoError(t, err)
	assert.Equal(t, `{}`, v)

	require.NoError(t, repo.Set("bookmarks", `{"Uncategorized":[]}`))
	keys, err := repo.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"bookmarks", "notes"}, keys)

	require.NoError(t, repo.Delete("notes"))
	require.NoError(t, repo.Delete("missing"))
	_, ok, err = repo.Get("notes")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteRepository_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilawah.db")

	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Set("appLang", `"ar"`))
	require.NoError(t, repo.Close())

	repo, err = NewSQLiteRepository(path)
	require.NoError(t, err)
	defer repo.Close()

	v, ok, err := repo.Get("appLang")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"ar"`, v)
}

func TestSQLiteRepository_Schema(t *testing.T) {
	repo := newTestRepo(t)

	rows, err := repo.db.Query(`SELECT name FROM pragma_table_info('storage') ORDER BY cid`)
	require.NoError(t, err)
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		columns = append(columns, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"key", "value"}, columns)
}

func TestMemoryRepository_Closed(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.Set("k", "v"))
	require.NoError(t, repo.Close())

	_, _, err := repo.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, repo.Set("k", "v"), ErrClosed)
}
