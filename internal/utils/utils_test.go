package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.dat")
	require.NoError(t, os.WriteFile(path, []byte("cat\ndog\n"), 0o644))

	check := CheckFile(path, 4)
	require.NoError(t, check.Err)
	require.True(t, check.Exists)
	require.True(t, check.Regular)
	require.EqualValues(t, 8, check.Size)

	check = CheckFile(dir, 4)
	require.True(t, check.Exists)
	require.False(t, check.Regular)

	check = CheckFile(filepath.Join(dir, "missing"), 4)
	require.False(t, check.Exists)
	require.ErrorIs(t, check.Err, os.ErrNotExist)
}

func TestCreateExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "words.dat")

	created, err := CreateExclusive(path)
	require.NoError(t, err)
	require.True(t, created)

	require.NoError(t, os.WriteFile(path, []byte("cat\n"), 0o644))
	created, err = CreateExclusive(path)
	require.NoError(t, err)
	require.False(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "cat\n", string(data))
}

func TestWritableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.True(t, WritableDir(dir))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)

	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	require.False(t, WritableDir(filepath.Join(file, "sub")))
}

func TestSaveAndDecodeTOML(t *testing.T) {
	type dict struct {
		MaxWordLen int `toml:"max_word_len"`
	}
	type doc struct {
		Dict dict `toml:"dict"`
	}

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, SaveTOMLFile(doc{Dict: dict{MaxWordLen: 40}}, path))

	var loaded doc
	unknown, err := DecodeTOMLFile(path, &loaded)
	require.NoError(t, err)
	require.Empty(t, unknown)
	require.Equal(t, 40, loaded.Dict.MaxWordLen)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("max_wrod_len = 3\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	unknown, err = DecodeTOMLFile(path, &loaded)
	require.NoError(t, err)
	require.Equal(t, []string{"dict.max_wrod_len"}, unknown)
}

func TestLooseTOMLLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[store]\npath = \"w.dat\"\n\n[dict]\nmax_results = 5\nmax_word_len = \"long\"\n"), 0o644))

	doc, err := LooseTOML(path)
	require.NoError(t, err)

	n, ok := Lookup[int](doc, "dict", "max_results")
	require.True(t, ok)
	require.Equal(t, 5, n)

	s, ok := Lookup[string](doc, "store", "path")
	require.True(t, ok)
	require.Equal(t, "w.dat", s)

	_, ok = Lookup[int](doc, "dict", "max_word_len")
	require.False(t, ok)
	_, ok = Lookup[int](doc, "server", "max_limit")
	require.False(t, ok)
	_, ok = Lookup[string](doc, "dict", "missing")
	require.False(t, ok)

	_, err = LooseTOML(filepath.Join(t.TempDir(), "none.toml"))
	require.Error(t, err)
}
