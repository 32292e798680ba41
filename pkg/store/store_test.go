package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dicionario.dat")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return Open(path)
}

func readFile(t *testing.T, s *Store) string {
	t.Helper()
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	return string(data)
}

func TestLoadAll(t *testing.T) {
	s := newStore(t, "cat\ncar\r\n\n  dog  \ncat\n")
	words, err := s.LoadAll()
	require.NoError(t, err)
	require.Equal(t, []string{"cat", "car", "dog", "cat"}, words)
}

func TestLoadAllEmptyFile(t *testing.T) {
	s := newStore(t, "")
	words, err := s.LoadAll()
	require.NoError(t, err)
	require.Empty(t, words)
}

func TestLoadAllMissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "missing.dat"))
	_, err := s.LoadAll()
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestAppend(t *testing.T) {
	s := newStore(t, "cat\n")
	require.NoError(t, s.Append("fish"))
	require.NoError(t, s.Append("bird"))
	require.Equal(t, "cat\nfish\nbird\n", readFile(t, s))
}

func TestAppendMissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "missing.dat"))
	err := s.Append("fish")
	require.ErrorIs(t, err, ErrStoreWrite)
	require.NoFileExists(t, s.Path())
}

func TestRewriteExcluding(t *testing.T) {
	s := newStore(t, "cat\ncar\ncat\ndog\n")
	require.NoError(t, s.RewriteExcluding("cat"))
	require.Equal(t, "car\ndog\n", readFile(t, s))
	require.NoFileExists(t, s.Path()+DefaultTempSuffix)

	require.NoError(t, s.RewriteExcluding("absent"))
	require.Equal(t, "car\ndog\n", readFile(t, s))
}

func TestRewriteExcludingIsExactMatch(t *testing.T) {
	s := newStore(t, "cat\ncats\nCat\n")
	require.NoError(t, s.RewriteExcluding("cat"))
	require.Equal(t, "cats\nCat\n", readFile(t, s))
}

func TestRewriteExcludingMissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "missing.dat"))
	require.ErrorIs(t, s.RewriteExcluding("cat"), ErrStoreWrite)
}

func TestRewriteTempCreateFailureKeepsStore(t *testing.T) {
	s := newStore(t, "cat\ndog\n")
	// a directory in the temp file's place makes the create fail
	require.NoError(t, os.Mkdir(s.Path()+DefaultTempSuffix, 0o755))

	err := s.RewriteExcluding("cat")
	require.ErrorIs(t, err, ErrStoreWrite)
	require.Equal(t, "cat\ndog\n", readFile(t, s))
}

func TestRewriteRenameFailureLeavesNoStore(t *testing.T) {
	s := newStore(t, "cat\ncar\ndog\n")
	rename = func(string, string) error { return errors.New("cross-device link") }
	t.Cleanup(func() { rename = os.Rename })

	err := s.RewriteExcluding("car")
	require.ErrorIs(t, err, ErrStoreReplace)
	require.NotErrorIs(t, err, ErrStoreWrite)
	require.Contains(t, err.Error(), "cross-device link")

	// the old store is gone and the rewrite is stranded at the temp path
	require.NoFileExists(t, s.Path())
	data, err := os.ReadFile(s.Path() + DefaultTempSuffix)
	require.NoError(t, err)
	require.Equal(t, "cat\ndog\n", string(data))

	_, err = s.LoadAll()
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestWithTempSuffix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o644))
	s := Open(path, WithTempSuffix(".swap"))
	require.NoError(t, os.Mkdir(path+DefaultTempSuffix, 0o755))

	require.NoError(t, s.RewriteExcluding("a"))
	require.Equal(t, "b\n", readFile(t, s))
}

func TestRewriteAll(t *testing.T) {
	s := newStore(t, "dog\ncat\ndog\n")
	require.NoError(t, s.RewriteAll([]string{"cat", "dog"}))
	require.Equal(t, "cat\ndog\n", readFile(t, s))

	require.NoError(t, s.RewriteAll(nil))
	require.Equal(t, "", readFile(t, s))
}

func TestValidate(t *testing.T) {
	s := newStore(t, "cat\n")
	require.NoError(t, s.Validate())

	require.NoError(t, newStore(t, "").Validate())

	missing := Open(filepath.Join(t.TempDir(), "missing.dat"))
	require.ErrorIs(t, missing.Validate(), ErrStoreUnavailable)

	dir := Open(t.TempDir())
	require.ErrorIs(t, dir.Validate(), ErrStoreUnavailable)
}

func TestCreate(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "new.dat"))
	require.NoError(t, s.Create())
	require.FileExists(t, s.Path())

	require.NoError(t, s.Append("word"))
	require.NoError(t, s.Create())
	require.Equal(t, "word\n", readFile(t, s))
}

func TestCreateMakesDirectory(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "data", "words.dat"))
	require.NoError(t, s.Create())
	require.NoError(t, s.Validate())

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	require.ErrorIs(t, Open(filepath.Join(blocker, "words.dat")).Create(), ErrStoreWrite)
}
