package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/wordtree/pkg/store"
	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T, words ...string) (*InputHandler, *suggest.Completer, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dicionario.dat")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0o644))
	completer := suggest.NewCompleter(store.Open(path), 0)
	require.NoError(t, completer.Initialize())

	var out bytes.Buffer
	logger := log.NewWithOptions(&out, log.Options{Level: log.InfoLevel})
	return NewInputHandler(completer, logger, 1, 10, 5), completer, &out
}

func TestStartListsCompletions(t *testing.T) {
	h, _, out := newHandler(t, "cat", "car", "dog")

	require.NoError(t, h.Start(strings.NewReader("ca\n\nzz\n")))
	require.Equal(t, 2, h.Requests())

	text := out.String()
	require.Contains(t, text, "Found 2 suggestions for prefix 'ca':")
	require.Contains(t, text, " 1. cat")
	require.Contains(t, text, " 2. car")
	require.Contains(t, text, "No suggestions found for prefix: 'zz'")
}

func TestStartEditsDictionary(t *testing.T) {
	h, completer, out := newHandler(t, "cat")

	require.NoError(t, h.Start(strings.NewReader("+fish\n+cat\n-cat\n-bird\n?fish\n?cat")))
	require.True(t, completer.Exists("fish"))
	require.False(t, completer.Exists("cat"))

	text := out.String()
	require.Contains(t, text, "added 'fish'")
	require.Contains(t, text, "'cat' already exists")
	require.Contains(t, text, "removed 'cat'")
	require.Contains(t, text, "'bird' not found")
	require.Contains(t, text, "'fish' is in the dictionary")
	require.Contains(t, text, "'cat' is not in the dictionary")
}

func TestStartStopsAtQuitWord(t *testing.T) {
	h, completer, _ := newHandler(t, "cat")
	require.NoError(t, h.Start(strings.NewReader("+a\n#\n+b\n")))
	require.True(t, completer.Exists("a"))
	require.False(t, completer.Exists("b"))
}

func TestPrefixBounds(t *testing.T) {
	h, _, out := newHandler(t, "cat")
	require.NoError(t, h.Start(strings.NewReader("abcdefghijklmnop\n")))
	require.Contains(t, out.String(), "Prefix too long")
}

func TestAddFailureIsLogged(t *testing.T) {
	h, completer, out := newHandler(t, "cat")
	require.NoError(t, h.Start(strings.NewReader("+two words\n")))
	require.False(t, completer.Exists("two words"))
	require.Contains(t, out.String(), "Could not add 'two words'")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestStartReturnsReadErrors(t *testing.T) {
	h, _, _ := newHandler(t, "cat")
	require.EqualError(t, h.Start(failingReader{}), "boom")
}
