package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/wordtree/pkg/session"
	"github.com/bastiangx/wordtree/pkg/store"
	"github.com/bastiangx/wordtree/pkg/suggest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestScreenWriteAndClear(t *testing.T) {
	s := NewScreen()
	s.Write("hello")
	s.MoveTo(2, 3)
	s.Write("abc")
	require.Equal(t, []string{"hello", "", "   abc"}, s.Lines())

	s.MoveTo(0, 1)
	s.Write("EY")
	require.Equal(t, "hEYlo", s.Row(0))

	s.MoveTo(0, 2)
	s.ClearToEOL()
	require.Equal(t, "hE", s.Row(0))

	s.MoveTo(7, 0)
	s.ClearToEOL()
	require.Equal(t, "", s.Row(7))

	s.Clear()
	require.Equal(t, []string{""}, s.Lines())
	row, col := s.Cursor()
	require.Zero(t, row)
	require.Zero(t, col)
}

func TestScreenNewlineAndRefresh(t *testing.T) {
	s := NewScreen()
	s.Write("one\ntwo")
	s.Refresh()
	require.Equal(t, "one\ntwo", s.String())
	require.Equal(t, 1, s.Refreshes())

	s.MoveTo(-4, -1)
	row, col := s.Cursor()
	require.Zero(t, row)
	require.Zero(t, col)
}

func newModel(t *testing.T, words ...string) (Model, *suggest.Completer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dicionario.dat")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0o644))
	completer := suggest.NewCompleter(store.Open(path), 0)
	require.NoError(t, completer.Initialize())
	return NewModel(completer, session.Options{}), completer
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestKeysFromMsg(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want []session.Key
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, []session.Key{{Kind: session.KeyCycle}}},
		{tea.KeyMsg{Type: tea.KeySpace}, []session.Key{{Kind: session.KeyConfirm}}},
		{tea.KeyMsg{Type: tea.KeyEnter}, []session.Key{{Kind: session.KeyCommit}}},
		{tea.KeyMsg{Type: tea.KeyEsc}, []session.Key{{Kind: session.KeyCancel}}},
		{tea.KeyMsg{Type: tea.KeyBackspace}, []session.Key{{Kind: session.KeyErase}}},
		{runes("a:"), []session.Key{session.Char('a'), session.Char(':')}},
		{runes("é"), []session.Key{}},
		{tea.KeyMsg{Type: tea.KeyUp}, nil},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, KeysFromMsg(tt.msg), tt.msg.String())
	}
}

func TestModelDrivesSession(t *testing.T) {
	m, completer := newModel(t, "cat", "car", "dog")

	m, cmd := send(t, m, runes("ca"), tea.KeyMsg{Type: tea.KeyTab})
	require.Nil(t, cmd)
	require.Equal(t, "ca", m.Session().Buffer())
	require.Equal(t, "cat", m.Session().LastPresented())
	require.Contains(t, m.View(), "cat")
	require.Contains(t, m.View(), "ENTRY")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("fish"), tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, completer.Exists("fish"))
	require.Contains(t, m.View(), "Word 'fish' added to the dictionary.")

	m, _ = send(t, m, runes("dog:d"))
	require.Contains(t, m.View(), "DELETE")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, completer.Exists("dog"))

	m, cmd = send(t, m, runes("#"), tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Empty(t, m.View())
}

func TestModelCtrlCQuits(t *testing.T) {
	m, _ := newModel(t, "cat")
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelIgnoresOtherMessages(t *testing.T) {
	m, _ := newModel(t, "cat")
	m, cmd := send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	require.Nil(t, cmd)
	require.Contains(t, m.View(), "Type a prefix to autocomplete")
}
