// Package tui is the interactive terminal front end: a bubbletea program that
// feeds key presses into a session and renders its Screen.
package tui

import (
	"strings"

	"github.com/bastiangx/wordtree/pkg/session"
	"github.com/bastiangx/wordtree/pkg/suggest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const helpText = "tab cycle • space select • enter commit • :d delete • esc cancel • # quit"

// Styles holds the lipgloss styles used by View.
type Styles struct {
	Text      lipgloss.Style
	Input     lipgloss.Style
	Cursor    lipgloss.Style
	EntryMode lipgloss.Style
	DelMode   lipgloss.Style
	Help      lipgloss.Style
}

// DefaultStyles returns the stock palette.
func DefaultStyles() Styles {
	return Styles{
		Text:   lipgloss.NewStyle(),
		Input:  lipgloss.NewStyle().Bold(true),
		Cursor: lipgloss.NewStyle().Reverse(true),
		EntryMode: lipgloss.NewStyle().Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"}).
			Background(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		DelMode: lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"}).
			Background(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"}),
		Help: lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"}),
	}
}

// Model adapts a Session to bubbletea.
type Model struct {
	session *session.Session
	screen  *Screen
	styles  Styles
}

// NewModel builds a session over completer and draws its first prompt.
func NewModel(completer suggest.ICompleter, opts session.Options) Model {
	screen := NewScreen()
	s := session.New(completer, screen, opts)
	s.Start()
	return Model{
		session: s,
		screen:  screen,
		styles:  DefaultStyles(),
	}
}

// Session returns the underlying state machine.
func (m Model) Session() *session.Session {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	for _, key := range KeysFromMsg(keyMsg) {
		if m.session.Handle(key) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.session.Done() {
		return ""
	}

	var b strings.Builder
	cursorRow, cursorCol := m.screen.Cursor()
	for i, line := range m.screen.Lines() {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i != cursorRow {
			b.WriteString(m.styles.Text.Render(line))
			continue
		}
		b.WriteString(m.renderInput(line, cursorCol))
	}

	b.WriteString("\n\n")
	if m.session.Mode() == session.ModeDeletePending {
		b.WriteString(m.styles.DelMode.Render("DELETE"))
	} else {
		b.WriteString(m.styles.EntryMode.Render("ENTRY"))
	}
	b.WriteByte(' ')
	b.WriteString(m.styles.Help.Render(helpText))
	return b.String()
}

func (m Model) renderInput(line string, col int) string {
	for len(line) <= col {
		line += " "
	}
	return m.styles.Input.Render(line[:col]) +
		m.styles.Cursor.Render(line[col:col+1]) +
		m.styles.Input.Render(line[col+1:])
}

// KeysFromMsg translates a bubbletea key press into session keys.
func KeysFromMsg(msg tea.KeyMsg) []session.Key {
	switch msg.Type {
	case tea.KeyTab:
		return []session.Key{{Kind: session.KeyCycle}}
	case tea.KeySpace:
		return []session.Key{{Kind: session.KeyConfirm}}
	case tea.KeyEnter:
		return []session.Key{{Kind: session.KeyCommit}}
	case tea.KeyEsc:
		return []session.Key{{Kind: session.KeyCancel}}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []session.Key{{Kind: session.KeyErase}}
	case tea.KeyRunes:
		keys := make([]session.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r > 0x7f {
				continue
			}
			if key, ok := session.DecodeByte(byte(r)); ok {
				keys = append(keys, key)
			}
		}
		return keys
	}
	return nil
}

// Run starts the full-screen program and blocks until the session ends or
// the user presses ctrl+c.
func Run(completer suggest.ICompleter, opts session.Options) error {
	p := tea.NewProgram(NewModel(completer, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
