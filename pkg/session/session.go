/*
Package session drives interactive dictionary editing from key events.

A Session keeps an edit buffer, runs prefix searches on demand and cycles
through their results, and turns a commit into an insertion or a deletion
on the completer. It draws onto an abstract line-addressable Display and
reads events from any KeySource, so the terminal front end, scripted input
and tests all share the same state machine.

# Modes

ModeEntry is the default: commit adds the buffer as a new word. Typing the
two characters ":d" strips them from the buffer and arms ModeDeletePending,
where the next commit removes the buffer's word instead. Commit and cancel
return to ModeEntry. Confirm (space) does not touch the mode, so a delete
armed before a confirm is still armed afterwards.

Cycling (tab) shows each completion on the input row in turn but leaves the
typed buffer as it is: commit acts on the typed text and confirm reports the
shown word.

Committing the buffer "#" ends the session in either mode.

# Layout

The prompt sits on row 0 and input starts on row 1. Each report writes a
status line under the input row followed by a fresh prompt, and input moves
to the row after that. Cancel clears the screen and starts over at the top.
*/
package session

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/bastiangx/wordtree/pkg/dictionary"
	"github.com/bastiangx/wordtree/pkg/store"
	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/charmbracelet/log"
)

// QuitWord ends the session when committed.
const QuitWord = "#"

// deleteTrigger arms ModeDeletePending when it ends the buffer.
const deleteTrigger = ":d"

const (
	firstPrompt = "Type a prefix to autocomplete (or '#' to quit):"
	nextPrompt  = "Type the next prefix (or '#' to quit):"
)

// Mode is the commit interpretation currently in force.
type Mode int

const (
	ModeEntry Mode = iota
	ModeDeletePending
)

func (m Mode) String() string {
	if m == ModeDeletePending {
		return "delete"
	}
	return "entry"
}

// Display is a line-addressable output surface.
type Display interface {
	MoveTo(row, col int)
	ClearToEOL()
	Write(text string)
	Clear()
	Refresh()
}

// Options tunes a Session.
type Options struct {
	// MaxWordLen bounds the edit buffer.
	MaxWordLen int
	// MaxResults caps each prefix search.
	MaxResults int
	// Logger receives debug output. Defaults to the global logger.
	Logger *log.Logger
}

// Session is the interactive state machine. It is single-threaded: each key
// is fully handled, store I/O included, before the next one is accepted.
type Session struct {
	completer suggest.ICompleter
	display   Display
	logger    *log.Logger

	maxWordLen int
	maxResults int

	buffer        []byte
	cursor        int
	results       []string
	cycleIndex    int
	lastPresented string
	mode          Mode
	line          int
	done          bool
}

// New returns a Session editing completer and drawing onto display.
func New(completer suggest.ICompleter, display Display, opts Options) *Session {
	if opts.MaxWordLen <= 0 {
		opts.MaxWordLen = suggest.DefaultMaxWordLen
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = dictionary.DefaultMaxResults
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Session{
		completer:  completer,
		display:    display,
		logger:     opts.Logger,
		maxWordLen: opts.MaxWordLen,
		maxResults: opts.MaxResults,
		line:       1,
	}
}

// Start draws the initial prompt.
func (s *Session) Start() {
	s.display.Clear()
	s.display.MoveTo(0, 0)
	s.display.Write(firstPrompt)
	s.line = 1
	s.display.MoveTo(s.line, 0)
	s.display.Refresh()
}

// Run draws the prompt and handles keys from src until the session ends or
// src is exhausted.
func (s *Session) Run(src KeySource) error {
	s.Start()
	for {
		key, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Key source drained")
				return nil
			}
			return err
		}
		if s.Handle(key) {
			return nil
		}
	}
}

// Handle processes one key and reports whether the session has ended.
// Keys arriving after the end are ignored.
func (s *Session) Handle(key Key) bool {
	if s.done {
		return true
	}
	switch key.Kind {
	case KeyChar:
		s.typeChar(key.Char)
	case KeyCycle:
		s.cycle()
	case KeyConfirm:
		s.confirm()
	case KeyCommit:
		s.commit()
	case KeyCancel:
		s.cancel()
	case KeyErase:
		s.erase()
	}
	return s.done
}

func (s *Session) typeChar(c byte) {
	if !suggest.IsWordByte(c) || len(s.buffer) >= s.maxWordLen {
		return
	}
	s.buffer = slices.Insert(s.buffer, s.cursor, c)
	s.cursor++
	s.clearSearch()
	s.redraw()

	if s.cursor >= len(deleteTrigger) && string(s.buffer[s.cursor-len(deleteTrigger):s.cursor]) == deleteTrigger {
		s.buffer = slices.Delete(s.buffer, s.cursor-len(deleteTrigger), s.cursor)
		s.cursor -= len(deleteTrigger)
		s.mode = ModeDeletePending
		s.logger.Debug("Delete armed", "buffer", string(s.buffer))
		s.redraw()
	}
}

func (s *Session) cycle() {
	if len(s.buffer) == 0 {
		return
	}
	if len(s.results) == 0 {
		s.results = s.completer.Complete(string(s.buffer), s.maxResults)
		s.cycleIndex = 0
	}
	if len(s.results) == 0 {
		return
	}

	word := s.results[s.cycleIndex]
	s.lastPresented = word
	s.present(word)
	s.cycleIndex = (s.cycleIndex + 1) % len(s.results)
}

// present shows word on the input row without touching the buffer; commit
// still acts on what was typed.
func (s *Session) present(word string) {
	s.display.MoveTo(s.line, 0)
	s.display.ClearToEOL()
	s.display.Write(word)
	s.display.MoveTo(s.line, len(word))
	s.display.Refresh()
}

func (s *Session) confirm() {
	if len(s.results) == 0 {
		return
	}
	s.report(fmt.Sprintf("Selected word: %s", s.lastPresented))
	s.resetEntry()
}

func (s *Session) commit() {
	word := string(s.buffer)
	if word == QuitWord {
		s.done = true
		return
	}

	if s.mode == ModeDeletePending {
		s.mode = ModeEntry
		outcome, err := s.completer.Remove(word)
		s.reportOutcome(word, outcome, err)
	} else if word != "" {
		outcome, err := s.completer.Add(word)
		s.reportOutcome(word, outcome, err)
	}
	s.resetEntry()
	s.display.MoveTo(s.line, 0)
	s.display.Refresh()
}

func (s *Session) reportOutcome(word string, outcome suggest.Outcome, err error) {
	if err != nil {
		s.report(failureMessage(word, err))
		return
	}
	switch outcome {
	case suggest.OutcomeAdded:
		s.report(fmt.Sprintf("Word '%s' added to the dictionary.", word))
	case suggest.OutcomeExists:
		s.report(fmt.Sprintf("Word '%s' already exists in the dictionary.", word))
	case suggest.OutcomeRemoved:
		s.report(fmt.Sprintf("Word '%s' removed from the dictionary.", word))
	case suggest.OutcomeNotFound:
		s.report(fmt.Sprintf("Word '%s' not found in the dictionary.", word))
	}
}

func failureMessage(word string, err error) string {
	switch {
	case errors.Is(err, store.ErrStoreReplace):
		return fmt.Sprintf("Store file is missing after a failed replace while removing '%s': %v", word, err)
	case errors.Is(err, suggest.ErrInvalidWord):
		return fmt.Sprintf("Word '%s' cannot be stored: %v", word, err)
	default:
		return fmt.Sprintf("Could not update the store for '%s': %v", word, err)
	}
}

func (s *Session) cancel() {
	s.resetEntry()
	s.mode = ModeEntry
	s.display.Clear()
	s.display.MoveTo(0, 0)
	s.display.Write("Autocomplete cancelled.")
	s.display.MoveTo(1, 0)
	s.display.Write(nextPrompt)
	s.line = 2
	s.display.MoveTo(s.line, 0)
	s.display.Refresh()
}

func (s *Session) erase() {
	if s.cursor == 0 {
		return
	}
	s.buffer = slices.Delete(s.buffer, s.cursor-1, s.cursor)
	s.cursor--
	s.clearSearch()
	s.redraw()
}

// report writes msg under the input row, then a new prompt, and moves input
// to the following row.
func (s *Session) report(msg string) {
	s.logger.Debug("Status", "line", s.line, "msg", msg)
	s.display.MoveTo(s.line+1, 0)
	s.display.ClearToEOL()
	s.display.Write(msg)
	s.display.MoveTo(s.line+2, 0)
	s.display.ClearToEOL()
	s.display.Write(nextPrompt)
	s.line += 3
	s.display.MoveTo(s.line, 0)
	s.display.Refresh()
}

func (s *Session) redraw() {
	s.display.MoveTo(s.line, 0)
	s.display.ClearToEOL()
	s.display.Write(string(s.buffer))
	s.display.MoveTo(s.line, s.cursor)
	s.display.Refresh()
}

func (s *Session) clearSearch() {
	s.results = nil
	s.cycleIndex = 0
	s.lastPresented = ""
}

func (s *Session) resetEntry() {
	s.buffer = s.buffer[:0]
	s.cursor = 0
	s.clearSearch()
}

// Buffer returns the current edit text.
func (s *Session) Buffer() string { return string(s.buffer) }

// Cursor returns the writer position within the buffer.
func (s *Session) Cursor() int { return s.cursor }

// Mode returns the active mode.
func (s *Session) Mode() Mode { return s.mode }

// Results returns the cached prefix-search results.
func (s *Session) Results() []string { return s.results }

// CycleIndex returns the index of the next result to present.
func (s *Session) CycleIndex() int { return s.cycleIndex }

// LastPresented returns the word most recently shown by cycling.
func (s *Session) LastPresented() string { return s.lastPresented }

// Line returns the current input row.
func (s *Session) Line() int { return s.line }

// Done reports whether the quit word was committed.
func (s *Session) Done() bool { return s.done }
