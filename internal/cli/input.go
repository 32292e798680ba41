// Package cli handles line-based input for DBG and testing of the dictionary without the full-screen UI
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler reads one command per line. A bare line is a prefix to
// complete; "+word" adds, "-word" removes and "?word" checks a word.
// Prefix length and suggestion count are bounded by the handler's settings.
type InputHandler struct {
	completer       suggest.ICompleter
	logger          *log.Logger
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	requestCount    int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, logger *log.Logger, minLength, maxLength, limit int) *InputHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &InputHandler{
		completer:       completer,
		logger:          logger,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
	}
}

// Start begins the interface loop.
// It reads lines from r and passes the trimmed input to handleInput() until
// r is exhausted or the quit word is entered.
func (h *InputHandler) Start(r io.Reader) error {
	h.logger.Print("wordtree CLI")
	h.logger.Print("type a prefix, +word to add, -word to remove, ?word to look up ('#' to exit):")
	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "#" {
			return nil
		}
		if line != "" {
			h.handleInput(line)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// Requests returns how many lines have been handled.
func (h *InputHandler) Requests() int {
	return h.requestCount
}

func (h *InputHandler) handleInput(input string) {
	h.requestCount++

	switch input[0] {
	case '+':
		h.handleAdd(input[1:])
		return
	case '-':
		h.handleRemove(input[1:])
		return
	case '?':
		word := input[1:]
		if h.completer.Exists(word) {
			h.logger.Printf("'%s' is in the dictionary", word)
		} else {
			h.logger.Printf("'%s' is not in the dictionary", word)
		}
		return
	}

	if len(input) < h.minPrefixLength {
		h.logger.Errorf("Prefix too short: %s", input)
		return
	}
	if len(input) > h.maxPrefixLength {
		h.logger.Errorf("Prefix too long: %s", input)
		return
	}

	start := time.Now()
	suggestions := h.completer.Complete(input, h.suggestLimit)
	h.logger.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), input)

	if len(suggestions) == 0 {
		h.logger.Warnf("No suggestions found for prefix: '%s'", input)
		return
	}

	h.logger.Printf("Found %d suggestions for prefix '%s':", len(suggestions), input)
	for i, s := range suggestions {
		h.logger.Printf("%2d. %s", i+1, s)
	}
}

func (h *InputHandler) handleAdd(word string) {
	outcome, err := h.completer.Add(word)
	if err != nil {
		h.logger.Errorf("Could not add '%s': %v", word, err)
		return
	}
	h.logger.Print(describe(word, outcome))
}

func (h *InputHandler) handleRemove(word string) {
	outcome, err := h.completer.Remove(word)
	if err != nil {
		h.logger.Errorf("Could not remove '%s': %v", word, err)
		return
	}
	h.logger.Print(describe(word, outcome))
}

func describe(word string, outcome suggest.Outcome) string {
	switch outcome {
	case suggest.OutcomeAdded:
		return fmt.Sprintf("added '%s'", word)
	case suggest.OutcomeExists:
		return fmt.Sprintf("'%s' already exists", word)
	case suggest.OutcomeRemoved:
		return fmt.Sprintf("removed '%s'", word)
	case suggest.OutcomeNotFound:
		return fmt.Sprintf("'%s' not found", word)
	}
	return outcome.String()
}
