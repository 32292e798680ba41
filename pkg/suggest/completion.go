package suggest

import (
	"errors"
	"fmt"

	"github.com/bastiangx/wordtree/pkg/dictionary"
	"github.com/charmbracelet/log"
)

// DefaultMaxWordLen is the longest word accepted for insertion.
const DefaultMaxWordLen = 99

// ErrInvalidWord is returned by Add for empty, oversized or non-printable words.
var ErrInvalidWord = errors.New("invalid word")

// Outcome describes what an Add or Remove did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeAdded
	OutcomeExists
	OutcomeRemoved
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeExists:
		return "exists"
	case OutcomeRemoved:
		return "removed"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "none"
	}
}

// Completer owns the word tree and its backing store. Every successful tree
// mutation is paired with exactly one store mutation, and the store is
// always written first: if the write fails the tree is left alone, so the
// two can only drift towards the store missing a word the tree still has.
type Completer struct {
	tree       *dictionary.Tree
	store      WordStore
	maxWordLen int
	loaded     int
	// skipped holds store lines that are not valid words; they stay in the
	// store but never reach the tree.
	skipped []string
}

// NewCompleter returns a Completer over an empty tree.
func NewCompleter(store WordStore, maxWordLen int) *Completer {
	if maxWordLen <= 0 {
		maxWordLen = DefaultMaxWordLen
	}
	return &Completer{
		tree:       dictionary.New(),
		store:      store,
		maxWordLen: maxWordLen,
	}
}

// Initialize seeds the tree from the store. Repeated words collapse into one
// node. Lines that are not valid words (too long, or holding a space) are
// skipped with a warning.
func (c *Completer) Initialize() error {
	words, err := c.store.LoadAll()
	if err != nil {
		return err
	}
	c.skipped = c.skipped[:0]
	for _, w := range words {
		if !ValidWord(w, c.maxWordLen) {
			log.Warnf("Skipping store line %q: not a word of at most %d bytes", w, c.maxWordLen)
			c.skipped = append(c.skipped, w)
			continue
		}
		c.tree.Insert(w)
	}
	c.loaded = len(words)
	log.Debugf("Dictionary seeded: %d lines, %d unique words, height %d", len(words), c.tree.Len(), c.tree.Height())
	return nil
}

// Complete returns up to limit words that start with prefix, in tree
// pre-order.
func (c *Completer) Complete(prefix string, limit int) []string {
	results := c.tree.PrefixSearch(prefix, limit)
	log.Debug("Prefix search", "prefix", prefix, "limit", limit, "found", len(results))
	return results
}

// Exists reports whether word is in the tree.
func (c *Completer) Exists(word string) bool {
	return c.tree.Exists(word)
}

// Add appends word to the store and then inserts it into the tree.
func (c *Completer) Add(word string) (Outcome, error) {
	if !ValidWord(word, c.maxWordLen) {
		return OutcomeNone, fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	if c.tree.Exists(word) {
		return OutcomeExists, nil
	}
	if err := c.store.Append(word); err != nil {
		log.Errorf("Could not append '%s': %v", word, err)
		return OutcomeNone, err
	}
	c.tree.Insert(word)
	log.Debugf("Added '%s'", word)
	return OutcomeAdded, nil
}

// Remove rewrites the store without word and then deletes it from the tree.
func (c *Completer) Remove(word string) (Outcome, error) {
	if !c.tree.Exists(word) {
		return OutcomeNotFound, nil
	}
	if err := c.store.RewriteExcluding(word); err != nil {
		log.Errorf("Could not remove '%s' from store: %v", word, err)
		return OutcomeNone, err
	}
	c.tree.Delete(word)
	log.Debugf("Removed '%s'", word)
	return OutcomeRemoved, nil
}

// Compact rewrites the store from the tree in sorted order, dropping
// duplicate lines. Skipped lines are kept, after the words. Returns the
// number of lines written.
func (c *Completer) Compact() (int, error) {
	lines := append(c.tree.Words(), c.skipped...)
	if err := c.store.RewriteAll(lines); err != nil {
		return 0, err
	}
	log.Debugf("Store compacted: %d lines -> %d lines", c.loaded, len(lines))
	c.loaded = len(lines)
	return len(lines), nil
}

// Words returns every word in sorted order.
func (c *Completer) Words() []string {
	return c.tree.Words()
}

// Stats returns counts about the loaded dictionary.
func (c *Completer) Stats() map[string]int {
	stats := c.tree.Stats()
	stats["loadedLines"] = c.loaded
	stats["skippedLines"] = len(c.skipped)
	stats["maxWordLen"] = c.maxWordLen
	return stats
}

// Close releases the tree.
func (c *Completer) Close() {
	c.tree.Teardown()
}

// ValidWord reports whether word can be stored: non-empty, at most maxLen
// bytes, printable ASCII with no spaces.
func ValidWord(word string, maxLen int) bool {
	if word == "" || len(word) > maxLen {
		return false
	}
	for i := 0; i < len(word); i++ {
		if !IsWordByte(word[i]) {
			return false
		}
	}
	return true
}

// IsWordByte reports whether b may appear in a word.
func IsWordByte(b byte) bool {
	return b > ' ' && b <= '~'
}
