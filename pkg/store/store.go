/*
Package store persists the word list as a plain text file with one word per line.

The file is the durable copy of the dictionary. It does not enforce
uniqueness; callers check the in-memory tree before writing. Every
operation opens and closes its own file handle.

Deletions go through a temporary file written next to the store, followed by
removal of the old file and a rename. A failed rename after the removal
leaves no store file on disk; that state is reported as ErrStoreReplace and
is never retried automatically.
*/
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	// ErrStoreUnavailable means the store could not be opened for reading.
	ErrStoreUnavailable = errors.New("word store unavailable")
	// ErrStoreWrite means an append or temporary-file write failed.
	ErrStoreWrite = errors.New("word store write failed")
	// ErrStoreReplace means the old store was removed but the new one could
	// not be renamed into place.
	ErrStoreReplace = errors.New("word store replace failed")
)

// rename moves the rewritten file into place. Swapped in tests.
var rename = os.Rename

// DefaultTempSuffix is appended to the store path to name the rewrite file.
const DefaultTempSuffix = ".tmp"

// Store is a line-oriented word file.
type Store struct {
	path       string
	tempSuffix string
}

// Option configures a Store.
type Option func(*Store)

// WithTempSuffix sets the suffix used for the temporary rewrite file.
func WithTempSuffix(suffix string) Option {
	return func(s *Store) {
		if suffix != "" {
			s.tempSuffix = suffix
		}
	}
}

// Open returns a Store backed by path. No I/O happens until an operation runs.
func Open(path string, opts ...Option) *Store {
	s := &Store{
		path:       path,
		tempSuffix: DefaultTempSuffix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) tempPath() string {
	return s.path + s.tempSuffix
}

// LoadAll reads every word in file order. Blank lines are skipped and
// surrounding whitespace is trimmed.
func (s *Store) LoadAll() ([]string, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer file.Close()

	words, err := readWords(file)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrStoreUnavailable, s.path, err)
	}
	log.Debugf("Loaded %d words from %s", len(words), s.path)
	return words, nil
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	return words, scanner.Err()
}

// Append writes word followed by a newline at the end of the store. The
// store must already exist.
func (s *Store) Append(word string) error {
	file, err := os.OpenFile(s.path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrStoreWrite, s.path, err)
	}
	defer file.Close()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("%w: seeking %s: %v", ErrStoreWrite, s.path, err)
	}
	if _, err := file.WriteString(word + "\n"); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrStoreWrite, s.path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", ErrStoreWrite, s.path, err)
	}
	log.Debugf("Appended '%s' to %s", word, s.path)
	return nil
}

// RewriteExcluding rewrites the store without any line equal to word.
func (s *Store) RewriteExcluding(word string) error {
	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrStoreWrite, s.path, err)
	}
	words, err := readWords(file)
	file.Close()
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrStoreWrite, s.path, err)
	}

	kept := words[:0]
	for _, w := range words {
		if w != word {
			kept = append(kept, w)
		}
	}
	log.Debugf("Rewriting %s without '%s' (%d -> %d lines)", s.path, word, len(words), len(kept))
	return s.replace(kept)
}

// RewriteAll replaces the store content with words, in the given order.
func (s *Store) RewriteAll(words []string) error {
	return s.replace(words)
}

// replace writes words to the temporary file, removes the old store and
// renames the temporary file over it.
func (s *Store) replace(words []string) error {
	tmp := s.tempPath()
	if err := writeWords(tmp, words); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		os.Remove(tmp)
		return fmt.Errorf("%w: removing %s: %v", ErrStoreWrite, s.path, err)
	}
	if err := rename(tmp, s.path); err != nil {
		log.Errorf("Store %s removed but %s could not be renamed into place: %v", s.path, tmp, err)
		return fmt.Errorf("%w: renaming %s to %s: %v", ErrStoreReplace, tmp, s.path, err)
	}
	return nil
}

func writeWords(path string, words []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, word := range words {
		if _, err := w.WriteString(word + "\n"); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return file.Close()
}
