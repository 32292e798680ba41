package store

import (
	"fmt"

	"github.com/bastiangx/wordtree/internal/utils"
	"github.com/charmbracelet/log"
)

// maxLineProbe bounds how much of the file Validate reads.
const maxLineProbe = 1024

// Validate checks that the store exists, is a regular file and can be read.
// An empty file is valid.
func (s *Store) Validate() error {
	check := utils.CheckFile(s.path, maxLineProbe)
	switch {
	case !check.Exists:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, check.Err)
	case !check.Regular:
		return fmt.Errorf("%w: %s is not a regular file", ErrStoreUnavailable, s.path)
	case check.Err != nil:
		return fmt.Errorf("%w: reading %s: %v", ErrStoreUnavailable, s.path, check.Err)
	}
	log.Debugf("Store %s validated (%d bytes)", s.path, check.Size)
	return nil
}

// Create makes an empty store file, and its directory, if none exists yet.
func (s *Store) Create() error {
	created, err := utils.CreateExclusive(s.path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrStoreWrite, s.path, err)
	}
	if created {
		log.Debugf("Created empty store %s", s.path)
	}
	return nil
}
