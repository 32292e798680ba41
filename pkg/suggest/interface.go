// Package suggest is the core, keeping the word tree and the word file in step and serving prefix completions from the tree.
package suggest

// ICompleter defines the interface front ends use to query and edit the dictionary
type ICompleter interface {
	// Complete returns up to limit words starting with prefix
	Complete(prefix string, limit int) []string

	// Exists reports whether word is in the dictionary
	Exists(word string) bool

	// Add stores and indexes a new word
	Add(word string) (Outcome, error)

	// Remove drops a word from the store and the index
	Remove(word string) (Outcome, error)

	// Initialize loads the store into the index
	Initialize() error

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}

// WordStore is the durable side of the dictionary.
type WordStore interface {
	LoadAll() ([]string, error)
	Append(word string) error
	RewriteExcluding(word string) error
	RewriteAll(words []string) error
}
