package suggest

import (
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Report is the result of comparing the store against the tree.
type Report struct {
	StoreLines       int
	StoreUnique      int
	StoreSkipped     int
	TreeWords        int
	MissingFromTree  []string
	MissingFromStore []string
}

// Consistent reports whether store and tree hold the same set of words.
func (r Report) Consistent() bool {
	return len(r.MissingFromTree) == 0 && len(r.MissingFromStore) == 0
}

// Verify reloads the store into a patricia trie and checks it against the
// tree in both directions.
func (c *Completer) Verify() (Report, error) {
	words, err := c.store.LoadAll()
	if err != nil {
		return Report{}, err
	}

	index := patricia.NewTrie()
	report := Report{StoreLines: len(words), TreeWords: c.tree.Len()}
	for _, w := range words {
		if !ValidWord(w, c.maxWordLen) {
			report.StoreSkipped++
			continue
		}
		if index.Insert(patricia.Prefix(w), struct{}{}) {
			report.StoreUnique++
		}
	}

	err = index.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		if word := string(p); !c.tree.Exists(word) {
			report.MissingFromTree = append(report.MissingFromTree, word)
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting store index: %v", err)
		return report, err
	}

	c.tree.Walk(func(word string) bool {
		if index.Get(patricia.Prefix(word)) == nil {
			report.MissingFromStore = append(report.MissingFromStore, word)
		}
		return true
	})

	log.Debug("Store verified",
		"lines", report.StoreLines,
		"unique", report.StoreUnique,
		"tree", report.TreeWords,
		"missingFromTree", len(report.MissingFromTree),
		"missingFromStore", len(report.MissingFromStore))
	return report, nil
}
