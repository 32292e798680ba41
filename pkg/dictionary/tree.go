/*
Package dictionary implements the in-memory word index: an unbalanced binary
search tree ordered by byte-wise string comparison.

The tree is never rebalanced, so its shape depends on insertion order and a
sorted word list degenerates into a linked list. Lookups, inserts and prefix
walks use explicit loops or stacks so a skewed tree does not grow the call
stack; deletion recurses along the search path only.

	tree := dictionary.New()
	tree.Insert("cat")
	tree.Insert("car")
	tree.Exists("car")             // true
	tree.PrefixSearch("ca", 100)   // [cat car]
	tree.Delete("cat")

A Tree is not safe for concurrent use.
*/
package dictionary

// node is a single dictionary entry. Each node exclusively owns its subtrees.
type node struct {
	word  string
	left  *node
	right *node
}

// Tree is an ordered set of words. The zero value is an empty tree.
type Tree struct {
	root  *node
	count int
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// Insert adds word to the tree. Inserting a word that is already present is
// a no-op. Reports whether a new node was allocated.
func (t *Tree) Insert(word string) bool {
	link := &t.root
	for *link != nil {
		n := *link
		switch {
		case word < n.word:
			link = &n.left
		case word > n.word:
			link = &n.right
		default:
			return false
		}
	}
	*link = &node{word: word}
	t.count++
	return true
}

// Exists reports whether word is in the tree.
func (t *Tree) Exists(word string) bool {
	n := t.root
	for n != nil {
		switch {
		case word < n.word:
			n = n.left
		case word > n.word:
			n = n.right
		default:
			return true
		}
	}
	return false
}

// Delete removes word from the tree. Deleting a missing word leaves the tree
// unchanged. Reports whether a node was removed.
func (t *Tree) Delete(word string) bool {
	var removed bool
	t.root = remove(t.root, word, &removed)
	if removed {
		t.count--
	}
	return removed
}

// remove deletes word from the subtree rooted at n and returns the new
// subtree root. A node with two children takes its in-order successor's word,
// then the successor is removed from the right subtree.
func remove(n *node, word string, removed *bool) *node {
	if n == nil {
		return nil
	}
	switch {
	case word < n.word:
		n.left = remove(n.left, word, removed)
		return n
	case word > n.word:
		n.right = remove(n.right, word, removed)
		return n
	}

	*removed = true
	if n.left == nil {
		return n.right
	}
	if n.right == nil {
		return n.left
	}

	successor := leftmost(n.right)
	n.word = successor.word
	var ignored bool
	n.right = remove(n.right, successor.word, &ignored)
	return n
}

func leftmost(n *node) *node {
	for n.left != nil {
		n = n.left
	}
	return n
}

// Teardown drops every node. The tree is empty and reusable afterwards.
func (t *Tree) Teardown() {
	t.root = nil
	t.count = 0
}

// Len returns the number of words in the tree.
func (t *Tree) Len() int {
	return t.count
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	if t.root == nil {
		return 0
	}
	type frame struct {
		n     *node
		depth int
	}
	height := 0
	stack := []frame{{t.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > height {
			height = f.depth
		}
		if f.n.left != nil {
			stack = append(stack, frame{f.n.left, f.depth + 1})
		}
		if f.n.right != nil {
			stack = append(stack, frame{f.n.right, f.depth + 1})
		}
	}
	return height
}

// Walk calls fn for every word in ascending order until fn returns false.
func (t *Tree) Walk(fn func(word string) bool) {
	var stack []*node
	n := t.root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n.word) {
			return
		}
		n = n.right
	}
}

// Words returns every word in ascending order.
func (t *Tree) Words() []string {
	words := make([]string, 0, t.count)
	t.Walk(func(word string) bool {
		words = append(words, word)
		return true
	})
	return words
}

// Stats returns basic shape information about the tree.
func (t *Tree) Stats() map[string]int {
	return map[string]int{
		"totalWords": t.count,
		"height":     t.Height(),
	}
}
