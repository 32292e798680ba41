package dictionary

import "strings"

// DefaultMaxResults caps a prefix search when the caller has no limit of its own.
const DefaultMaxResults = 100

// PrefixSearch returns up to max words that start with prefix, compared byte
// by byte. Results come out in pre-order (node, then left subtree, then right
// subtree), which is not sorted order. Both subtrees are always explored
// because the prefix is not the ordering key.
func (t *Tree) PrefixSearch(prefix string, max int) []string {
	if max <= 0 || t.root == nil {
		return nil
	}

	var results []string
	stack := []*node{t.root}
	for len(stack) > 0 && len(results) < max {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if strings.HasPrefix(n.word, prefix) {
			results = append(results, n.word)
		}
		// right first so left is popped next
		if n.right != nil {
			stack = append(stack, n.right)
		}
		if n.left != nil {
			stack = append(stack, n.left)
		}
	}
	return results
}
