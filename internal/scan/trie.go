package scan

import "unicode"

// Trie maps a fixed keyword set to values and matches the longest keyword
// at the scanner's position. Keys are stored lowercased; matching folds
// input runes with unicode.ToLower.
type Trie[V any] struct {
	root *trieNode[V]
}

type trieNode[V any] struct {
	next     map[rune]*trieNode[V]
	value    V
	terminal bool
}

// NewTrie builds a trie from a keyword table.
func NewTrie[V any](table map[string]V) *Trie[V] {
	t := &Trie[V]{root: &trieNode[V]{}}
	for k, v := range table {
		t.Insert(k, v)
	}
	return t
}

// Insert adds key with value v, replacing any previous value.
func (t *Trie[V]) Insert(key string, v V) {
	n := t.root
	for _, r := range key {
		r = unicode.ToLower(r)
		if n.next == nil {
			n.next = make(map[rune]*trieNode[V])
		}
		child, ok := n.next[r]
		if !ok {
			child = &trieNode[V]{}
			n.next[r] = child
		}
		n = child
	}
	n.value = v
	n.terminal = true
}

// Longest consumes the longest keyword that starts at the scanner's
// position. When no keyword matches, nothing is consumed and ok is false.
func (t *Trie[V]) Longest(s *Scanner) (v V, text string, ok bool) {
	start := s.Mark()
	end := -1
	n := t.root
	for n != nil && !s.EOF() {
		n = n.next[unicode.ToLower(s.Next())]
		if n != nil && n.terminal {
			v, end = n.value, s.Mark()
		}
	}
	if end < 0 {
		s.Reset(start)
		var zero V
		return zero, "", false
	}
	s.Reset(end)
	return v, s.src[start:end], true
}
