// Package tree is Storyscript's normalized parse tree: a generic,
// rule-named tree of Tree/Token nodes with the navigation helpers the
// transformer and compiler need. Storyscript's grammar is small and its
// rule set closed, so one tagged-variant tree shape (rule name + ordered
// children) serves every production; the transformer and compiler
// dispatch on the rule name instead of on a type switch over dozens of
// concrete structs.
package tree

import (
	"iter"

	"github.com/anish-94/storyscript/internal/token"
)

// Node is satisfied by both Tree and Token: anything that can sit in a
// Tree's Children slice and report the source line it came from.
type Node interface {
	Line() int
}

// Tree is a single parse-tree node: a rule name plus its ordered children.
type Tree struct {
	Data     string
	Children []Node
}

// New builds a Tree node.
func New(data string, children ...Node) *Tree {
	return &Tree{Data: data, Children: children}
}

// Line returns the line of the tree's first child, recursively. A Tree
// has no position of its own, only the position inherited from its
// first token.
func (t *Tree) Line() int {
	if len(t.Children) == 0 {
		return 0
	}
	return t.Children[0].Line()
}

// Child returns the i-th child, or nil if out of range.
func (t *Tree) Child(i int) Node {
	if i < 0 || i >= len(t.Children) {
		return nil
	}
	return t.Children[i]
}

// ChildTree is Child, asserting the result is itself a Tree (or nil).
func (t *Tree) ChildTree(i int) *Tree {
	if c, ok := t.Child(i).(*Tree); ok {
		return c
	}
	return nil
}

// ChildToken is Child, asserting the result is a Token (or the zero Token).
func (t *Tree) ChildToken(i int) token.Token {
	if c, ok := t.Child(i).(Token); ok {
		return c.Token
	}
	return token.Token{}
}

// Node returns the first descendant, depth-first pre-order, whose Data
// equals name. Call sites look up named children (`if_statement`,
// `nested_block`, ...) through this one helper rather than per-name
// accessors.
func (t *Tree) Node(name string) *Tree {
	for n := range t.walk() {
		if tr, ok := n.(*Tree); ok && tr.Data == name {
			return tr
		}
	}
	return nil
}

// FindData lazily yields every descendant (this node included) whose Data
// equals name, depth-first pre-order.
func (t *Tree) FindData(name string) iter.Seq[*Tree] {
	return func(yield func(*Tree) bool) {
		for n := range t.walk() {
			tr, ok := n.(*Tree)
			if !ok || tr.Data != name {
				continue
			}
			if !yield(tr) {
				return
			}
		}
	}
}

// walk yields every node in the subtree rooted at t, t itself first.
func (t *Tree) walk() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(n Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			if tr, ok := n.(*Tree); ok {
				for _, c := range tr.Children {
					if !visit(c) {
						return false
					}
				}
			}
			return true
		}
		visit(t)
	}
}

// Token wraps a lexical token so it satisfies Node and can sit directly in
// a Tree's Children slice alongside nested Trees.
type Token struct {
	token.Token
}

// Line implements Node.
func (t Token) Line() int { return t.Token.Line() }

// Leaf is a convenience constructor for a Token child.
func Leaf(tok token.Token) Token {
	return Token{tok}
}
