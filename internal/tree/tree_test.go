package tree

import (
	"testing"

	"github.com/anish-94/storyscript/internal/token"
)

func word(lexeme string, line int) Token {
	return Leaf(token.Token{Kind: token.WORD, Lexeme: lexeme, Pos: token.Position{Line: line}})
}

func TestTreeLine(t *testing.T) {
	leaf := word("x", 4)
	tr := New("path", leaf)
	if got := tr.Line(); got != 4 {
		t.Errorf("Line() = %d, want 4", got)
	}

	empty := New("empty")
	if got := empty.Line(); got != 0 {
		t.Errorf("Line() of empty tree = %d, want 0", got)
	}
}

func TestChildAccessors(t *testing.T) {
	leaf := word("a", 1)
	nested := New("inner", word("b", 1))
	tr := New("outer", leaf, nested)

	if tr.ChildToken(0).Lexeme != "a" {
		t.Errorf("ChildToken(0) = %q, want a", tr.ChildToken(0).Lexeme)
	}
	if tr.ChildTree(1) != nested {
		t.Errorf("ChildTree(1) did not return the nested tree")
	}
	if tr.ChildTree(0) != nil {
		t.Errorf("ChildTree(0) should be nil for a Token child")
	}
	if tr.ChildToken(1) != (token.Token{}) {
		t.Errorf("ChildToken(1) should be zero value for a Tree child")
	}
	if tr.Child(5) != nil {
		t.Errorf("Child(5) out of range should be nil")
	}
}

func TestNodeAndFindData(t *testing.T) {
	a := New("a", word("x", 1))
	b := New("b", word("y", 2))
	root := New("root", a, b, New("a", word("z", 3)))

	if found := root.Node("b"); found != b {
		t.Errorf("Node(\"b\") did not find b")
	}
	if root.Node("missing") != nil {
		t.Errorf("Node(\"missing\") should be nil")
	}

	var names []string
	for n := range root.FindData("a") {
		names = append(names, n.ChildToken(0).Lexeme)
	}
	if len(names) != 2 || names[0] != "x" || names[1] != "z" {
		t.Errorf("FindData(\"a\") = %v, want [x z]", names)
	}
}
