// Package transform is Storyscript's Transformer pass: a second,
// independent pass over the already-parsed tree that validates and
// reshapes a handful of productions, accumulating every problem it
// finds rather than stopping at the first. internal/parser already
// builds most productions in their final shape directly, so this pass
// only does argument short-hand expansion and identifier validation.
package transform

import (
	"strings"

	"github.com/anish-94/storyscript/errs"
	"github.com/anish-94/storyscript/internal/tree"
)

// Run walks root and applies every Transformer rule, returning the first
// (lowest-line) validation failure found, or nil. Nodes are mutated in
// place; the tree is treated as immutable once this pass finishes.
func Run(root *tree.Tree) error {
	var list errs.List
	walk(root, &list)
	if list.HasErrors() {
		return list.First()
	}
	return nil
}

func walk(n tree.Node, list *errs.List) {
	t, ok := n.(*tree.Tree)
	if !ok {
		return
	}
	switch t.Data {
	case "assignment":
		checkAssignmentTarget(t, list)
	case "arguments":
		expandShorthand(t, list)
	}
	for _, c := range t.Children {
		walk(c, list)
	}
}

// checkAssignmentTarget rejects identifiers containing `/`
// (variables-backslash) or `-` (variables-dash).
func checkAssignmentTarget(t *tree.Tree, list *errs.List) {
	path := t.ChildTree(0)
	if path == nil || len(path.Children) == 0 {
		return
	}
	tok, ok := path.Children[0].(tree.Token)
	if !ok {
		return
	}
	switch {
	case strings.Contains(tok.Lexeme, "/"):
		list.Add(errs.SyntaxErr(errs.ClassifierVariablesBackslash, t.Line(), &tok.Token, "invalid variable identifier"))
	case strings.Contains(tok.Lexeme, "-"):
		list.Add(errs.SyntaxErr(errs.ClassifierVariablesDash, t.Line(), &tok.Token, "invalid variable identifier"))
	}
}

// expandShorthand re-forms a single-child `arguments` node, one with
// the argument name omitted, into the explicit `(name, value)` pair by
// synthesizing the name from the child's own first sub-child. A
// short-hand whose sole child is a bare token has no sub-child to
// synthesize a name from and is rejected outright.
func expandShorthand(t *tree.Tree, list *errs.List) {
	if len(t.Children) != 1 {
		return
	}
	sole := t.Children[0]
	sub, ok := sole.(*tree.Tree)
	if !ok {
		list.Add(errs.SyntaxErr(errs.ClassifierGeneric, t.Line(), nil, "short-hand argument cannot be a bare token"))
		return
	}
	if len(sub.Children) == 0 {
		list.Add(errs.SyntaxErr(errs.ClassifierGeneric, t.Line(), nil, "short-hand argument has no name to synthesize"))
		return
	}
	nameTok, ok := sub.Children[0].(tree.Token)
	if !ok {
		list.Add(errs.SyntaxErr(errs.ClassifierGeneric, t.Line(), nil, "short-hand argument's first sub-child is not a token"))
		return
	}
	t.Children = []tree.Node{nameTok, sub}
}
