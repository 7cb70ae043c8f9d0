package compiler

import "github.com/anish-94/storyscript/internal/tree"

// assignment emits a `set` instruction, or a `run` instruction carrying
// an `output` path when the right-hand side is a service invocation.
func assignment(t *tree.Tree) (map[string]*Instruction, error) {
	target := Path(t.ChildTree(0))

	rhs := t.ChildTree(1)
	if rhs != nil && rhs.Data == "command" {
		return commandWithOutput(rhs, target)
	}

	value, err := Value(t.Child(1))
	if err != nil {
		return nil, err
	}
	return base("set", t.Line(), withArgs(target, value)), nil
}
