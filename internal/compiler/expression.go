package compiler

import (
	"github.com/anish-94/storyscript/internal/operand"
	"github.com/anish-94/storyscript/internal/tree"
)

// mutationLine emits a bare value/mutation-chain statement, one not
// bound to a variable. The instruction method is `expression`: the line
// evaluates a value through zero or more mutations and binds nothing,
// so `set` would be the wrong tag.
func mutationLine(t *tree.Tree) (map[string]*Instruction, error) {
	head, err := Value(t.Child(0))
	if err != nil {
		return nil, err
	}
	args := []operand.Value{head}
	for _, c := range t.Children[1:] {
		mt, ok := c.(*tree.Tree)
		if !ok {
			continue
		}
		mut, err := Mutation(mt)
		if err != nil {
			return nil, err
		}
		args = append(args, mut)
	}
	return base("expression", t.Line(), withArgs(args...)), nil
}
