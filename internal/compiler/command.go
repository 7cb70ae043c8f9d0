package compiler

import (
	"github.com/anish-94/storyscript/errs"
	"github.com/anish-94/storyscript/internal/operand"
	"github.com/anish-94/storyscript/internal/tree"
)

// command emits a `run` instruction; the container is the first token
// of the service path.
func command(t *tree.Tree) (map[string]*Instruction, error) {
	return commandWithOutput(t, nil)
}

func commandWithOutput(t *tree.Tree, output operand.Value) (map[string]*Instruction, error) {
	service := t.ChildTree(0)
	if service == nil || len(service.Children) == 0 {
		return nil, errs.InternalErr(t.Line(), "command")
	}
	nameTok, ok := service.Children[0].(tree.Token)
	if !ok {
		return nil, errs.InternalErr(t.Line(), "command")
	}

	args := make([]operand.Value, 0, len(service.Children)-1)
	for _, c := range service.Children[1:] {
		argTree, ok := c.(*tree.Tree)
		if !ok {
			continue
		}
		arg, err := Argument(argTree)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	opts := []func(*Instruction){withContainer(nameTok.Lexeme)}
	if len(args) > 0 {
		opts = append(opts, withArgs(args...))
	}
	if output != nil {
		opts = append(opts, withOutput(output))
	}
	return base("run", t.Line(), opts...), nil
}
