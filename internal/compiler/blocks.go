package compiler

import (
	"github.com/anish-94/storyscript/errs"
	"github.com/anish-94/storyscript/internal/tree"
)

// ifBlock emits the whole if/elseif*/else? chain: each head
// instruction's `enter` points at its own nested body; `exit` points at
// the immediate next alternative sibling, if any, never past an
// intermediate elseif to the final else.
func ifBlock(t *tree.Tree) (map[string]*Instruction, error) {
	ifStmt := t.Node("if_statement")
	nested := t.ChildTree(1)
	if ifStmt == nil || nested == nil {
		return nil, errs.InternalErr(t.Line(), "if_block")
	}

	alternatives := alternativesOf(t)

	opts := []func(*Instruction){
		withArgs(Path(ifStmt)),
		withEnter(nested.Line()),
	}
	if len(alternatives) > 0 {
		opts = append(opts, withExit(alternatives[0].Line()))
	}
	head := base("if", t.Line(), opts...)

	rest, err := subtreesOfBlocks(nested)
	if err != nil {
		return nil, err
	}
	for i, alt := range alternatives {
		var nextAlt *tree.Tree
		if i+1 < len(alternatives) {
			nextAlt = alternatives[i+1]
		}
		var m map[string]*Instruction
		switch alt.Data {
		case "elseif_block":
			m, err = elseifBlock(alt, nextAlt)
		case "else_block":
			m, err = elseBlock(alt)
		default:
			err = errs.InternalErr(alt.Line(), alt.Data)
		}
		if err != nil {
			return nil, err
		}
		rest = merge(rest, m)
	}
	return merge(head, rest), nil
}

// alternativesOf returns the if_block's elseif_block/else_block siblings
// in source order.
func alternativesOf(t *tree.Tree) []*tree.Tree {
	var alts []*tree.Tree
	for _, c := range t.Children[2:] {
		if ct, ok := c.(*tree.Tree); ok {
			alts = append(alts, ct)
		}
	}
	return alts
}

func elseifBlock(t *tree.Tree, nextAlt *tree.Tree) (map[string]*Instruction, error) {
	cond := t.Node("elseif_statement")
	nested := t.ChildTree(1)
	if cond == nil || nested == nil {
		return nil, errs.InternalErr(t.Line(), "elseif_block")
	}
	opts := []func(*Instruction){withArgs(Path(cond)), withEnter(nested.Line())}
	if nextAlt != nil {
		opts = append(opts, withExit(nextAlt.Line()))
	}
	head := base("elif", t.Line(), opts...)
	rest, err := subtreesOfBlocks(nested)
	if err != nil {
		return nil, err
	}
	return merge(head, rest), nil
}

func elseBlock(t *tree.Tree) (map[string]*Instruction, error) {
	nested := t.Node("nested_block")
	if nested == nil {
		return nil, errs.InternalErr(t.Line(), "else_block")
	}
	head := base("else", t.Line(), withEnter(nested.Line()))
	rest, err := subtreesOfBlocks(nested)
	if err != nil {
		return nil, err
	}
	return merge(head, rest), nil
}

// forBlock emits a `for` instruction.
func forBlock(t *tree.Tree) (map[string]*Instruction, error) {
	loopVar := t.ChildToken(0).Lexeme
	iterable := t.ChildTree(1)
	nested := t.ChildTree(2)
	if iterable == nil || nested == nil {
		return nil, errs.InternalErr(t.Line(), "for_block")
	}
	head := base("for", t.Line(), withArgs(stringLoopVar(loopVar), Path(iterable)), withEnter(nested.Line()))
	rest, err := subtreesOfBlocks(nested)
	if err != nil {
		return nil, err
	}
	return merge(head, rest), nil
}

// waitBlock emits a `wait` instruction.
func waitBlock(t *tree.Tree) (map[string]*Instruction, error) {
	cond := t.ChildTree(0)
	nested := t.ChildTree(1)
	if cond == nil || nested == nil {
		return nil, errs.InternalErr(t.Line(), "wait_block")
	}
	head := base("wait", t.Line(), withArgs(Path(cond)), withEnter(nested.Line()))
	rest, err := subtreesOfBlocks(nested)
	if err != nil {
		return nil, err
	}
	return merge(head, rest), nil
}

// subtreesOfBlocks dispatches each direct `block → line → <head>` child
// of a `nested_block` and merges the results.
func subtreesOfBlocks(nested *tree.Tree) (map[string]*Instruction, error) {
	return blockHeads(nested.Children)
}

// stringLoopVar wraps a for-loop's raw variable name for base()'s
// []operand.Value args slice. The loop variable serializes as a bare
// string, not as a Path's {paths: [...]} record.
func stringLoopVar(name string) operandString {
	return operandString(name)
}

type operandString string

func (s operandString) JSON() any { return string(s) }
