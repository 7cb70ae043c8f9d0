package compiler

import "github.com/anish-94/storyscript/internal/tree"

// nextStmt emits a `next` instruction carrying the target file.
func nextStmt(t *tree.Tree) (map[string]*Instruction, error) {
	fileTok := t.ChildToken(1)
	return base("next", t.Line(), withArgs(File(fileTok))), nil
}
