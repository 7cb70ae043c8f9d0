// Package compiler is Storyscript's name-dispatched tree walker: one
// file per instruction family (assignments.go, command.go, blocks.go,
// expression.go) feeding the shared `base` constructor and
// `Subtree`/`Subtrees` dispatcher this file defines, plus the
// `ParseTree`/`Compile` entry points that assemble the final Script.
package compiler

import (
	"strconv"

	"github.com/anish-94/storyscript/errs"
	"github.com/anish-94/storyscript/internal/operand"
	"github.com/anish-94/storyscript/internal/tree"
)

// Instruction is one emitted Script entry.
type Instruction struct {
	Method    string
	Ln        string
	Output    operand.Value
	Container string
	Enter     string
	Exit      string
	Args      []operand.Value
}

// Script is the compiled program: a mapping from line number strings to
// instructions, plus the version under which it was compiled and the
// entrypoint line. The mapping is a Go map and keeps no order of its own.
type Script struct {
	Version    string
	Script     map[string]*Instruction
	Entrypoint *string
}

// base builds the one-instruction mapping every emitter returns.
func base(method string, line int, opts ...func(*Instruction)) map[string]*Instruction {
	inst := &Instruction{Method: method, Ln: strconv.Itoa(line)}
	for _, opt := range opts {
		opt(inst)
	}
	return map[string]*Instruction{inst.Ln: inst}
}

func withArgs(args ...operand.Value) func(*Instruction) {
	return func(i *Instruction) { i.Args = args }
}

func withContainer(name string) func(*Instruction) {
	return func(i *Instruction) { i.Container = name }
}

func withOutput(out operand.Value) func(*Instruction) {
	return func(i *Instruction) { i.Output = out }
}

func withEnter(line int) func(*Instruction) {
	return func(i *Instruction) { i.Enter = strconv.Itoa(line) }
}

func withExit(line int) func(*Instruction) {
	return func(i *Instruction) { i.Exit = strconv.Itoa(line) }
}

// merge unions one or more instruction mappings; later keys win on
// collision, which never happens in practice because line numbers are
// unique.
func merge(maps ...map[string]*Instruction) map[string]*Instruction {
	out := map[string]*Instruction{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// Subtree dispatches a single tree node to its matching emitter. An
// unrecognized rule name is a fatal internal error: it means the
// grammar and the compiler have drifted apart.
func Subtree(t *tree.Tree) (map[string]*Instruction, error) {
	switch t.Data {
	case "assignment":
		return assignment(t)
	case "next":
		return nextStmt(t)
	case "command":
		return command(t)
	case "mutation_line":
		return mutationLine(t)
	case "if_block":
		return ifBlock(t)
	case "for_block":
		return forBlock(t)
	case "wait_block":
		return waitBlock(t)
	default:
		return nil, errs.InternalErr(t.Line(), t.Data)
	}
}

// Subtrees merges the dispatch of every given tree.
func Subtrees(trees ...*tree.Tree) (map[string]*Instruction, error) {
	maps := make([]map[string]*Instruction, 0, len(trees))
	for _, t := range trees {
		if t == nil {
			continue
		}
		m, err := Subtree(t)
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return merge(maps...), nil
}

// ParseTree walks root (a `start` tree whose children are `block`s) and
// unions every line's emitted instructions. Only the direct children
// are walked: instructions nested under a block head are emitted by
// that head's own emitter, never re-visited here.
func ParseTree(root *tree.Tree) (map[string]*Instruction, error) {
	return blockHeads(root.Children)
}

// blockHeads dispatches each `block → line → <head>` triple among nodes
// and merges the results.
func blockHeads(nodes []tree.Node) (map[string]*Instruction, error) {
	out := map[string]*Instruction{}
	for _, n := range nodes {
		b, ok := n.(*tree.Tree)
		if !ok || b.Data != "block" {
			continue
		}
		line := b.ChildTree(0)
		if line == nil || line.Data != "line" || len(line.Children) == 0 {
			continue
		}
		head, ok := line.Children[0].(*tree.Tree)
		if !ok {
			return nil, errs.InternalErr(line.Line(), "line")
		}
		m, err := Subtree(head)
		if err != nil {
			return nil, err
		}
		for k, v := range m {
			out[k] = v
		}
	}
	return out, nil
}

// Compile assembles the final Script from an already-parsed-and-
// transformed tree.
func Compile(root *tree.Tree, version string) (*Script, error) {
	instructions, err := ParseTree(root)
	if err != nil {
		return nil, err
	}
	return &Script{Version: version, Script: instructions, Entrypoint: entrypoint(instructions)}, nil
}

// entrypoint returns the decimal string of the smallest line key, or
// nil for an empty script.
func entrypoint(instructions map[string]*Instruction) *string {
	if len(instructions) == 0 {
		return nil
	}
	best := -1
	for k := range instructions {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		if best == -1 || n < best {
			best = n
		}
	}
	if best == -1 {
		return nil
	}
	s := strconv.Itoa(best)
	return &s
}
