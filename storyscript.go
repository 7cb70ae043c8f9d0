// Package storyscript is the compiler facade: one pure operation from
// Storyscript source text to a compiled Script. Parsing, transforming,
// and compiling are synchronous, in-memory, and deterministic; this
// package performs no I/O, and reading source files is left entirely to
// cmd/storyscript.
package storyscript

import (
	"encoding/json"

	"github.com/anish-94/storyscript/internal/compiler"
	"github.com/anish-94/storyscript/internal/parser"
	"github.com/anish-94/storyscript/internal/transform"
	"github.com/anish-94/storyscript/internal/tree"
	"github.com/anish-94/storyscript/version"
)

// Script is the loaded, compiled program.
type Script struct {
	inner *compiler.Script
}

// Version is the semver string this Script was compiled under.
func (s *Script) Version() string { return s.inner.Version }

// Entrypoint is the smallest instruction line, or "" for an empty
// program.
func (s *Script) Entrypoint() string {
	if s.inner.Entrypoint == nil {
		return ""
	}
	return *s.inner.Entrypoint
}

// wireInstruction is the JSON shape of one emitted instruction.
type wireInstruction struct {
	Method    string `json:"method"`
	Ln        string `json:"ln"`
	Output    any    `json:"output"`
	Container any    `json:"container"`
	Enter     any    `json:"enter"`
	Exit      any    `json:"exit"`
	Args      any    `json:"args"`
}

// JSON serializes the Script to its `{version, script, entrypoint}`
// wire shape, with every operand rendered through its `$OBJECT`-tagged
// representation. encoding/json writes the script's keys in string
// order, not numeric line order, so "10" precedes "2".
func (s *Script) JSON() ([]byte, error) {
	script := make(map[string]wireInstruction, len(s.inner.Script))
	for ln, inst := range s.inner.Script {
		wi := wireInstruction{Method: inst.Method, Ln: inst.Ln}
		if inst.Output != nil {
			wi.Output = inst.Output.JSON()
		}
		if inst.Container != "" {
			wi.Container = inst.Container
		}
		if inst.Enter != "" {
			wi.Enter = inst.Enter
		}
		if inst.Exit != "" {
			wi.Exit = inst.Exit
		}
		if inst.Args != nil {
			args := make([]any, len(inst.Args))
			for i, a := range inst.Args {
				args[i] = a.JSON()
			}
			wi.Args = args
		}
		script[ln] = wi
	}

	out := map[string]any{
		"version": s.inner.Version,
		"script":  script,
	}
	if s.inner.Entrypoint != nil {
		out["entrypoint"] = *s.inner.Entrypoint
	} else {
		out["entrypoint"] = nil
	}
	return json.Marshal(out)
}

// Loads parses, transforms, and compiles source, returning the
// resulting Script or the first syntax/internal error encountered.
func Loads(source string) (*Script, error) {
	sc, _, err := loadsWithTree(source)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// LoadsTree is Loads, additionally returning the parsed-and-transformed
// tree for callers that want to inspect structure without recompiling
// (used by `cmd/storyscript tree`).
func LoadsTree(source string) (*Script, *tree.Tree, error) {
	return loadsWithTree(source)
}

func loadsWithTree(source string) (*Script, *tree.Tree, error) {
	root, err := parser.Parse(source)
	if err != nil {
		return nil, nil, err
	}
	if err := transform.Run(root); err != nil {
		return nil, nil, err
	}
	compiled, err := compiler.Compile(root, version.Current)
	if err != nil {
		return nil, nil, err
	}
	return &Script{inner: compiled}, root, nil
}
