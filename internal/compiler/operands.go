package compiler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/anish-94/storyscript/errs"
	"github.com/anish-94/storyscript/internal/operand"
	"github.com/anish-94/storyscript/internal/token"
	"github.com/anish-94/storyscript/internal/tree"
)

// interpPattern is the interpolation placeholder: two braces, any
// non-`}` run, two braces. It is intentionally non-nesting, and `{{`
// cannot be escaped.
var interpPattern = regexp.MustCompile(`\{\{([^}]*)\}\}`)

// Value dispatches an operand-producing node to its emitter: literals,
// paths, expressions, comparisons, and conditions can all appear as an
// assignment or argument value.
func Value(n tree.Node) (operand.Value, error) {
	switch v := n.(type) {
	case tree.Token:
		return tokenValue(v.Token)
	case *tree.Tree:
		return treeValue(v)
	default:
		return nil, errs.InternalErr(n.Line(), "operand")
	}
}

func tokenValue(tok token.Token) (operand.Value, error) {
	switch tok.Kind {
	case token.FILEPATH:
		return File(tok), nil
	default:
		return nil, errs.InternalErr(tok.Line(), "bare token operand")
	}
}

func treeValue(t *tree.Tree) (operand.Value, error) {
	switch t.Data {
	case "path":
		return Path(t), nil
	case "number":
		return Number(t), nil
	case "string":
		return String(t), nil
	case "boolean":
		return Boolean(t), nil
	case "file":
		return File(t.ChildToken(0)), nil
	case "list":
		return ListOperand(t)
	case "dict":
		return Dict(t)
	case "arguments":
		return Argument(t)
	case "mutation":
		return Mutation(t)
	case "arith_expr", "bool_expr":
		entries, err := flatten(t)
		if err != nil {
			return nil, err
		}
		return finalize(entries), nil
	case "unary_not":
		inner, err := Value(t.Child(0))
		if err != nil {
			return nil, err
		}
		return finalize([]exprEntry{{mixin: "not", value: inner}}), nil
	case "unary_neg":
		inner, err := Value(t.Child(1))
		if err != nil {
			return nil, err
		}
		return finalize([]exprEntry{{mixin: "negative", value: inner}}), nil
	case "compare_expr":
		return Method(t)
	case "ternary":
		return Condition(t)
	default:
		return nil, errs.InternalErr(t.Line(), t.Data)
	}
}

// Path emits a `path` operand, one segment per child token.
func Path(t *tree.Tree) *operand.Path {
	paths := make([]string, len(t.Children))
	for i, c := range t.Children {
		if tok, ok := c.(tree.Token); ok {
			paths[i] = tok.Lexeme
		}
	}
	return &operand.Path{Paths: paths}
}

// Number returns the integer value of the sole child token.
func Number(t *tree.Tree) *operand.Int {
	n, _ := strconv.Atoi(t.ChildToken(0).Lexeme)
	return &operand.Int{Int: n}
}

// String strips surrounding quotes and expands `{{path}}` interpolation
// placeholders into a `values` array of paths, replacing each
// placeholder in the string with `{}` in positional correspondence.
func String(t *tree.Tree) *operand.Str {
	raw := stripQuotes(t.ChildToken(0).Lexeme)

	matches := interpPattern.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return &operand.Str{String: raw}
	}

	var sb strings.Builder
	var values []operand.Value
	last := 0
	for _, m := range matches {
		sb.WriteString(raw[last:m[0]])
		sb.WriteString("{}")
		inner := strings.TrimSpace(raw[m[2]:m[3]])
		values = append(values, pathFromDotted(inner))
		last = m[1]
	}
	sb.WriteString(raw[last:])
	return &operand.Str{String: sb.String(), Values: values}
}

func stripQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

func pathFromDotted(s string) *operand.Path {
	return &operand.Path{Paths: strings.Split(s, ".")}
}

// Boolean discriminates on the token kind.
func Boolean(t *tree.Tree) operand.Bool {
	return operand.Bool(t.ChildToken(0).Kind == token.TRUE)
}

// File strips the enclosing backticks from a file-path token.
func File(tok token.Token) *operand.File {
	lex := tok.Lexeme
	if len(lex) >= 2 {
		lex = lex[1 : len(lex)-1]
	}
	return &operand.File{String: lex}
}

// ListOperand emits a `list` operand. The first child is the opening
// bracket token; the rest are item nodes.
func ListOperand(t *tree.Tree) (*operand.List, error) {
	items := make([]operand.Value, 0, len(t.Children)-1)
	for _, c := range t.Children[1:] {
		v, err := Value(c)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return &operand.List{Items: items}, nil
}

// Dict emits a `dict` operand as a list of [key, value] pairs.
func Dict(t *tree.Tree) (*operand.Dict, error) {
	entries := make([]operand.DictEntry, 0, len(t.Children)-1)
	for _, c := range t.Children[1:] {
		entry, ok := c.(*tree.Tree)
		if !ok || entry.Data != "dict_entry" {
			continue
		}
		key := String(entry.ChildTree(0))
		val, err := Value(entry.Child(1))
		if err != nil {
			return nil, err
		}
		entries = append(entries, operand.DictEntry{Key: key, Value: val})
	}
	return &operand.Dict{Items: entries}, nil
}

// Argument emits an `argument` operand from an already-shorthand-
// expanded `arguments` tree.
func Argument(t *tree.Tree) (*operand.Argument, error) {
	if len(t.Children) != 2 {
		return nil, errs.InternalErr(t.Line(), "arguments")
	}
	nameTok, ok := t.Children[0].(tree.Token)
	if !ok {
		return nil, errs.InternalErr(t.Line(), "arguments")
	}
	val, err := Value(t.Children[1])
	if err != nil {
		return nil, err
	}
	return &operand.Argument{Name: nameTok.Lexeme, Argument: val}, nil
}

// Mutation emits one step of a chained mutation pipeline.
func Mutation(t *tree.Tree) (*operand.Mutation, error) {
	name := t.ChildToken(0).Lexeme
	args := make([]operand.Value, 0, len(t.Children)-1)
	for _, c := range t.Children[1:] {
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
	return &operand.Mutation{Mutation: name, Arguments: args}, nil
}

// Method emits a binary comparison.
func Method(t *tree.Tree) (*operand.Method, error) {
	left, err := Value(t.Child(0))
	if err != nil {
		return nil, err
	}
	opTok := t.ChildToken(1)
	right, err := Value(t.Child(2))
	if err != nil {
		return nil, err
	}
	label, ok := compareLabel[opTok.Kind]
	if !ok {
		return nil, errs.InternalErr(t.Line(), "compare_expr")
	}
	return &operand.Method{Method: label, Left: left, Right: right}, nil
}

// Condition emits a ternary `(if, then, else?)` operand.
func Condition(t *tree.Tree) (*operand.Condition, error) {
	thenVal, err := Value(t.Child(0))
	if err != nil {
		return nil, err
	}
	ifVal, err := Value(t.Child(1))
	if err != nil {
		return nil, err
	}
	var elseVal operand.Value
	if t.Child(2) != nil {
		elseVal, err = Value(t.Child(2))
		if err != nil {
			return nil, err
		}
	}
	return &operand.Condition{
		If:   operand.ConditionIf{Expr: ifVal, Tag: "if"},
		Then: thenVal,
		Else: elseVal,
	}, nil
}

// exprEntry is one (mixin, operand) pair in a flattened expression
// accumulation.
type exprEntry struct {
	mixin string
	value operand.Value
}

// flatten walks an arith_expr/bool_expr tree and returns its fully
// flattened, left-to-right sequence of (mixin, operand) entries: a
// nested arith_expr/bool_expr child is inlined by concatenation rather
// than nested.
func flatten(t *tree.Tree) ([]exprEntry, error) {
	left, err := entriesFor(t.Child(0))
	if err != nil {
		return nil, err
	}
	opTok := t.ChildToken(1)
	right, err := entriesFor(t.Child(2))
	if err != nil {
		return nil, err
	}
	label, ok := arithLabel[opTok.Kind]
	if !ok {
		return nil, errs.InternalErr(t.Line(), "arith_expr")
	}
	if len(right) > 0 {
		// A right operand may already carry a unary mixin ("not b" in
		// "a and not b"); the binary label goes in front of it.
		if right[0].mixin != "" {
			right[0].mixin = label + " " + right[0].mixin
		} else {
			right[0].mixin = label
		}
	}
	return append(left, right...), nil
}

func entriesFor(n tree.Node) ([]exprEntry, error) {
	if t, ok := n.(*tree.Tree); ok {
		switch t.Data {
		case "arith_expr", "bool_expr":
			return flatten(t)
		case "unary_not":
			inner, err := Value(t.Child(0))
			if err != nil {
				return nil, err
			}
			return []exprEntry{{mixin: "not", value: inner}}, nil
		case "unary_neg":
			inner, err := Value(t.Child(1))
			if err != nil {
				return nil, err
			}
			return []exprEntry{{mixin: "negative", value: inner}}, nil
		}
	}
	v, err := Value(n)
	if err != nil {
		return nil, err
	}
	return []exprEntry{{mixin: "", value: v}}, nil
}

// finalize renders a flattened entry sequence into its final operand:
// a lone, mixin-less entry collapses to its bare value (so `a = 0` is
// never wrapped); anything else becomes an `expression` operand whose
// `expression` field is the space-joined mixin sequence and whose
// `values` holds each entry's operand in order, so `a = 1 + 2` yields
// {expression: "sum", values: [int(1), int(2)]}.
func finalize(entries []exprEntry) operand.Value {
	if len(entries) == 1 && entries[0].mixin == "" {
		return entries[0].value
	}
	var mixins []string
	values := make([]operand.Value, 0, len(entries))
	for _, e := range entries {
		if e.mixin != "" {
			mixins = append(mixins, e.mixin)
		}
		values = append(values, e.value)
	}
	return &operand.Expression{Expression: strings.Join(mixins, " "), Values: values}
}

var arithLabel = map[token.Kind]string{
	token.PLUS:  "sum",
	token.MINUS: "subtraction",
	token.STAR:  "multiplication",
	token.SLASH: "division",
	token.PCT:   "modulus",
	token.AND:   "and",
	token.OR:    "or",
}

var compareLabel = map[token.Kind]string{
	token.EQ:     "equals",
	token.NOT_EQ: "not_equal",
	token.LT:     "less",
	token.GT:     "greater",
	token.LT_EQ:  "less_equal",
	token.GT_EQ:  "greater_equal",
}
