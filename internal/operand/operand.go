// Package operand is Storyscript's typed operand representation: a
// closed set of variants discriminated on the wire by `$OBJECT`,
// expressed as a sealed Go interface with one concrete struct per
// variant. Operands are a tagged sum type internally and are serialized
// to the `$OBJECT`-tagged wire shape only at the JSON boundary
// (Value.JSON), never threaded through the compiler as raw maps.
package operand

// Value is satisfied by every operand variant. JSON returns the
// `$OBJECT`-tagged wire representation, or, for Bool, a bare native
// boolean.
type Value interface {
	JSON() any
}

// Path is a variable reference decomposed into dotted/bracketed segments.
type Path struct {
	Paths []string
}

func (p *Path) JSON() any {
	return map[string]any{"$OBJECT": "path", "paths": p.Paths}
}

// Str is a string literal, optionally carrying `{}` interpolation values.
type Str struct {
	String string
	Values []Value // nil unless String contains at least one `{}`
}

func (s *Str) JSON() any {
	m := map[string]any{"$OBJECT": "string", "string": s.String}
	if len(s.Values) > 0 {
		m["values"] = jsonSlice(s.Values)
	}
	return m
}

// Int is an integer literal.
type Int struct {
	Int int
}

func (i *Int) JSON() any {
	return map[string]any{"$OBJECT": "int", "int": i.Int}
}

// Bool is a boolean literal. It serializes as a native JSON boolean, not
// a `$OBJECT`-tagged record.
type Bool bool

func (b Bool) JSON() any { return bool(b) }

// List is a list literal.
type List struct {
	Items []Value
}

func (l *List) JSON() any {
	return map[string]any{"$OBJECT": "list", "items": jsonSlice(l.Items)}
}

// DictEntry is one key/value pair of a Dict literal. Keys are always
// string operands.
type DictEntry struct {
	Key   *Str
	Value Value
}

// Dict is a dictionary literal.
type Dict struct {
	Items []DictEntry
}

func (d *Dict) JSON() any {
	items := make([]any, len(d.Items))
	for i, e := range d.Items {
		items[i] = []any{e.Key.JSON(), jsonOf(e.Value)}
	}
	return map[string]any{"$OBJECT": "dict", "items": items}
}

// File is a backtick file-path literal.
type File struct {
	String string
}

func (f *File) JSON() any {
	return map[string]any{"$OBJECT": "file", "string": f.String}
}

// Argument is a named argument: `name: value`.
type Argument struct {
	Name     string
	Argument Value
}

func (a *Argument) JSON() any {
	return map[string]any{"$OBJECT": "argument", "name": a.Name, "argument": jsonOf(a.Argument)}
}

// Mutation is one step of a chained mutation pipeline, e.g. the
// `format to:"string"` in `1 increment then format to:"string"`.
type Mutation struct {
	Mutation  string
	Arguments []Value // typically *Argument values
}

func (m *Mutation) JSON() any {
	return map[string]any{"$OBJECT": "mutation", "mutation": m.Mutation, "arguments": jsonSlice(m.Arguments)}
}

// Expression is a flat left-to-right accumulation of mixins ('' | 'and' |
// 'or' | 'not' | an arithmetic-op label) and operands. Nested
// Expression operands are inlined into their parent by concatenation
// rather than nested, so the wire shape is always one flat record.
type Expression struct {
	Expression string
	Values     []Value
}

func (e *Expression) JSON() any {
	return map[string]any{"$OBJECT": "expression", "expression": e.Expression, "values": jsonSlice(e.Values)}
}

// Method encodes a binary comparison as {method, left, right}.
type Method struct {
	Method string
	Left   Value
	Right  Value
}

func (m *Method) JSON() any {
	return map[string]any{"$OBJECT": "method", "method": m.Method, "left": jsonOf(m.Left), "right": jsonOf(m.Right)}
}

// ConditionIf is the `(expr, tag)` pair stored under Condition.If.
type ConditionIf struct {
	Expr Value
	Tag  string
}

// Condition is a three-part `(if, then, else?)` ternary operand.
type Condition struct {
	If   ConditionIf
	Then Value
	Else Value // nil when no else branch
}

func (c *Condition) JSON() any {
	m := map[string]any{
		"$OBJECT": "condition",
		"if":      []any{jsonOf(c.If.Expr), c.If.Tag},
		"then":    jsonOf(c.Then),
	}
	if c.Else != nil {
		m["else"] = jsonOf(c.Else)
	} else {
		m["else"] = nil
	}
	return m
}

func jsonOf(v Value) any {
	if v == nil {
		return nil
	}
	return v.JSON()
}

func jsonSlice(vs []Value) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = jsonOf(v)
	}
	return out
}
