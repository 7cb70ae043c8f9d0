// Package grammar is Storyscript's grammar builder: a small DSL that
// accumulates token/rule/ignore/import tables and renders them into a
// single grammar document. It is documentation and a validation
// artifact only. `cmd/storyscript grammar` prints its output and a test
// checks every rule reference resolves; the hand-written engine in
// internal/parser does the actual parsing.
package grammar

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Builder accumulates a grammar's token, rule, ignore, and import tables.
type Builder struct {
	startLine string
	tokens    map[string]string
	rules     map[string]string
	ignores   []string
	imports   []string
}

// New creates an empty Builder rooted at the given start rule body,
// e.g. "block*"; String renders it as the line "start: block*".
func New(startLine string) *Builder {
	return &Builder{
		startLine: startLine,
		tokens:    map[string]string{},
		rules:     map[string]string{},
	}
}

// Token registers an uppercase-named terminal. A value delimited by `/`
// is a regular-expression terminal; anything else is a quoted literal.
func (b *Builder) Token(name, value string) *Builder {
	b.tokens[name] = value
	return b
}

// Rule registers a lowercase-named production.
func (b *Builder) Rule(name, body string) *Builder {
	b.rules[name] = body
	return b
}

// Collection is the `collection(item): "[" item ("," item)* "]"` macro:
// a named template for a comma-separated bracketed list of some other
// rule.
func Collection(item string) string {
	return fmt.Sprintf(`"[" %s ("," %s)* "]"`, item, item)
}

// Ignore registers a token name the parser should discard between rules
// (whitespace within a logical line, comments).
func (b *Builder) Ignore(tokenName string) *Builder {
	b.ignores = append(b.ignores, tokenName)
	return b
}

// Import registers a grammar fragment pulled in from elsewhere. Unused
// by Storyscript's self-contained grammar today, kept so the builder
// carries all four tables.
func (b *Builder) Import(name string) *Builder {
	b.imports = append(b.imports, name)
	return b
}

// String renders the grammar document: start line, rule table, token
// table, ignores, imports, in that order.
func (b *Builder) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "start: %s\n\n", b.startLine)

	for _, name := range sortedKeys(b.rules) {
		fmt.Fprintf(&sb, "%s: %s\n", name, b.rules[name])
	}
	sb.WriteString("\n")
	for _, name := range sortedKeys(b.tokens) {
		fmt.Fprintf(&sb, "%s: %s\n", name, b.tokens[name])
	}
	sb.WriteString("\n")
	for _, ig := range b.ignores {
		fmt.Fprintf(&sb, "%%ignore %s\n", ig)
	}
	for _, im := range b.imports {
		fmt.Fprintf(&sb, "%%import %s\n", im)
	}
	return sb.String()
}

var identPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// Validate checks that every identifier referenced in a rule body
// resolves to a known rule, token, or import. Quoted literals and regex
// terminals are not themselves identifiers and are skipped.
func (b *Builder) Validate() []string {
	known := map[string]bool{}
	for name := range b.rules {
		known[name] = true
	}
	for name := range b.tokens {
		known[name] = true
	}
	for _, im := range b.imports {
		known[im] = true
	}

	var problems []string
	for _, name := range sortedKeys(b.rules) {
		for _, ident := range identsIn(b.rules[name]) {
			if !known[ident] {
				problems = append(problems, fmt.Sprintf("rule %q references unknown identifier %q", name, ident))
			}
		}
	}
	return problems
}

// identsIn strips quoted literals and regex terminals before scanning
// for bare identifiers, so literal text like "then" inside a rule body
// is never mistaken for a reference to a THEN token.
func identsIn(body string) []string {
	stripped := regexp.MustCompile(`"(\\.|[^"\\])*"|/(\\.|[^/\\])*/`).ReplaceAllString(body, " ")
	return identPattern.FindAllString(stripped, -1)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
