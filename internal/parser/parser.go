// Package parser is Storyscript's hand-written recursive-descent + Pratt
// parser. Each grammar production builds its result directly in the
// normalized internal/tree.Tree form, so no separate concrete-to-abstract
// rewrite is needed afterwards; internal/transform still runs over the
// result, but only for identifier validation and argument short-hand
// expansion, not for general tree reshaping.
package parser

import (
	"fmt"

	"github.com/anish-94/storyscript/errs"
	"github.com/anish-94/storyscript/internal/lexer"
	"github.com/anish-94/storyscript/internal/token"
	"github.com/anish-94/storyscript/internal/tree"
)

// Parser walks a token stream one line/block at a time.
type Parser struct {
	lex  *lexer.Lexer
	cur  token.Token
	peek token.Token

	errs errs.List
}

// New creates a Parser over the given source text.
func New(source string) *Parser {
	p := &Parser{lex: lexer.New(source)}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) errorf(format string, args ...any) {
	p.errs.Add(errs.SyntaxErr(errs.ClassifierGeneric, p.cur.Line(), &p.cur, fmt.Sprintf(format, args...)))
}

// Parse consumes the whole token stream and returns the `start` tree,
// whose children are `block` nodes, or the first syntax error
// encountered.
func Parse(source string) (*tree.Tree, error) {
	p := New(source)
	p.skipNewlines()
	blocks := p.parseBlocks(token.EOF)
	if p.errs.HasErrors() {
		return nil, p.errs.First()
	}
	return tree.New("start", blocks...), nil
}

func (p *Parser) skipNewlines() {
	for p.cur.Kind == token.NEWLINE {
		p.next()
	}
}

// parseBlocks parses zero or more `block` nodes until a DEDENT/EOF-class
// terminator is reached.
func (p *Parser) parseBlocks(end token.Kind) []tree.Node {
	var blocks []tree.Node
	for p.cur.Kind != end && p.cur.Kind != token.EOF && !p.errs.HasErrors() {
		head := p.parseLine()
		if head == nil {
			break
		}
		blocks = append(blocks, tree.New("block", tree.New("line", head)))
		p.skipNewlines()
	}
	return blocks
}

// parseNestedBlock expects the parser to be sitting on NEWLINE immediately
// followed by INDENT, and consumes through the matching DEDENT.
func (p *Parser) parseNestedBlock() *tree.Tree {
	if p.cur.Kind != token.NEWLINE || p.peek.Kind != token.INDENT {
		p.errorf("expected an indented block")
		return tree.New("nested_block")
	}
	p.next() // consume NEWLINE
	p.next() // consume INDENT
	blocks := p.parseBlocks(token.DEDENT)
	if p.cur.Kind == token.DEDENT {
		p.next()
	}
	return tree.New("nested_block", blocks...)
}

// parseLine dispatches on the current token to one of the recognized
// line productions.
func (p *Parser) parseLine() tree.Node {
	switch p.cur.Kind {
	case token.IF:
		return p.parseIfBlock()
	case token.FOREACH:
		return p.parseForBlock()
	case token.WAIT:
		return p.parseWaitBlock()
	case token.NEXT:
		return p.parseNext()
	case token.WORD:
		return p.parseWordLedLine()
	default:
		if isValueStartToken(p.cur.Kind) {
			return p.parseMutationLine(p.parseExpression(LOWEST))
		}
		p.errorf("unexpected token %s at start of line", p.cur.Lexeme)
		return nil
	}
}

func isValueStartToken(k token.Kind) bool {
	switch k {
	case token.INT, token.MINUS, token.NOT, token.TRUE, token.FALSE,
		token.DOUBLE_QUOTED, token.FILEPATH, token.LBRACKET, token.LBRACE, token.LPAREN:
		return true
	}
	return false
}

// parseWordLedLine resolves the command/assignment/mutation-line
// ambiguity that a leading bare WORD creates: a path is parsed first,
// and what follows it decides the production.
func (p *Parser) parseWordLedLine() tree.Node {
	nameTok := p.cur
	if p.peek.Kind == token.DOT || p.peek.Kind == token.LBRACKET {
		path := p.parsePath()
		return p.afterLeadingValue(path, false)
	}

	switch p.peek.Kind {
	case token.ASSIGN:
		p.next() // consume name
		p.next() // consume '='
		return p.parseAssignment(tree.New("path", tree.Leaf(nameTok)))
	case token.THEN:
		p.next()
		return p.parseMutationLine(tree.New("path", tree.Leaf(nameTok)))
	default:
		p.next() // consume name
		return p.afterLeadingValue(tree.New("path", tree.Leaf(nameTok)), true)
	}
}

// afterLeadingValue decides, once a leading simple/bracketed path has
// already been parsed, whether the line is an assignment, a command
// (bare-word container only), or a mutation chain.
func (p *Parser) afterLeadingValue(path tree.Node, mayBeCommand bool) tree.Node {
	switch p.cur.Kind {
	case token.ASSIGN:
		p.next()
		return p.parseAssignment(path)
	case token.THEN:
		return p.parseMutationLine(path)
	case token.NEWLINE, token.EOF:
		if mayBeCommand {
			return p.finishCommand(path)
		}
		return p.parseMutationLine(path)
	default:
		if mayBeCommand && startsArgument(p.cur.Kind) {
			return p.finishCommand(path)
		}
		return p.parseMutationLine(path)
	}
}

func startsArgument(k token.Kind) bool {
	return k == token.WORD || isValueStartToken(k)
}

// parseAssignment parses the right-hand side of `target = ...`. A
// bare-word-led RHS with at least one following argument token is a
// service invocation, compiled to a `run` instruction whose output is
// the assigned path. A lone bare word stays a plain path value.
func (p *Parser) parseAssignment(target tree.Node) tree.Node {
	if p.cur.Kind == token.WORD && startsCommandRHS(p.peek.Kind) {
		cmdNameTok := p.cur
		p.next()
		cmd := p.finishCommandBody(cmdNameTok)
		return tree.New("assignment", target, cmd)
	}
	value := p.parseExpression(LOWEST)
	return tree.New("assignment", target, value)
}

func startsCommandRHS(k token.Kind) bool {
	return k == token.WORD || isValueStartToken(k)
}

// parseNext parses `next \`file.story\``.
func (p *Parser) parseNext() tree.Node {
	keyword := p.cur
	p.next()
	if p.cur.Kind != token.FILEPATH {
		p.errorf("expected a file path after 'next'")
		return nil
	}
	file := p.cur
	p.next()
	return tree.New("next", tree.Leaf(keyword), tree.Leaf(file))
}

// parseIfBlock parses the whole if/elseif*/else? chain as one `if_block`
// so the compiler sees every alternative sibling at once instead of
// re-scanning line by line.
func (p *Parser) parseIfBlock() tree.Node {
	p.next() // consume 'if'
	cond := p.parsePath()
	nested := p.parseNestedBlock()
	children := []tree.Node{renamePath(cond, "if_statement"), nested}

	for p.cur.Kind == token.ELSEIF {
		p.next()
		c := p.parsePath()
		n := p.parseNestedBlock()
		children = append(children, tree.New("elseif_block", renamePath(c, "elseif_statement"), n))
	}
	if p.cur.Kind == token.ELSE {
		// The keyword token is kept so the else_block's line is the line
		// of `else` itself, not of its first nested instruction.
		elseTok := p.cur
		p.next()
		n := p.parseNestedBlock()
		children = append(children, tree.New("else_block", tree.Leaf(elseTok), n))
	}
	return tree.New("if_block", children...)
}

func renamePath(n tree.Node, data string) *tree.Tree {
	t, ok := n.(*tree.Tree)
	if !ok {
		return tree.New(data)
	}
	return tree.New(data, t.Children...)
}

// parseForBlock parses `foreach <path> as <var>`.
func (p *Parser) parseForBlock() tree.Node {
	p.next() // consume 'foreach'
	iterable := p.parsePath()
	if p.cur.Kind != token.AS {
		p.errorf("expected 'as' in foreach")
		return nil
	}
	p.next()
	if p.cur.Kind != token.WORD {
		p.errorf("expected a loop variable name")
		return nil
	}
	loopVar := p.cur
	p.next()
	nested := p.parseNestedBlock()
	return tree.New("for_block", tree.Leaf(loopVar), iterable, nested)
}

// parseWaitBlock parses `wait <path>`.
func (p *Parser) parseWaitBlock() tree.Node {
	p.next() // consume 'wait'
	cond := p.parsePath()
	nested := p.parseNestedBlock()
	return tree.New("wait_block", cond, nested)
}

// parseMutationLine parses `<value> <mutation>? (then <mutation>)*`, in
// either the same-line form or the indented-continuation form. The
// first mutation follows the value bare, as in
// `1 increment then format to:"string"`; every later one is introduced
// by `then`.
func (p *Parser) parseMutationLine(value tree.Node) tree.Node {
	var muts []tree.Node
	consumeMutation := func() {
		name := p.cur
		p.next()
		args := p.parseArgumentList()
		muts = append(muts, tree.New("mutation", append([]tree.Node{tree.Leaf(name)}, args...)...))
	}
	consumeThenLed := func() bool {
		if p.cur.Kind != token.THEN {
			return false
		}
		p.next()
		if p.cur.Kind != token.WORD {
			p.errorf("expected a mutation name after 'then'")
			return false
		}
		consumeMutation()
		return true
	}

	if p.cur.Kind == token.WORD {
		consumeMutation()
	}
	for consumeThenLed() {
	}
	if p.cur.Kind == token.NEWLINE && p.peek.Kind == token.INDENT {
		p.next()
		p.next()
		for p.cur.Kind != token.DEDENT && p.cur.Kind != token.EOF {
			if !consumeThenLed() {
				break
			}
			p.skipNewlines()
		}
		if p.cur.Kind == token.DEDENT {
			p.next()
		}
	}
	if p.cur.Kind != token.NEWLINE && p.cur.Kind != token.EOF && p.cur.Kind != token.DEDENT {
		p.errorf("unexpected token %s after mutation chain", p.cur.Lexeme)
	}
	return tree.New("mutation_line", append([]tree.Node{value}, muts...)...)
}

// finishCommand parses a command whose container name has already been
// parsed as a trivial one-segment path.
func (p *Parser) finishCommand(path tree.Node) tree.Node {
	t, ok := path.(*tree.Tree)
	if !ok || len(t.Children) != 1 {
		p.errorf("internal: command container must be a bare word")
		return nil
	}
	nameTok, ok := t.Children[0].(tree.Token)
	if !ok {
		p.errorf("internal: command container must be a bare word")
		return nil
	}
	return p.finishCommandBody(nameTok.Token)
}

func (p *Parser) finishCommandBody(nameTok token.Token) tree.Node {
	args := p.parseArgumentList()
	if p.cur.Kind == token.NEWLINE && p.peek.Kind == token.INDENT {
		p.next()
		p.next()
		if p.cur.Kind == token.THEN {
			// The bare word was in fact a mutation target continued on an
			// indented `then` line, not a command with hoisted arguments.
			// Anything parsed on the first line is the chain's bare first
			// mutation: a name followed by that mutation's own arguments.
			muts := []tree.Node{}
			if len(args) > 0 {
				first, _ := args[0].(*tree.Tree)
				var name *tree.Tree
				if first != nil && len(first.Children) == 1 {
					name, _ = first.Children[0].(*tree.Tree)
				}
				if name == nil || name.Data != "path" || len(name.Children) != 1 {
					p.errorf("expected a mutation name before the indented 'then'")
					return nil
				}
				muts = append(muts, tree.New("mutation", append([]tree.Node{name.Children[0]}, args[1:]...)...))
			}
			for p.cur.Kind == token.THEN {
				p.next()
				if p.cur.Kind != token.WORD {
					p.errorf("expected a mutation name after 'then'")
					break
				}
				mname := p.cur
				p.next()
				margs := p.parseArgumentList()
				muts = append(muts, tree.New("mutation", append([]tree.Node{tree.Leaf(mname)}, margs...)...))
				p.skipNewlines()
			}
			if p.cur.Kind != token.DEDENT && p.cur.Kind != token.EOF && !p.errs.HasErrors() {
				p.errorf("unexpected token %s after mutation chain", p.cur.Lexeme)
			}
			if p.cur.Kind == token.DEDENT {
				p.next()
			}
			return tree.New("mutation_line", append([]tree.Node{tree.New("path", tree.Leaf(nameTok))}, muts...)...)
		}
		for p.cur.Kind != token.DEDENT && p.cur.Kind != token.EOF {
			more := p.parseArgumentList()
			if len(more) == 0 && p.cur.Kind != token.NEWLINE {
				p.errorf("unexpected token %s in service arguments", p.cur.Lexeme)
				break
			}
			args = append(args, more...)
			p.skipNewlines()
		}
		if p.cur.Kind == token.DEDENT {
			p.next()
		}
	}
	service := tree.New("service", append([]tree.Node{tree.Leaf(nameTok)}, args...)...)
	return tree.New("command", service)
}

// parseArgumentList parses zero or more `name: value` (explicit) or bare
// `value` (short-hand, expanded by internal/transform) arguments on the
// current line.
func (p *Parser) parseArgumentList() []tree.Node {
	var args []tree.Node
	for {
		if p.cur.Kind == token.WORD && p.peek.Kind == token.COLON {
			name := p.cur
			p.next()
			p.next()
			val := p.parseExpression(LOWEST)
			args = append(args, tree.New("arguments", tree.Leaf(name), val))
			continue
		}
		if isValueStartToken(p.cur.Kind) || (p.cur.Kind == token.WORD && p.peek.Kind != token.COLON) {
			val := p.parseExpression(LOWEST)
			args = append(args, tree.New("arguments", val))
			continue
		}
		break
	}
	return args
}
