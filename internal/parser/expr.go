package parser

import (
	"github.com/anish-94/storyscript/internal/lexer"
	"github.com/anish-94/storyscript/internal/token"
	"github.com/anish-94/storyscript/internal/tree"
)

// Precedence levels for the Pratt expression parser. The `x if c else y`
// ternary binds loosest of all.
const (
	_ int = iota
	LOWEST
	TERNARY     // if / else
	OR          // or
	AND         // and
	NOT         // not
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * / %
	UNARY       // unary -
)

var precedences = map[token.Kind]int{
	token.IF:     TERNARY,
	token.OR:     OR,
	token.AND:    AND,
	token.EQ:     EQUALS,
	token.NOT_EQ: EQUALS,
	token.LT:     LESSGREATER,
	token.GT:     LESSGREATER,
	token.LT_EQ:  LESSGREATER,
	token.GT_EQ:  LESSGREATER,
	token.PLUS:   SUM,
	token.MINUS:  SUM,
	token.STAR:   PRODUCT,
	token.SLASH:  PRODUCT,
	token.PCT:    PRODUCT,
}

// compareLabel distinguishes a comparison operator from an arithmetic
// one while parsing; internal/compiler owns the actual mixin/method
// label vocabulary used in emitted operands.
var compareLabel = map[token.Kind]string{
	token.EQ:     "equals",
	token.NOT_EQ: "not_equal",
	token.LT:     "less",
	token.GT:     "greater",
	token.LT_EQ:  "less_equal",
	token.GT_EQ:  "greater_equal",
}

func isCompare(k token.Kind) bool {
	_, ok := compareLabel[k]
	return ok
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Kind]; ok {
		return pr
	}
	return LOWEST
}

// parseExpression is the Pratt entry point used for assignment right-hand
// sides, argument values, list items, dict values, and the leading value
// of a mutation line. if/elseif/wait conditions are parsed by parsePath
// alone, and bracketed path segments accept only a quoted key.
func (p *Parser) parseExpression(precedence int) tree.Node {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for p.cur.Kind != token.NEWLINE && p.cur.Kind != token.EOF && precedence < p.curPrecedence() {
		op := p.cur
		switch {
		case isCompare(op.Kind):
			p.next()
			right := p.parseExpression(EQUALS)
			left = tree.New("compare_expr", left, tree.Leaf(op), right)
		case op.Kind == token.IF:
			left = p.parseTernary(left)
		default:
			p.next()
			right := p.parseExpression(precedences[op.Kind])
			data := "bool_expr"
			if op.Kind == token.PLUS || op.Kind == token.MINUS || op.Kind == token.STAR || op.Kind == token.SLASH || op.Kind == token.PCT {
				data = "arith_expr"
			}
			left = tree.New(data, left, tree.Leaf(op), right)
		}
	}
	return left
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Kind]; ok {
		return pr
	}
	return LOWEST
}

// parseTernary handles `then if cond else other`, consuming the already
// parsed `then` value as the left operand.
func (p *Parser) parseTernary(thenNode tree.Node) tree.Node {
	p.next() // consume 'if'
	cond := p.parseExpression(TERNARY)
	var elseNode tree.Node
	if p.cur.Kind == token.ELSE {
		p.next()
		elseNode = p.parseExpression(TERNARY)
	}
	if elseNode == nil {
		return tree.New("ternary", thenNode, cond)
	}
	return tree.New("ternary", thenNode, cond, elseNode)
}

func (p *Parser) parsePrefix() tree.Node {
	switch p.cur.Kind {
	case token.INT:
		return p.parseNumber()
	case token.MINUS:
		return p.parseUnaryMinus()
	case token.NOT:
		return p.parseUnaryNot()
	case token.TRUE, token.FALSE:
		return p.parseBoolean()
	case token.DOUBLE_QUOTED:
		return p.parseString()
	case token.FILEPATH:
		return p.parseFile()
	case token.LBRACKET:
		return p.parseList()
	case token.LBRACE:
		return p.parseDict()
	case token.LPAREN:
		return p.parseGrouped()
	case token.WORD:
		return p.parsePath()
	default:
		p.errorf("unexpected token %s", p.cur.Lexeme)
		return nil
	}
}

func (p *Parser) parseNumber() tree.Node {
	tok := p.cur
	p.next()
	return tree.New("number", tree.Leaf(tok))
}

// parseUnaryMinus folds a literal `-2` into a single negative number
// node; the sign is lexical, not an algebraic negation of an arbitrary
// operand. A minus in front of anything else is an ordinary unary
// negation.
func (p *Parser) parseUnaryMinus() tree.Node {
	minus := p.cur
	p.next()
	if p.cur.Kind == token.INT {
		tok := p.cur
		tok.Lexeme = "-" + tok.Lexeme
		p.next()
		return tree.New("number", tree.Leaf(tok))
	}
	operand := p.parseExpression(UNARY)
	return tree.New("unary_neg", tree.Leaf(minus), operand)
}

func (p *Parser) parseUnaryNot() tree.Node {
	p.next()
	operand := p.parseExpression(NOT)
	return tree.New("unary_not", operand)
}

func (p *Parser) parseBoolean() tree.Node {
	tok := p.cur
	p.next()
	return tree.New("boolean", tree.Leaf(tok))
}

func (p *Parser) parseString() tree.Node {
	tok := p.cur
	p.next()
	return tree.New("string", tree.Leaf(tok))
}

func (p *Parser) parseFile() tree.Node {
	tok := p.cur
	p.next()
	return tree.New("file", tree.Leaf(tok))
}

func (p *Parser) parseList() tree.Node {
	lbracket := p.cur
	p.next()
	items := []tree.Node{}
	for p.cur.Kind != token.RBRACKET && p.cur.Kind != token.EOF {
		items = append(items, p.parseExpression(LOWEST))
		if p.cur.Kind == token.COMMA {
			p.next()
		}
	}
	if p.cur.Kind == token.RBRACKET {
		p.next()
	}
	return tree.New("list", append([]tree.Node{tree.Leaf(lbracket)}, items...)...)
}

func (p *Parser) parseDict() tree.Node {
	lbrace := p.cur
	p.next()
	entries := []tree.Node{}
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		if p.cur.Kind != token.DOUBLE_QUOTED {
			p.errorf("dict keys must be quoted strings, got %s", p.cur.Lexeme)
			break
		}
		key := p.parseString()
		if p.cur.Kind != token.COLON {
			p.errorf("expected ':' after dict key")
			break
		}
		p.next()
		val := p.parseExpression(LOWEST)
		entries = append(entries, tree.New("dict_entry", key, val))
		if p.cur.Kind == token.COMMA {
			p.next()
		}
	}
	if p.cur.Kind == token.RBRACE {
		p.next()
	}
	return tree.New("dict", append([]tree.Node{tree.Leaf(lbrace)}, entries...)...)
}

func (p *Parser) parseGrouped() tree.Node {
	p.next() // consume '('
	inner := p.parseExpression(LOWEST)
	if p.cur.Kind == token.RPAREN {
		p.next()
	} else {
		p.errorf("expected ')'")
	}
	return inner
}

// parsePath parses a dotted/bracketed variable reference: `a.b['c'].d`.
// Every segment, dotted identifier or bracketed string key, is kept as
// a plain WORD-kind token carrying the segment text; the compiler does
// not care whether a segment came from a dot or a bracket.
func (p *Parser) parsePath() tree.Node {
	first := p.cur
	p.next()
	segments := []tree.Node{tree.Leaf(first)}
	for {
		switch p.cur.Kind {
		case token.DOT:
			p.next()
			if p.cur.Kind != token.WORD {
				p.errorf("expected identifier after '.'")
				return tree.New("path", segments...)
			}
			segments = append(segments, tree.Leaf(p.cur))
			p.next()
		case token.LBRACKET:
			p.next()
			if p.cur.Kind != token.DOUBLE_QUOTED {
				p.errorf("expected quoted key after '['")
				return tree.New("path", segments...)
			}
			seg := p.cur
			seg.Kind = token.WORD
			seg.Lexeme = lexer.TrimQuotes(seg.Lexeme)
			segments = append(segments, tree.Leaf(seg))
			p.next()
			if p.cur.Kind == token.RBRACKET {
				p.next()
			} else {
				p.errorf("expected ']'")
			}
		default:
			return tree.New("path", segments...)
		}
	}
}
