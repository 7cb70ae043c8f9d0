package parser

import (
	"testing"

	"github.com/anish-94/storyscript/internal/tree"
)

func mustParse(t *testing.T, source string) *tree.Tree {
	t.Helper()
	root, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", source, err)
	}
	return root
}

func TestParseEmptyProgram(t *testing.T) {
	root := mustParse(t, "")
	if len(root.Children) != 0 {
		t.Errorf("empty program should produce zero blocks, got %d", len(root.Children))
	}
}

func TestParseIntegerAssignment(t *testing.T) {
	root := mustParse(t, "a = 1\n")
	assign := root.Node("assignment")
	if assign == nil {
		t.Fatal("expected an assignment node")
	}
	num := assign.ChildTree(1).Node("number")
	if num == nil || num.ChildToken(0).Lexeme != "1" {
		t.Errorf("expected RHS number 1, got %v", assign.ChildTree(1))
	}
}

func TestParseNegativeLiteralFolds(t *testing.T) {
	root := mustParse(t, "a = -2\n")
	assign := root.Node("assignment")
	rhs, ok := assign.Child(1).(*tree.Tree)
	if !ok || rhs.Data != "number" {
		t.Fatalf("expected a folded number node, got %v", assign.Child(1))
	}
	if rhs.ChildToken(0).Lexeme != "-2" {
		t.Errorf("lexeme = %q, want -2", rhs.ChildToken(0).Lexeme)
	}
}

func TestParseArithmeticWhitespaceInvariant(t *testing.T) {
	a := mustParse(t, "a = 1+2\n")
	b := mustParse(t, "a = 1 + 2\n")

	a1 := a.Node("assignment").Child(1).(*tree.Tree)
	b1 := b.Node("assignment").Child(1).(*tree.Tree)
	if a1.Data != "arith_expr" || b1.Data != "arith_expr" {
		t.Fatalf("expected arith_expr nodes, got %v / %v", a1.Data, b1.Data)
	}
}

func TestParseInterpolatedString(t *testing.T) {
	root := mustParse(t, `a = "hello {{name}}"` + "\n")
	str := root.Node("string")
	if str == nil || str.ChildToken(0).Lexeme != `"hello {{name}}"` {
		t.Fatalf("expected the raw interpolated lexeme preserved, got %v", str)
	}
}

func TestParseMutationLineSameLine(t *testing.T) {
	root := mustParse(t, "1 increment then format to:\"string\"\n")
	m := root.Node("mutation_line")
	if m == nil {
		t.Fatal("expected a mutation_line node")
	}
	if len(m.Children) != 3 {
		t.Fatalf("expected 2 mutations chained onto the value, got %d children", len(m.Children))
	}
}

func TestParseMutationLineContinuation(t *testing.T) {
	root := mustParse(t, "1 increment\n  then format to:\"string\"\n")
	m := root.Node("mutation_line")
	if m == nil {
		t.Fatal("expected a mutation_line node")
	}
	if len(m.Children) != 3 {
		t.Fatalf("expected 2 mutations chained, got %d children", len(m.Children))
	}
}

func TestParseCommand(t *testing.T) {
	root := mustParse(t, "alpine echo message:\"hi\"\n")
	cmd := root.Node("command")
	if cmd == nil {
		t.Fatal("expected a command node")
	}
	service := cmd.ChildTree(0)
	if service == nil || service.ChildToken(0).Lexeme != "alpine" {
		t.Fatalf("expected service container 'alpine', got %v", service)
	}
}

func TestParseAssignmentFromCommand(t *testing.T) {
	root := mustParse(t, "x = alpine echo message:\"hi\"\n")
	assign := root.Node("assignment")
	if assign == nil {
		t.Fatal("expected an assignment node")
	}
	cmd, ok := assign.Child(1).(*tree.Tree)
	if !ok || cmd.Data != "command" {
		t.Fatalf("expected assignment RHS to be a command, got %v", assign.Child(1))
	}
}

func TestParseIfElseifElse(t *testing.T) {
	source := "if a\n  b = 1\nelseif c\n  b = 2\nelse\n  b = 3\n"
	root := mustParse(t, source)
	ifBlock := root.Node("if_block")
	if ifBlock == nil {
		t.Fatal("expected an if_block node")
	}
	if len(ifBlock.Children) != 4 {
		t.Fatalf("expected if_statement, nested_block, elseif_block, else_block; got %d children", len(ifBlock.Children))
	}
	if ifBlock.ChildTree(2).Data != "elseif_block" {
		t.Errorf("expected elseif_block, got %s", ifBlock.ChildTree(2).Data)
	}
	if ifBlock.ChildTree(3).Data != "else_block" {
		t.Errorf("expected else_block, got %s", ifBlock.ChildTree(3).Data)
	}
}

func TestParseForeach(t *testing.T) {
	root := mustParse(t, "foreach items as item\n  x = item\n")
	forBlock := root.Node("for_block")
	if forBlock == nil {
		t.Fatal("expected a for_block node")
	}
	if forBlock.ChildToken(0).Lexeme != "item" {
		t.Errorf("loop var = %q, want item", forBlock.ChildToken(0).Lexeme)
	}
}

func TestParseTernary(t *testing.T) {
	root := mustParse(t, "a = 1 if b else 2\n")
	ternary := root.Node("ternary")
	if ternary == nil {
		t.Fatal("expected a ternary node")
	}
	if len(ternary.Children) != 3 {
		t.Errorf("expected then/if/else children, got %d", len(ternary.Children))
	}
}

func TestParseDottedAssignmentTarget(t *testing.T) {
	root := mustParse(t, "a.b = 1\n")
	assign := root.Node("assignment")
	if assign == nil {
		t.Fatal("expected an assignment node")
	}
	target := assign.ChildTree(0)
	if target == nil || target.Data != "path" || len(target.Children) != 2 {
		t.Fatalf("expected a two-segment path target, got %v", assign.Child(0))
	}
}

func TestParseBareWordRHSStaysAPath(t *testing.T) {
	root := mustParse(t, "x = y\n")
	assign := root.Node("assignment")
	rhs, ok := assign.Child(1).(*tree.Tree)
	if !ok || rhs.Data != "path" {
		t.Fatalf("a lone bare word RHS should stay a path value, got %v", assign.Child(1))
	}
}

func TestParseSourceWithoutTrailingNewline(t *testing.T) {
	root := mustParse(t, "a = 1")
	if root.Node("assignment") == nil {
		t.Fatal("a final line without a trailing newline should still parse")
	}
}

func TestParseRejectsDanglingOperand(t *testing.T) {
	if _, err := Parse("1 2\n"); err == nil {
		t.Fatal("expected a syntax error for a dangling operand after a value")
	}
}

func TestParseNext(t *testing.T) {
	root := mustParse(t, "next `other.story`\n")
	next := root.Node("next")
	if next == nil {
		t.Fatal("expected a next node")
	}
	if next.ChildToken(1).Lexeme != "`other.story`" {
		t.Errorf("file token = %q, want the raw backtick lexeme", next.ChildToken(1).Lexeme)
	}
}
