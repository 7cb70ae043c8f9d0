package transform

import (
	"testing"

	"github.com/anish-94/storyscript/errs"
	"github.com/anish-94/storyscript/internal/parser"
)

func TestRunRejectsDashedIdentifier(t *testing.T) {
	root, err := parser.Parse("a-b = 1\n")
	if err != nil {
		t.Fatalf("Parse should succeed: %v", err)
	}
	err = Run(root)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	ce, ok := err.(*errs.CompileError)
	if !ok {
		t.Fatalf("expected *errs.CompileError, got %T", err)
	}
	if ce.Classifier != errs.ClassifierVariablesDash {
		t.Errorf("classifier = %q, want %q", ce.Classifier, errs.ClassifierVariablesDash)
	}
}

func TestRunAcceptsPlainIdentifier(t *testing.T) {
	root, err := parser.Parse("plain_name = 1\n")
	if err != nil {
		t.Fatalf("Parse should succeed: %v", err)
	}
	if err := Run(root); err != nil {
		t.Errorf("Run should accept a plain identifier, got %v", err)
	}
}

func TestExpandShorthandSynthesizesName(t *testing.T) {
	root, err := parser.Parse("alpine echo\n")
	if err != nil {
		t.Fatalf("Parse should succeed: %v", err)
	}
	if err := Run(root); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	cmd := root.Node("command")
	service := cmd.ChildTree(0)
	arg := service.ChildTree(1)
	if arg == nil || arg.Data != "arguments" || len(arg.Children) != 2 {
		t.Fatalf("expected a 2-child expanded arguments node, got %v", arg)
	}
	if arg.ChildToken(0).Lexeme != "echo" {
		t.Errorf("synthesized argument name = %q, want echo", arg.ChildToken(0).Lexeme)
	}
}
