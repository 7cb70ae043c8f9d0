package compiler

import (
	"testing"

	"github.com/anish-94/storyscript/internal/parser"
	"github.com/anish-94/storyscript/internal/transform"
)

func mustCompile(t *testing.T, source string) *Script {
	t.Helper()
	root, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", source, err)
	}
	if err := transform.Run(root); err != nil {
		t.Fatalf("transform.Run error: %v", err)
	}
	sc, err := Compile(root, "v1.0.0")
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	return sc
}

func TestEmptyProgram(t *testing.T) {
	sc := mustCompile(t, "\n\n")
	if len(sc.Script) != 0 {
		t.Errorf("expected no instructions, got %d", len(sc.Script))
	}
	if sc.Entrypoint != nil {
		t.Errorf("expected nil entrypoint, got %v", *sc.Entrypoint)
	}
}

func TestIntegerAssignment(t *testing.T) {
	sc := mustCompile(t, "a = 0\n")
	inst := sc.Script["1"]
	if inst == nil {
		t.Fatal("expected an instruction at line 1")
	}
	if inst.Method != "set" {
		t.Errorf("method = %q, want set", inst.Method)
	}
	if len(inst.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(inst.Args))
	}
	path, ok := inst.Args[0].JSON().(map[string]any)
	if !ok || path["$OBJECT"] != "path" {
		t.Errorf("args[0] = %v, want a path operand", inst.Args[0].JSON())
	}
	i, ok := inst.Args[1].JSON().(map[string]any)
	if !ok || i["$OBJECT"] != "int" || i["int"] != 0 {
		t.Errorf("args[1] = %v, want int(0)", inst.Args[1].JSON())
	}
}

func TestInterpolatedString(t *testing.T) {
	sc := mustCompile(t, `a = "{{color}}"`+"\n")
	inst := sc.Script["1"]
	if inst == nil || len(inst.Args) != 2 {
		t.Fatalf("expected 2 args, got %v", inst)
	}
	str, ok := inst.Args[1].JSON().(map[string]any)
	if !ok || str["$OBJECT"] != "string" || str["string"] != "{}" {
		t.Fatalf("args[1] = %v, want string operand with placeholder", inst.Args[1].JSON())
	}
	values, ok := str["values"].([]any)
	if !ok || len(values) != 1 {
		t.Fatalf("expected one interpolation value, got %v", str["values"])
	}
	v := values[0].(map[string]any)
	if v["$OBJECT"] != "path" {
		t.Errorf("interpolation value = %v, want a path", v)
	}
}

func TestChainedMutation(t *testing.T) {
	sc := mustCompile(t, "1 increment then format to:\"string\"\n")
	inst := sc.Script["1"]
	if inst == nil {
		t.Fatal("expected an instruction at line 1")
	}
	if len(inst.Args) != 3 {
		t.Fatalf("expected int + 2 mutations, got %d args", len(inst.Args))
	}
	n, ok := inst.Args[0].JSON().(map[string]any)
	if !ok || n["$OBJECT"] != "int" || n["int"] != 1 {
		t.Errorf("args[0] = %v, want int(1)", inst.Args[0].JSON())
	}
	m0, ok := inst.Args[1].JSON().(map[string]any)
	if !ok || m0["$OBJECT"] != "mutation" || m0["mutation"] != "increment" {
		t.Errorf("args[1] = %v, want mutation(increment)", inst.Args[1].JSON())
	}
	m1, ok := inst.Args[2].JSON().(map[string]any)
	if !ok || m1["$OBJECT"] != "mutation" || m1["mutation"] != "format" {
		t.Errorf("args[2] = %v, want mutation(format)", inst.Args[2].JSON())
	}
}

func TestArithmeticWhitespaceInvariance(t *testing.T) {
	sources := []string{"a=1+2\n", "a = 1 + 2\n", "a=1 +2\n"}
	var first map[string]any
	for i, src := range sources {
		sc := mustCompile(t, src)
		inst := sc.Script["1"]
		expr, ok := inst.Args[1].JSON().(map[string]any)
		if !ok || expr["$OBJECT"] != "expression" || expr["expression"] != "sum" {
			t.Fatalf("source %q: args[1] = %v, want expression(sum)", src, inst.Args[1].JSON())
		}
		if i == 0 {
			first = expr
			continue
		}
		if expr["expression"] != first["expression"] {
			t.Errorf("source %q produced a different expression than %q", src, sources[0])
		}
	}
}

func TestIfElseBlock(t *testing.T) {
	source := "if a\n  b run\nelse\n  c run\n"
	sc := mustCompile(t, source)

	ifInst := sc.Script["1"]
	if ifInst == nil || ifInst.Method != "if" {
		t.Fatalf("expected an if instruction at line 1, got %v", ifInst)
	}
	if ifInst.Enter != "2" {
		t.Errorf("if.enter = %q, want 2", ifInst.Enter)
	}
	if ifInst.Exit != "3" {
		t.Errorf("if.exit = %q, want 3", ifInst.Exit)
	}

	run1 := sc.Script["2"]
	if run1 == nil || run1.Method != "run" || run1.Container != "b" {
		t.Fatalf("expected a run instruction at line 2 containered by 'b', got %v", run1)
	}

	elseInst := sc.Script["3"]
	if elseInst == nil || elseInst.Method != "else" {
		t.Fatalf("expected an else instruction at line 3, got %v", elseInst)
	}
	if elseInst.Enter != "4" {
		t.Errorf("else.enter = %q, want 4", elseInst.Enter)
	}

	run2 := sc.Script["4"]
	if run2 == nil || run2.Method != "run" || run2.Container != "c" {
		t.Fatalf("expected a run instruction at line 4 containered by 'c', got %v", run2)
	}

	if sc.Entrypoint == nil || *sc.Entrypoint != "1" {
		t.Errorf("entrypoint = %v, want \"1\"", sc.Entrypoint)
	}
}

func TestInvalidIdentifierDash(t *testing.T) {
	root, err := parser.Parse("a-b = 1\n")
	if err != nil {
		t.Fatalf("Parse should succeed, transform should reject: %v", err)
	}
	err = transform.Run(root)
	if err == nil {
		t.Fatal("expected a transform error for a dashed identifier")
	}
}

func TestElseifChainExitPointers(t *testing.T) {
	source := "if a\n  b = 1\nelseif c\n  b = 2\nelse\n  b = 3\n"
	sc := mustCompile(t, source)

	ifInst := sc.Script["1"]
	if ifInst == nil || ifInst.Method != "if" || ifInst.Enter != "2" || ifInst.Exit != "3" {
		t.Fatalf("if = %+v, want enter=2 exit=3", ifInst)
	}
	elifInst := sc.Script["3"]
	if elifInst == nil || elifInst.Method != "elif" || elifInst.Enter != "4" || elifInst.Exit != "5" {
		t.Fatalf("elif = %+v, want enter=4 exit=5", elifInst)
	}
	elseInst := sc.Script["5"]
	if elseInst == nil || elseInst.Method != "else" || elseInst.Enter != "6" {
		t.Fatalf("else = %+v, want enter=6", elseInst)
	}
	if elseInst.Exit != "" {
		t.Errorf("else.exit = %q, want absent", elseInst.Exit)
	}
	for _, ln := range []string{"2", "4", "6"} {
		if inst := sc.Script[ln]; inst == nil || inst.Method != "set" {
			t.Errorf("expected a set instruction at %s, got %v", ln, inst)
		}
	}
}

func TestForeachBlock(t *testing.T) {
	sc := mustCompile(t, "foreach items as item\n  x = item\n")
	forInst := sc.Script["1"]
	if forInst == nil || forInst.Method != "for" {
		t.Fatalf("expected a for instruction at line 1, got %v", forInst)
	}
	if forInst.Enter != "2" {
		t.Errorf("for.enter = %q, want 2", forInst.Enter)
	}
	if len(forInst.Args) != 2 {
		t.Fatalf("expected [loop var, iterable], got %d args", len(forInst.Args))
	}
	if forInst.Args[0].JSON() != "item" {
		t.Errorf("args[0] = %v, want the bare loop variable name", forInst.Args[0].JSON())
	}
	iter, ok := forInst.Args[1].JSON().(map[string]any)
	if !ok || iter["$OBJECT"] != "path" {
		t.Errorf("args[1] = %v, want a path operand", forInst.Args[1].JSON())
	}
}

func TestWaitBlock(t *testing.T) {
	sc := mustCompile(t, "wait ready\n  x = 1\n")
	waitInst := sc.Script["1"]
	if waitInst == nil || waitInst.Method != "wait" || waitInst.Enter != "2" {
		t.Fatalf("wait = %+v, want enter=2", waitInst)
	}
	cond, ok := waitInst.Args[0].JSON().(map[string]any)
	if !ok || cond["$OBJECT"] != "path" {
		t.Errorf("args[0] = %v, want a path operand", waitInst.Args[0].JSON())
	}
}

func TestNextInstruction(t *testing.T) {
	sc := mustCompile(t, "next `other.story`\n")
	inst := sc.Script["1"]
	if inst == nil || inst.Method != "next" {
		t.Fatalf("expected a next instruction, got %v", inst)
	}
	f, ok := inst.Args[0].JSON().(map[string]any)
	if !ok || f["$OBJECT"] != "file" || f["string"] != "other.story" {
		t.Errorf("args[0] = %v, want file(other.story)", inst.Args[0].JSON())
	}
}

func TestEnterTargetsExist(t *testing.T) {
	source := "foreach items as item\n  if item\n    x = 1\n  else\n    x = 2\n"
	sc := mustCompile(t, source)
	for ln, inst := range sc.Script {
		if inst.Ln != ln {
			t.Errorf("instruction keyed %s carries ln %s", ln, inst.Ln)
		}
		if inst.Enter != "" && sc.Script[inst.Enter] == nil {
			t.Errorf("instruction %s enters missing line %s", ln, inst.Enter)
		}
		if inst.Exit != "" && sc.Script[inst.Exit] == nil {
			t.Errorf("instruction %s exits to missing line %s", ln, inst.Exit)
		}
	}
	if len(sc.Script) != 5 {
		t.Errorf("expected 5 instructions, got %d: %v", len(sc.Script), sc.Script)
	}
}

func TestAssignmentFromCommandSetsOutput(t *testing.T) {
	sc := mustCompile(t, "x = alpine echo message:\"hi\"\n")
	inst := sc.Script["1"]
	if inst == nil || inst.Method != "run" {
		t.Fatalf("expected a run instruction, got %v", inst)
	}
	if inst.Container != "alpine" {
		t.Errorf("container = %q, want alpine", inst.Container)
	}
	out, ok := inst.Output.JSON().(map[string]any)
	if !ok || out["$OBJECT"] != "path" {
		t.Errorf("output = %v, want the assigned path", inst.Output)
	}
}
