package grammar

// Default assembles the grammar document describing the rules the
// hand-written parser in internal/parser implements. It exists so
// `cmd/storyscript grammar` has an authoritative document to print and
// so Validate can be exercised against a real, non-trivial table.
func Default() *Builder {
	b := New("block*")

	b.Rule("block", "line NEWLINE").
		Rule("line", "assignment | next_stmt | command | if_block | for_block | wait_block | mutation_line").
		Rule("assignment", "path \"=\" (expression | command)").
		Rule("next_stmt", "NEXT FILEPATH").
		Rule("command", "WORD arguments*").
		Rule("mutation_line", "expression mutation? (THEN mutation)*").
		Rule("mutation", "WORD arguments*").
		Rule("arguments", "(WORD \":\" expression) | expression").
		Rule("if_block", "IF path nested_block (ELSEIF path nested_block)* (ELSE nested_block)?").
		Rule("for_block", "FOREACH path AS WORD nested_block").
		Rule("wait_block", "WAIT path nested_block").
		Rule("nested_block", "INDENT block* DEDENT").
		Rule("path", "WORD (\".\" WORD | \"[\" STRING \"]\")*").
		Rule("expression", "ternary").
		Rule("ternary", "or_expr (IF or_expr (ELSE or_expr)?)?").
		Rule("or_expr", "and_expr (OR and_expr)*").
		Rule("and_expr", "not_expr (AND not_expr)*").
		Rule("not_expr", "NOT not_expr | comparison").
		Rule("comparison", "arith (COMPARE_OP arith)?").
		Rule("arith", "term ((\"+\" | \"-\") term)*").
		Rule("term", "unary ((\"*\" | \"/\" | \"%\") unary)*").
		Rule("unary", "\"-\" unary | primary").
		Rule("primary", "INT | STRING | FILEPATH | TRUE | FALSE | list | dict | path | \"(\" expression \")\"").
		Rule("list", "\"[\" (expression (\",\" expression)*)? \"]\"").
		Rule("dict", "\"{\" (STRING \":\" expression (\",\" STRING \":\" expression)*)? \"}\"")

	b.Token("WORD", `/[A-Za-z_][A-Za-z0-9_\-\/]*/`).
		Token("INT", `/[0-9]+/`).
		Token("STRING", `/"([^"\\]|\\.)*"/`).
		Token("FILEPATH", "/`[^`]*`/").
		Token("TRUE", `"true"`).
		Token("FALSE", `"false"`).
		Token("IF", `"if"`).
		Token("ELSE", `"else"`).
		Token("ELSEIF", `"elseif"`).
		Token("FOREACH", `"foreach"`).
		Token("AS", `"as"`).
		Token("WAIT", `"wait"`).
		Token("THEN", `"then"`).
		Token("NEXT", `"next"`).
		Token("AND", `"and"`).
		Token("OR", `"or"`).
		Token("NOT", `"not"`).
		Token("COMPARE_OP", `/==|!=|<=|>=|<|>/`).
		Token("NEWLINE", "/\\n/").
		Token("INDENT", "").
		Token("DEDENT", "").
		Token("WS", `/[ \t]+/`).
		Token("COMMENT", `/#[^\n]*/`)

	b.Ignore("WS")
	b.Ignore("COMMENT")
	return b
}
