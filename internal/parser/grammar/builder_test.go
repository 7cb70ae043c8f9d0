package grammar

import (
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if problems := Default().Validate(); len(problems) > 0 {
		t.Errorf("default grammar fails validation: %v", problems)
	}
}

func TestValidateFlagsUnknownIdentifier(t *testing.T) {
	b := New("block*")
	b.Rule("block", "line NEWLINE")
	b.Token("NEWLINE", "/\\n/")

	problems := b.Validate()
	if len(problems) != 1 {
		t.Fatalf("expected one problem for the unresolved 'line', got %v", problems)
	}
	if !strings.Contains(problems[0], "line") {
		t.Errorf("problem should name the unresolved identifier: %s", problems[0])
	}
}

func TestValidateSkipsQuotedLiterals(t *testing.T) {
	b := New("pair*")
	b.Rule("pair", `KEY "then" VALUE`)
	b.Token("KEY", "/[a-z]+/")
	b.Token("VALUE", "/[0-9]+/")

	if problems := b.Validate(); len(problems) > 0 {
		t.Errorf("literal \"then\" should not be treated as a reference: %v", problems)
	}
}

func TestStringRendersTablesInOrder(t *testing.T) {
	b := New("item*")
	b.Rule("item", "WORD")
	b.Token("WORD", "/[a-z]+/")
	b.Ignore("WS")
	b.Token("WS", "/[ ]+/")

	out := b.String()
	start := strings.Index(out, "start:")
	rule := strings.Index(out, "item:")
	tok := strings.Index(out, "WORD:")
	ignore := strings.Index(out, "%ignore WS")
	if !(start < rule && rule < tok && tok < ignore) {
		t.Errorf("sections out of order:\n%s", out)
	}
	if start != 0 {
		t.Errorf("grammar should begin with the start line:\n%s", out)
	}
}

func TestCollectionMacro(t *testing.T) {
	got := Collection("item")
	want := `"[" item ("," item)* "]"`
	if got != want {
		t.Errorf("Collection = %s, want %s", got, want)
	}
}
