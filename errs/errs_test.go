package errs

import "testing"

func TestListFirstPicksLowestLine(t *testing.T) {
	var list List
	list.Add(SyntaxErr(ClassifierGeneric, 10, nil, "late"))
	list.Add(SyntaxErr(ClassifierGeneric, 3, nil, "early"))
	list.Add(SyntaxErr(ClassifierGeneric, 7, nil, "mid"))

	first := list.First()
	if first == nil || first.Line != 3 {
		t.Fatalf("First() = %v, want line 3", first)
	}
}

func TestListFirstEmpty(t *testing.T) {
	var list List
	if list.First() != nil {
		t.Errorf("First() on empty list should be nil")
	}
	if list.HasErrors() {
		t.Errorf("HasErrors() on empty list should be false")
	}
}

func TestCompileErrorMessage(t *testing.T) {
	err := InternalErr(5, "mystery")
	if err.Kind != Internal {
		t.Errorf("InternalErr should have Kind=Internal")
	}
	if err.Error() == "" {
		t.Errorf("Error() should not be empty")
	}
}

func TestListCombined(t *testing.T) {
	var list List
	list.Add(SyntaxErr(ClassifierGeneric, 1, nil, "a"))
	list.Add(SyntaxErr(ClassifierGeneric, 2, nil, "b"))
	if list.Combined() == nil {
		t.Errorf("Combined() should not be nil when errors were added")
	}
}
