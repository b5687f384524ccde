package model

import "testing"

func TestSourceLocation_Identity(t *testing.T) {
	addrA := uint64(0x2000)
	addrB := uint64(0x2010)

	first := TracerData{Path: Path("bar.rs"), Line: 42, Address: &addrA, Type: LineType{Kind: LineStatement}}
	second := TracerData{Path: Path("bar.rs"), Line: 42, Address: &addrB, Type: LineType{Kind: LineUnknown}}

	if first.Location() != second.Location() {
		t.Fatalf("expected identical locations for same (path, line)")
	}

	result := map[SourceLocation]TracerData{}
	result[first.Location()] = first
	result[second.Location()] = second

	if len(result) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result))
	}
}

func TestSourceLocation_DistinctLines(t *testing.T) {
	a := SourceLocation{Path: Path("foo.rs"), Line: 10}
	b := SourceLocation{Path: Path("foo.rs"), Line: 11}
	c := SourceLocation{Path: Path("bar.rs"), Line: 10}

	if a == b || a == c {
		t.Fatalf("expected distinct locations to differ")
	}
}

func TestSortTracerData(t *testing.T) {
	data := []TracerData{
		{Path: Path("b.rs"), Line: 1},
		{Path: Path("a.rs"), Line: 9},
		{Path: Path("a.rs"), Line: 2},
	}

	SortTracerData(data)

	want := []SourceLocation{
		{Path: Path("a.rs"), Line: 2},
		{Path: Path("a.rs"), Line: 9},
		{Path: Path("b.rs"), Line: 1},
	}

	for i, td := range data {
		if td.Location() != want[i] {
			t.Fatalf("unexpected order at %d: got %v, want %v", i, td.Location(), want[i])
		}
	}
}
