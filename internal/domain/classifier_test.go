package domain

import (
	"debug/dwarf"
	"testing"

	m "github.com/mouse-blink/covmap/internal/model"
)

// fakeDemangler maps linkage names to demangled forms and returns anything
// unknown unchanged.
type fakeDemangler struct {
	names map[string]string
}

func (f fakeDemangler) Demangle(linkage string) string {
	if name, ok := f.names[linkage]; ok {
		return name
	}

	return linkage
}

func subprogram(fields ...dwarf.Field) *dwarf.Entry {
	return &dwarf.Entry{Tag: dwarf.TagSubprogram, Field: fields}
}

func TestClassifier_Describe(t *testing.T) {
	c := NewClassifier(fakeDemangler{names: map[string]string{
		"t1": "mycrate::tests::it_works::h0000000000000000",
		"g1": "mycrate::__test::main::h0000000000000000",
		"s1": "mycrate::compute::h0000000000000000",
	}})

	cases := []struct {
		name string
		die  *dwarf.Entry
		want FuncDesc
	}{
		{
			name: "test function",
			die: subprogram(
				dwarf.Field{Attr: dwarf.AttrLowpc, Val: uint64(0x1000), Class: dwarf.ClassAddress},
				dwarf.Field{Attr: dwarf.AttrHighpc, Val: int64(0x40), Class: dwarf.ClassConstant},
				dwarf.Field{Attr: dwarf.AttrLinkageName, Val: "t1", Class: dwarf.ClassString},
			),
			want: FuncDesc{Low: 0x1000, High: 0x40, Kind: FunctionTest},
		},
		{
			name: "generated harness main",
			die: subprogram(
				dwarf.Field{Attr: dwarf.AttrLowpc, Val: uint64(0x2000), Class: dwarf.ClassAddress},
				dwarf.Field{Attr: dwarf.AttrLinkageName, Val: "g1", Class: dwarf.ClassString},
			),
			want: FuncDesc{Low: 0x2000, Kind: FunctionGenerated},
		},
		{
			name: "standard function",
			die: subprogram(
				dwarf.Field{Attr: dwarf.AttrLowpc, Val: uint64(0x3000), Class: dwarf.ClassAddress},
				dwarf.Field{Attr: dwarf.AttrHighpc, Val: int64(0x10), Class: dwarf.ClassConstant},
				dwarf.Field{Attr: dwarf.AttrLinkageName, Val: "s1", Class: dwarf.ClassString},
			),
			want: FuncDesc{Low: 0x3000, High: 0x10, Kind: FunctionStandard},
		},
		{
			name: "no linkage name stays standard",
			die: subprogram(
				dwarf.Field{Attr: dwarf.AttrLowpc, Val: uint64(0x4000), Class: dwarf.ClassAddress},
			),
			want: FuncDesc{Low: 0x4000, Kind: FunctionStandard},
		},
		{
			name: "high pc in address form defaults to zero",
			die: subprogram(
				dwarf.Field{Attr: dwarf.AttrLowpc, Val: uint64(0x5000), Class: dwarf.ClassAddress},
				dwarf.Field{Attr: dwarf.AttrHighpc, Val: uint64(0x5040), Class: dwarf.ClassAddress},
				dwarf.Field{Attr: dwarf.AttrLinkageName, Val: "s1", Class: dwarf.ClassString},
			),
			want: FuncDesc{Low: 0x5000, Kind: FunctionStandard},
		},
		{
			name: "low pc in constant form defaults to zero",
			die: subprogram(
				dwarf.Field{Attr: dwarf.AttrLowpc, Val: int64(0x6000), Class: dwarf.ClassConstant},
			),
			want: FuncDesc{Kind: FunctionStandard},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Describe(tc.die)
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestProjectEntryPoints(t *testing.T) {
	descs := []FuncDesc{
		{Low: 0x1000, High: 0x40, Kind: FunctionTest},
		{Low: 0x2000, High: 0x80, Kind: FunctionGenerated},
		{Low: 0x3000, High: 0x10, Kind: FunctionStandard},
	}

	points := projectEntryPoints(descs)
	if len(points) != 3 {
		t.Fatalf("expected 3 entry points, got %d", len(points))
	}

	want := []entryPoint{
		{addr: 0x1000, lineType: m.LineType{Kind: m.LineTestEntry, Offset: 0x40}},
		{addr: 0x2000, lineType: m.LineType{Kind: m.LineTestMain}},
		{addr: 0x3000, lineType: m.LineType{Kind: m.LineFunctionEntry, Offset: 0x10}},
	}

	for i, p := range points {
		if p != want[i] {
			t.Fatalf("entry point %d: got %+v, want %+v", i, p, want[i])
		}
	}
}

func TestLookupEntry(t *testing.T) {
	points := []entryPoint{
		{addr: 0x1000, lineType: m.LineType{Kind: m.LineTestEntry, Offset: 0x40}},
	}

	if got := lookupEntry(points, 0x1000); got.Kind != m.LineTestEntry {
		t.Fatalf("expected test entry at 0x1000, got %+v", got)
	}

	if got := lookupEntry(points, 0x1001); got.Kind != m.LineUnknown {
		t.Fatalf("expected unknown away from entry points, got %+v", got)
	}
}
