package discovery

import (
	"errors"
	"testing"
)

const sampleDocument = `{
	"discoveryVersion": "1.0.0",
	"archives": {
		"matrixops": {
			"functions": {
				"multiply": {
					"inputs": [
						{"name": "a", "type": "double", "size": [2, 2], "help": "Left operand."},
						{"name": "b", "type": "double", "size": [2, 2]}
					],
					"outputs": [
						{"name": "c", "type": "double", "size": [2, 2]}
					],
					"help": "Multiply two matrices.\n\nReturns the product."
				},
				"describe": {
					"inputs": [
						{"name": "subject", "type": "string", "size": [1, 1]},
						{"name": "varargin", "type": "cell", "size": [1, 1]}
					],
					"outputs": [
						{"name": "varargout", "type": "cell", "size": [1, 1]}
					]
				}
			},
			"typedefs": {
				"point": {
					"fields": [
						{"name": "x", "type": "double", "size": [1, 1]},
						{"name": "y", "type": "double", "size": [1, 1]}
					]
				},
				"pair": {
					"elements": [
						{"name": "first", "type": "int32", "size": [1, 1]},
						{"name": "second", "type": "int32", "size": [1, 1]}
					]
				}
			}
		},
		"stats": {
			"functions": {
				"mean": {
					"inputs": [{"name": "xs", "type": "double", "size": [1, 8]}],
					"outputs": [{"name": "m", "type": "double", "size": [1, 1]}]
				}
			}
		}
	}
}`

func TestDecodeSampleDocument(t *testing.T) {
	doc, err := Decode([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(doc.Archives) != 2 {
		t.Fatalf("got %d archives, want 2", len(doc.Archives))
	}

	matrixops := doc.Archives[0]
	if matrixops.Name != "matrixops" {
		t.Errorf("first archive = %q, want matrixops", matrixops.Name)
	}
	if len(matrixops.Functions) != 2 {
		t.Fatalf("got %d functions, want 2", len(matrixops.Functions))
	}

	multiply := matrixops.Functions[0]
	if multiply.Name != "multiply" {
		t.Errorf("first function = %q, want multiply", multiply.Name)
	}
	if len(multiply.Inputs) != 2 || len(multiply.Outputs) != 1 {
		t.Fatalf("multiply arity = %d in / %d out, want 2/1",
			len(multiply.Inputs), len(multiply.Outputs))
	}
	if got := multiply.Inputs[0]; got.Name != "a" || got.Type != TypeDouble {
		t.Errorf("multiply input 0 = %q/%v, want a/double", got.Name, got.Type)
	}
	if got := multiply.Inputs[0].Size; len(got) != 2 || got[0] != 2 || got[1] != 2 {
		t.Errorf("multiply input 0 size = %v, want [2 2]", got)
	}
	if multiply.Help == "" {
		t.Error("multiply help not decoded")
	}

	if len(matrixops.Typedefs) != 2 {
		t.Fatalf("got %d typedefs, want 2", len(matrixops.Typedefs))
	}
	point := matrixops.Typedefs[0]
	if point.Name != "point" || !point.Record() {
		t.Errorf("typedef 0 = %q record=%v, want point record", point.Name, point.Record())
	}
	pair := matrixops.Typedefs[1]
	if pair.Name != "pair" || pair.Record() {
		t.Errorf("typedef 1 = %q record=%v, want pair container", pair.Name, pair.Record())
	}
	if len(pair.Elements) != 2 {
		t.Errorf("pair has %d elements, want 2", len(pair.Elements))
	}

	if doc.Archives[1].Name != "stats" {
		t.Errorf("second archive = %q, want stats", doc.Archives[1].Name)
	}
}

func TestDecodePreservesOrder(t *testing.T) {
	// Keys are listed in an order a map-based decode would scramble.
	input := `{"archives": {
		"zebra": {"functions": {"zfn": {}, "afn": {}, "mfn": {}}},
		"alpha": {"functions": {}},
		"mid": {"functions": {}}
	}}`

	doc, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	wantArchives := []string{"zebra", "alpha", "mid"}
	for i, name := range wantArchives {
		if doc.Archives[i].Name != name {
			t.Errorf("archive %d = %q, want %q", i, doc.Archives[i].Name, name)
		}
	}

	wantFunctions := []string{"zfn", "afn", "mfn"}
	for i, name := range wantFunctions {
		if doc.Archives[0].Functions[i].Name != name {
			t.Errorf("function %d = %q, want %q",
				i, doc.Archives[0].Functions[i].Name, name)
		}
	}
}

func TestDecodeVariadicMarkers(t *testing.T) {
	doc, err := Decode([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	describe := doc.Archives[0].Functions[1]
	if describe.Inputs[0].Variadic {
		t.Error("non-trailing input flagged variadic")
	}
	if !describe.Inputs[1].Variadic {
		t.Error("trailing varargin not flagged variadic")
	}
	if !describe.Outputs[0].Variadic {
		t.Error("trailing varargout not flagged variadic")
	}
}

func TestDecodeVariadicNameOnlyCountsTrailing(t *testing.T) {
	input := `{"archives": {"a": {"functions": {"f": {
		"inputs": [
			{"name": "varargin", "type": "cell", "size": [1, 1]},
			{"name": "tail", "type": "double", "size": [1, 1]}
		]
	}}}}}`

	doc, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	inputs := doc.Archives[0].Functions[0].Inputs
	if inputs[0].Variadic {
		t.Error("non-trailing varargin flagged variadic")
	}
	if inputs[1].Variadic {
		t.Error("plain trailing input flagged variadic")
	}
}

func TestDecodeRejectsNonObject(t *testing.T) {
	for _, input := range []string{`[]`, `"archives"`, `42`, `null`, `true`} {
		if _, err := Decode([]byte(input)); !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("Decode(%s) error = %v, want ErrInvalidDocument", input, err)
		}
	}
}

func TestDecodeIgnoresUnknownKeys(t *testing.T) {
	input := `{
		"discoveryVersion": "1.0.0",
		"matlabRuntimeVersion": "9.12",
		"archives": {"a": {"extra": {"nested": [1, 2]}, "functions": {"f": {}}}}
	}`

	doc, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(doc.Archives) != 1 || len(doc.Archives[0].Functions) != 1 {
		t.Errorf("unexpected shape: %+v", doc)
	}
}

func TestDecodeEmptyArchives(t *testing.T) {
	doc, err := Decode([]byte(`{"archives": {}}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(doc.Archives) != 0 {
		t.Errorf("got %d archives, want 0", len(doc.Archives))
	}

	doc, err = Decode([]byte(`{}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(doc.Archives) != 0 {
		t.Errorf("got %d archives, want 0", len(doc.Archives))
	}
}

func TestLookupHelpers(t *testing.T) {
	doc, err := Decode([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if a, ok := doc.Archive("stats"); !ok || a.Name != "stats" {
		t.Errorf("Archive(stats) = %v, %v", a, ok)
	}
	if a, ok := doc.Archive("missing"); ok {
		t.Errorf("Archive(missing) = %v, want not found", a)
	}

	matrixops, ok := doc.Archive("matrixops")
	if !ok {
		t.Fatal("Archive(matrixops) not found")
	}
	if td, ok := matrixops.Typedef("pair"); !ok || td.Name != "pair" {
		t.Errorf("Typedef(pair) = %v, %v", td, ok)
	}
	if td, ok := matrixops.Typedef("missing"); ok {
		t.Errorf("Typedef(missing) = %v, want not found", td)
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		if got := ParseType(string(typ)); got != typ {
			t.Errorf("ParseType(%q) = %v, want %v", typ, got, typ)
		}
	}

	for _, s := range []string{"", "float64", "object", "Double", "CHAR"} {
		if got := ParseType(s); got != TypeUnknown {
			t.Errorf("ParseType(%q) = %v, want TypeUnknown", s, got)
		}
	}
}

func TestTypeString(t *testing.T) {
	if got := TypeDouble.String(); got != "double" {
		t.Errorf("TypeDouble.String() = %q", got)
	}
	if got := TypeUnknown.String(); got != "unknown" {
		t.Errorf("TypeUnknown.String() = %q", got)
	}
}

func TestTypeValues(t *testing.T) {
	values := TypeUnknown.Values()
	if len(values) != len(Types()) {
		t.Fatalf("got %d values, want %d", len(values), len(Types()))
	}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" {
			t.Error("Values() includes the unknown spelling")
		}
		if seen[v] {
			t.Errorf("duplicate value %q", v)
		}
		seen[v] = true
	}
}
