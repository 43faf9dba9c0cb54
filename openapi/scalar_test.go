package openapi

import (
	"testing"

	"github.com/calcserve/openapi-gen/discovery"
)

func TestMapScalar(t *testing.T) {
	tests := []struct {
		in         discovery.Type
		wantType   string
		wantFormat string
	}{
		{discovery.TypeChar, "string", ""},
		{discovery.TypeString, "string", ""},
		{discovery.TypeDouble, "number", "double"},
		{discovery.TypeSingle, "number", "float"},
		{discovery.TypeLogical, "boolean", ""},
		{discovery.TypeInt8, "integer", "int8"},
		{discovery.TypeUint8, "integer", "uint8"},
		{discovery.TypeInt16, "integer", "int16"},
		{discovery.TypeUint16, "integer", "uint16"},
		{discovery.TypeInt32, "integer", "int32"},
		{discovery.TypeUint32, "integer", "uint32"},
		{discovery.TypeInt64, "integer", "int64"},
		{discovery.TypeUint64, "integer", "uint64"},
		{discovery.TypeStruct, "struct", ""},
		{discovery.TypeCell, "cell", ""},
		{discovery.TypeUnknown, "object", ""},
		{discovery.Type("float64"), "object", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			got := mapScalar(tt.in)
			if got.Type != tt.wantType || got.Format != tt.wantFormat {
				t.Errorf("mapScalar(%v) = %+v, want type=%q format=%q",
					tt.in, got, tt.wantType, tt.wantFormat)
			}
		})
	}
}

// Every tag the parser can produce must map to some fragment; nothing may
// fall through with an empty type.
func TestMapScalarTotal(t *testing.T) {
	for _, typ := range discovery.Types() {
		if frag := mapScalar(typ); frag.Type == "" {
			t.Errorf("mapScalar(%v) has empty type", typ)
		}
	}
}
