package openapi

import (
	"github.com/calcserve/openapi-gen/discovery"
	"github.com/calcserve/openapi-gen/internal/textwriter"
)

// scalarFragment is the schema type/format pair a primitive tag maps to.
type scalarFragment struct {
	Type   string
	Format string
}

// mapScalar maps a primitive tag to its schema fragment. Total over the
// closed tag set; bare struct and cell yield marker types here because their
// real expansion happens through typedef translation, and anything unknown
// falls back to a generic object.
func mapScalar(t discovery.Type) scalarFragment {
	switch t {
	case discovery.TypeChar, discovery.TypeString:
		return scalarFragment{Type: "string"}
	case discovery.TypeDouble:
		return scalarFragment{Type: "number", Format: "double"}
	case discovery.TypeSingle:
		return scalarFragment{Type: "number", Format: "float"}
	case discovery.TypeLogical:
		return scalarFragment{Type: "boolean"}
	case discovery.TypeInt8, discovery.TypeUint8,
		discovery.TypeInt16, discovery.TypeUint16,
		discovery.TypeInt32, discovery.TypeUint32,
		discovery.TypeInt64, discovery.TypeUint64:
		return scalarFragment{Type: "integer", Format: string(t)}
	case discovery.TypeStruct:
		return scalarFragment{Type: "struct"}
	case discovery.TypeCell:
		return scalarFragment{Type: "cell"}
	default:
		return scalarFragment{Type: "object"}
	}
}

func writeScalarFragment(w *textwriter.Writer, t discovery.Type) {
	frag := mapScalar(t)
	w.WriteLine("type: " + frag.Type)
	if frag.Format != "" {
		w.WriteLine("format: " + frag.Format)
	}
}
