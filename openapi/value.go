package openapi

import (
	"fmt"
	"strconv"

	"github.com/calcserve/openapi-gen/discovery"
	"github.com/calcserve/openapi-gen/internal/textwriter"
)

// Placeholder used when a descriptor carries no help text.
const noHelpText = "No description available"

// writeWrappedValue emits the canonical wrapped-value schema for one
// descriptor: an object with type, size, and data properties. This one shape
// is the unit every function input, function output, and record field is
// built from. The caller positions the writer; lines are emitted at column
// zero relative to the current stack top.
//
// seen tracks typedef names on the current recursion path for cycle
// detection.
func (g *Generator) writeWrappedValue(w *textwriter.Writer, archive *discovery.Archive, v *discovery.Value, seen map[string]bool) error {
	help := v.Help
	if help == "" {
		help = noHelpText
	}

	w.WriteLine("type: object")
	w.WriteLine("title: " + quote(v.Name))
	w.WriteLine("description: " + quote(help))
	w.WriteLine("properties:")
	w.Push(2)

	// A variadic slot may hold any type per call, and an unrecognized tag has
	// no known spelling to pin, so the exact-tag enumeration is suppressed
	// for both.
	w.WriteLine("type:")
	w.Push(2)
	w.WriteLine("type: string")
	if !v.Variadic && v.Type != discovery.TypeUnknown {
		w.WriteLine("enum:")
		w.Push(2)
		w.WriteLine("- " + string(v.Type))
		w.Pop()
	}
	w.Pop()

	g.writeSizeSchema(w, v)

	w.WriteLine("data:")
	w.Push(2)
	err := g.writeDataSchema(w, archive, v, seen)
	w.Pop()

	w.Pop()
	return err
}

// writeSizeSchema emits the size property: the array dimension vector. A
// concrete constraint pins both the item count and the admissible dimension
// values; otherwise the vector is only required to be at least 2-D, which is
// the minimum rank of this wire format.
func (g *Generator) writeSizeSchema(w *textwriter.Writer, v *discovery.Value) {
	w.WriteLine("size:")
	w.Push(2)
	w.WriteLine("type: array")
	w.WriteLine("items:")
	w.Push(2)
	w.WriteLine("type: integer")
	if len(v.Size) > 0 {
		w.WriteLine("enum:")
		w.Push(2)
		for _, d := range uniqueInts(v.Size) {
			w.WriteLine("- " + strconv.Itoa(d))
		}
		w.Pop()
	}
	w.Pop()

	if len(v.Size) > 0 {
		n := strconv.Itoa(len(v.Size))
		w.WriteLine("minItems: " + n)
		w.WriteLine("maxItems: " + n)
		w.WriteLine("example:")
		w.Push(2)
		for _, d := range v.Size {
			w.WriteLine("- " + strconv.Itoa(d))
		}
		w.Pop()
	} else {
		w.WriteLine("minItems: 2")
		if v.Type == discovery.TypeChar || v.Type == discovery.TypeString {
			// Character data is conventionally 1-by-N.
			w.WriteLine("example:")
			w.Push(2)
			w.WriteLine("- 1")
			w.WriteLine("- 32")
			w.Pop()
		}
	}
	w.Pop()
}

// writeDataSchema emits the data property. Records and containers recurse
// through the typedef translators; everything else is an array of the
// scalar fragment, with its length pinned to the element product when the
// descriptor carries a concrete size.
func (g *Generator) writeDataSchema(w *textwriter.Writer, archive *discovery.Archive, v *discovery.Value, seen map[string]bool) error {
	switch {
	case v.Variadic:
		w.WriteLine("type: array")
		w.WriteLine("items: {}")

	case v.Type == discovery.TypeStruct && v.Typedef != "":
		td, ok := archive.Typedef(v.Typedef)
		if !ok {
			return fmt.Errorf("openapi: archive %q has no typedef %q", archive.Name, v.Typedef)
		}
		return g.writeRecord(w, archive, td, v.Size, seen)

	case v.Type == discovery.TypeCell && v.Typedef != "":
		td, ok := archive.Typedef(v.Typedef)
		if !ok {
			return fmt.Errorf("openapi: archive %q has no typedef %q", archive.Name, v.Typedef)
		}
		w.WriteLine("type: array")
		if err := g.writeContainer(w, archive, td, seen); err != nil {
			return err
		}
		// Heterogeneous containers already carry an exact arity bound.
		if len(td.Elements) == 1 {
			writeCountBounds(w, v.Size)
		}

	default:
		w.WriteLine("type: array")
		w.WriteLine("items:")
		w.Push(2)
		writeScalarFragment(w, v.Type)
		w.Pop()
		writeCountBounds(w, v.Size)
	}
	return nil
}

// writeCountBounds pins an array's item count to the element product of a
// concrete size constraint. No-op when the size is unconstrained.
func writeCountBounds(w *textwriter.Writer, size []int) {
	if len(size) == 0 {
		return
	}
	p := strconv.Itoa(product(size))
	w.WriteLine("minItems: " + p)
	w.WriteLine("maxItems: " + p)
}

func product(dims []int) int {
	p := 1
	for _, d := range dims {
		p *= d
	}
	return p
}

func uniqueInts(vals []int) []int {
	out := make([]int, 0, len(vals))
	seen := make(map[int]bool, len(vals))
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
