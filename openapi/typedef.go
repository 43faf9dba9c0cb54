package openapi

import (
	"fmt"
	"strconv"

	"github.com/calcserve/openapi-gen/discovery"
	"github.com/calcserve/openapi-gen/internal/textwriter"
)

// enter marks a typedef on the current recursion path, failing when the path
// already contains it. The returned func unwinds the mark.
func enter(td *discovery.Typedef, seen map[string]bool) (func(), error) {
	if seen[td.Name] {
		return nil, fmt.Errorf("%w: %s", ErrCyclicTypedef, td.Name)
	}
	seen[td.Name] = true
	return func() { delete(seen, td.Name) }, nil
}

// writeRecord expands a record typedef into an object schema whose
// properties are the record's fields. Every field is an array of the field's
// wrapped-value schema, because the wire representation stores scalar fields
// of struct arrays as per-field arrays. When the enclosing descriptor has a
// concrete size, each field array is pinned to the element product of that
// size.
func (g *Generator) writeRecord(w *textwriter.Writer, archive *discovery.Archive, td *discovery.Typedef, size []int, seen map[string]bool) error {
	if !td.Record() {
		return fmt.Errorf("openapi: typedef %q is not a record", td.Name)
	}
	leave, err := enter(td, seen)
	if err != nil {
		return err
	}
	defer leave()

	w.WriteLine("type: object")
	w.WriteLine("description: " + quote("Structure data with the fields of "+td.Name))
	w.WriteLine("properties:")

	// Field schemas sit one level below the properties key.
	w.Indent()
	w.Push(0)
	for _, field := range td.Fields {
		w.WriteLine(keyLine(field.Name))
		w.Push(2)
		w.WriteLine("type: array")
		w.WriteLine("items:")
		w.Push(2)
		if err := g.writeWrappedValue(w, archive, field, seen); err != nil {
			return err
		}
		w.Pop()
		writeCountBounds(w, size)
		w.Pop()
	}
	w.Pop()
	w.Unindent()

	return nil
}

// writeContainer expands a container typedef into the item schemas of a data
// array the caller has already opened. A single element descriptor means a
// homogeneous container and is emitted directly; multiple elements are each
// an independently typed positional alternative, encoded per the target
// version. Unnamed elements are numbered positionally from 1.
func (g *Generator) writeContainer(w *textwriter.Writer, archive *discovery.Archive, td *discovery.Typedef, seen map[string]bool) error {
	if td.Record() {
		return fmt.Errorf("openapi: typedef %q is not a container", td.Name)
	}
	if len(td.Elements) == 0 {
		return fmt.Errorf("openapi: container typedef %q has no elements", td.Name)
	}
	leave, err := enter(td, seen)
	if err != nil {
		return err
	}
	defer leave()

	if len(td.Elements) == 1 {
		w.WriteLine("items:")
		w.Push(2)
		err := g.writeWrappedValue(w, archive, positional(td.Elements[0], 0), seen)
		w.Pop()
		return err
	}

	switch g.cfg.SpecVersion {
	case V310:
		w.WriteLine("prefixItems:")
		w.Push(2)
		for i, elem := range td.Elements {
			if err := g.writeSequenceItem(w, archive, positional(elem, i), seen); err != nil {
				return err
			}
		}
		w.Pop()
		w.WriteLine("items: false")

	default:
		w.WriteLine("items:")
		w.Push(2)
		w.WriteLine(string(g.cfg.Alternatives) + ":")
		w.Push(2)
		for i, elem := range td.Elements {
			if err := g.writeSequenceItem(w, archive, positional(elem, i), seen); err != nil {
				return err
			}
		}
		w.Pop()
		w.Pop()
		w.WriteLine("maxItems: " + strconv.Itoa(len(td.Elements)))
	}

	return nil
}

// writeSequenceItem emits one multi-line sequence entry: a bare dash, with
// the entry's schema nested under it.
func (g *Generator) writeSequenceItem(w *textwriter.Writer, archive *discovery.Archive, v *discovery.Value, seen map[string]bool) error {
	w.WriteLine("-")
	w.Push(1)
	err := g.writeWrappedValue(w, archive, v, seen)
	w.Pop()
	return err
}

// positional substitutes a 1-based positional name for an unnamed element.
func positional(v *discovery.Value, index int) *discovery.Value {
	if v.Name != "" {
		return v
	}
	named := *v
	named.Name = strconv.Itoa(index + 1)
	return &named
}
