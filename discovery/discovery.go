// Package discovery models the self-describing document a numerical-computing
// execution server publishes about its deployed archives: which functions
// each archive exposes, their call signatures, and the named record and
// container types those signatures refer to.
//
// The document is an immutable input. All collections preserve the insertion
// order of the JSON they were decoded from; order is positional calling
// convention, not presentation.
package discovery

// Document is the decoded discovery description: a sequence of archives in
// insertion order.
type Document struct {
	Archives []*Archive
}

// Archive looks up an archive by name.
func (d *Document) Archive(name string) (*Archive, bool) {
	for _, a := range d.Archives {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Archive is a deployable unit grouping named functions and named typedefs.
// Typedef references resolve only within their owning archive.
type Archive struct {
	Name      string
	Functions []*Function
	Typedefs  []*Typedef
}

// Typedef looks up a typedef by name within the archive.
func (a *Archive) Typedef(name string) (*Typedef, bool) {
	for _, t := range a.Typedefs {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Function is one callable with a single signature. The format does not
// model overloading.
type Function struct {
	Name    string
	Inputs  []*Value
	Outputs []*Value
	Help    string
}

// Value is one typed, possibly size-constrained parameter, record field, or
// container element.
type Value struct {
	Name string
	Type Type

	// Size holds the array dimension bounds, outermost first. Nil or empty
	// means unconstrained.
	Size []int

	// Typedef names the record or container type in the owning archive.
	// Meaningful only when Type is TypeStruct or TypeCell.
	Typedef string

	Help string

	// Variadic marks the reserved trailing varargin/varargout slot, which
	// accepts any number of further arguments of unconstrained type. Set at
	// decode time; downstream code never re-compares descriptor names.
	Variadic bool
}

// Typedef is a named record or container type. Exactly one of Fields and
// Elements is non-nil: Fields for a record, Elements for a container. A
// container with a single element is homogeneous; with more, each element is
// an independently typed positional alternative.
type Typedef struct {
	Name     string
	Fields   []*Value
	Elements []*Value
}

// Record reports whether the typedef is a record (struct-like) type.
func (t *Typedef) Record() bool {
	return t.Fields != nil
}
