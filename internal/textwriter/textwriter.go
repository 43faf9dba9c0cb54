// Package textwriter provides a line-oriented text buffer with an indent
// stack. Recursive callers emit nested document fragments relative to their
// own logic; the stack decides where the lines land in the final document, so
// no caller needs to know its absolute nesting depth.
package textwriter

import "strings"

const indentStep = 2

// Writer accumulates lines into an append-only buffer. It is not safe for
// concurrent use; create one per document.
type Writer struct {
	buf strings.Builder

	// indent is the offset implied by the leading space and list-marker
	// characters of the most recently written line. It feeds into Push only.
	indent int

	// stack holds indent offsets. The base entry is always present.
	stack []int
}

// New returns an empty Writer with the base indent entry on the stack.
func New() *Writer {
	return &Writer{stack: []int{0}}
}

// WriteLine writes text prefixed with the current stack offset and a trailing
// newline. The indentation implied by the leading whitespace and list-marker
// characters of text becomes the new current indent for subsequent Push
// calls.
func (w *Writer) WriteLine(text string) {
	w.indent = leadingOffset(text)

	top := w.stack[len(w.stack)-1]
	for i := 0; i < top; i++ {
		w.buf.WriteByte(' ')
	}
	w.buf.WriteString(text)
	w.buf.WriteByte('\n')
}

// Write appends text verbatim, with no indentation and no line terminator.
func (w *Writer) Write(text string) {
	w.buf.WriteString(text)
}

// Push records the current position plus extra as the new stack offset.
// Lines written afterwards nest under the line most recently written.
func (w *Writer) Push(extra int) {
	top := w.stack[len(w.stack)-1]
	w.stack = append(w.stack, top+w.indent+extra)
}

// Pop removes the top stack entry. Popping the base entry is a programming
// error and panics.
func (w *Writer) Pop() {
	if len(w.stack) == 1 {
		panic("textwriter: pop of base indent entry")
	}
	w.stack = w.stack[:len(w.stack)-1]
}

// Indent deepens the current indent by one step without writing anything.
// Used when a helper nests one notional level deeper before the next Push.
func (w *Writer) Indent() {
	w.indent += indentStep
}

// Unindent reverses Indent.
func (w *Writer) Unindent() {
	w.indent -= indentStep
}

// Depth reports the number of entries on the indent stack, including the
// base entry.
func (w *Writer) Depth() int {
	return len(w.stack)
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// String returns the full buffer.
func (w *Writer) String() string {
	return w.buf.String()
}

// leadingOffset counts the leading space and list-marker characters of a
// line, which is the column its content starts at relative to the line
// itself.
func leadingOffset(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '-') {
		i++
	}
	return i
}
