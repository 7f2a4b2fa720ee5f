package flow

import (
	"fmt"
	"strings"
)

// Sink is the append-only destination emitted source is written to.
// *strings.Builder, *bytes.Buffer and *bufio.Writer all satisfy it.
//
// The emitter never reads a sink back. When emission fails midway the sink
// may already hold a partial prefix; callers must discard it.
type Sink interface {
	WriteString(s string) (int, error)
}

// Code is any fragment of source the emitter can write: every control-flow
// node in this package implements it, and so do the opaque expression and
// statement layers of the surrounding toolchain. Nesting falls out of the
// contract, since an IfTree is a valid body statement of a ForLoop.
//
// Emit must be a pure function of the receiver: same value, same bytes.
type Code interface {
	Emit(w *Writer) error
}

// Writer wraps a Sink with sticky-error semantics so emit paths can chain
// writes without checking after every call.
type Writer struct {
	sink Sink
	err  error
}

// NewWriter returns a Writer appending to s.
func NewWriter(s Sink) *Writer {
	return &Writer{sink: s}
}

// WriteString appends s to the sink. After the first sink failure all
// subsequent writes are dropped.
func (w *Writer) WriteString(s string) {
	if w.err != nil || s == "" {
		return
	}
	_, w.err = w.sink.WriteString(s)
}

// Err returns the first sink error, if any.
func (w *Writer) Err() error {
	return w.err
}

// Render emits c and returns the accumulated source text.
func Render(c Code) (string, error) {
	var b strings.Builder
	if err := RenderTo(&b, c); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderTo emits c into s. On error the sink may hold a partial prefix.
func RenderTo(s Sink, c Code) error {
	if c == nil {
		return fmt.Errorf("flow: nil code")
	}
	w := NewWriter(s)
	if err := c.Emit(w); err != nil {
		return err
	}
	return w.Err()
}

type rawCode string

func (r rawCode) Emit(w *Writer) error {
	w.WriteString(string(r))
	return w.Err()
}

// Raw adapts literal source text into Code. The text is written verbatim;
// statements are expected to carry their own terminators.
func Raw(text string) Code {
	return rawCode(text)
}

// Rawf is Raw with fmt.Sprintf formatting.
func Rawf(format string, args ...any) Code {
	return rawCode(fmt.Sprintf(format, args...))
}
