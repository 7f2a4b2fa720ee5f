package flow

// ForLoop is the classic counted loop. All three clauses are optional;
// a loop with none renders "for (;;) { ... }".
type ForLoop struct {
	Label   string
	Init    Code
	Cond    Code
	Advance Code
	Body    []Code
}

func (l *ForLoop) Emit(w *Writer) error {
	return emitBlock(w, l.Label, ForHeader(l.Init, l.Cond, l.Advance), l.Body)
}

// ForInLoop iterates an object: "for (v in obj) { ... }". Await selects
// the asynchronous "await for" form. Both operands are required; builders
// reject their absence at Build and the emitter rejects it for
// literal-built values.
type ForInLoop struct {
	Label  string
	Var    Code
	Object Code
	Await  bool
	Body   []Code
}

func (l *ForInLoop) Emit(w *Writer) error {
	if l.Var == nil {
		return &InvalidConstructError{Construct: "for-in loop", Field: "loop variable"}
	}
	if l.Object == nil {
		return &InvalidConstructError{Construct: "for-in loop", Field: "iterated object"}
	}
	return emitBlock(w, l.Label, ForInHeader(l.Var, l.Object, l.Await), l.Body)
}

// WhileLoop is the conditional loop. The prefix form renders
// "while (cond) { ... }"; with PostCondition set it renders
// "do { ... } while (cond);" with the condition clause and its terminator
// appended once, after the body closes.
type WhileLoop struct {
	Label         string
	Cond          Code
	PostCondition bool
	Body          []Code
}

func (l *WhileLoop) Emit(w *Writer) error {
	if l.Cond == nil {
		return &InvalidConstructError{Construct: "while loop", Field: "condition"}
	}
	if !l.PostCondition {
		return emitBlock(w, l.Label, WhileHeader(l.Cond), l.Body)
	}
	if err := emitBlock(w, l.Label, DoHeader(), l.Body); err != nil {
		return err
	}
	w.WriteString(" ")
	if err := WhileHeader(l.Cond).Emit(w); err != nil {
		return err
	}
	w.WriteString(";")
	return w.Err()
}
