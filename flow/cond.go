package flow

// Condition is a single guarded block: "if (guard) { ... }". A condition
// used standalone must carry a guard; one that only ever renders through
// its else view need not. The guard requirement is checked at emission,
// not construction.
type Condition struct {
	Guard Code
	Body  []Code
}

func (c *Condition) Emit(w *Writer) error {
	if c.Guard == nil {
		return &InvalidConstructError{Construct: "condition", Field: "guard"}
	}
	return emitBlock(w, "", IfHeader(c.Guard), c.Body)
}

// Else derives the read-only else view of the condition: same guard and
// body, but the rendered header is always well-formed: "else" when the
// guard is absent, "else if (guard)" when present.
func (c *Condition) Else() *ElseCondition {
	return &ElseCondition{cond: c}
}

// ElseCondition is the derived else view of a Condition. Unlike the
// underlying condition it renders successfully regardless of guard
// presence.
type ElseCondition struct {
	cond *Condition
}

// Cond returns the underlying condition.
func (e *ElseCondition) Cond() *Condition {
	return e.cond
}

func (e *ElseCondition) Emit(w *Writer) error {
	return emitBlock(w, "", ElseHeader(e.cond.Guard), e.cond.Body)
}
