package flow

// IfTree is an ordered if/else chain. The stored conditions keep their raw
// form; which of them render as "if" and which as "else"/"else if" is a
// pure function of position, decided at emission. That keeps the chain
// rewrite idempotent: there is no stored state to apply twice.
type IfTree struct {
	conds []*Condition
}

// Conditions returns the stored conditions in chain order.
func (t *IfTree) Conditions() []*Condition {
	return t.conds
}

// Emit renders the chain: the first condition in its raw if-form, every
// following condition through its else view, separated by single spaces.
// An empty tree emits nothing. A guard-less condition in the leading
// position fails the same way it would standalone.
func (t *IfTree) Emit(w *Writer) error {
	members := make([]Code, 0, len(t.conds))
	for i, c := range t.conds {
		if i == 0 {
			members = append(members, c)
			continue
		}
		members = append(members, c.Else())
	}
	return emitMembers(w, members)
}

// IfTreeBuilder assembles an IfTree. The convenience methods If, ElseIf
// and Else all just append a condition: position in the finished list, not
// the method used, decides how each member renders.
type IfTreeBuilder struct {
	conds []*Condition
}

// NewIfTree returns an empty builder.
func NewIfTree() *IfTreeBuilder {
	return &IfTreeBuilder{}
}

// Cond appends a condition configured by fn.
func (b *IfTreeBuilder) Cond(fn func(*ConditionBuilder)) *IfTreeBuilder {
	cb := NewCondition()
	fn(cb)
	c, _ := cb.Build()
	b.conds = append(b.conds, c)
	return b
}

// Add appends an already-built condition.
func (b *IfTreeBuilder) Add(c *Condition) *IfTreeBuilder {
	if c != nil {
		b.conds = append(b.conds, c)
	}
	return b
}

// If appends a guarded condition.
func (b *IfTreeBuilder) If(guard Code, stmts ...Code) *IfTreeBuilder {
	return b.Add(&Condition{Guard: guard, Body: stmts})
}

// ElseIf appends a guarded condition; identical to If apart from reading
// better at call sites.
func (b *IfTreeBuilder) ElseIf(guard Code, stmts ...Code) *IfTreeBuilder {
	return b.Add(&Condition{Guard: guard, Body: stmts})
}

// Else appends a guard-less condition. Legal anywhere in the list, though
// only non-leading positions can render it.
func (b *IfTreeBuilder) Else(stmts ...Code) *IfTreeBuilder {
	return b.Add(&Condition{Body: stmts})
}

// Build finalizes the chain. An empty chain is legal and renders nothing.
func (b *IfTreeBuilder) Build() (*IfTree, error) {
	return &IfTree{conds: append([]*Condition(nil), b.conds...)}, nil
}
