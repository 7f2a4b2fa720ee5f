package flow

// Builders are the mutable, transient counterparts of the immutable nodes.
// They are local, single-goroutine state; Build copies what it must so the
// finished value is independent of later builder mutation, and calling
// Build twice yields two equally valid values.

// ForLoopBuilder assembles a ForLoop.
type ForLoopBuilder struct {
	loop ForLoop
}

// NewForLoop returns an empty builder; every clause is optional.
func NewForLoop() *ForLoopBuilder {
	return &ForLoopBuilder{}
}

// Label sets the loop label.
func (b *ForLoopBuilder) Label(name string) *ForLoopBuilder {
	b.loop.Label = name
	return b
}

// Init sets the initializer clause.
func (b *ForLoopBuilder) Init(c Code) *ForLoopBuilder {
	b.loop.Init = c
	return b
}

// Cond sets the condition clause.
func (b *ForLoopBuilder) Cond(c Code) *ForLoopBuilder {
	b.loop.Cond = c
	return b
}

// Advance sets the advancer clause.
func (b *ForLoopBuilder) Advance(c Code) *ForLoopBuilder {
	b.loop.Advance = c
	return b
}

// Body appends body statements.
func (b *ForLoopBuilder) Body(stmts ...Code) *ForLoopBuilder {
	b.loop.Body = append(b.loop.Body, stmts...)
	return b
}

// Build finalizes the loop. A counted loop has no required fields.
func (b *ForLoopBuilder) Build() (*ForLoop, error) {
	l := b.loop
	l.Body = append([]Code(nil), b.loop.Body...)
	return &l, nil
}

// ForInLoopBuilder assembles a ForInLoop.
type ForInLoopBuilder struct {
	loop ForInLoop
}

// NewForInLoop returns an empty builder. Var and Object are required at
// Build.
func NewForInLoop() *ForInLoopBuilder {
	return &ForInLoopBuilder{}
}

// Label sets the loop label.
func (b *ForInLoopBuilder) Label(name string) *ForInLoopBuilder {
	b.loop.Label = name
	return b
}

// Var sets the iterated-variable expression.
func (b *ForInLoopBuilder) Var(c Code) *ForInLoopBuilder {
	b.loop.Var = c
	return b
}

// Object sets the iterated-object expression.
func (b *ForInLoopBuilder) Object(c Code) *ForInLoopBuilder {
	b.loop.Object = c
	return b
}

// Await selects the asynchronous "await for" keyword form.
func (b *ForInLoopBuilder) Await(v bool) *ForInLoopBuilder {
	b.loop.Await = v
	return b
}

// Body appends body statements.
func (b *ForInLoopBuilder) Body(stmts ...Code) *ForInLoopBuilder {
	b.loop.Body = append(b.loop.Body, stmts...)
	return b
}

// Build finalizes the loop, requiring both operands.
func (b *ForInLoopBuilder) Build() (*ForInLoop, error) {
	if b.loop.Var == nil {
		return nil, &BuildError{Node: "for-in loop", Field: "loop variable", Why: "is required"}
	}
	if b.loop.Object == nil {
		return nil, &BuildError{Node: "for-in loop", Field: "iterated object", Why: "is required"}
	}
	l := b.loop
	l.Body = append([]Code(nil), b.loop.Body...)
	return &l, nil
}

// WhileLoopBuilder assembles a WhileLoop.
type WhileLoopBuilder struct {
	loop WhileLoop
}

// NewWhileLoop returns an empty builder. Cond is required at Build.
func NewWhileLoop() *WhileLoopBuilder {
	return &WhileLoopBuilder{}
}

// Label sets the loop label.
func (b *WhileLoopBuilder) Label(name string) *WhileLoopBuilder {
	b.loop.Label = name
	return b
}

// Cond sets the loop condition.
func (b *WhileLoopBuilder) Cond(c Code) *WhileLoopBuilder {
	b.loop.Cond = c
	return b
}

// PostCondition selects the "do { ... } while (cond);" form.
func (b *WhileLoopBuilder) PostCondition(v bool) *WhileLoopBuilder {
	b.loop.PostCondition = v
	return b
}

// Body appends body statements.
func (b *WhileLoopBuilder) Body(stmts ...Code) *WhileLoopBuilder {
	b.loop.Body = append(b.loop.Body, stmts...)
	return b
}

// Build finalizes the loop, requiring the condition.
func (b *WhileLoopBuilder) Build() (*WhileLoop, error) {
	if b.loop.Cond == nil {
		return nil, &BuildError{Node: "while loop", Field: "condition", Why: "is required"}
	}
	l := b.loop
	l.Body = append([]Code(nil), b.loop.Body...)
	return &l, nil
}

// ConditionBuilder assembles a Condition.
type ConditionBuilder struct {
	cond Condition
}

// NewCondition returns an empty builder.
func NewCondition() *ConditionBuilder {
	return &ConditionBuilder{}
}

// Guard sets the guard expression.
func (b *ConditionBuilder) Guard(c Code) *ConditionBuilder {
	b.cond.Guard = c
	return b
}

// Body appends body statements.
func (b *ConditionBuilder) Body(stmts ...Code) *ConditionBuilder {
	b.cond.Body = append(b.cond.Body, stmts...)
	return b
}

// Build finalizes the condition. A guard-less condition is legal to build;
// it only fails when rendered standalone rather than through its else
// view.
func (b *ConditionBuilder) Build() (*Condition, error) {
	c := b.cond
	c.Body = append([]Code(nil), b.cond.Body...)
	return &c, nil
}
