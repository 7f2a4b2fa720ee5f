package flow

// Catch is one exception handler: "catch (e) { ... }", optionally with a
// stack-trace identifier ("catch (e, s)") and a type filter
// ("on FormatException catch (e)"). The exception identifier defaults to
// "e" when the clause is built through NewCatch.
type Catch struct {
	Type       Code   // optional type filter
	Exception  string // exception identifier
	StackTrace string // optional stack-trace identifier
	Body       []Code
}

func (c *Catch) header() (Header, error) {
	if c.Exception == "" {
		return Header{}, &InvalidConstructError{Construct: "catch clause", Field: "exception identifier"}
	}
	h := CatchHeader(c.Exception, c.StackTrace)
	if c.Type != nil {
		h = OnHeader(c.Type, h)
	}
	return h, nil
}

func (c *Catch) Emit(w *Writer) error {
	h, err := c.header()
	if err != nil {
		return err
	}
	return emitBlock(w, "", h, c.Body)
}

// tryAdapter renders the try or finally segment of a TryTree. It exists
// only inside the tree's traversal and is never handed to callers.
type tryAdapter struct {
	body  []Code
	final bool
}

func (a *tryAdapter) Emit(w *Writer) error {
	h := TryHeader()
	if a.final {
		h = FinallyHeader()
	}
	return emitBlock(w, "", h, a.body)
}

// TryTree is a complete try/catch construct: a try body, at least one
// handler, and an optional finally body. Values come from TryTreeBuilder;
// the non-empty handler invariant is enforced at Build and is therefore
// never representable in a finished tree.
type TryTree struct {
	body       []Code
	handlers   []*Catch
	finalBody  []Code
	hasFinally bool
}

// Handlers returns the catch clauses in traversal order.
func (t *TryTree) Handlers() []*Catch {
	return t.handlers
}

// HasFinally reports whether a finally body was supplied.
func (t *TryTree) HasFinally() bool {
	return t.hasFinally
}

// Emit writes the try segment, each handler in order, and the finally
// segment when present, separated by single spaces. An absent finally
// contributes nothing, not an empty segment.
func (t *TryTree) Emit(w *Writer) error {
	members := make([]Code, 0, len(t.handlers)+2)
	members = append(members, &tryAdapter{body: t.body})
	for _, h := range t.handlers {
		members = append(members, h)
	}
	if t.hasFinally {
		members = append(members, &tryAdapter{body: t.finalBody, final: true})
	}
	return emitMembers(w, members)
}

// CatchBuilder assembles a Catch. The exception identifier starts as "e";
// the zero builder is not ready for use, call NewCatch.
type CatchBuilder struct {
	clause Catch
}

// NewCatch returns a builder whose exception identifier is already "e".
func NewCatch() *CatchBuilder {
	return &CatchBuilder{clause: Catch{Exception: "e"}}
}

// On sets the type filter, producing the "on Type catch (...)" form.
func (b *CatchBuilder) On(typeFilter Code) *CatchBuilder {
	b.clause.Type = typeFilter
	return b
}

// Exception overrides the exception identifier.
func (b *CatchBuilder) Exception(id string) *CatchBuilder {
	b.clause.Exception = id
	return b
}

// StackTrace sets the stack-trace identifier, producing "catch (e, s)".
func (b *CatchBuilder) StackTrace(id string) *CatchBuilder {
	b.clause.StackTrace = id
	return b
}

// Body appends handler statements.
func (b *CatchBuilder) Body(stmts ...Code) *CatchBuilder {
	b.clause.Body = append(b.clause.Body, stmts...)
	return b
}

// Build finalizes the clause. Clearing the exception identifier is the
// only way to fail.
func (b *CatchBuilder) Build() (*Catch, error) {
	if b.clause.Exception == "" {
		return nil, &BuildError{Node: "catch clause", Field: "exception identifier", Why: "must not be empty"}
	}
	c := b.clause
	c.Body = append([]Code(nil), b.clause.Body...)
	return &c, nil
}

// TryTreeBuilder assembles a TryTree.
type TryTreeBuilder struct {
	body       []Code
	handlers   []*Catch
	finalBody  []Code
	hasFinally bool
	err        error
}

// NewTryTree returns an empty builder.
func NewTryTree() *TryTreeBuilder {
	return &TryTreeBuilder{}
}

// Body appends statements to the try body.
func (b *TryTreeBuilder) Body(stmts ...Code) *TryTreeBuilder {
	b.body = append(b.body, stmts...)
	return b
}

// Handler appends a catch clause configured by fn, which receives a fresh
// CatchBuilder with the "e" identifier preset.
func (b *TryTreeBuilder) Handler(fn func(*CatchBuilder)) *TryTreeBuilder {
	cb := NewCatch()
	fn(cb)
	clause, err := cb.Build()
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	b.handlers = append(b.handlers, clause)
	return b
}

// AddHandler appends an already-built catch clause.
func (b *TryTreeBuilder) AddHandler(c *Catch) *TryTreeBuilder {
	if c != nil {
		b.handlers = append(b.handlers, c)
	}
	return b
}

// Finally supplies the finally body. Calling it with no statements still
// marks the segment present.
func (b *TryTreeBuilder) Finally(stmts ...Code) *TryTreeBuilder {
	b.hasFinally = true
	b.finalBody = append(b.finalBody, stmts...)
	return b
}

// Build finalizes the tree. A tree without handlers fails: a finally-only
// try is intentionally unsupported by this type.
func (b *TryTreeBuilder) Build() (*TryTree, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.handlers) == 0 {
		return nil, &BuildError{Node: "try tree", Field: "handlers", Why: "must contain at least one catch clause"}
	}
	return &TryTree{
		body:       append([]Code(nil), b.body...),
		handlers:   append([]*Catch(nil), b.handlers...),
		finalBody:  append([]Code(nil), b.finalBody...),
		hasFinally: b.hasFinally,
	}, nil
}
