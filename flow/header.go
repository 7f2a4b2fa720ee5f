package flow

// Header is the rendered expression that opens a control construct: the
// keyword plus the parenthesised clause list of a loop, conditional or
// handler. Headers come from the named factories below; field validation
// is deferred to emission, so an ill-formed header is legal to hold and
// fails only when rendered.
type Header struct {
	keyword string
	slots   []Code
	sep     string
	hasSep  bool
	parens  bool
}

// Keyword returns the header's leading keyword.
func (h Header) Keyword() string {
	return h.keyword
}

// ForHeader builds the three-clause counted-loop header. Every clause is
// optional; absent clauses still produce their separators, so a fully
// empty header renders "for (;;)".
func ForHeader(init, cond, advance Code) Header {
	return Header{
		keyword: "for",
		slots:   []Code{init, cond, advance},
		sep:     ";",
		hasSep:  true,
		parens:  true,
	}
}

// ForInHeader builds an iterator-loop header, "for (v in obj)", or the
// asynchronous form "await for (v in obj)" when await is set.
func ForInHeader(v, obj Code, await bool) Header {
	kw := "for"
	if await {
		kw = "await for"
	}
	return Header{
		keyword: kw,
		slots:   []Code{v, obj},
		sep:     " in",
		hasSep:  true,
		parens:  true,
	}
}

// WhileHeader builds "while (cond)".
func WhileHeader(cond Code) Header {
	return Header{keyword: "while", slots: []Code{cond}, parens: true}
}

// IfHeader builds "if (guard)".
func IfHeader(guard Code) Header {
	return Header{keyword: "if", slots: []Code{guard}, parens: true}
}

// ElseHeader builds the always-well-formed else clause: "else" when guard
// is nil, "else if (guard)" otherwise.
func ElseHeader(guard Code) Header {
	if guard == nil {
		return Header{keyword: "else"}
	}
	return Header{keyword: "else if", slots: []Code{guard}, parens: true}
}

// CatchHeader builds "catch (exception)" or "catch (exception, stackTrace)".
func CatchHeader(exception, stackTrace string) Header {
	slots := []Code{Raw(exception)}
	if stackTrace != "" {
		slots = append(slots, Raw(stackTrace))
	}
	return Header{
		keyword: "catch",
		slots:   slots,
		sep:     ",",
		hasSep:  true,
		parens:  true,
	}
}

// OnHeader wraps a catch header with a type filter: "on Type catch (e)".
// The separator is present but empty; the space between the slots comes
// from the emitter's leading-space rule.
func OnHeader(typeFilter Code, catch Header) Header {
	return Header{
		keyword: "on",
		slots:   []Code{typeFilter, catch},
		hasSep:  true,
	}
}

// TryHeader builds the bare "try" marker.
func TryHeader() Header {
	return Header{keyword: "try"}
}

// FinallyHeader builds the bare "finally" marker.
func FinallyHeader() Header {
	return Header{keyword: "finally"}
}

// DoHeader builds the bare "do" marker that opens a post-condition loop.
func DoHeader() Header {
	return Header{keyword: "do"}
}

// Emit writes the header. With no slots only the keyword appears. With
// slots the keyword is followed by one space, the opening parenthesis when
// configured, the slots, and the closing parenthesis. Nil slots render
// nothing but still produce their trailing separators, which is what keeps
// "for (;;)" at exactly two separators; a non-nil slot after the first is
// preceded by one space. Multiple slots without a separator fail with
// MissingSeparatorError.
func (h Header) Emit(w *Writer) error {
	w.WriteString(h.keyword)
	if len(h.slots) == 0 {
		return w.Err()
	}
	w.WriteString(" ")
	if h.parens {
		w.WriteString("(")
	}
	if len(h.slots) == 1 {
		if s := h.slots[0]; s != nil {
			if err := s.Emit(w); err != nil {
				return err
			}
		}
	} else {
		if !h.hasSep {
			return &MissingSeparatorError{Keyword: h.keyword}
		}
		last := len(h.slots) - 1
		for i, s := range h.slots {
			if s != nil {
				if i > 0 {
					w.WriteString(" ")
				}
				if err := s.Emit(w); err != nil {
					return err
				}
			}
			if i < last {
				w.WriteString(h.sep)
			}
		}
	}
	if h.parens {
		w.WriteString(")")
	}
	return w.Err()
}
