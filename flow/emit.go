package flow

// emitBlock writes one control block: optional "label: " prefix, the
// header, then the body between " { " and " }". Braces are never omitted,
// even for empty bodies.
func emitBlock(w *Writer, label string, h Header, body []Code) error {
	if label != "" {
		w.WriteString(label)
		w.WriteString(": ")
	}
	if err := h.Emit(w); err != nil {
		return err
	}
	w.WriteString(" { ")
	if err := emitBody(w, body); err != nil {
		return err
	}
	w.WriteString(" }")
	return w.Err()
}

// emitBody writes body statements back to back. Statements carry their own
// terminators; the stream is meant for a downstream formatter, not for
// human eyes.
func emitBody(w *Writer, body []Code) error {
	for _, stmt := range body {
		if stmt == nil {
			continue
		}
		if err := stmt.Emit(w); err != nil {
			return err
		}
	}
	return w.Err()
}

// emitMembers writes tree members in order with a single space between
// consecutive members. Nil members are skipped without a placeholder.
func emitMembers(w *Writer, members []Code) error {
	wrote := false
	for _, m := range members {
		if m == nil {
			continue
		}
		if wrote {
			w.WriteString(" ")
		}
		if err := m.Emit(w); err != nil {
			return err
		}
		wrote = true
	}
	return w.Err()
}
