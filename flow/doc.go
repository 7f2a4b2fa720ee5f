// Package flow assembles immutable Dart control-flow constructs and emits
// them as source text.
//
// # Purpose
//
//   - Model loops, conditionals and exception handling as plain, typed
//     values that a generation toolchain composes bottom-up.
//   - Emit any construct into an append-only Sink through a deterministic
//     traversal with exact, minimal spacing.
//   - Keep invalid states representable but lazily rejected: construction
//     never validates, rendering does.
//
// # Scope
//
// The package is not a parser and performs no semantic or type checking of
// the constructs it renders. Expression and statement content is opaque:
// anything implementing Code (most simply Raw) can fill a header slot or
// a body. Output is an unformatted token stream meant for a downstream
// formatter such as dart format.
//
// # Data model
//
// Header is the keyword-plus-clauses expression that opens a construct,
// produced by named factories (ForHeader, WhileHeader, OnHeader, ...).
// ForLoop, ForInLoop and WhileLoop pair a header with a body and an
// optional label. Condition and its derived ElseCondition form if/else
// members; IfTree and TryTree compose members into chains. Builders are
// the mutable counterparts; Build is the finalize step that runs
// structural validation and returns either the value or a BuildError.
//
// # Lifecycle and concurrency
//
// Builders are short-lived, single-goroutine state. Finished values are
// treated as deeply immutable: share them freely, render them repeatedly
// and concurrently. Emission has no side effect beyond appending to the
// caller's sink.
package flow
