package flow

import "fmt"

// BuildError reports a structural validation failure at builder finalize.
// The value is never created; the caller must fix the construct.
type BuildError struct {
	Node  string // construct kind, e.g. "try tree"
	Field string // offending field, e.g. "handlers"
	Why   string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("flow: %s: %s %s", e.Node, e.Field, e.Why)
}

// InvalidConstructError reports a node that was legal to construct but is
// missing a part required to render it directly, such as a standalone
// Condition without a guard. It is raised at emission, not construction.
type InvalidConstructError struct {
	Construct string
	Field     string
}

func (e *InvalidConstructError) Error() string {
	return fmt.Sprintf("flow: %s has no %s and cannot be rendered directly", e.Construct, e.Field)
}

// MissingSeparatorError reports a multi-slot header emitted without a
// configured separator.
type MissingSeparatorError struct {
	Keyword string
}

func (e *MissingSeparatorError) Error() string {
	return fmt.Sprintf("flow: header %q has multiple slots but no separator", e.Keyword)
}
