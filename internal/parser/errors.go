package parser

// parseError is the parser's internal stack-unwinding signal (spec.md §7):
// panicked from wherever a production fails to match, recovered by the
// innermost enclosing declaration() call (top-level or inside a block),
// which then synchronizes and resumes. It carries no payload — the diagnostic was already reported to
// the Reporter at the point of failure — and is never observed outside
// this package.
type parseError struct{}

func (parseError) Error() string { return "parse error" }
