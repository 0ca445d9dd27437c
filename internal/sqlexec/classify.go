package sqlexec

import "strings"

// Kind is the category a statement falls into, decided by its leading keyword
type Kind int

const (
	// Mutation is anything that is neither a query nor an introspection.
	// It runs inside a transaction that is committed before returning.
	Mutation Kind = iota
	// Query is a statement starting with SELECT
	Query
	// Introspection is a statement starting with SHOW
	Introspection
)

func (k Kind) String() string {
	switch k {
	case Query:
		return "QUERY"
	case Introspection:
		return "INTROSPECTION"
	default:
		return "MUTATION"
	}
}

// Classify looks at the trimmed, lower-cased prefix of stmt.
// Leading comments are not skipped, so "/* x */ SELECT 1" is a Mutation.
func Classify(stmt string) Kind {
	s := strings.ToLower(strings.TrimSpace(stmt))
	switch {
	case strings.HasPrefix(s, "show"):
		return Introspection
	case strings.HasPrefix(s, "select"):
		return Query
	default:
		return Mutation
	}
}
