package repository

import (
	"fmt"
	"strings"
)

// predicates assembles a parameterized WHERE clause from an enumerated
// set of conjuncts. Argument values never enter the SQL text; each call
// appends values to the argument list and splices their 1-based
// placeholder indexes into the conjunct's format string.
type predicates struct {
	exprs []string
	args  []any
}

// and appends one conjunct. format receives one %d verb per value, in
// order, holding that value's placeholder index.
//
//	p.and("locid = $%d", locID)
//	p.and("(year > $%d OR (year = $%d AND month > $%d))", y, y, m)
func (p *predicates) and(format string, values ...any) {
	idx := make([]any, len(values))
	for i, v := range values {
		p.args = append(p.args, v)
		idx[i] = len(p.args)
	}
	p.exprs = append(p.exprs, fmt.Sprintf(format, idx...))
}

// bind registers a non-predicate argument (LIMIT, OFFSET) and returns
// its placeholder.
func (p *predicates) bind(v any) string {
	p.args = append(p.args, v)
	return fmt.Sprintf("$%d", len(p.args))
}

// where renders the assembled clause with a leading " WHERE ", or ""
// when no conjunct was added.
func (p *predicates) where() string {
	if len(p.exprs) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.exprs, " AND ")
}
