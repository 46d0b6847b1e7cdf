// Package querybuilder renders the small set of PostgreSQL statements the
// repositories issue, numbering placeholders as arguments are bound.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition is one boolean term of a WHERE clause.
type Condition interface {
	render(w *sqlWriter)
}

type sqlWriter struct {
	sb   strings.Builder
	args []any
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.sb.WriteByte('$')
	w.sb.WriteString(strconv.Itoa(len(w.args)))
}

func (w *sqlWriter) write(parts ...string) {
	for _, p := range parts {
		w.sb.WriteString(p)
	}
}

func (w *sqlWriter) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.write(" WHERE ")
	joinConditions(w, conditions, " AND ")
}

func joinConditions(w *sqlWriter, conditions []Condition, sep string) {
	for i, c := range conditions {
		if i > 0 {
			w.write(sep)
		}
		c.render(w)
	}
}

type comparison struct {
	column string
	op     string
	value  any
}

func (c comparison) render(w *sqlWriter) {
	w.write(c.column, " ", c.op, " ")
	w.bind(c.value)
}

// Eq matches column = value.
func Eq(column string, value any) Condition { return comparison{column: column, op: "=", value: value} }

// Gte matches column >= value.
func Gte(column string, value any) Condition {
	return comparison{column: column, op: ">=", value: value}
}

type membership struct {
	column string
	values []any
}

// In matches column against a list. An empty list matches nothing.
func In(column string, values []any) Condition { return membership{column: column, values: values} }

func (c membership) render(w *sqlWriter) {
	if len(c.values) == 0 {
		w.write("FALSE")
		return
	}
	w.write(c.column, " IN (")
	for i, v := range c.values {
		if i > 0 {
			w.write(", ")
		}
		w.bind(v)
	}
	w.write(")")
}

type group struct {
	sep   string
	terms []Condition
}

func (g group) render(w *sqlWriter) {
	w.write("(")
	joinConditions(w, g.terms, g.sep)
	w.write(")")
}

// Or wraps terms in parentheses joined by OR.
func Or(terms ...Condition) Condition { return group{sep: " OR ", terms: terms} }

// And wraps terms in parentheses joined by AND, for nesting under Or.
func And(terms ...Condition) Condition { return group{sep: " AND ", terms: terms} }

// SelectBuilder builds a single-table SELECT.
type SelectBuilder struct {
	columns    []string
	table      string
	conditions []Condition
	orderBy    []string
	limit      int
	offset     int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.conditions = append(b.conditions, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, terms...)
	return b
}

// Limit is ignored when n <= 0.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

// Offset is ignored when n <= 0.
func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.offset = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, fmt.Errorf("select: table is required")
	}
	cols := "*"
	if len(b.columns) > 0 {
		cols = strings.Join(b.columns, ", ")
	}

	var w sqlWriter
	w.write("SELECT ", cols, " FROM ", b.table)
	w.where(b.conditions)
	if len(b.orderBy) > 0 {
		w.write(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.write(" LIMIT ", strconv.Itoa(b.limit))
	}
	if b.offset > 0 {
		w.write(" OFFSET ", strconv.Itoa(b.offset))
	}
	return w.sb.String(), w.args, nil
}

type assignment struct {
	column string
	expr   string
	value  any
}

// UpdateBuilder builds an UPDATE that requires at least one condition.
type UpdateBuilder struct {
	table      string
	sets       []assignment
	conditions []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set binds value as a parameter.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr writes a raw SQL expression such as NOW().
func (b *UpdateBuilder) SetExpr(column, expr string) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.conditions = append(b.conditions, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case b.table == "":
		return "", nil, fmt.Errorf("update: table is required")
	case len(b.sets) == 0:
		return "", nil, fmt.Errorf("update %s: no columns set", b.table)
	case len(b.conditions) == 0:
		return "", nil, fmt.Errorf("update %s: refusing to update without conditions", b.table)
	}

	var w sqlWriter
	w.write("UPDATE ", b.table, " SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.write(", ")
		}
		w.write(s.column, " = ")
		if s.expr != "" {
			w.write(s.expr)
		} else {
			w.bind(s.value)
		}
	}
	w.where(b.conditions)
	return w.sb.String(), w.args, nil
}
