package queryHelper

import (
	"fmt"
	"strings"
)

// FieldDiff is an ordered list of (column, value) assignments for a
// partial UPDATE. Column names must be fixed literals; only values are
// bound as positional parameters.
type FieldDiff struct {
	columns []string
	values  []interface{}
}

func NewFieldDiff() *FieldDiff {
	return &FieldDiff{}
}

// Set appends an assignment. Call order determines parameter order.
func (d *FieldDiff) Set(column string, value interface{}) *FieldDiff {
	d.columns = append(d.columns, column)
	d.values = append(d.values, value)
	return d
}

// SetExpr appends a raw SQL expression assignment with no bound value,
// e.g. SetExpr("updated_at", "now()").
func (d *FieldDiff) SetExpr(column, expr string) *FieldDiff {
	d.columns = append(d.columns, column)
	d.values = append(d.values, rawExpr(expr))
	return d
}

func (d *FieldDiff) Empty() bool {
	return len(d.columns) == 0
}

func (d *FieldDiff) Len() int {
	return len(d.columns)
}

type rawExpr string

// BuildUpdate renders an UPDATE statement with sequentially numbered
// positional placeholders and a RETURNING clause:
//
//	UPDATE news SET title=$1, updated_at=now() WHERE id=$2 RETURNING id, title
//
// The returned values slice lines up with the placeholders, identifier
// value last.
func BuildUpdate(tableName string, diff *FieldDiff, identifier string, id interface{}, returning string) (string, []interface{}) {
	assignments := make([]string, 0, len(diff.columns))
	values := make([]interface{}, 0, len(diff.values)+1)

	index := 1
	for i, column := range diff.columns {
		if expr, ok := diff.values[i].(rawExpr); ok {
			assignments = append(assignments, fmt.Sprintf("%s=%s", column, string(expr)))
			continue
		}
		assignments = append(assignments, fmt.Sprintf("%s=$%d", column, index))
		values = append(values, diff.values[i])
		index++
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s=$%d RETURNING %s",
		tableName, strings.Join(assignments, ", "), identifier, index, returning)
	values = append(values, id)

	return query, values
}
