package postgres

import (
	"fmt"
	"strings"

	"inkwell/internal/domain/repositories"
)

// buildUpdateQuery assembles a partial UPDATE for a single row.
//
// The fieldset columns become SET assignments ($1..$n), updated_at is always
// refreshed, and the row is keyed by id and owner ($n+1, $n+2). The caller
// appends RETURNING as needed. Column names come from the service layer's
// allow-lists, never from user input.
func buildUpdateQuery(table string, fields *repositories.Fieldset) (string, []interface{}) {
	assignments := make([]string, 0, fields.Len()+1)
	for i, column := range fields.Columns() {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, i+1))
	}
	assignments = append(assignments, "updated_at = NOW()")

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d AND owner_id = $%d",
		table,
		strings.Join(assignments, ", "),
		fields.Len()+1,
		fields.Len()+2,
	)

	return query, fields.Values()
}
