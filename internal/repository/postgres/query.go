package postgres

import (
	"fmt"
	"strings"
)

// The builders below run once at package initialisation against fixed column
// lists. Only column and table names are interpolated; values are always bound
// as $N parameters.

// insertQuery builds INSERT INTO table (cols) VALUES ($1..$n), optionally with RETURNING.
func insertQuery(table, returning string, columns ...string) string {
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders(1, len(columns)))
	if returning != "" {
		q += " RETURNING " + returning
	}
	return q
}

// updateQuery builds UPDATE table SET c1 = $1, ... WHERE key = $n+1.
func updateQuery(table, key string, columns ...string) string {
	sets := make([]string, len(columns))
	for i, c := range columns {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d", table, strings.Join(sets, ", "), key, len(columns)+1)
}

// deleteQuery builds DELETE FROM table WHERE w1 = $1 AND ...
func deleteQuery(table string, where ...string) string {
	return "DELETE FROM " + table + whereClause(where)
}

// countQuery builds SELECT COUNT(*) FROM table WHERE w1 = $1 AND ...
func countQuery(table string, where ...string) string {
	return "SELECT COUNT(*) FROM " + table + whereClause(where)
}

// selectQuery builds a windowed read ordered by id. The two trailing
// parameters after the filters are LIMIT and OFFSET.
func selectQuery(table string, columns []string, where ...string) string {
	n := len(where)
	return fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id ASC LIMIT $%d OFFSET $%d",
		strings.Join(columns, ", "), table, whereClause(where), n+1, n+2)
}

func whereClause(where []string) string {
	if len(where) == 0 {
		return ""
	}
	conds := make([]string, len(where))
	for i, w := range where {
		conds[i] = fmt.Sprintf("%s = $%d", w, i+1)
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func placeholders(from, n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ps, ", ")
}
