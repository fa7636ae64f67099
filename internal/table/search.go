package table

import (
	"fmt"
	"strings"
)

// Search filters rows by a case-insensitive substring match OR-ed across
// fields. An empty query returns the input unchanged, in order. Nil field
// values never match.
func Search(rows []map[string]any, query string, fields []string) []map[string]any {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		for _, f := range fields {
			v, ok := row[f]
			if !ok || v == nil {
				continue
			}
			if strings.Contains(strings.ToLower(fmt.Sprint(v)), q) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
