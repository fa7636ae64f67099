package fieldtype

import (
	"strings"
	"unicode"
)

// acronyms are label words that stay fully capitalized.
var acronyms = map[string]string{
	"id":  "ID",
	"url": "URL",
	"ip":  "IP",
	"api": "API",
}

// CamelKey converts a snake_case column name to the camelCase key used for
// in-memory records and JSON payloads: "due_date" -> "dueDate". Only an
// underscore directly before a lowercase letter folds; an underscore before
// a digit, another underscore or the end of the name has no camelCase
// encoding and stays put, so "address_2" keeps its key "address_2".
func CamelKey(dbColumn string) string {
	s := strings.ToLower(dbColumn)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' && i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z' {
			i++
			b.WriteByte(s[i] - 'a' + 'A')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// ToDBColumn is the inverse of CamelKey: "dueDate" -> "due_date". It
// round-trips exactly for any column name of lowercase alphanumerics and
// underscores.
func ToDBColumn(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Label renders a column name as a Title Case display label, keeping known
// acronyms fully capitalized: "api_url" -> "API URL", "last_contact" ->
// "Last Contact".
func Label(dbColumn string) string {
	words := strings.Split(dbColumn, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		if up, ok := acronyms[strings.ToLower(w)]; ok {
			words[i] = up
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
