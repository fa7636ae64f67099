package table

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tablecrm/internal/fieldtype"
)

// SortKey is one link of a tie-break chain.
type SortKey struct {
	Key  string `json:"key"`
	Desc bool   `json:"desc"`
}

var collator = collate.New(language.English, collate.Loose)

// Sort orders rows by the given tie-break chain: rows equal under the first
// key fall through to the next. Numeric and currency fields compare as
// numbers, date/timestamp fields as instants, everything else by collated
// string order. Nil values sort after non-nil under either direction and
// never panic the comparator. The sort is stable.
func Sort(rows []map[string]any, keys []SortKey, formats map[string]fieldtype.ColumnFormat) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := compareField(rows[i][k.Key], rows[j][k.Key], formats[k.Key].Config.Type)
			if c == 0 {
				continue
			}
			if k.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareField(a, b any, t fieldtype.Type) int {
	// Nils group at the end regardless of direction-agnostic ordering of
	// the rest, so a column with gaps still sorts deterministically.
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}

	switch {
	case t.IsNumeric():
		fa, okA := asFloat(a)
		fb, okB := asFloat(b)
		if okA && okB {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	case t.IsTemporal():
		ta, okA := asInstant(a)
		tb, okB := asInstant(b)
		if okA && okB {
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			}
			return 0
		}
	}
	return collator.CompareString(fmt.Sprint(a), fmt.Sprint(b))
}

// Cycle advances the quick-sort state for a clicked column header:
// unsorted -> ascending -> descending -> unsorted, discarding any other
// active keys. The multi-key panel composes chains explicitly instead.
func Cycle(current []SortKey, key string) []SortKey {
	if len(current) == 1 && current[0].Key == key {
		if current[0].Desc {
			return nil
		}
		return []SortKey{{Key: key, Desc: true}}
	}
	return []SortKey{{Key: key}}
}

// ParseSortParam parses a "key:asc,other:desc" query value into a chain.
// A bare key means ascending; unknown directions are treated as ascending.
func ParseSortParam(param string) []SortKey {
	var keys []SortKey
	for _, part := range strings.Split(param, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, dir, _ := strings.Cut(part, ":")
		keys = append(keys, SortKey{Key: key, Desc: strings.EqualFold(dir, "desc")})
	}
	return keys
}

func asFloat(v any) (float64, bool) {
	f, err := toFloat(v)
	return f, err == nil
}

func asInstant(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		parsed, err := parseInstant(x)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}
