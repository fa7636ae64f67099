package fieldtype

import "strings"

// dateNames are column names treated as date-like even without a "date"
// substring in them.
var dateNames = map[string]bool{
	"last_contact": true,
	"created_at":   true,
	"updated_at":   true,
	"due_date":     true,
}

// Infer derives the ColumnFormat for one column. opts is the registered
// option set for (table, column); when non-empty it wins over everything
// else, which is what lets an operator turn any column into a tag-style
// field just by registering options for it.
//
// Precedence, each rule short-circuiting:
//  1. registered option set -> option
//  2. date-like name -> date/timestamp ("_at" means the column carries
//     time-of-day; created_at/updated_at are read-only audit fields)
//  3. scalar name patterns: email, phone, amount/price -> currency,
//     description -> longtext
//  4. declared storage type
//  5. text
//
// A column with a missing name degrades to a plain text column instead of
// failing the whole batch.
func Infer(meta ColumnMeta, opts []Option) ColumnFormat {
	name := strings.ToLower(strings.TrimSpace(meta.ColumnName))
	if name == "" {
		return ColumnFormat{
			Key:      meta.ColumnName,
			DBColumn: meta.ColumnName,
			Config:   TextConfig(meta.ColumnName),
		}
	}

	cf := ColumnFormat{
		Key:      CamelKey(name),
		DBColumn: name,
		Config:   detect(name, meta, opts),
	}
	return cf
}

// InferAll formats a metadata batch, consulting lookup for each column's
// registered options. A nil lookup means no option sets are registered.
func InferAll(metas []ColumnMeta, lookup func(column string) []Option) []ColumnFormat {
	formats := make([]ColumnFormat, 0, len(metas))
	for _, m := range metas {
		var opts []Option
		if lookup != nil {
			opts = lookup(strings.ToLower(strings.TrimSpace(m.ColumnName)))
		}
		formats = append(formats, Infer(m, opts))
	}
	return formats
}

func detect(name string, meta ColumnMeta, opts []Option) Config {
	label := Label(name)

	if len(opts) > 0 {
		return OptionConfig(label, opts)
	}

	if strings.Contains(name, "date") || strings.HasSuffix(name, "_at") || dateNames[name] {
		readOnly := name == "created_at" || name == "updated_at"
		if strings.Contains(name, "_at") {
			return TimestampConfig(label, readOnly)
		}
		return DateConfig(label, readOnly)
	}

	switch {
	case strings.Contains(name, "email"):
		return EmailConfig(label)
	case strings.Contains(name, "phone"):
		return PhoneConfig(label)
	case strings.Contains(name, "amount"), strings.Contains(name, "price"):
		return CurrencyConfig(label)
	case strings.Contains(name, "description"):
		return LongTextConfig(label)
	}

	if c, ok := fromStorageType(meta, label); ok {
		return c
	}
	return TextConfig(label)
}

// fromStorageType maps the declared SQL type onto a field type when no name
// pattern matched.
func fromStorageType(meta ColumnMeta, label string) (Config, bool) {
	dt := strings.ToLower(meta.DataType)
	udt := strings.ToLower(meta.UDTName)

	switch {
	case strings.Contains(dt, "int"), strings.Contains(dt, "numeric"),
		strings.Contains(dt, "decimal"), strings.Contains(dt, "double"),
		strings.Contains(dt, "real"), strings.HasPrefix(udt, "int"),
		udt == "numeric", udt == "float4", udt == "float8":
		return NumberConfig(label), true
	case strings.Contains(dt, "timestamp"), strings.HasPrefix(udt, "timestamp"):
		return TimestampConfig(label, false), true
	case dt == "date", udt == "date":
		return DateConfig(label, false), true
	case strings.Contains(dt, "char"), dt == "text", udt == "text", udt == "varchar":
		// Sub-type hints in the udt name still pick a richer input widget.
		switch {
		case strings.Contains(udt, "email"):
			return EmailConfig(label), true
		case strings.Contains(udt, "phone"):
			return PhoneConfig(label), true
		case strings.Contains(udt, "url"):
			return URLConfig(label), true
		}
		return TextConfig(label), true
	}
	return Config{}, false
}
