package fieldtype

// Type is the semantic category inferred for a column. It drives both the
// display rendering and the edit widget for every cell of that column.
type Type string

const (
	TypeText      Type = "text"
	TypeEmail     Type = "email"
	TypePhone     Type = "phone"
	TypeURL       Type = "url"
	TypeNumber    Type = "number"
	TypeCurrency  Type = "currency"
	TypeDate      Type = "date"
	TypeTimestamp Type = "timestamp"
	TypeLongText  Type = "longtext"
	TypeOption    Type = "option"
)

// Option is one entry of a column's option set.
type Option struct {
	ID    int64  `json:"id,omitempty"`
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// Config describes how a single column is typed, labelled and edited.
// Exactly one Type tag is set per column and only the attribute group
// matching that tag may be populated; use the constructors below so a
// date config never ends up carrying options.
type Config struct {
	Type         Type   `json:"type"`
	Label        string `json:"label"`
	Required     bool   `json:"required,omitempty"`
	ReadOnly     bool   `json:"readOnly,omitempty"`
	DefaultValue any    `json:"defaultValue,omitempty"`

	// Text variants
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Numeric variants
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Step *float64 `json:"step,omitempty"`

	// Date variants
	MinDate string `json:"minDate,omitempty"`
	MaxDate string `json:"maxDate,omitempty"`
	Format  string `json:"format,omitempty"`

	// Option variant
	Options  []Option `json:"options,omitempty"`
	Multiple bool     `json:"multiple,omitempty"`
}

// ColumnFormat binds a storage column to its inferred Config. Built fresh on
// every columns fetch and never persisted.
type ColumnFormat struct {
	Key      string `json:"key"`
	DBColumn string `json:"dbColumn"`
	Config   Config `json:"fieldConfig"`
}

// ColumnMeta is the raw column metadata row as returned by
// information_schema.columns.
type ColumnMeta struct {
	ColumnName string `json:"column_name"`
	DataType   string `json:"data_type"`
	UDTName    string `json:"udt_name"`
}

func TextConfig(label string) Config {
	return Config{Type: TypeText, Label: label}
}

func EmailConfig(label string) Config {
	return Config{Type: TypeEmail, Label: label}
}

func PhoneConfig(label string) Config {
	return Config{Type: TypePhone, Label: label}
}

func URLConfig(label string) Config {
	return Config{Type: TypeURL, Label: label}
}

func NumberConfig(label string) Config {
	return Config{Type: TypeNumber, Label: label}
}

// CurrencyConfig carries the fixed bounds every money column gets: cents
// precision and no negative display floor on input.
func CurrencyConfig(label string) Config {
	step := 0.01
	min := 0.0
	return Config{Type: TypeCurrency, Label: label, Step: &step, Min: &min}
}

func DateConfig(label string, readOnly bool) Config {
	return Config{Type: TypeDate, Label: label, ReadOnly: readOnly}
}

func TimestampConfig(label string, readOnly bool) Config {
	return Config{Type: TypeTimestamp, Label: label, ReadOnly: readOnly}
}

func LongTextConfig(label string) Config {
	return Config{Type: TypeLongText, Label: label}
}

func OptionConfig(label string, opts []Option) Config {
	return Config{Type: TypeOption, Label: label, Options: opts}
}

// IsNumeric reports whether values of this type compare as numbers.
func (t Type) IsNumeric() bool {
	return t == TypeNumber || t == TypeCurrency
}

// IsTemporal reports whether values of this type compare as instants.
func (t Type) IsTemporal() bool {
	return t == TypeDate || t == TypeTimestamp
}

// IsTextual reports whether the type is edited through a plain input.
func (t Type) IsTextual() bool {
	switch t {
	case TypeText, TypeEmail, TypePhone, TypeURL, TypeLongText:
		return true
	}
	return false
}
