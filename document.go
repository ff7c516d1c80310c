package yamlprops

import "github.com/reoring/yamlprops/i18n"

// PropertyValue is the value of one key: Single or Multiple.
type PropertyValue interface {
	Cardinality() Cardinality
	isPropertyValue()
}

// Single is a scalar property value.
type Single string

// Multiple is a list property value.
type Multiple struct{ *Values }

func (Single) Cardinality() Cardinality   { return CardinalitySingle }
func (Multiple) Cardinality() Cardinality { return CardinalityMultiple }
func (Single) isPropertyValue()           {}
func (Multiple) isPropertyValue()         {}

// Document is the immutable result of a parse. It is safe for concurrent
// reads.
type Document struct {
	props  map[string]PropertyValue
	keys   []string // insertion order
	schema *Schema
}

func newDocument(schema *Schema) *Document {
	return &Document{props: map[string]PropertyValue{}, schema: schema}
}

func (d *Document) put(key string, v PropertyValue) {
	d.props[key] = v
	d.keys = append(d.keys, key)
}

// Len returns the number of properties.
func (d *Document) Len() int { return len(d.keys) }

// Keys returns the property keys in input order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Schema returns the schema the document was validated against, or nil for
// an open document.
func (d *Document) Schema() *Schema { return d.schema }

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.props[key]
	return ok
}

// Get returns the raw value of key.
func (d *Document) Get(key string) (PropertyValue, bool) {
	v, ok := d.props[key]
	return v, ok
}

// Cardinality returns the cardinality of key; ok is false when absent.
func (d *Document) Cardinality(key string) (c Cardinality, ok bool) {
	v, ok := d.props[key]
	if !ok {
		return 0, false
	}
	return v.Cardinality(), true
}

// LookupState is the outcome of Document.Lookup.
type LookupState int

const (
	Absent LookupState = iota
	Found
	WrongCardinality
)

// Result is the outcome of looking up a key with an expected cardinality.
type Result struct {
	State  LookupState
	Key    string
	Value  string  // set when a single value was found
	Values *Values // set when a list was found
}

// Lookup finds key and checks it has cardinality want. Every accessor of
// Document is a thin wrapper around it.
func (d *Document) Lookup(key string, want Cardinality) Result {
	v, ok := d.props[key]
	if !ok {
		return Result{State: Absent, Key: key}
	}
	if v.Cardinality() != want {
		return Result{State: WrongCardinality, Key: key}
	}
	switch pv := v.(type) {
	case Single:
		return Result{State: Found, Key: key, Value: string(pv)}
	case Multiple:
		return Result{State: Found, Key: key, Values: pv.Values}
	default:
		panic("yamlprops: unknown property value " + key)
	}
}

// Err converts an unsuccessful Result into Issues.
func (r Result) Err() error {
	switch r.State {
	case Found:
		return nil
	case WrongCardinality:
		return Issues{{Code: CodeInvalidType, Path: r.Key, Message: i18n.T(CodeInvalidType, map[string]string{"key": r.Key})}}
	default:
		return Issues{{Code: CodeRequired, Path: r.Key, Message: i18n.T(CodeRequired, map[string]string{"key": r.Key})}}
	}
}

// String returns the single value of key.
func (d *Document) String(key string) (string, bool) {
	r := d.Lookup(key, CardinalitySingle)
	return r.Value, r.State == Found
}

// Strings returns the list value of key.
func (d *Document) Strings(key string) (*Values, bool) {
	r := d.Lookup(key, CardinalityMultiple)
	return r.Values, r.State == Found
}

// StringOr returns the single value of key, or def when it is absent or a
// list.
func (d *Document) StringOr(key, def string) string {
	if r := d.Lookup(key, CardinalitySingle); r.State == Found {
		return r.Value
	}
	return def
}

// RequireString returns the single value of key or an Issues error.
func (d *Document) RequireString(key string) (string, error) {
	r := d.Lookup(key, CardinalitySingle)
	return r.Value, r.Err()
}

// StringsOr returns the list value of key as a slice, or def.
func (d *Document) StringsOr(key string, def []string) []string {
	if r := d.Lookup(key, CardinalityMultiple); r.State == Found {
		return r.Values.Slice()
	}
	return def
}

// RequireStrings returns the list value of key or an Issues error.
func (d *Document) RequireStrings(key string) (*Values, error) {
	r := d.Lookup(key, CardinalityMultiple)
	return r.Values, r.Err()
}
