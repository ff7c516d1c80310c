package yamlprops

import (
	"github.com/reoring/yamlprops/i18n"
	eng "github.com/reoring/yamlprops/internal/engine"
)

// Collector consumes resolver events and materializes a Document.
type Collector interface {
	eng.Sink
	Materialize() (*Document, error)
}

var (
	_ Collector = (*OpenCollector)(nil)
	_ Collector = (*SchemaCollector)(nil)
)

// store holds the state shared by both collectors.
type store struct {
	doc    *Document
	sealed bool
}

func (s *store) single(key, value string) error {
	if s.sealed {
		return internalIssue(key, "collector already materialized")
	}
	if s.doc.Has(key) {
		return collectorIssue(CodeDuplicateKey, key, "property already set")
	}
	s.doc.put(key, Single(value))
	return nil
}

func (s *store) list(key, value string, isNewList bool) error {
	if s.sealed {
		return internalIssue(key, "collector already materialized")
	}
	if isNewList {
		if s.doc.Has(key) {
			return collectorIssue(CodeDuplicateKey, key, "list already started")
		}
		s.doc.put(key, Multiple{newValues(value)})
		return nil
	}
	v, ok := s.doc.props[key]
	if !ok {
		return internalIssue(key, "list continuation without a list start")
	}
	m, ok := v.(Multiple)
	if !ok {
		return collectorIssue(CodeInvalidType, key, "list value for a single property")
	}
	m.add(value)
	return nil
}

// OpenCollector accepts any key.
type OpenCollector struct{ store }

// NewOpenCollector returns a collector without a schema.
func NewOpenCollector() *OpenCollector {
	return &OpenCollector{store{doc: newDocument(nil)}}
}

// CollectSingleValue records key: value.
func (c *OpenCollector) CollectSingleValue(key, value string) error {
	return c.single(key, value)
}

// CollectListValue starts or extends the list of key.
func (c *OpenCollector) CollectListValue(key, value string, isNewList bool) error {
	return c.list(key, value, isNewList)
}

// Materialize returns the collected document as is.
func (c *OpenCollector) Materialize() (*Document, error) {
	c.sealed = true
	return c.doc, nil
}

// SchemaCollector only keeps declared keys and validates them against the
// schema. Undeclared keys go to the schema's UnknownFunc.
type SchemaCollector struct {
	store
	schema *Schema
}

// NewSchemaCollector returns a collector validating against s.
func NewSchemaCollector(s *Schema) *SchemaCollector {
	return &SchemaCollector{store: store{doc: newDocument(s)}, schema: s}
}

// CollectSingleValue records key: value when key is a declared single.
func (c *SchemaCollector) CollectSingleValue(key, value string) error {
	id, ok := c.schema.Lookup(key)
	if !ok {
		c.schema.unknown(key, value)
		return nil
	}
	if id.Cardinality != CardinalitySingle {
		return collectorIssue(CodeInvalidType, key, "expected a list")
	}
	return c.single(key, value)
}

// CollectListValue starts or extends the list of a declared list key.
func (c *SchemaCollector) CollectListValue(key, value string, isNewList bool) error {
	id, ok := c.schema.Lookup(key)
	if !ok {
		c.schema.unknown(key, value)
		return nil
	}
	if id.Cardinality != CardinalityMultiple {
		return collectorIssue(CodeInvalidType, key, "expected a single value")
	}
	return c.list(key, value, isNewList)
}

// Materialize fails with CodeRequired for the first mandatory identifier,
// in declaration order, that received no value.
func (c *SchemaCollector) Materialize() (*Document, error) {
	for _, id := range c.schema.ids {
		if id.Presence == Mandatory && !c.doc.Has(id.Key) {
			return nil, collectorIssue(CodeRequired, id.Key, "mandatory "+id.Cardinality.String()+" property")
		}
	}
	c.sealed = true
	return c.doc, nil
}

func collectorIssue(code, key, hint string) Issues {
	return Issues{{
		Code:    code,
		Phase:   PhaseCollector,
		Path:    key,
		Message: i18n.T(code, map[string]string{"key": key}),
		Hint:    hint,
	}}
}

func internalIssue(key, hint string) Issues { return collectorIssue(CodeInternal, key, hint) }
