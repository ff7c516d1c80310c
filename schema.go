package yamlprops

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/reoring/yamlprops/i18n"
	eng "github.com/reoring/yamlprops/internal/engine"
)

// UnknownFunc is called for every value whose key is not declared by the
// schema. List items are reported one by one.
type UnknownFunc func(key, rawValue string)

// Schema is a fixed set of identifiers used to validate a document.
type Schema struct {
	ids       []Identifier // declaration order
	index     map[string]int
	onUnknown UnknownFunc
}

// Identifiers returns the declared identifiers in declaration order.
func (s *Schema) Identifiers() []Identifier {
	out := make([]Identifier, len(s.ids))
	copy(out, s.ids)
	return out
}

// Lookup returns the identifier declared for key.
func (s *Schema) Lookup(key string) (Identifier, bool) {
	i, ok := s.index[key]
	if !ok {
		return Identifier{}, false
	}
	return s.ids[i], true
}

func (s *Schema) unknown(key, raw string) {
	if s.onUnknown != nil {
		s.onUnknown(key, raw)
	}
}

// SchemaOf builds a schema from a declarative list of identifiers.
func SchemaOf(ids ...Identifier) (*Schema, error) {
	b := NewSchema()
	for _, id := range ids {
		b.add(id)
	}
	return b.Build()
}

// MustSchemaOf is like SchemaOf but panics on error.
func MustSchemaOf(ids ...Identifier) *Schema {
	s, err := SchemaOf(ids...)
	if err != nil {
		panic(err)
	}
	return s
}

// SchemaBuilder accumulates identifiers in declaration order.
type SchemaBuilder struct {
	ids       []Identifier
	onUnknown UnknownFunc
}

// IdentifierStep refines the identifier declared last.
type IdentifierStep struct {
	b *SchemaBuilder
	i int
}

// NewSchema creates a schema builder. Identifiers are optional unless
// marked Required.
func NewSchema() *SchemaBuilder { return &SchemaBuilder{} }

func (b *SchemaBuilder) add(id Identifier) *IdentifierStep {
	b.ids = append(b.ids, id)
	return &IdentifierStep{b: b, i: len(b.ids) - 1}
}

// Single declares a scalar property.
func (b *SchemaBuilder) Single(key string) *IdentifierStep {
	return b.add(Identifier{Key: key, Cardinality: CardinalitySingle})
}

// List declares a list property.
func (b *SchemaBuilder) List(key string) *IdentifierStep {
	return b.add(Identifier{Key: key, Cardinality: CardinalityMultiple})
}

// Declare adds a fully specified identifier.
func (b *SchemaBuilder) Declare(id Identifier) *SchemaBuilder {
	b.add(id)
	return b
}

// OnUnknown sets the callback for undeclared keys.
func (b *SchemaBuilder) OnUnknown(fn UnknownFunc) *SchemaBuilder {
	b.onUnknown = fn
	return b
}

// Required marks the identifier as mandatory and returns the builder.
func (s *IdentifierStep) Required() *SchemaBuilder {
	s.b.ids[s.i].Presence = Mandatory
	return s.b
}

// Optional marks the identifier as optional (default) and returns the builder.
func (s *IdentifierStep) Optional() *SchemaBuilder {
	s.b.ids[s.i].Presence = Optional
	return s.b
}

func (s *IdentifierStep) Single(key string) *IdentifierStep       { return s.b.Single(key) }
func (s *IdentifierStep) List(key string) *IdentifierStep         { return s.b.List(key) }
func (s *IdentifierStep) OnUnknown(fn UnknownFunc) *SchemaBuilder { return s.b.OnUnknown(fn) }
func (s *IdentifierStep) Build() (*Schema, error)                 { return s.b.Build() }
func (s *IdentifierStep) MustBuild() *Schema                      { return s.b.MustBuild() }

// Build validates every key against the key grammar and rejects duplicate
// declarations.
func (b *SchemaBuilder) Build() (*Schema, error) {
	s := &Schema{
		ids:       make([]Identifier, len(b.ids)),
		index:     make(map[string]int, len(b.ids)),
		onUnknown: b.onUnknown,
	}
	copy(s.ids, b.ids)
	for i, id := range s.ids {
		if err := eng.ValidateKey(id.Key); err != nil {
			return nil, toIssues(err)
		}
		if id.Cardinality != CardinalitySingle && id.Cardinality != CardinalityMultiple {
			return nil, Issues{{Code: CodeInvalidType, Path: id.Key, Message: i18n.T(CodeInvalidType, map[string]string{"key": id.Key}), Hint: "unknown cardinality"}}
		}
		if _, dup := s.index[id.Key]; dup {
			return nil, Issues{{Code: CodeDuplicateKey, Path: id.Key, Message: i18n.T(CodeDuplicateKey, map[string]string{"key": id.Key}), Hint: "identifier declared twice"}}
		}
		s.index[id.Key] = i
	}
	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *SchemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// LogUnknown returns an UnknownFunc that logs undeclared keys as warnings.
func LogUnknown(logger log.Logger) UnknownFunc {
	return func(key, raw string) {
		level.Warn(logger).Log("msg", "unknown property", "key", key, "value", raw)
	}
}
