package yamlprops

import (
	"github.com/go-kit/log"

	eng "github.com/reoring/yamlprops/internal/engine"
)

// Cardinality tells whether a property holds one value or a list.
type Cardinality int

const (
	CardinalitySingle   Cardinality = iota // key: value
	CardinalityMultiple                    // key: followed by "- value" lines
)

func (c Cardinality) String() string {
	switch c {
	case CardinalitySingle:
		return "single"
	case CardinalityMultiple:
		return "multiple"
	default:
		return "unknown"
	}
}

// Presence tells whether a declared property must appear in the input.
type Presence int

const (
	Optional Presence = iota
	Mandatory
)

func (p Presence) String() string {
	if p == Mandatory {
		return "mandatory"
	}
	return "optional"
}

// Identifier declares one property of a schema.
type Identifier struct {
	Key         string
	Cardinality Cardinality
	Presence    Presence
}

// ParseOpt bundles parsing options. Only the last ParseOpt passed to a parse
// function is used.
type ParseOpt struct {
	// Strict selects the strict grammar: dots must be quoted in values and
	// comment lines may only be indented with spaces.
	Strict bool
	// Logger receives debug events. Nil disables logging.
	Logger log.Logger
}

func (o ParseOpt) grammar() eng.Grammar {
	if o.Strict {
		return eng.StrictGrammar
	}
	return eng.DefaultGrammar
}

func (o ParseOpt) logger() log.Logger {
	if o.Logger == nil {
		return log.NewNopLogger()
	}
	return o.Logger
}

func lastOpt(opts []ParseOpt) ParseOpt {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}
