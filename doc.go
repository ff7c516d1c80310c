// Package yamlprops parses a constrained, block-style YAML subset into a flat
// document of dotted keys.
//
// Supported input:
//
//	# comment
//	app:
//	  name: demo
//	  port: 8080
//	  hosts:
//	    - alpha
//	    - "beta.example"
//
// yields app.name, app.port (single values) and app.hosts (a list). Values are
// always strings. Values containing '"', '#', ':' or '-' must be double
// quoted; inside quotes only \" is an escape. Anchors, tags, flow collections,
// block scalars and multi-document streams are not supported.
//
// Pipeline:
//
//   - LineSource: pulls raw lines from a string, a reader or a decoded byte
//     stream (see source/lines).
//   - Lexer: classifies each line (internal/engine).
//   - Resolver: tracks indentation, derives dotted keys and emits events.
//   - Collector: OpenCollector accepts any key; SchemaCollector validates
//     against a Schema of Identifiers.
//
// Typical usage:
//
//	doc, err := yamlprops.Parse(yamlprops.FromString(text))
//	port, err := doc.RequireString("app.port")
//
//	s := yamlprops.NewSchema().
//		Single("app.version").Required().
//		List("app.hosts").Optional().
//		OnUnknown(yamlprops.LogUnknown(logger)).
//		MustBuild()
//	doc, err = yamlprops.ParseWithSchema(yamlprops.FromBytes(f, enc, 0), s)
//
// Errors are reported as Issues; the first problem stops the parse. Errors
// from the underlying reader are returned unchanged.
package yamlprops
