package yamlprops

import (
	"errors"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/reoring/yamlprops/i18n"
	eng "github.com/reoring/yamlprops/internal/engine"
)

// Parse reads every line of src and returns an open document accepting any
// key. Structural and duplicate-key problems are reported as Issues; errors
// of src are returned unchanged. The caller keeps ownership of the
// resources behind src.
func Parse(src LineSource, opts ...ParseOpt) (*Document, error) {
	return ParseInto(src, NewOpenCollector(), opts...)
}

// ParseWithSchema is like Parse but validates the document against s.
func ParseWithSchema(src LineSource, s *Schema, opts ...ParseOpt) (*Document, error) {
	if s == nil {
		return nil, internalIssue("", "nil schema")
	}
	return ParseInto(src, NewSchemaCollector(s), opts...)
}

// ParseInto drives src through the lexer and the resolver into c and
// materializes the result. The first problem aborts the parse.
func ParseInto(src LineSource, c Collector, opts ...ParseOpt) (*Document, error) {
	opt := lastOpt(opts)
	logger := opt.logger()

	var sink eng.Sink = c
	if opt.Logger != nil {
		sink = &loggingSink{next: c, logger: logger}
	}
	r := eng.NewResolver(sink, opt.grammar())

	n := 0
	for {
		ok, err := src.HasNext()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		raw, err := src.Next()
		if err != nil {
			return nil, err
		}
		n++
		if err := r.Feed(raw); err != nil {
			return nil, annotate(toIssues(err), n, raw)
		}
	}

	doc, err := c.Materialize()
	if err != nil {
		return nil, toIssues(err)
	}
	level.Debug(logger).Log("msg", "document parsed", "lines", n, "properties", doc.Len())
	return doc, nil
}

type loggingSink struct {
	next   eng.Sink
	logger log.Logger
}

func (s *loggingSink) CollectSingleValue(key, value string) error {
	level.Debug(s.logger).Log("msg", "collect", "key", key, "list", false)
	return s.next.CollectSingleValue(key, value)
}

func (s *loggingSink) CollectListValue(key, value string, isNewList bool) error {
	level.Debug(s.logger).Log("msg", "collect", "key", key, "list", true, "new", isNewList)
	return s.next.CollectListValue(key, value, isNewList)
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		var data map[string]string
		if ie.Path != "" {
			data = map[string]string{"key": ie.Path}
		}
		return AppendIssues(nil, Issue{
			Code:          ie.Code,
			Phase:         ie.Phase,
			Path:          ie.Path,
			Message:       i18n.T(ie.Code, data),
			Hint:          ie.Message,
			InputFragment: fragment(ie.Input),
		})
	}
	return AppendIssues(nil, Issue{Code: CodeInternal, Message: err.Error(), Cause: err})
}

// annotate attaches the line position to issues that lack it.
func annotate(iss Issues, line int, raw string) Issues {
	out := make(Issues, len(iss))
	for i, it := range iss {
		if it.Line == 0 {
			it.Line = line
		}
		if it.InputFragment == "" {
			it.InputFragment = fragment(raw)
		}
		out[i] = it
	}
	return out
}
