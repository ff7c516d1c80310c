package yamlprops_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/yamlprops"
)

func parse(t *testing.T, text string, opts ...yamlprops.ParseOpt) (*yamlprops.Document, error) {
	t.Helper()
	return yamlprops.Parse(yamlprops.FromString(text), opts...)
}

func firstIssue(t *testing.T, err error) yamlprops.Issue {
	t.Helper()
	iss, ok := yamlprops.AsIssues(err)
	require.True(t, ok, "expected Issues, got %v", err)
	require.NotEmpty(t, iss)
	return iss[0]
}

func TestParse_Nesting(t *testing.T) {
	doc, err := parse(t, "a:\n  b:\n    c: 1\nd: 2\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.b.c", "d"}, doc.Keys())
	assert.Equal(t, "1", doc.StringOr("a.b.c", ""))
	assert.Equal(t, "2", doc.StringOr("d", ""))
	assert.False(t, doc.Has("a"))
	assert.False(t, doc.Has("a.b"))
	assert.Nil(t, doc.Schema())
}

func TestParse_ListAggregation(t *testing.T) {
	doc, err := parse(t, "items:\n  - x\n  - y\n  - z\n")
	require.NoError(t, err)
	vals, err := doc.RequireStrings("items")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, vals.Slice())
	c, ok := doc.Cardinality("items")
	require.True(t, ok)
	assert.Equal(t, yamlprops.CardinalityMultiple, c)
}

func TestParse_Realistic(t *testing.T) {
	text := `# service settings
app:
  name: "demo: service"
  version: 1.4.2
  base-path: /api

  hosts:
    - alpha
    # comment between items
    - "beta-1"
  db:
    url: "postgres://db:5432/app"
    pool_size: 8
log.level: debug
`
	doc, err := parse(t, text)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.name", "app.version", "app.base-path", "app.hosts", "app.db.url", "app.db.pool_size", "log.level"}, doc.Keys())
	assert.Equal(t, "demo: service", doc.StringOr("app.name", ""))
	assert.Equal(t, "postgres://db:5432/app", doc.StringOr("app.db.url", ""))
	assert.Equal(t, []string{"alpha", "beta-1"}, doc.StringsOr("app.hosts", nil))
	assert.Equal(t, "debug", doc.StringOr("log.level", ""))
}

func TestParse_Duplicates(t *testing.T) {
	cases := map[string]string{
		"scalar twice":       "a: 1\na: 2",
		"list started twice": "a:\n  - x\nb: 1\na:\n  - y",
		"scalar then list":   "a: 1\na:\n  - y",
		"nested duplicate":   "a:\n  b: 1\na:\n  b: 2",
		"dotted vs nested":   "a.b: 1\na:\n  b: 2",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parse(t, text)
			it := firstIssue(t, err)
			assert.Equal(t, yamlprops.CodeDuplicateKey, it.Code)
			assert.Equal(t, yamlprops.PhaseCollector, it.Phase)
			assert.Greater(t, it.Line, 1)
		})
	}
}

func TestParse_StructuralErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
		code string
		line int
	}{
		{"orphan list item", "- x", yamlprops.CodeSequence, 1},
		{"list after value", "a: 1\n- x", yamlprops.CodeSequence, 2},
		{"first key indented", "\n  a: 1", yamlprops.CodeSequence, 2},
		{"tab indentation", "a:\n\tb: 1", yamlprops.CodeIndentation, 2},
		{"missing colon", "a: 1\nplain", yamlprops.CodeInvalidKey, 2},
		{"bad key", "a_: 1", yamlprops.CodeInvalidKey, 1},
		{"empty value", "a:\n  -   ", yamlprops.CodeInvalidValue, 2},
		{"unescaped quote", `a: "x"y"`, yamlprops.CodeInvalidValue, 1},
		{"missing end quote", `a: "xy`, yamlprops.CodeInvalidValue, 1},
		{"reserved char", "a: x#y", yamlprops.CodeInvalidValue, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := parse(t, tc.text)
			require.Nil(t, doc)
			it := firstIssue(t, err)
			assert.Equal(t, tc.code, it.Code)
			assert.Equal(t, tc.line, it.Line)
			assert.NotEmpty(t, it.Hint)
			assert.NotEmpty(t, it.Message)
			assert.NotEmpty(t, it.InputFragment)
			assert.True(t, yamlprops.HasCode(err, tc.code))
		})
	}
}

func TestParse_FirstKeyIndentHint(t *testing.T) {
	_, err := parse(t, "  a:\n    b: 1")
	it := firstIssue(t, err)
	assert.Equal(t, "first key should start at indentation 0", it.Hint)
	assert.Equal(t, yamlprops.PhaseResolver, it.Phase)
	assert.Contains(t, err.Error(), "on line 1")
}

func TestParse_StrictGrammar(t *testing.T) {
	text := "version: 1.2.3"
	_, err := parse(t, text)
	require.NoError(t, err)

	_, err = parse(t, text, yamlprops.ParseOpt{Strict: true})
	assert.True(t, yamlprops.HasCode(err, yamlprops.CodeInvalidValue))

	// last option wins
	_, err = parse(t, text, yamlprops.ParseOpt{Strict: true}, yamlprops.ParseOpt{})
	assert.NoError(t, err)

	_, err = parse(t, "a: 1\n\t# note", yamlprops.ParseOpt{Strict: true})
	assert.True(t, yamlprops.HasCode(err, yamlprops.CodeIndentation))
}

func TestParse_FragmentTruncated(t *testing.T) {
	_, err := parse(t, "k: "+strings.Repeat("#", 200))
	it := firstIssue(t, err)
	assert.Equal(t, 65, len([]rune(it.InputFragment)))
	assert.True(t, strings.HasSuffix(it.InputFragment, "…"))
}

type brokenSource struct {
	lines []string
	err   error
}

func (s *brokenSource) HasNext() (bool, error) {
	if len(s.lines) == 0 {
		return false, s.err
	}
	return true, nil
}

func (s *brokenSource) Next() (string, error) {
	l := s.lines[0]
	s.lines = s.lines[1:]
	return l, nil
}

func TestParse_ResourceErrorsUnchanged(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := yamlprops.Parse(&brokenSource{lines: []string{"a: 1"}, err: boom})
	require.Same(t, boom, err)
	_, ok := yamlprops.AsIssues(err)
	assert.False(t, ok)
}

func TestParse_Readers(t *testing.T) {
	text := "a:\r\n  b: 1\r\n  c:\r\n    - x\r\n"
	for name, src := range map[string]yamlprops.LineSource{
		"reader": yamlprops.FromReader(strings.NewReader(text)),
		"bytes":  yamlprops.FromBytes(strings.NewReader(text), nil, 16),
	} {
		t.Run(name, func(t *testing.T) {
			doc, err := yamlprops.Parse(src)
			require.NoError(t, err)
			assert.Equal(t, "1", doc.StringOr("a.b", ""))
			assert.Equal(t, []string{"x"}, doc.StringsOr("a.c", nil))
		})
	}
}

func TestParse_DebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogfmtLogger(&buf)
	_, err := parse(t, "a:\n  - x\nb: 1", yamlprops.ParseOpt{Logger: logger})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "key=a")
	assert.Contains(t, out, "new=true")
	assert.Contains(t, out, "msg=\"document parsed\"")
	assert.Contains(t, out, "properties=2")
}

func TestParse_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "\n\n", "# only a comment\n"} {
		doc, err := parse(t, text)
		require.NoError(t, err)
		assert.Zero(t, doc.Len())
	}
}
