package yamlprops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/yamlprops"
)

func TestOpenCollector_Standalone(t *testing.T) {
	c := yamlprops.NewOpenCollector()
	require.NoError(t, c.CollectSingleValue("a", "1"))
	require.NoError(t, c.CollectListValue("l", "x", true))
	require.NoError(t, c.CollectListValue("l", "y", false))

	err := c.CollectListValue("ghost", "z", false)
	assert.True(t, yamlprops.HasCode(err, yamlprops.CodeInternal))

	err = c.CollectListValue("a", "z", false)
	assert.True(t, yamlprops.HasCode(err, yamlprops.CodeInvalidType))

	doc, err := c.Materialize()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, doc.StringsOr("l", nil))

	err = c.CollectSingleValue("late", "1")
	assert.True(t, yamlprops.HasCode(err, yamlprops.CodeInternal))
	assert.False(t, doc.Has("late"))
}

func TestSchemaCollector_Standalone(t *testing.T) {
	var unknown []string
	s := yamlprops.NewSchema().
		List("l").Required().
		OnUnknown(func(key, _ string) { unknown = append(unknown, key) }).
		MustBuild()
	c := yamlprops.NewSchemaCollector(s)

	_, err := c.Materialize()
	assert.True(t, yamlprops.HasCode(err, yamlprops.CodeRequired))

	require.NoError(t, c.CollectListValue("l", "x", true))
	require.NoError(t, c.CollectListValue("other", "y", true))
	assert.True(t, yamlprops.HasCode(c.CollectListValue("l", "z", true), yamlprops.CodeDuplicateKey))
	assert.True(t, yamlprops.HasCode(c.CollectSingleValue("l", "z"), yamlprops.CodeInvalidType))

	doc, err := c.Materialize()
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Len())
	assert.Equal(t, []string{"other"}, unknown)
}

// countingCollector wraps the open collector to check ParseInto drives any
// Collector implementation.
type countingCollector struct {
	*yamlprops.OpenCollector
	lists int
}

func (c *countingCollector) CollectListValue(key, value string, isNewList bool) error {
	if isNewList {
		c.lists++
	}
	return c.OpenCollector.CollectListValue(key, value, isNewList)
}

func TestParseInto_CustomCollector(t *testing.T) {
	c := &countingCollector{OpenCollector: yamlprops.NewOpenCollector()}
	doc, err := yamlprops.ParseInto(yamlprops.FromString("a:\n  - 1\n  - 2\nb:\n  - 3\n"), c)
	require.NoError(t, err)
	assert.Equal(t, 2, c.lists)
	assert.Equal(t, 2, doc.Len())
}
