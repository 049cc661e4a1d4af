package framework

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexFilters(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("^posts/"))
	require.NoError(t, filters.MustNotMatch.Set("delete"))

	assert.True(t, filters.AsFilter(TestID{Path: []string{"posts", "create"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"posts", "delete"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"users", "create"}}))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var r RegexList
	assert.Error(t, r.Set("("))
	assert.False(t, r.IsDefined())
}

func TestRerunPattern(t *testing.T) {
	id := TestID{Path: []string{"comments", "list comments (nested)"}}
	pattern := RerunPattern(id)
	assert.Equal(t, `^comments$|^comments/list comments \(nested\)(/.*)?$`, pattern)

	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set(pattern))
	for name, expected := range map[string]bool{
		"comments":                              true,
		"comments/list comments (nested)":       true,
		"comments/list comments (nested)/x":     true,
		"comments/read comment":                 false,
		"comments/list comments (nested)2":      false,
		"users":                                 false,
		"users/comments/list comments (nested)": false,
	} {
		assert.Equal(t, expected, filters.AsFilter(TestID{Path: strings.Split(name, "/")}), name)
	}
}

func TestRerunPatternForTopLevelTest(t *testing.T) {
	assert.Equal(t, `^users(/.*)?$`, RerunPattern(TestID{Path: []string{"users"}}))
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, RegexFilters{})
	assert.Empty(t, buf.String())

	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("users"))
	PrintFilterDescription(&buf, filters)
	assert.Contains(t, buf.String(), `skip any not matching "users"`)
}
