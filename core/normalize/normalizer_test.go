package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const errorPage = `<html><head><title>x</title><style>body{}</style></head><body>
<nav><a href="/">home</a></nav>
<h1>Error</h1><p>That <b>hex</b> does not exist.</p>
<script>track()</script>
<form><input name="find"></form>
</body></html>`

func TestDescribe(t *testing.T) {
	md, err := New(0).Describe(errorPage)
	require.NoError(t, err)

	assert.Contains(t, md, "# Error")
	assert.Contains(t, md, "That **hex** does not exist.")
	assert.NotContains(t, md, "track()")
	assert.NotContains(t, md, "home")
}

func TestDescribe_Truncates(t *testing.T) {
	md, err := New(5).Describe(`<html><body><p>abcdefghij</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "abcde…", md)
}

func TestDescribe_EmptyDocument(t *testing.T) {
	md, err := New(0).Describe("")
	require.NoError(t, err)
	assert.Equal(t, "", md)
}
