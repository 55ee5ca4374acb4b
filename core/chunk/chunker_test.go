package chunk

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gaurav-prasanna/babelpipe/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	assert.Equal(t, MaxChunkSize, New(0).Size)
	assert.Equal(t, MaxChunkSize, New(-5).Size)
	assert.Equal(t, MaxChunkSize, New(ArchiveLimit).Size)
	assert.Equal(t, 10, New(10).Size)
}

func TestSplit_ShortTextIsOneChunk(t *testing.T) {
	c := New(0)
	for _, text := range []string{"hello world", strings.Repeat("a", MaxChunkSize)} {
		chunks, err := c.Split(text, true)
		require.NoError(t, err)
		assert.Equal(t, []string{text}, chunks)
	}
}

func TestSplit_EmptyTextIsOneEmptyChunk(t *testing.T) {
	chunks, err := New(0).Split("", true)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, chunks)
}

func TestSplit_LongText(t *testing.T) {
	c := New(0)
	for _, n := range []int{3001, 6000, 6001, 9999} {
		text := makeText(n)
		chunks, err := c.Split(text, true)
		require.NoError(t, err)

		assert.Len(t, chunks, (n+MaxChunkSize-1)/MaxChunkSize, "n=%d", n)
		assert.Equal(t, text, strings.Join(chunks, ""), "n=%d", n)
		for i, chunk := range chunks[:len(chunks)-1] {
			assert.Equal(t, MaxChunkSize, len(chunk), "n=%d chunk %d", n, i)
		}
	}
}

func TestSplit_KeepsLineBreaks(t *testing.T) {
	text := "ab\ncd\nef"
	chunks, err := New(3).Split(text, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab\n", "cd\n", "ef"}, chunks)
}

func TestSplit_CountsCharactersNotBytes(t *testing.T) {
	text := "ééééé"
	chunks, err := New(2).Split(text, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"éé", "éé", "é"}, chunks)
	for _, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk))
	}
}

func TestSplit_NoAutoSplit(t *testing.T) {
	c := New(0)

	chunks, err := c.Split("", false)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, chunks)

	exact := strings.Repeat("x", MaxChunkSize)
	chunks, err = c.Split(exact, false)
	require.NoError(t, err)
	assert.Equal(t, []string{exact}, chunks)

	_, err = c.Split(exact+"x", false)
	require.ErrorIs(t, err, core.ErrOversizeQuery)
	var oversize *core.OversizeQueryError
	require.ErrorAs(t, err, &oversize)
	assert.Equal(t, MaxChunkSize+1, oversize.Length)
	assert.Equal(t, MaxChunkSize, oversize.Limit)
}

func TestSplit_NoAutoSplitIgnoresChunkSize(t *testing.T) {
	c := New(100)
	text := strings.Repeat("y", 500)

	chunks, err := c.Split(text, false)
	require.NoError(t, err)
	assert.Equal(t, []string{text}, chunks)

	_, err = c.Split(strings.Repeat("y", MaxChunkSize+1), false)
	var oversize *core.OversizeQueryError
	require.ErrorAs(t, err, &oversize)
	assert.Equal(t, MaxChunkSize, oversize.Limit)
}

func TestSplit_InvalidText(t *testing.T) {
	bad := "abc\xff"
	for _, autoSplit := range []bool{true, false} {
		_, err := New(0).Split(bad, autoSplit)
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	}
}

func makeText(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz., "
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[i%len(alphabet)])
	}
	return b.String()
}
