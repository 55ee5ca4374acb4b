package extract

import (
	"testing"

	"github.com/gaurav-prasanna/babelpipe/core"
	"github.com/gaurav-prasanna/babelpipe/core/address"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchHTML(hex, wall, shelf, volume, page string) string {
	const q = "'"
	return `<html><body><div class = "searchresults">` +
		`<h3>exact match:</h3><PRE class = "textsearch" style = "text-align: left">` +
		`Title: <b>ozs.cdgnmr</b> Page: <b>` + page + `</b><br>` +
		`Location: <a class = "intext" style = "cursor:pointer" title = "" onclick = "postform(` +
		q + hex + q + `,` + q + wall + q + `,` + q + shelf + q + `,` + q + volume + q + `,` + q + page + q +
		`)">` + hex + `-w` + wall + `-s` + shelf + `-v` + volume + `</a></PRE>` +
		`<h3>with English words only:</h3><PRE class = "textsearch">...</PRE>` +
		`</div></body></html>`
}

func TestSearchResult_Extract(t *testing.T) {
	got, err := NewSearchResult().Extract(searchHTML("abc123", "2", "9", "14", "77"))
	require.NoError(t, err)

	want := core.SearchResult{
		Coordinate: address.Coordinate{Hex: "abc123", Wall: "2", Shelf: "9", Volume: "14", Page: "77"},
		Title:      "ozs.cdgnmr",
		PageLabel:  "77",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchResult_PageStaysText(t *testing.T) {
	got, err := NewSearchResult().Extract(searchHTML("z", "4", "5", "32", "007"))
	require.NoError(t, err)
	assert.Equal(t, "007", got.Page)
}

func TestSearchResult_NoExactMatch(t *testing.T) {
	docs := map[string]string{
		"no heading":      `<html><body><h3>with English words only:</h3></body></html>`,
		"empty":           ``,
		"no location":     `<h3>exact match:</h3><PRE>Title: <b>x</b></PRE>`,
		"unclosed block":  `<h3>exact match:</h3><PRE>postform('a','1','2','3','4')`,
		"short tuple":     `<h3>exact match:</h3><PRE><a onclick = "postform('a','1','2')">x</a></PRE>`,
		"bad separators":  `<h3>exact match:</h3><PRE><a onclick = "postform('a';'1';'2';'3';'4')">x</a></PRE>`,
		"empty arguments": `<h3>exact match:</h3><PRE><a onclick = "postform()">x</a></PRE>`,
		"unquoted ends":   `<h3>exact match:</h3><PRE><a onclick = "postform(xabc','1','2','3','4y)">x</a></PRE>`,
		"mismatched ends": `<h3>exact match:</h3><PRE><a onclick = 'postform("abc','1','2','3','4')'>x</a></PRE>`,
	}
	e := NewSearchResult()
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			_, err := e.Extract(doc)
			require.ErrorIs(t, err, core.ErrNoExactMatch)

			raw, ok := core.Document(err)
			require.True(t, ok)
			assert.Equal(t, doc, raw)
		})
	}
}

func TestSearchResult_IgnoresLaterBlocks(t *testing.T) {
	html := searchHTML("first", "1", "1", "1", "1") + searchHTML("second", "2", "2", "2", "2")
	got, err := NewSearchResult().Extract(html)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Hex)
}
