package archive

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/babelpipe/core"
	"github.com/gaurav-prasanna/babelpipe/core/address"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type request struct {
	endpoint string
	form     url.Values
}

// fakeTransport records requests and answers each with respond.
type fakeTransport struct {
	requests []request
	respond  func(n int, endpoint string, form url.Values) (string, error)
}

func (f *fakeTransport) Post(_ context.Context, endpoint string, form url.Values) (string, error) {
	f.requests = append(f.requests, request{endpoint: endpoint, form: form})
	return f.respond(len(f.requests)-1, endpoint, form)
}

func pageHTML(text string) string {
	return `<html><body><div class = "bookrealign"><h3 id = "title">ab,cd</h3>` +
		`<PRE id = "textblock">` + text + "</PRE></div>\n</div></body></html>"
}

func matchHTML(hex, wall, shelf, volume, page string) string {
	return `<h3>exact match:</h3><PRE class = "textsearch" style = "text-align: left">` +
		`Title: <b>ttl</b> Page: <b>` + page + `</b><br>Location: <a class = "intext" ` +
		`style = "cursor:pointer" title = "" onclick = "postform('` +
		strings.Join([]string{hex, wall, shelf, volume, page}, "','") + `')">x</a></PRE>`
}

// searchByIndex answers the n-th search with hex "hN".
func searchByIndex(n int, _ string, _ url.Values) (string, error) {
	return matchHTML(fmt.Sprintf("h%d", n), "1", "2", "3", fmt.Sprint(n+1)), nil
}

func TestSearch_ShortQuery(t *testing.T) {
	tr := &fakeTransport{respond: searchByIndex}
	c := New(tr, WithLogger(zaptest.NewLogger(t)))

	results, err := c.Search(context.Background(), "hello world")
	require.NoError(t, err)

	require.Len(t, tr.requests, 1)
	assert.Equal(t, core.SearchEndpoint, tr.requests[0].endpoint)
	assert.Equal(t, url.Values{"find": {"hello world"}, "method": {"x"}}, tr.requests[0].form)

	want := []core.SearchResult{{
		Coordinate: address.Coordinate{Hex: "h0", Wall: "1", Shelf: "2", Volume: "3", Page: "1"},
		Title:      "ttl",
		PageLabel:  "1",
		Chunk:      1,
	}}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("Search() mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_LongQueryIsChunkedInOrder(t *testing.T) {
	tr := &fakeTransport{respond: searchByIndex}
	c := New(tr)

	text := strings.Repeat("a", 3000) + strings.Repeat("b", 3000) + "c"
	results, err := c.Search(context.Background(), text)
	require.NoError(t, err)

	require.Len(t, tr.requests, 3)
	assert.Equal(t, strings.Repeat("a", 3000), tr.requests[0].form.Get("find"))
	assert.Equal(t, strings.Repeat("b", 3000), tr.requests[1].form.Get("find"))
	assert.Equal(t, "c", tr.requests[2].form.Get("find"))

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("h%d", i), r.Hex)
		assert.Equal(t, i+1, r.Chunk)
	}
}

func TestSearch_EmptyQueryStillSearches(t *testing.T) {
	tr := &fakeTransport{respond: searchByIndex}
	results, err := New(tr).Search(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, tr.requests, 1)
	assert.Equal(t, "", tr.requests[0].form.Get("find"))
	assert.Len(t, results, 1)
}

func TestSearch_OversizeWithoutAutoSplit(t *testing.T) {
	tr := &fakeTransport{respond: searchByIndex}
	_, err := New(tr).Search(context.Background(), strings.Repeat("a", 3001), WithAutoSplit(false))

	require.ErrorIs(t, err, core.ErrOversizeQuery)
	assert.Empty(t, tr.requests, "no request may be sent")
}

func TestSearch_NoAutoSplitSendsVerbatim(t *testing.T) {
	tr := &fakeTransport{respond: searchByIndex}
	text := strings.Repeat("z", 3000)
	results, err := New(tr).Search(context.Background(), text, WithAutoSplit(false))
	require.NoError(t, err)
	require.Len(t, tr.requests, 1)
	assert.Equal(t, text, tr.requests[0].form.Get("find"))
	assert.Len(t, results, 1)
}

func TestSearch_InvalidText(t *testing.T) {
	tr := &fakeTransport{respond: searchByIndex}
	_, err := New(tr).Search(context.Background(), "bad\xfe")
	require.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.Empty(t, tr.requests)
}

func TestSearch_NoExactMatchAbortsRemainingChunks(t *testing.T) {
	tr := &fakeTransport{respond: func(n int, e string, f url.Values) (string, error) {
		if n == 1 {
			return "<html>nothing here</html>", nil
		}
		return searchByIndex(n, e, f)
	}}

	results, err := New(tr).Search(context.Background(), strings.Repeat("q", 9000))
	require.ErrorIs(t, err, core.ErrNoExactMatch)
	assert.Nil(t, results)
	assert.Len(t, tr.requests, 2, "third chunk must not be sent")
	assert.Contains(t, err.Error(), "chunk 2/3")

	doc, ok := core.Document(err)
	require.True(t, ok)
	assert.Equal(t, "<html>nothing here</html>", doc)
}

func TestSearch_TransportErrorAborts(t *testing.T) {
	boom := errors.New("connection reset")
	tr := &fakeTransport{respond: func(int, string, url.Values) (string, error) { return "", boom }}

	_, err := New(tr).Search(context.Background(), strings.Repeat("q", 6000))
	require.ErrorIs(t, err, boom)
	assert.Len(t, tr.requests, 1)
}

func TestSearch_WithoutHiddenField(t *testing.T) {
	tr := &fakeTransport{respond: searchByIndex}
	_, err := New(tr, WithHiddenField(false)).Search(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, url.Values{"find": {"abc"}}, tr.requests[0].form)
}

func TestSearch_ChunkSize(t *testing.T) {
	tr := &fakeTransport{respond: searchByIndex}
	results, err := New(tr, WithChunkSize(4)).Search(context.Background(), "abcdefghij")
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, "ij", tr.requests[2].form.Get("find"))
}

func TestPage(t *testing.T) {
	tr := &fakeTransport{respond: func(int, string, url.Values) (string, error) {
		return pageHTML("\nabc def\nghi"), nil
	}}
	c := New(tr)
	coord := address.New("abc123", "2", "9", "14")

	page, err := c.Page(context.Background(), coord)
	require.NoError(t, err)
	assert.Equal(t, core.Page{Coordinate: coord, Title: "ab,cd", Text: "abc defghi"}, page)

	require.Len(t, tr.requests, 1)
	assert.Equal(t, core.PageEndpoint, tr.requests[0].endpoint)
	assert.Equal(t, coord.Form(), tr.requests[0].form)
	assert.Equal(t, "1", tr.requests[0].form.Get("page"))

	text, err := c.PageText(context.Background(), coord)
	require.NoError(t, err)
	assert.Equal(t, "abc defghi", text)
}

func TestPage_Malformed(t *testing.T) {
	tr := &fakeTransport{respond: func(int, string, url.Values) (string, error) {
		return "<html>Invalid hex</html>", nil
	}}
	_, err := New(tr).PageText(context.Background(), address.New("!", "1", "1", "1"))
	require.ErrorIs(t, err, core.ErrMalformedDocument)

	doc, ok := core.Document(err)
	require.True(t, ok)
	assert.Equal(t, "<html>Invalid hex</html>", doc)
}

func TestVerify(t *testing.T) {
	tr := &fakeTransport{respond: func(int, string, url.Values) (string, error) {
		return pageHTML("xx hello\n world yy"), nil
	}}
	c := New(tr)
	result := core.SearchResult{Coordinate: address.New("a", "1", "1", "1", "5")}

	ok, err := c.Verify(context.Background(), result, "hello world")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "5", tr.requests[0].form.Get("page"))

	ok, err = c.Verify(context.Background(), result, "goodbye")
	require.NoError(t, err)
	assert.False(t, ok)
}
