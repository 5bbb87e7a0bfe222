package fixture

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/net/html"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Routes(t *testing.T) {
	h := NewHandler(Config{Quiet: true})

	rec := get(t, h, "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, PlaygroundPath, rec.Header().Get("Location"))

	rec = get(t, h, PlaygroundPath)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	for _, demo := range Demos {
		rec = get(t, h, PlaygroundPath+"/"+demo)
		assert.Equal(t, http.StatusOK, rec.Code, demo)
	}

	assert.Equal(t, http.StatusNotFound, get(t, h, PlaygroundPath+"/checkbox-demo").Code)
	assert.Equal(t, http.StatusNoContent, get(t, h, "/healthz").Code)
}

type node struct {
	tag   string
	attrs map[string]string
	text  string
}

func parse(t *testing.T, name string) []node {
	t.Helper()
	src, err := Page(name)
	require.NoError(t, err)
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)

	var out []node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			nd := node{tag: n.Data, attrs: map[string]string{}}
			for _, a := range n.Attr {
				nd.attrs[a.Key] = a.Val
			}
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				nd.text = n.FirstChild.Data
			}
			out = append(out, nd)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func find(nodes []node, match func(node) bool) []node {
	var out []node
	for _, n := range nodes {
		if match(n) {
			out = append(out, n)
		}
	}
	return out
}

func TestPages_CarryHelperSelectors(t *testing.T) {
	index := parse(t, "index")
	for _, text := range []string{"Simple Form Demo", "Drag & Drop Sliders", "Input Form Submit"} {
		links := find(index, func(n node) bool { return n.tag == "a" && n.text == text })
		assert.Len(t, links, 1, text)
	}

	simple := parse(t, "simple-form-demo")
	for _, id := range []string{"user-message", "showInput", "message"} {
		assert.Len(t, find(simple, func(n node) bool { return n.attrs["id"] == id }), 1, id)
	}

	sliders := parse(t, "drag-drop-range-sliders-demo")
	ranges := find(sliders, func(n node) bool { return n.tag == "input" && n.attrs["type"] == "range" })
	assert.Len(t, ranges, 8)
	assert.Equal(t, "15", ranges[2].attrs["value"])
	assert.Len(t, find(sliders, func(n node) bool { return n.tag == "output" }), 8)

	form := parse(t, "input-form-demo")
	for _, id := range []string{"name", "inputEmail4", "inputPassword4", "company", "websitename",
		"inputCity", "inputAddress1", "inputAddress2", "inputState", "inputZip"} {
		fields := find(form, func(n node) bool { return n.attrs["id"] == id })
		require.Len(t, fields, 1, id)
		_, required := fields[0].attrs["required"]
		assert.True(t, required, id)
	}
	assert.Len(t, find(form, func(n node) bool { return n.tag == "select" && n.attrs["name"] == "country" }), 1)
	assert.Len(t, find(form, func(n node) bool { return n.tag == "option" && n.text == "United States" }), 1)
	assert.Len(t, find(form, func(n node) bool { return n.attrs["id"] == "contbtn" }), 1)

	// The success banner ships hidden, so helpers must wait for visibility.
	banners := find(form, func(n node) bool { return n.attrs["class"] == "success-msg" })
	require.Len(t, banners, 1)
	assert.Contains(t, banners[0].attrs["style"], "display:none")
}

func TestServer_StartAndClose(t *testing.T) {
	s, err := Start(Config{Addr: "127.0.0.1:0", Quiet: true})
	require.NoError(t, err)

	resp, err := http.Get(s.URL + PlaygroundPath + "/simple-form-demo")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Contains(t, string(body), `id="user-message"`)

	http.DefaultClient.CloseIdleConnections()
	require.NoError(t, s.Close(context.Background()))
}
