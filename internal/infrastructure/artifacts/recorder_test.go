package artifacts

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"playground-e2e/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRecorder(t *testing.T, maxWidth int) *Recorder {
	t.Helper()
	r := NewRecorder(filepath.Join(t.TempDir(), "results"), maxWidth)
	r.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return r
}

func TestRecorder_ScreenshotNaming(t *testing.T) {
	r := fixedRecorder(t, 0)
	b := mocks.NewBrowser()

	path, err := r.Screenshot(context.Background(), b, "sliders-not-found")
	require.NoError(t, err)

	assert.Equal(t, "sliders-not-found-1700000000123.png", filepath.Base(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestRecorder_ScreenshotDownscales(t *testing.T) {
	r := fixedRecorder(t, 32)
	b := mocks.NewBrowser()

	path, err := r.Screenshot(context.Background(), b, "form-test-error")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}

func TestRecorder_DOMSnapshot(t *testing.T) {
	r := fixedRecorder(t, 0)
	b := mocks.NewBrowser()
	b.PageHTML = `<html><body><form id="seleniumform"><script>x()</script></form></body></html>`

	path, err := r.DOMSnapshot(context.Background(), b, "input-form")
	require.NoError(t, err)

	assert.Equal(t, "input-form-1700000000123.html", filepath.Base(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `id="seleniumform"`)
	assert.NotContains(t, string(data), "<script")
}

func TestRecorder_DOMSnapshotListsControls(t *testing.T) {
	r := fixedRecorder(t, 0)
	b := mocks.NewBrowser()
	b.PageHTML = `<html><body><input id="user-message"><button id="showInput">Get Checked Value</button></body></html>`

	path, err := r.DOMSnapshot(context.Background(), b, "simple-form")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("<!-- controls\n")))
	assert.Contains(t, string(data), "input#user-message")
	assert.Contains(t, string(data), "button#showInput")
}
