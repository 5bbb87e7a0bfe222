package artifacts

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"playground-e2e/internal/application/port/output"

	"github.com/disintegration/imaging"
)

var _ output.ArtifactPort = (*Recorder)(nil)

// Recorder writes <label>-<epoch-millis>.png screenshots and .html DOM
// snapshots into Dir.
type Recorder struct {
	Dir string
	// MaxWidth downscales wider screenshots; zero keeps the original size.
	MaxWidth int
	Clean    *CleanConfig

	now func() time.Time
}

func NewRecorder(dir string, maxWidth int) *Recorder {
	return &Recorder{
		Dir:      dir,
		MaxWidth: maxWidth,
		Clean:    &DefaultCleanConfig,
		now:      time.Now,
	}
}

func (r *Recorder) path(label, ext string) (string, error) {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", fmt.Errorf("create artifacts dir: %w", err)
	}
	name := fmt.Sprintf("%s-%d.%s", label, r.now().UnixMilli(), ext)
	return filepath.Join(r.Dir, name), nil
}

func (r *Recorder) Screenshot(ctx context.Context, browser output.BrowserPort, label string) (string, error) {
	shot, err := browser.Screenshot(ctx)
	if err != nil {
		return "", fmt.Errorf("screenshot failed: %w", err)
	}

	data := shot.Data
	if r.MaxWidth > 0 && shot.Width > r.MaxWidth {
		data, err = downscale(shot.Data, r.MaxWidth)
		if err != nil {
			return "", err
		}
	}

	path, err := r.path(label, "png")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}

func downscale(data []byte, width int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}
	if img.Bounds().Dx() <= width {
		return data, nil
	}
	img = imaging.Resize(img, width, 0, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("png encode failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Recorder) DOMSnapshot(ctx context.Context, browser output.BrowserPort, label string) (string, error) {
	raw, err := browser.HTML(ctx)
	if err != nil {
		return "", fmt.Errorf("read page html: %w", err)
	}

	path, err := r.path(label, "html")
	if err != nil {
		return "", err
	}
	// The control list goes first so a failed selector can be compared
	// against what the page actually offered.
	body := controlsComment(Controls(raw)) + CleanHTML(raw, r.Clean)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return "", fmt.Errorf("write dom snapshot: %w", err)
	}
	return path, nil
}
