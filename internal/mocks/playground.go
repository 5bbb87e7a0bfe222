package mocks

import "strings"

// Link selectors the page helpers click on the playground index.
const (
	SimpleFormLink = `a:text("Simple Form Demo")`
	SlidersLink    = `a:text("Drag & Drop Sliders")`
	InputFormLink  = `a:text("Input Form Submit")`
)

// NewPlayground returns a fake browser whose index links navigate to the
// demo paths under base.
func NewPlayground(base string) *Browser {
	b := NewBrowser()
	base = strings.TrimRight(base, "/")
	link := func(selector, path string) {
		b.Add(selector, &Element{Text: Text(path)})
		b.OnClick[selector] = func(b *Browser) {
			b.mu.Lock()
			b.URL = base + path
			b.mu.Unlock()
		}
	}
	link(SimpleFormLink, "/simple-form-demo")
	link(SlidersLink, "/drag-drop-range-sliders-demo")
	link(InputFormLink, "/input-form-demo")
	return b
}

// SetOnClick installs a click hook under the browser lock.
func (b *Browser) SetOnClick(selector string, fn func(b *Browser)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.OnClick[selector] = fn
}

// SetText replaces the text of selector[index], adding elements as needed.
func (b *Browser) SetText(selector string, index int, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for len(b.Elements[selector]) <= index {
		b.Elements[selector] = append(b.Elements[selector], &Element{})
	}
	b.Elements[selector][index].Text = Text(text)
}
