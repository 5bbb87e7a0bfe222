package artifacts

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

const (
	maxControls    = 200
	maxControlText = 40
)

// Control is an interactive element found in a page snapshot, with the
// selector that most directly addresses it.
type Control struct {
	Kind     string
	Selector string
	Text     string
}

// Controls lists inputs, selects, textareas, buttons and links of rawHTML in
// document order, skipping duplicate selectors.
func Controls(rawHTML string) []Control {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var result []Control
	seen := make(map[string]bool)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if len(result) >= maxControls {
			return
		}
		if n.Type == html.ElementNode {
			if kind, ok := controlKind(n); ok {
				sel := bestSelector(n)
				if !seen[sel] {
					seen[sel] = true
					result = append(result, Control{Kind: kind, Selector: sel, Text: shorten(textOf(n))})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return result
}

func controlKind(n *html.Node) (string, bool) {
	switch n.Data {
	case "input":
		typ := attr(n, "type")
		if typ == "" {
			typ = "text"
		}
		if typ == "hidden" {
			return "", false
		}
		return "input:" + typ, true
	case "select", "textarea", "button":
		return n.Data, true
	case "a":
		return "link", attr(n, "href") != ""
	}
	if attr(n, "role") == "button" {
		return "button", true
	}
	return "", false
}

func bestSelector(n *html.Node) string {
	if id := attr(n, "id"); id != "" {
		return n.Data + "#" + id
	}
	if name := attr(n, "name"); name != "" {
		return fmt.Sprintf("%s[name=%q]", n.Data, name)
	}
	if class := strings.Fields(attr(n, "class")); len(class) > 0 {
		return n.Data + "." + strings.Join(class, ".")
	}
	if n.Data == "a" || n.Data == "button" {
		if text := textOf(n); text != "" {
			return fmt.Sprintf("%s:text(%q)", n.Data, shorten(text))
		}
	}
	return n.Data
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func shorten(s string) string {
	r := []rune(s)
	if len(r) <= maxControlText {
		return s
	}
	return string(r[:maxControlText]) + "..."
}

// controlsComment renders controls as an HTML comment header.
func controlsComment(controls []Control) string {
	if len(controls) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<!-- controls\n")
	for _, c := range controls {
		line := fmt.Sprintf("  %-16s %s", c.Kind, c.Selector)
		if c.Text != "" {
			line += fmt.Sprintf("  %q", c.Text)
		}
		b.WriteString(strings.ReplaceAll(line, "--", "- -"))
		b.WriteByte('\n')
	}
	b.WriteString("-->\n")
	return b.String()
}
