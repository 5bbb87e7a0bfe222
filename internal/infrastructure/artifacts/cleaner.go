package artifacts

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// CleanConfig controls how a DOM snapshot is reduced before it is stored.
// Selector-relevant attributes (id, class, name, type, value) are always kept.
type CleanConfig struct {
	TagsToRemove  []string
	AttrsToRemove []string
	MaxOutputSize int
}

var DefaultCleanConfig = CleanConfig{
	TagsToRemove: []string{
		"script", "style", "noscript", "svg", "iframe", "link", "meta",
	},
	AttrsToRemove: []string{
		"style", "srcset", "sizes", "loading", "decoding", "fetchpriority",
	},
	MaxOutputSize: 512_000,
}

// CleanHTML strips scripts, styles and noise attributes. Unparseable input is
// returned unchanged.
func CleanHTML(rawHTML string, cfg *CleanConfig) string {
	if cfg == nil {
		cfg = &DefaultCleanConfig
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	cleanNode(doc, cfg)

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return rawHTML
	}
	return truncate(sb.String(), cfg.MaxOutputSize)
}

func cleanNode(n *html.Node, cfg *CleanConfig) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.CommentNode:
			n.RemoveChild(c)
		case c.Type == html.ElementNode && isOneOf(c.Data, cfg.TagsToRemove...):
			n.RemoveChild(c)
		case c.Type == html.ElementNode:
			c.Attr = filterAttributes(c.Attr, cfg)
			cleanNode(c, cfg)
		default:
			cleanNode(c, cfg)
		}
		c = next
	}
}

func filterAttributes(attrs []html.Attribute, cfg *CleanConfig) []html.Attribute {
	var kept []html.Attribute
	for _, attr := range attrs {
		if isOneOf(attr.Key, cfg.AttrsToRemove...) || strings.HasPrefix(attr.Key, "on") {
			continue
		}
		kept = append(kept, attr)
	}
	return kept
}

func truncate(s string, maxSize int) string {
	if maxSize > 0 && len(s) > maxSize {
		cut := maxSize
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "\n<!-- truncated -->"
	}
	return s
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
