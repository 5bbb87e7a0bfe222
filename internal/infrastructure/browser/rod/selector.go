package rod

import (
	"fmt"
	"regexp"
	"strings"
)

type selectorKind int

const (
	kindCSS selectorKind = iota
	kindXPath
	kindText
)

// selector is a parsed locator. Text selectors match the innermost elements
// under css whose textContent matches pattern.
type selector struct {
	kind    selectorKind
	raw     string
	css     string
	xpath   string
	pattern string
	flags   string
}

var (
	pseudoTextRe = regexp.MustCompile(`^(.*?):(has-)?text\((["'])(.*)["']\)$`)
	regexLitRe   = regexp.MustCompile(`^/(.*)/([a-z]*)$`)
)

// parseSelector understands CSS, XPath (leading "/" or "(", or "xpath="),
// "css=", and the text-matching forms:
//
//	text=Thanks               case-insensitive substring
//	text="Thanks"             exact, whitespace-trimmed
//	text=/Thanks|Success/i    regular expression
//	a:text("Simple Form")     css scope plus case-insensitive substring
//	div:has-text("Simple")    same as :text
func parseSelector(raw string) (selector, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return selector{}, ErrInvalidSelector
	}
	sel := selector{raw: raw}

	switch {
	case strings.HasPrefix(s, "xpath="):
		sel.kind = kindXPath
		sel.xpath = strings.TrimPrefix(s, "xpath=")
	case strings.HasPrefix(s, "/") || strings.HasPrefix(s, "("):
		sel.kind = kindXPath
		sel.xpath = s
	case strings.HasPrefix(s, "css="):
		sel.kind = kindCSS
		sel.css = strings.TrimPrefix(s, "css=")
	case strings.HasPrefix(s, "text="):
		sel.kind = kindText
		sel.css = "body *"
		body := strings.TrimPrefix(s, "text=")
		switch {
		case regexLitRe.MatchString(body):
			// The body runs as a JS RegExp; syntax errors surface from the page.
			m := regexLitRe.FindStringSubmatch(body)
			sel.pattern = m[1]
			sel.flags = strings.ReplaceAll(m[2], "g", "")
		case len(body) >= 2 && (body[0] == '"' || body[0] == '\'') && body[len(body)-1] == body[0]:
			sel.pattern = `^\s*` + regexp.QuoteMeta(body[1:len(body)-1]) + `\s*$`
		default:
			sel.pattern = regexp.QuoteMeta(body)
			sel.flags = "i"
		}
	case pseudoTextRe.MatchString(s):
		m := pseudoTextRe.FindStringSubmatch(s)
		sel.kind = kindText
		sel.css = m[1]
		if sel.css == "" {
			sel.css = "body *"
		}
		sel.pattern = regexp.QuoteMeta(m[4])
		sel.flags = "i"
	default:
		sel.kind = kindCSS
		sel.css = s
	}

	if sel.kind == kindCSS && sel.css == "" || sel.kind == kindXPath && sel.xpath == "" {
		return selector{}, fmt.Errorf("%w: %s", ErrInvalidSelector, raw)
	}
	return sel, nil
}

// textMatchJS returns all innermost matches; callers either take the array or
// the first element (null when empty).
const textMatchJS = `(css, source, flags, firstOnly) => {
	const re = new RegExp(source, flags);
	const match = (el) => re.test(el.textContent || "");
	const found = Array.from(document.querySelectorAll(css)).filter(
		(el) => match(el) && !Array.from(el.children).some(match)
	);
	if (firstOnly) return found.length > 0 ? found[0] : null;
	return found;
}`
