package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
)

type declaration struct {
	prop, value string
}

func parseStyle(style string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: strings.TrimSpace(value)})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.value)
	}
	return strings.Join(parts, "; ")
}

func styleValue(n *html.Node, prop string) string {
	for _, d := range parseStyle(attr(n, "style")) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

// setStyle sets one declaration, keeping the others in place.
func setStyle(n *html.Node, prop, value string) {
	decls := parseStyle(attr(n, "style"))
	found := false
	for i := range decls {
		if decls[i].prop == prop {
			decls[i].value = value
			found = true
		}
	}
	if !found {
		decls = append(decls, declaration{prop: prop, value: value})
	}
	setAttr(n, "style", formatStyle(decls))
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

// findAll returns the descendants of n matching fn in document order.
func findAll(n *html.Node, fn func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if fn(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func findFirst(n *html.Node, fn func(*html.Node) bool) *html.Node {
	if found := findAll(n, fn); len(found) > 0 {
		return found[0]
	}
	return nil
}

func children(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, tag) {
			out = append(out, c)
		}
	}
	return out
}

func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func textOf(n *html.Node) string {
	var b strings.Builder
	for _, t := range findAll(n, func(c *html.Node) bool { return c.Type == html.TextNode }) {
		b.WriteString(t.Data)
	}
	return b.String()
}
