// Package htmltomd converts the HTML fragments found in status
// bodies into Markdown. It only handles the subset of markup that
// the source site actually emits (inline links, line breaks, emoji
// images and simple block containers).
package htmltomd

import (
	"strings"

	"golang.org/x/net/html"
)

// Convert parses the given HTML fragment and returns its Markdown
// representation. Invalid markup never fails; whatever could be
// parsed is converted.
func Convert(fragment string) string {
	node, err := html.Parse(strings.NewReader(fragment))
	if err != nil || node == nil {
		return strings.TrimSpace(fragment)
	}

	var b strings.Builder
	walk(&b, node)
	return normalize(b.String())
}

func walk(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript":
			return
		case "br":
			b.WriteString("\n")
			return
		case "img":
			// emoji images carry their textual form in the alt attribute
			if alt := attrVal(n, "alt"); alt != "" {
				b.WriteString(alt)
			}
			return
		case "a":
			writeAnchor(b, n)
			return
		case "p", "div", "blockquote":
			b.WriteString("\n")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(b, c)
	}

	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "div", "blockquote":
			b.WriteString("\n")
		}
	}
}

func writeAnchor(b *strings.Builder, n *html.Node) {
	var inner strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(&inner, c)
	}

	text := strings.TrimSpace(inner.String())
	href := attrVal(n, "href")
	switch {
	case href == "" || text == href:
		b.WriteString(text)
	case text == "":
		b.WriteString(href)
	default:
		b.WriteString("[" + text + "](" + href + ")")
	}
}

func attrVal(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// collapse runs of 3+ newlines down to 2 and trim the edges
func normalize(s string) string {
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
