package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ExtractText returns the visible text of an HTML document: script,
// style and comment content is dropped, and text nodes are joined with
// single spaces.
func ExtractText(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var builder strings.Builder
	collectText(doc, &builder)
	return strings.TrimSpace(builder.String()), nil
}

func collectText(n *html.Node, builder *strings.Builder) {
	if n.Type == html.CommentNode {
		return
	}
	if n.Type == html.ElementNode && isSkippedElement(strings.ToLower(n.Data)) {
		return
	}
	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			if builder.Len() > 0 {
				builder.WriteByte(' ')
			}
			builder.WriteString(text)
		}
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, builder)
	}
}

func isSkippedElement(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "template", "head":
		return true
	}
	return false
}
