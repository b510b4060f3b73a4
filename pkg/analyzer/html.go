package analyzer

import (
	"strings"

	"golang.org/x/net/html"
)

// parseAndPrune parses an HTML payload and removes every subtree rooted
// at a tag in prunedTags (script, style, noscript, footer, header, nav),
// so that neither structural extraction nor the full-body pass ever
// sees their contents.
func parseAndPrune(payload string) (*html.Node, error) {
	root, err := html.Parse(strings.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var doomed []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, ok := prunedTags[n.Data]; ok {
				doomed = append(doomed, n)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	for _, n := range doomed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}

	return root, nil
}

// findAll returns every element node with the given tag name, in
// document order.
func findAll(root *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// bodyNode returns the document's <body> element, or root itself if
// none was parsed (html.Parse synthesizes one for any well-formed
// input, so this fallback only matters for pathological fragments).
func bodyNode(root *html.Node) *html.Node {
	if found := findAll(root, "body"); len(found) > 0 {
		return found[0]
	}
	return root
}

// textOf concatenates all text node descendants of n, space-separated,
// mirroring BeautifulSoup's get_text(separator=" ", strip=True).
func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			text := strings.TrimSpace(node.Data)
			if text != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(text)
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
