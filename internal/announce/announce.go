// Package announce turns the backend's announcement endpoint into banner
// text.
package announce

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
)

// Banner is a parsed announcement. HTML is kept for views that can render
// markup; Text is always populated when the banner is non-empty.
type Banner struct {
	HTML string
	Text string
}

// Empty reports whether there is nothing to show.
func (b Banner) Empty() bool {
	return strings.TrimSpace(b.Text) == ""
}

// Parse accepts {html?, message?} JSON or a plain body.
func Parse(body []byte, contentType string) Banner {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return Banner{}
	}

	if strings.Contains(contentType, "json") || strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, `"`) {
		var obj struct {
			HTML    string `json:"html"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(raw), &obj); err == nil {
			switch {
			case strings.TrimSpace(obj.HTML) != "":
				return Banner{HTML: obj.HTML, Text: ToText(obj.HTML)}
			case strings.TrimSpace(obj.Message) != "":
				return Banner{Text: strings.TrimSpace(obj.Message)}
			}
			return Banner{}
		}
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err == nil {
			return Parse([]byte(s), "text/plain")
		}
	}

	if strings.Contains(contentType, "html") || looksLikeHTML(raw) {
		return Banner{HTML: raw, Text: ToText(raw)}
	}
	return Banner{Text: raw}
}

func looksLikeHTML(s string) bool {
	return strings.HasPrefix(s, "<") && strings.Contains(s, ">")
}

// ToText flattens an HTML fragment. Block elements and <br> become line
// breaks, links keep their target in parentheses, scripts and styles are
// dropped.
func ToText(fragment string) string {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), nil)
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	var sb strings.Builder
	for _, n := range nodes {
		walk(&sb, n)
	}
	return tidy(sb.String())
}

var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "section": true,
}

func walk(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style":
			return
		case "br":
			sb.WriteString("\n")
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(sb, c)
	}
	if n.Type != html.ElementNode {
		return
	}
	if n.Data == "a" {
		if href := attr(n, "href"); href != "" && !strings.Contains(textOf(n), href) {
			sb.WriteString(" (" + href + ")")
		}
	}
	if blockTags[n.Data] {
		sb.WriteString("\n")
	}
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
	var sb strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return sb.String()
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
