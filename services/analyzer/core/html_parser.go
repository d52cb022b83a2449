package core

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
	"golang.org/x/net/html"
)

// DefaultHTMLVersion is reported for pages without a recognised DOCTYPE.
const DefaultHTMLVersion = "HTML5"

// HTMLParser implements HTML parsing functionality
type HTMLParser struct {
	logger interfaces.Logger
}

// NewHTMLParser creates a new HTML parser
func NewHTMLParser(logger interfaces.Logger) *HTMLParser {
	return &HTMLParser{
		logger: logger,
	}
}

// ParseHTML extracts the title, heading counts, links, login form and
// HTML version from content. Relative links are resolved against baseURL.
// Every anchor is reported, repeats included.
func (p *HTMLParser) ParseHTML(ctx context.Context, content []byte, baseURL string) (*models.ParsedHTML, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &models.ParsedHTML{
		HTMLVersion:   DefaultHTMLVersion,
		HeadingCounts: make(map[string]int),
		Links:         []models.Link{},
	}

	p.traverse(doc, base, result)

	return result, nil
}

// traverse recursively traverses the HTML tree
func (p *HTMLParser) traverse(node *html.Node, base *url.URL, result *models.ParsedHTML) {
	switch node.Type {
	case html.DoctypeNode:
		result.HTMLVersion = detectHTMLVersion(node)
	case html.ElementNode:
		switch node.Data {
		case "title":
			// an SVG <title> in the body is not the page title
			if result.Title == "" && inHead(node) {
				result.Title = strings.TrimSpace(textOf(node))
			}
		case "h1", "h2", "h3", "h4", "h5", "h6":
			result.HeadingCounts[strings.ToUpper(node.Data)]++
		case "a":
			if link := p.extractLink(node, base); link != nil {
				result.Links = append(result.Links, *link)
			}
		case "form":
			if hasPasswordInput(node) {
				result.HasLoginForm = true
			}
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		p.traverse(child, base, result)
	}
}

// extractLink extracts link information from an anchor tag
func (p *HTMLParser) extractLink(node *html.Node, base *url.URL) *models.Link {
	href := strings.TrimSpace(attr(node, "href"))
	if href == "" || strings.HasPrefix(href, "#") {
		return nil
	}

	ref, err := url.Parse(href)
	if err != nil {
		p.logger.Debug("Failed to parse link URL", "href", href, "error", err)
		return nil
	}

	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		// mailto:, javascript:, tel: and friends
		return nil
	}
	abs.Fragment = ""

	linkType := models.LinkTypeExternal
	if strings.EqualFold(abs.Host, base.Host) {
		linkType = models.LinkTypeInternal
	}

	return &models.Link{URL: abs.String(), Type: linkType}
}

// detectHTMLVersion names the HTML version announced by a DOCTYPE node.
func detectHTMLVersion(node *html.Node) string {
	public := strings.ToUpper(attr(node, "public"))
	if public == "" {
		return DefaultHTMLVersion
	}

	variant := func(name string) string {
		for _, v := range []string{"Strict", "Transitional", "Frameset"} {
			if strings.Contains(public, strings.ToUpper(v)) {
				return name + " " + v
			}
		}
		return name
	}

	switch {
	case strings.Contains(public, "XHTML 1.1"):
		return "XHTML 1.1"
	case strings.Contains(public, "XHTML 1.0"):
		return variant("XHTML 1.0")
	case strings.Contains(public, "HTML 4.01"):
		return variant("HTML 4.01")
	case strings.Contains(public, "HTML 4.0"):
		return variant("HTML 4.0")
	case strings.Contains(public, "HTML 3.2"):
		return "HTML 3.2"
	case strings.Contains(public, "HTML 2.0"):
		return "HTML 2.0"
	}
	return DefaultHTMLVersion
}

func inHead(n *html.Node) bool {
	for parent := n.Parent; parent != nil; parent = parent.Parent {
		if parent.Type == html.ElementNode && parent.Data == "head" {
			return true
		}
	}
	return false
}

func hasPasswordInput(n *html.Node) bool {
	if n.Type == html.ElementNode && n.Data == "input" && strings.EqualFold(attr(n, "type"), "password") {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasPasswordInput(c) {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

var _ interfaces.HTMLParser = (*HTMLParser)(nil)
