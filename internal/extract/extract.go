package extract

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"newsbrief/internal/httpx"
)

// ErrNoText means the page yielded no usable article text. Partial or
// corrupt text is never returned.
var ErrNoText = errors.New("no usable text in page")

// contentSelector is the container convention the target sites use for
// article bodies.
const contentSelector = "section#entry-body"

// minFallbackLen guards the generic fallbacks against navigation chrome:
// fallback text at or under this length is treated as noise.
const minFallbackLen = 200

type Extractor struct {
	http *httpx.Client
}

func NewExtractor(client *httpx.Client) *Extractor {
	return &Extractor{http: client}
}

// Text fetches the page at articleURL and extracts its visible body text.
// The primary content container wins outright; failing that, the first of
// main, article or body is accepted when its text is long enough to be
// real content.
func (e *Extractor) Text(ctx context.Context, articleURL string) (string, error) {
	log.Printf("Extracting text from: %s", articleURL)

	body, err := e.http.Get(ctx, articleURL)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		log.Printf("Error parsing HTML from %s: %v", articleURL, err)
		return "", ErrNoText
	}

	if sel := doc.Find(contentSelector); sel.Length() > 0 {
		text := visibleText(sel)
		if text == "" {
			log.Printf("Content container in %s is empty.", articleURL)
			return "", ErrNoText
		}
		log.Printf("Successfully extracted text from %s (length: %d)", articleURL, len(text))
		return text, nil
	}
	log.Printf("Could not find %s in %s", contentSelector, articleURL)

	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag).First()
		if sel.Length() == 0 {
			continue
		}
		text := visibleText(sel)
		if utf8.RuneCountInString(text) > minFallbackLen {
			log.Printf("Fallback: extracted text from %s in %s (length: %d)", tag, articleURL, len(text))
			return text, nil
		}
		break
	}

	log.Printf("No suitable content found in %s using fallback.", articleURL)
	return "", ErrNoText
}

// visibleText walks the selection's text nodes, skipping scripts and
// styles, trimming each block and joining blocks with newlines.
func visibleText(sel *goquery.Selection) string {
	var parts []string
	for _, node := range sel.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, "\n")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			*parts = append(*parts, text)
		}
		return
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
