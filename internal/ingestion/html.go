package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockElements = "p, div, li, tr, br, h1, h2, h3, h4, h5, h6, section, article, header, footer, table, ul, ol"

func extractHTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, template, head").Remove()

	// keep block boundaries as line breaks so line-based extractors still work
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return strings.TrimSpace(doc.Text()), nil
	}
	return strings.TrimSpace(body.Text()), nil
}
