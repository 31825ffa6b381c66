package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	xmlTag          = regexp.MustCompile(`<[^>]+>`)
	paragraphBreaks = strings.NewReplacer(
		"</w:p>", "\n",
		"<w:br/>", "\n",
		"<w:cr/>", "\n",
		"<w:tab/>", "\t",
	)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() {
		_ = doc.Close()
	}()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText converts WordprocessingML body XML into plain text,
// one line per paragraph
func docxXMLToText(content string) string {
	content = paragraphBreaks.Replace(content)
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
