package ingestion

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

func extractPDFText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return buf.String(), nil
}
