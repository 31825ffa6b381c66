package ingestion

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/applicant-selector/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Go &amp; Python</w:t></w:r></w:p>` +
	`</w:body></w:document>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func buildDocx(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": documentRels,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectMediaType(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mimeType string
		want     types.MediaType
		wantErr  bool
	}{
		{name: "pdf mime", filename: "cv", mimeType: "application/pdf", want: types.MediaTypePDF},
		{name: "mime beats extension", filename: "cv.txt", mimeType: "application/msword", want: types.MediaTypeDOC},
		{name: "mime with params", filename: "cv", mimeType: "text/plain; charset=utf-8", want: types.MediaTypePlainText},
		{name: "extension fallback", filename: "CV.DOCX", mimeType: "application/octet-stream", want: types.MediaTypeDOCX},
		{name: "extension without mime", filename: "cv.htm", want: types.MediaTypeHTML},
		{name: "unsupported mime", filename: "cv.pdf", mimeType: "image/png", wantErr: true},
		{name: "unsupported extension", filename: "cv.rtf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectMediaType(tt.filename, tt.mimeType)
			if tt.wantErr {
				var unsupported *UnsupportedTypeError
				require.True(t, errors.As(err, &unsupported))
				assert.Equal(t, tt.filename, unsupported.Filename)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_PlainText(t *testing.T) {
	doc, err := Load("cv.txt", "text/plain", []byte("Jane Doe\r\n\r\n\r\n\r\njane@mail.io   "))

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\njane@mail.io", doc.Text)
	assert.Equal(t, types.MediaTypePlainText, doc.MediaType)
	assert.Equal(t, "cv.txt", doc.Filename)
}

func TestLoad_HTML(t *testing.T) {
	page := `<html><head><title>CV</title><style>h1{}</style></head><body>` +
		`<h1>Jane Doe</h1><p>jane@mail.io</p><script>var a = 1</script>` +
		`<ul><li>Go</li><li>SQL</li></ul></body></html>`

	doc, err := Load("cv.html", "text/html", []byte(page))

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\njane@mail.io\nGo\nSQL", doc.Text)
}

func TestLoad_Docx(t *testing.T) {
	doc, err := Load("cv.docx", "", buildDocx(t))

	require.NoError(t, err)
	assert.Equal(t, types.MediaTypeDOCX, doc.MediaType)
	assert.Equal(t, "Jane Doe\nGo & Python", doc.Text)
}

func TestLoad_CorruptDocuments(t *testing.T) {
	for _, name := range []string{"cv.pdf", "cv.docx", "cv.doc"} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(name, "", []byte("definitely not a document"))

			var extractionErr *ExtractionError
			require.True(t, errors.As(err, &extractionErr))
			assert.Equal(t, name, extractionErr.Filename)
		})
	}
}

func TestLoad_Unsupported(t *testing.T) {
	_, err := Load("photo.png", "image/png", []byte{0x89, 'P', 'N', 'G'})

	var unsupported *UnsupportedTypeError
	require.True(t, errors.As(err, &unsupported))
	assert.Contains(t, err.Error(), "image/png")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe"), 0644))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", doc.Text)
	assert.Equal(t, "resume.txt", doc.Filename)

	_, err = LoadFile(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestDocxXMLToText(t *testing.T) {
	xml := `<w:p><w:r><w:t>A</w:t><w:tab/><w:t>B</w:t></w:r></w:p><w:p><w:r><w:t>&lt;C&gt;</w:t></w:r></w:p>`
	assert.Equal(t, "A\tB\n<C>\n", docxXMLToText(xml))
}
