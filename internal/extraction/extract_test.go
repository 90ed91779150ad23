package extraction

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText_PlainText(t *testing.T) {
	got, err := ExtractText("resume.txt", []byte("Jane Doe\r\n\r\n\r\n\r\nGo   developer, 5 years"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nGo developer, 5 years", got)
}

func TestExtractText_UnknownExtensionReadAsText(t *testing.T) {
	got, err := ExtractText("resume", []byte("React and SQL"))
	require.NoError(t, err)
	assert.Equal(t, "React and SQL", got)
}

func TestExtractText_InvalidUTF8Replaced(t *testing.T) {
	got, err := ExtractText("resume.md", []byte("Go\xff\xfeSQL"))
	require.NoError(t, err)
	assert.Equal(t, "Go�SQL", got)
}

func TestExtractText_DOCX(t *testing.T) {
	doc := `<?xml version="1.0"?><w:document><w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Go &amp; Kubernetes,</w:t><w:tab/><w:t>6 years</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	got, err := ExtractText("Jane.DOCX", buildDOCX(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo & Kubernetes, 6 years", got)
}

func TestExtractText_DOCXMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ExtractText("cv.docx", buf.Bytes())
	var extractErr *ExtractError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, FormatDOCX, extractErr.Format)
	assert.Contains(t, err.Error(), "cv.docx")
}

func TestExtractText_DOCXDocumentTooLarge(t *testing.T) {
	orig := maxDocumentXMLBytes
	maxDocumentXMLBytes = 4096
	t.Cleanup(func() { maxDocumentXMLBytes = orig })

	doc := "<w:document><w:body><w:p><w:r><w:t>" + strings.Repeat("Go ", 20000) + "</w:t></w:r></w:p></w:body></w:document>"
	data := buildDOCX(t, doc)
	require.Less(t, len(data), 4096, "compressed archive should be under the cap")

	_, err := ExtractText("bomb.docx", data)
	var extractErr *ExtractError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, FormatDOCX, extractErr.Format)
	assert.Contains(t, err.Error(), "exceeds 4096 bytes")

	// a document exactly at the cap is still read
	exact := "<w:t>" + strings.Repeat("a", 4096-len("<w:t></w:t>")) + "</w:t>"
	got, err := ExtractText("ok.docx", buildDOCX(t, exact))
	require.NoError(t, err)
	assert.Len(t, got, 4096-len("<w:t></w:t>"))
}

func TestExtractText_DOCXNotZip(t *testing.T) {
	_, err := ExtractText("cv.docx", []byte("plain text, not a zip"))
	var extractErr *ExtractError
	require.True(t, errors.As(err, &extractErr))
	assert.NotNil(t, extractErr.Unwrap())
}

func TestExtractText_InvalidPDF(t *testing.T) {
	_, err := ExtractText("cv.pdf", []byte("not a pdf"))
	var extractErr *ExtractError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, FormatPDF, extractErr.Format)
}

func TestExtractText_HTML(t *testing.T) {
	page := `<html><head><style>.x{}</style><script>var a = 1;</script></head>
<body><nav>Home | Jobs</nav>
<main><h1>Backend Engineer</h1><ul><li>Go</li><li>PostgreSQL</li></ul></main>
<footer>Copyright</footer></body></html>`

	got, err := ExtractText("job.html", []byte(page))
	require.NoError(t, err)
	assert.Contains(t, got, "Backend Engineer")
	assert.Contains(t, got, "Go\n")
	assert.Contains(t, got, "PostgreSQL")
	assert.NotContains(t, got, "var a")
	assert.NotContains(t, got, "Home | Jobs")
	assert.NotContains(t, got, "Copyright")
}

func TestExtractText_Unsupported(t *testing.T) {
	for _, name := range []string{"cv.doc", "photo.PNG", "cv.rtf"} {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractText(name, []byte("x"))
			var unsupported *UnsupportedFormatError
			require.True(t, errors.As(err, &unsupported))
		})
	}
}

func TestExtractText_SniffsExtensionless(t *testing.T) {
	t.Run("html", func(t *testing.T) {
		got, err := ExtractText("posting", []byte("<!DOCTYPE html><html><body><main><p>Go and SQL</p></main></body></html>"))
		require.NoError(t, err)
		assert.Equal(t, "Go and SQL", got)
	})

	t.Run("pdf", func(t *testing.T) {
		_, err := ExtractText("upload", []byte("%PDF-1.4\nnot really a pdf"))
		var extractErr *ExtractError
		require.True(t, errors.As(err, &extractErr))
		assert.Equal(t, FormatPDF, extractErr.Format)
	})

	t.Run("binary", func(t *testing.T) {
		png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d}
		_, err := ExtractText("upload", png)
		var unsupported *UnsupportedFormatError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, "image/png", unsupported.Extension)
	})
}

func TestExtractText_Empty(t *testing.T) {
	got, err := ExtractText("empty.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestCandidateNameFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Jane Doe.pdf", "Jane Doe"},
		{"uploads/john_smith.resume.docx", "john_smith.resume"},
		{`C:\Users\x\Ana Lima.txt`, "Ana Lima"},
		{"noext", "noext"},
		{"", "Unknown"},
		{".pdf", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CandidateNameFromFilename(tt.name))
		})
	}
}
