// Package extraction turns uploaded resume and job description files into cleaned plain text.
package extraction

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// Format names reported in errors
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatHTML = "html"
	FormatText = "text"
)

// unsupportedExtensions are binary formats that cannot be read as text
var unsupportedExtensions = map[string]bool{
	".doc": true, ".rtf": true, ".odt": true, ".pages": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".zip": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
}

var xmlTags = regexp.MustCompile(`<[^>]+>`)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// maxDocumentXMLBytes caps the decompressed size of word/document.xml
var maxDocumentXMLBytes int64 = 64 << 20

// ExtractText extracts cleaned plain text from a document, choosing the reader by the
// file extension. Files without an extension are identified by their content; other
// unknown extensions are read as UTF-8 text.
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if unsupportedExtensions[ext] {
		return "", &UnsupportedFormatError{Extension: ext}
	}

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = extractPDF(filename, data)
	case ".docx":
		text, err = extractDOCX(filename, data)
	case ".html", ".htm":
		text, err = ExtractHTMLText(string(data))
		if err != nil {
			err = &ExtractError{FileName: filename, Format: FormatHTML, Message: "invalid html", Cause: err}
		}
	case "":
		text, err = extractSniffed(filename, data)
	default:
		text = strings.ToValidUTF8(string(data), "\uFFFD")
	}
	if err != nil {
		return "", err
	}

	return CleanText(text), nil
}

// extractSniffed picks a reader from the detected content type
func extractSniffed(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/pdf"):
		return extractPDF(filename, data)
	case mt.Is(docxMIME):
		return extractDOCX(filename, data)
	case mt.Is("text/html"):
		text, err := ExtractHTMLText(string(data))
		if err != nil {
			return "", &ExtractError{FileName: filename, Format: FormatHTML, Message: "invalid html", Cause: err}
		}
		return text, nil
	case isText(mt):
		return strings.ToValidUTF8(string(data), "\uFFFD"), nil
	default:
		return "", &UnsupportedFormatError{Extension: mt.String()}
	}
}

func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// extractPDF reads the plain text layer of a PDF. The pdf reader panics on some
// malformed files, so panics are reported as extraction errors.
func extractPDF(filename string, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractError{FileName: filename, Format: FormatPDF, Message: fmt.Sprintf("malformed pdf: %v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractError{FileName: filename, Format: FormatPDF, Message: "failed to open pdf", Cause: err}
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", &ExtractError{FileName: filename, Format: FormatPDF, Message: "failed to read text layer", Cause: err}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", &ExtractError{FileName: filename, Format: FormatPDF, Message: "failed to read text layer", Cause: err}
	}
	return buf.String(), nil
}

// extractDOCX reads word/document.xml out of the docx archive and strips its markup.
func extractDOCX(filename string, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractError{FileName: filename, Format: FormatDOCX, Message: "not a docx archive", Cause: err}
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", &ExtractError{FileName: filename, Format: FormatDOCX, Message: "failed to open document.xml", Cause: err}
		}
		docXML, err = io.ReadAll(io.LimitReader(rc, maxDocumentXMLBytes+1))
		_ = rc.Close()
		if err != nil {
			return "", &ExtractError{FileName: filename, Format: FormatDOCX, Message: "failed to read document.xml", Cause: err}
		}
		if int64(len(docXML)) > maxDocumentXMLBytes {
			return "", &ExtractError{
				FileName: filename,
				Format:   FormatDOCX,
				Message:  fmt.Sprintf("document.xml exceeds %d bytes", maxDocumentXMLBytes),
			}
		}
		break
	}
	if len(docXML) == 0 {
		return "", &ExtractError{FileName: filename, Format: FormatDOCX, Message: "no word/document.xml found"}
	}

	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")
	txt := xmlTags.ReplaceAllString(xml, "")
	return html.UnescapeString(txt), nil
}

// ExtractHTMLText parses an HTML document and returns the text of its main content,
// with scripts, styles and page chrome removed. Block elements end a line.
func ExtractHTMLText(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, footer, header, .cookie-banner, .ad, .ads").Remove()
	doc.Find("p, div, li, br, h1, h2, h3, h4, h5, h6, tr, section, article").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	var main *goquery.Selection
	for _, selector := range []string{".job-description", "#job-description", "main", "article"} {
		if sel := doc.Find(selector); sel.Length() > 0 {
			main = sel.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	return main.Text(), nil
}

// CandidateNameFromFilename derives a display name from an uploaded file name by
// dropping the directory and extension. Blank names become "Unknown".
func CandidateNameFromFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == "/" {
		return "Unknown"
	}
	return base
}
