package extraction

import "fmt"

// UnsupportedFormatError is returned for file types text cannot be extracted from
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q: supported formats are pdf, docx, html, txt and md", e.Extension)
}

// ExtractError represents a failure to read text out of a document
type ExtractError struct {
	FileName string
	Format   string
	Message  string
	Cause    error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract %s text from %s: %s: %v", e.Format, e.FileName, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to extract %s text from %s: %s", e.Format, e.FileName, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}
