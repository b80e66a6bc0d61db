package pdfdoc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDocument matches every *InvalidDocumentError.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrEncoding matches every *EncodingError.
	ErrEncoding = errors.New("text not encodable")
)

// InvalidDocumentError reports a structural problem found before any bytes
// were written.
type InvalidDocumentError struct {
	Reason string
}

func (e *InvalidDocumentError) Error() string {
	return "invalid document: " + e.Reason
}

func (e *InvalidDocumentError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// EncodingError reports a rune that has no WinAnsiEncoding byte. Page and
// Line are zero-based indices into the Document.
type EncodingError struct {
	Page int
	Line int
	Rune rune
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("page %d line %d: %U %q has no WinAnsiEncoding byte", e.Page, e.Line, e.Rune, e.Rune)
}

func (e *EncodingError) Is(target error) bool {
	return target == ErrEncoding
}
