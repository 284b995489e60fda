package validation

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"
)

// FieldError is a validation failure scoped to a single form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// WordBlocklist scans free-text fields for forbidden terms.
// Matches are case-insensitive and whole-word, so a blocked term is caught
// even when wrapped in punctuation, but not as a substring of a longer word.
type WordBlocklist struct {
	re *regexp.Regexp
}

// NewWordBlocklist compiles the configured terms into a single pattern.
// An empty list yields a blocklist that matches nothing.
func NewWordBlocklist(words []string) (*WordBlocklist, error) {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	if len(quoted) == 0 {
		return &WordBlocklist{}, nil
	}

	re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile forbidden word list: %w", err)
	}
	return &WordBlocklist{re: re}, nil
}

// Check fails with a field-scoped error when text contains any blocked term
func (b *WordBlocklist) Check(field, text string) error {
	if b.re == nil {
		return nil
	}
	if match := b.re.FindString(text); match != "" {
		return &FieldError{
			Field:   field,
			Message: fmt.Sprintf("contains a forbidden word: %q", strings.ToLower(match)),
		}
	}
	return nil
}

// CheckPrice fails when the price is negative
func CheckPrice(price float64) error {
	if price < 0 {
		return &FieldError{Field: "price", Message: "price must not be negative"}
	}
	return nil
}

// CheckImageUpload validates a freshly uploaded image file. A nil header means
// no re-upload happened and the already stored reference passes unchanged.
// The content type is sniffed from the file bytes, not trusted from the client.
func CheckImageUpload(field string, fh *multipart.FileHeader, allowedTypes []string, maxSize int64) error {
	if fh == nil {
		return nil
	}

	if fh.Size > maxSize {
		return &FieldError{
			Field:   field,
			Message: fmt.Sprintf("file exceeds the maximum size of %d bytes", maxSize),
		}
	}

	file, err := fh.Open()
	if err != nil {
		return &FieldError{Field: field, Message: "uploaded file could not be read"}
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && n == 0 {
		return &FieldError{Field: field, Message: "uploaded file could not be read"}
	}

	contentType := http.DetectContentType(buf[:n])
	for _, allowed := range allowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return &FieldError{
		Field:   field,
		Message: fmt.Sprintf("unsupported image type %q, allowed: %s", contentType, strings.Join(allowedTypes, ", ")),
	}
}
