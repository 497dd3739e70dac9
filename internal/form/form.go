// Package form builds multipart/form-data request bodies for binary upload
// endpoints (files, audio, images).
package form

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
)

// Writer wraps a multipart.Writer with helpers for the field shapes the API
// expects.
type Writer struct {
	mw *multipart.Writer
}

// NewWriter returns a Writer emitting the encoded form into w.
func NewWriter(w io.Writer) *Writer {
	mw := multipart.NewWriter(w)
	// Unique boundary per request; the standard library's random boundary
	// would do, but an explicit UUID keeps it recognizable in captures.
	_ = mw.SetBoundary("FormBoundary" + strings.ReplaceAll(uuid.NewString(), "-", ""))

	return &Writer{mw: mw}
}

// Field writes a plain text field.
func (w *Writer) Field(name, value string) error {
	return w.mw.WriteField(name, value)
}

// OptionalField writes a plain text field when value is non-empty.
func (w *Writer) OptionalField(name, value string) error {
	if value == "" {
		return nil
	}
	return w.mw.WriteField(name, value)
}

// File writes a file part. contentType defaults to application/octet-stream
// when empty.
func (w *Writer) File(field, filename, contentType string, r io.Reader) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
		escapeQuotes(field), escapeQuotes(filename)))
	header.Set("Content-Type", contentType)

	part, err := w.mw.CreatePart(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(part, r)
	return err
}

// Close finalizes the form body. Must be called before sending.
func (w *Writer) Close() error {
	return w.mw.Close()
}

// FormDataContentType returns the Content-Type header value including the
// boundary.
func (w *Writer) FormDataContentType() string {
	return w.mw.FormDataContentType()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
