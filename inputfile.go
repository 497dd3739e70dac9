package openai

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/florianilch/openai-client-go/internal/form"
)

// InputFile is the source of a binary upload: a filesystem path, an
// in-memory byte slice, or an arbitrary reader. The zero value is invalid.
type InputFile struct {
	filename string
	open     func() (io.ReadCloser, error)
}

// FileFromPath uploads the file at path. The file is opened when the
// request body is built; open failures surface as *FileError.
func FileFromPath(path string) InputFile {
	return InputFile{
		filename: filepath.Base(path),
		open: func() (io.ReadCloser, error) {
			f, err := os.Open(path)
			if err != nil {
				return nil, &FileError{Op: "read", Path: path, Err: err}
			}
			return f, nil
		},
	}
}

// FileFromBytes uploads data under the given filename.
func FileFromBytes(filename string, data []byte) InputFile {
	return InputFile{
		filename: filename,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// FileFromReader uploads everything read from r under the given filename.
// The reader is consumed once; the resulting request body cannot be
// replayed.
func FileFromReader(filename string, r io.Reader) InputFile {
	return InputFile{
		filename: filename,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(r), nil
		},
	}
}

// Filename returns the name the upload is sent under.
func (f InputFile) Filename() string {
	return f.filename
}

// valid reports whether the InputFile carries a source.
func (f InputFile) valid() bool {
	return f.open != nil
}

// encode writes the file as a multipart part under field.
func (f InputFile) encode(w *form.Writer, field string) error {
	if !f.valid() {
		return invalidArgumentf("missing file for field %q", field)
	}

	r, err := f.open()
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	return w.File(field, f.filename, "", r)
}
