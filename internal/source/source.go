// Package source provides rewindable byte sources: every call to FreshView
// returns an independent reader positioned at the start of the same bytes.
// Trial parsing depends on this, since a failed attempt must never corrupt
// the stream seen by the next one.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

// StdinName is the path that selects standard input.
const StdinName = "-"

// Source supplies fresh, from-the-start views of the same bytes.
type Source interface {
	// FreshView returns a new reader over the whole content. The caller
	// closes it when done.
	FreshView() (io.ReadCloser, error)
	// Name identifies the source in messages.
	Name() string
}

// Error reports that a readable view could not be obtained.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("could not read file `%s`: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Open returns the source for path; "-" selects standard input.
// A file that cannot be opened fails immediately.
func Open(path string) (Source, error) {
	if path == StdinName {
		return NewStdin(), nil
	}
	f, err := NewFile(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// File reopens the file for every view.
type File struct {
	path string
}

// NewFile returns a source over the file at path. The file must exist and be
// readable; it is reopened for every view.
func NewFile(path string) (*File, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is the user's input file
	if err != nil {
		return nil, &Error{Name: path, Err: err}
	}
	_ = f.Close()
	return &File{path: path}, nil
}

// FreshView opens the file from the start.
func (f *File) FreshView() (io.ReadCloser, error) {
	r, err := os.Open(f.path)
	if err != nil {
		return nil, &Error{Name: f.path, Err: err}
	}
	return r, nil
}

// Name returns the file path.
func (f *File) Name() string {
	return f.path
}

// Buffered reads a non-seekable stream in full on the first view and replays
// the buffered bytes for every later view.
type Buffered struct {
	name string
	r    io.Reader

	once sync.Once
	data []byte
	err  error
}

// NewReader returns a source buffering r on first use.
func NewReader(name string, r io.Reader) *Buffered {
	return &Buffered{name: name, r: r}
}

// NewStdin returns a source over standard input.
func NewStdin() *Buffered {
	return NewReader("standard input", os.Stdin)
}

// FreshView returns a reader over the buffered content.
func (b *Buffered) FreshView() (io.ReadCloser, error) {
	b.once.Do(func() {
		b.data, b.err = io.ReadAll(b.r)
	})
	if b.err != nil {
		return nil, &Error{Name: b.name, Err: b.err}
	}
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

// Name returns the name given at construction.
func (b *Buffered) Name() string {
	return b.name
}

// Bytes serves views over an in-memory byte slice.
type Bytes struct {
	name string
	data []byte
}

// NewBytes returns a source over data.
func NewBytes(name string, data []byte) *Bytes {
	return &Bytes{name: name, data: data}
}

// FreshView returns a reader over data.
func (b *Bytes) FreshView() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

// Name returns the name given at construction.
func (b *Bytes) Name() string {
	return b.name
}
