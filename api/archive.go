package api

import (
	"context"
	"io"

	"github.com/viant/afs"
)

// Archive is an opaque handle to one unit of input: a name and a byte
// stream. The engine never inspects an archive's content; it only ever
// hands archives to an Analyzer, which is responsible for turning them
// into an Element tree.
type Archive interface {
	// Name returns a human-readable identifier for the archive, typically
	// a file name or URL. Used in messages only.
	Name() string

	// Open returns a reader over the archive's raw bytes. Callers must
	// close the returned reader. Open may be called more than once; each
	// call yields an independent reader.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileArchive is an Archive backed by a location addressable through afs,
// which lets an analyzer read local files, in-memory blobs, or remote
// object storage through a single interface.
type FileArchive struct {
	url string
	fs  afs.Service
}

// NewFileArchive creates an Archive rooted at url. When fs is nil the
// default afs service (local filesystem plus registered schemes) is used.
func NewFileArchive(url string, fs afs.Service) *FileArchive {
	if fs == nil {
		fs = afs.New()
	}
	return &FileArchive{url: url, fs: fs}
}

func (a *FileArchive) Name() string {
	return a.url
}

func (a *FileArchive) Open(ctx context.Context) (io.ReadCloser, error) {
	return a.fs.OpenURL(ctx, a.url)
}

// InMemoryArchive is an Archive over bytes already resident in memory,
// useful for tests and for embedding synthetic archives in a pipeline.
type InMemoryArchive struct {
	name string
	data []byte
}

// NewInMemoryArchive wraps data as a named Archive.
func NewInMemoryArchive(name string, data []byte) *InMemoryArchive {
	return &InMemoryArchive{name: name, data: data}
}

func (a *InMemoryArchive) Name() string { return a.name }

func (a *InMemoryArchive) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(&byteReader{data: a.data}), nil
}

type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
