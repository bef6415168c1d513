package descriptor

import (
	"io"
	"os"

	"github.com/kbukum/subprocess/errors"
)

// Kind identifies what a Descriptor wraps.
type Kind int

const (
	// Std is one of the three standard streams.
	Std Kind = iota
	// File is an opened file owned by the descriptor.
	File
	// PipeRead is the read end of an OS pipe.
	PipeRead
	// PipeWrite is the write end of an OS pipe.
	PipeWrite
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Std:
		return "std"
	case File:
		return "file"
	case PipeRead:
		return "pipe_read"
	case PipeWrite:
		return "pipe_write"
	default:
		return "unknown"
	}
}

// Descriptor is an owned handle to a readable or writable OS endpoint.
type Descriptor struct {
	file   *os.File
	kind   Kind
	path   string // backing file path, empty unless kind == File
	linked *Descriptor
	closed bool
}

// Open opens path read-only. The returned descriptor owns the file.
func Open(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.OS("open "+path, err)
	}
	return &Descriptor{file: f, kind: File, path: path}, nil
}

// Create opens path for writing, creating it if needed and truncating it
// otherwise. The returned descriptor owns the file.
func Create(path string) (*Descriptor, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errors.OS("create "+path, err)
	}
	return &Descriptor{file: f, kind: File, path: path}, nil
}

// Append opens path for appending, creating it if needed. The returned
// descriptor owns the file.
func Append(path string) (*Descriptor, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.OS("append "+path, err)
	}
	return &Descriptor{file: f, kind: File, path: path}, nil
}

// Kind returns what the descriptor wraps.
func (d *Descriptor) Kind() Kind { return d.kind }

// File returns the underlying file handle. It is what gets placed into a
// child's stdin/stdout/stderr slot at spawn time.
func (d *Descriptor) File() *os.File { return d.file }

// Fd returns the raw OS file descriptor number.
func (d *Descriptor) Fd() uintptr { return d.file.Fd() }

// Path returns the backing file path, or "" if the descriptor does not own
// an opened file.
func (d *Descriptor) Path() string { return d.path }

// IsStd reports whether the descriptor is one of the protected standard
// streams.
func (d *Descriptor) IsStd() bool { return d.kind == Std }

// IsLinked reports whether the descriptor has a pipe partner.
func (d *Descriptor) IsLinked() bool { return d.linked != nil }

// IsClosed reports whether Close has already run.
func (d *Descriptor) IsClosed() bool { return d.closed }

// Link establishes the partner relation between two descriptors, each side
// pointing at the other. It fails with a usage error if either side is
// already linked: a second link would let two writers believe they own the
// close of the same reader.
func Link(a, b *Descriptor) error {
	if a.linked != nil || b.linked != nil {
		return errors.Usage("descriptor is already linked to another descriptor")
	}
	a.linked = b
	b.linked = a
	return nil
}

// Close closes the underlying handle. It is idempotent and never closes a
// standard stream. Closing clears the owned-file marker.
func (d *Descriptor) Close() error {
	if d.kind == Std || d.closed {
		return nil
	}
	d.closed = true
	d.path = ""
	if err := d.file.Close(); err != nil {
		return errors.OS("close", err)
	}
	return nil
}

// CloseLinked closes the descriptor's pipe partner, not the descriptor
// itself. No-op when unlinked.
func (d *Descriptor) CloseLinked() error {
	if d.linked == nil {
		return nil
	}
	return d.linked.Close()
}

// WriteString writes s fully to the descriptor. A short write is an OS
// error. Intended for inline string-to-stdin injection, not bulk I/O.
func (d *Descriptor) WriteString(s string) error {
	n, err := io.WriteString(d.file, s)
	if err != nil {
		return errors.OS("write", err)
	}
	if n < len(s) {
		return errors.OS("write", io.ErrShortWrite)
	}
	return nil
}

// ReadAll drains the descriptor until EOF and returns the accumulated
// bytes as a string. Intended for in-memory capture, not bulk I/O.
func (d *Descriptor) ReadAll() (string, error) {
	b, err := io.ReadAll(d.file)
	if err != nil {
		return "", errors.OS("read", err)
	}
	return string(b), nil
}
