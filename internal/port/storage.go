package port

import (
	"context"
	"io"
)

// FileStore persists uploaded files to transient storage and returns an
// opaque path usable by the extraction router.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// ArchiveInput encapsulates the parameters for archiving an upload copy.
type ArchiveInput struct {
	Key         string
	Body        io.Reader
	ContentType string
}

// ObjectStorage abstracts the optional cloud archive for uploaded files.
type ObjectStorage interface {
	Upload(ctx context.Context, input ArchiveInput) error
}
