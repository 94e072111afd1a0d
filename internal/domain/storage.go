package domain

import "context"

// BlobKind selects the media-store folder/content handling for an object.
type BlobKind string

const (
	BlobKindImage    BlobKind = "image"
	BlobKindDocument BlobKind = "document"
)

// BlobStore is the external media host. Uploads are mandatory side
// effects of the operations that request them; deletes are best-effort
// and callers log rather than propagate their failures.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, folder string, kind BlobKind) (*FileRef, error)
	Delete(ctx context.Context, blobID string, kind BlobKind) error
}

// TxRunner executes fn inside a storage transaction where the backend
// supports one. Backends without multi-document transactions run fn
// directly; fn must therefore order its writes so that a partial failure
// leaves only retryable garbage (dependents deleted before owners).
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
