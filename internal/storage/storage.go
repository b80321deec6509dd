// Package storage abstracts the object store that holds bill receipts.
package storage

import (
	"context"
	"io"
	"path"
)

// FileStore is hierarchical blob storage keyed by path.
type FileStore interface {
	Upload(ctx context.Context, path string, r io.Reader) error
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, paths []string) error
	// SignedURL returns a retrievable (time-limited or public) URL for a path.
	SignedURL(ctx context.Context, path string) (string, error)
}

// BillPath returns the storage path of one attachment: bills/<bill_id>/<name>.
func BillPath(billID, filename string) string {
	return path.Join("bills", billID, filename)
}

// BillPrefix returns the storage prefix everything of one bill lives under.
func BillPrefix(billID string) string {
	return "bills/" + billID + "/"
}
