package ports

import "context"

// PhotoStore stores uploaded person photos.
type PhotoStore interface {
	// Put stores data under key and returns a URL the photo can be fetched from.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}
