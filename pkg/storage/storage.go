package storage

import (
	"context"
	"io"
)

// ImageStorage defines the contract for image storage providers.
type ImageStorage interface {
	// UploadImage stores the image under fileName and returns the URL
	// clients can fetch it from.
	UploadImage(ctx context.Context, r io.Reader, fileName string) (string, error)
	// DeleteImage removes a previously uploaded image by its URL.
	DeleteImage(ctx context.Context, fileURL string) error
}
