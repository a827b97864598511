package gcs

import (
	"context"
)

// ObjectService provides an interface for cloud storage object operations.
// This interface enables mocking and testing of storage functionality.
type ObjectService interface {
	// ReadObject downloads the object bytes at the given gs:// URI.
	ReadObject(ctx context.Context, uri string) ([]byte, error)

	// WriteObject replaces the object at the given gs:// URI with data.
	WriteObject(ctx context.Context, uri string, data []byte) error
}
