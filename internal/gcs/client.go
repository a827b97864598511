package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const scheme = "gs://"

// ErrObjectNotFound is returned when a gs:// URI names no object.
var ErrObjectNotFound = errors.New("object not found")

// Client is the concrete ObjectService backed by Google Cloud Storage.
// It assumes Application Default Credentials unless a credentials file is given.
type Client struct {
	client *storage.Client
}

// NewClient creates a storage client. credentialsFile may be empty.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Client{client: client}, nil
}

// Close releases the underlying storage client.
func (c *Client) Close() error {
	return c.client.Close()
}

// ReadObject downloads the file bytes from the given GCS URI.
func (c *Client) ReadObject(ctx context.Context, uri string) ([]byte, error) {
	bucketName, objectPath, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	rc, err := c.client.Bucket(bucketName).Object(objectPath).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("read %s: %w", uri, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("read %s: open reader: %w", uri, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: reading bytes: %w", uri, err)
	}

	return data, nil
}

// WriteObject uploads data to the given GCS URI. The new object only becomes
// visible once the writer is closed, so readers never see a partial upload.
func (c *Client) WriteObject(ctx context.Context, uri string, data []byte) error {
	bucketName, objectPath, err := ParseURI(uri)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := c.client.Bucket(bucketName).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType(objectPath)

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", uri, err)
	}

	// Close to finalize the upload
	if err := w.Close(); err != nil {
		return fmt.Errorf("write %s: finalize upload: %w", uri, err)
	}

	return nil
}

// IsURI reports whether p is a gs:// URI.
func IsURI(p string) bool {
	return strings.HasPrefix(p, scheme)
}

// ParseURI splits "gs://bucket/path/to/object" into bucket and object path.
func ParseURI(uri string) (bucket, object string, err error) {
	if !IsURI(uri) {
		return "", "", fmt.Errorf("invalid GCS URI: %s", uri)
	}

	trimmed := strings.TrimPrefix(uri, scheme)
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GCS URI (no object path): %s", uri)
	}

	return parts[0], parts[1], nil
}

// Filename extracts the filename from a GCS URI.
// e.g., "gs://bucket/folder/statement.xlsx" → "statement.xlsx"
func Filename(uri string) string {
	trimmed := strings.TrimPrefix(uri, scheme)

	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 {
		return trimmed
	}

	return path.Base(parts[1])
}

func contentType(objectPath string) string {
	switch strings.ToLower(path.Ext(objectPath)) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".csv":
		return "text/csv"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
