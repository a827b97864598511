// Package store persists record collections. Every save writes the whole
// collection; there is no partial update and no separate database.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dvloznov/moneylover-importer/internal/domain"
	"github.com/dvloznov/moneylover-importer/internal/gcs"
)

var (
	// ErrNotFound is returned when the path holds no file or object.
	ErrNotFound = errors.New("record file not found")

	// ErrMalformed is returned when a file is not a serialized record array.
	ErrMalformed = errors.New("malformed record file")
)

// Store loads and saves whole record collections.
type Store interface {
	Load(ctx context.Context, path string) (domain.Collection, error)
	Save(ctx context.Context, path string, c domain.Collection) error
}

// Backend reads and replaces whole byte blobs. A Write must leave either the
// old or the new content behind, never a mix.
type Backend interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, data []byte) error
}

// Records is the Store implementation: the JSON codec over a Backend.
type Records struct {
	backend Backend
}

// New creates a record store on top of backend.
func New(backend Backend) *Records {
	return &Records{backend: backend}
}

// Load reads and decodes the collection at path.
func (s *Records) Load(ctx context.Context, path string) (domain.Collection, error) {
	data, err := s.backend.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	c, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}

// Save encodes c and replaces the content at path.
func (s *Records) Save(ctx context.Context, path string, c domain.Collection) error {
	data, err := Encode(c)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := s.backend.Write(ctx, path, data); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Router sends gs:// paths to Remote and everything else to Local.
type Router struct {
	Local  Backend
	Remote Backend // nil when object storage is not configured
}

func (r *Router) pick(path string) (Backend, error) {
	if gcs.IsURI(path) {
		if r.Remote == nil {
			return nil, fmt.Errorf("%s: object storage is not configured", path)
		}
		return r.Remote, nil
	}
	return r.Local, nil
}

func (r *Router) Read(ctx context.Context, path string) ([]byte, error) {
	b, err := r.pick(path)
	if err != nil {
		return nil, err
	}
	return b.Read(ctx, path)
}

func (r *Router) Write(ctx context.Context, path string, data []byte) error {
	b, err := r.pick(path)
	if err != nil {
		return err
	}
	return b.Write(ctx, path, data)
}
