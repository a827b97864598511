package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dvloznov/moneylover-importer/internal/gcs"
)

// Object is a Backend on Google Cloud Storage for gs:// paths.
type Object struct {
	svc gcs.ObjectService
}

// NewObject creates an object backend over svc.
func NewObject(svc gcs.ObjectService) *Object {
	return &Object{svc: svc}
}

func (o *Object) Read(ctx context.Context, uri string) ([]byte, error) {
	data, err := o.svc.ReadObject(ctx, uri)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotFound) {
			return nil, fmt.Errorf("read %s: %w", uri, ErrNotFound)
		}
		return nil, err
	}
	return data, nil
}

func (o *Object) Write(ctx context.Context, uri string, data []byte) error {
	return o.svc.WriteObject(ctx, uri, data)
}
