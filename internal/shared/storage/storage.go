package storage

import (
	"context"
	"errors"
	"io"
)

var ErrFileNotFound = errors.New("storage: file not found")

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type FileStorage interface {
	// Save durably writes content under name and returns the stored location.
	Save(ctx context.Context, name string, content []byte) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}
