package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/storage"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
)

type fakeS3 struct {
	objects map[string]string
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, _ := io.ReadAll(in.Body)
	f.objects[*in.Key] = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	v, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(v))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[*in.Key]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestS3Storage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{objects: map[string]string{}}
	s := storage.NewS3StorageWithClient(client, "payroll-archive", "settlements")

	loc, err := s.Save(ctx, "0102_20240131.txt", []byte("0102;20240131\n"))
	assert.NoError(t, err)
	assert.Equal(t, "s3://payroll-archive/settlements/0102_20240131.txt", loc)
	assert.Contains(t, client.objects, "settlements/0102_20240131.txt")

	ok, err := s.Exists(ctx, "0102_20240131.txt")
	assert.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Open(ctx, "0102_20240131.txt")
	assert.NoError(t, err)
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "0102;20240131\n", string(body))

	assert.NoError(t, s.Remove(ctx, "0102_20240131.txt"))

	ok, err = s.Exists(ctx, "0102_20240131.txt")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Open(ctx, "0102_20240131.txt")
	assert.True(t, errors.Is(err, storage.ErrFileNotFound))
}
