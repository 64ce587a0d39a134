// Package storage implements the backends from which share documents are loaded.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Scheme prefixes locations served by the [S3] backend.
const S3Scheme = "s3://"

// Backend loads the content of a document from its location.
type Backend interface {
	Load(ctx context.Context, location string) ([]byte, error)
}

// File loads documents from the local file system.
type File struct{}

// Load reads the file at path. Errors are those of [os.ReadFile].
func (File) Load(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

// S3 loads documents stored in S3 buckets, at locations
// of the form s3://bucket/key.
type S3 struct {
	client s3iface.S3API
}

// NewS3 creates a new S3 backend from an S3 client.
func NewS3(client s3iface.S3API) *S3 {
	return &S3{client: client}
}

// Load downloads the object at location.
func (b *S3) Load(ctx context.Context, location string) (data []byte, err error) {

	bucket, key, err := SplitS3Location(location)
	if err != nil {
		return nil, err
	}

	out, err := b.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	defer out.Body.Close()

	if data, err = io.ReadAll(out.Body); err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}

	return
}

// SplitS3Location splits s3://bucket/key into its bucket and key.
func SplitS3Location(location string) (bucket, key string, err error) {

	if !strings.HasPrefix(location, S3Scheme) {
		return "", "", fmt.Errorf("invalid S3 location %q: missing %s prefix", location, S3Scheme)
	}

	bucket, key, _ = strings.Cut(strings.TrimPrefix(location, S3Scheme), "/")

	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 location %q: expected %sbucket/key", location, S3Scheme)
	}

	return
}

// Router dispatches each location to the backend serving its scheme.
// Locations without a known scheme are local files.
type Router struct {
	File Backend
	// S3 is optional; s3:// locations fail if it is nil.
	S3 Backend
}

// Load loads location from the matching backend.
func (r Router) Load(ctx context.Context, location string) ([]byte, error) {

	if strings.HasPrefix(location, S3Scheme) {
		if r.S3 == nil {
			return nil, fmt.Errorf("%s: no S3 backend configured", location)
		}
		return r.S3.Load(ctx, location)
	}

	if r.File == nil {
		return File{}.Load(ctx, location)
	}

	return r.File.Load(ctx, location)
}

// NeedsS3 reports whether any of the locations is an S3 location.
func NeedsS3(locations []string) bool {
	for _, location := range locations {
		if strings.HasPrefix(location, S3Scheme) {
			return true
		}
	}
	return false
}
