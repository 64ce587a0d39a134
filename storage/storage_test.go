package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	s3iface.S3API
	objects map[string][]byte
}

func (m *mockS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	data, ok := m.objects[aws.StringValue(in.Bucket)+"/"+aws.StringValue(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey: the specified key does not exist")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestFile(t *testing.T) {

	path := filepath.Join(t.TempDir(), "shares.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"keys":{"n":1,"k":1}}`), 0600))

	data, err := File{}.Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, `{"keys":{"n":1,"k":1}}`, string(data))

	_, err = File{}.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	var pathErr *fs.PathError
	require.True(t, errors.As(err, &pathErr))
}

func TestS3(t *testing.T) {

	backend := NewS3(&mockS3{objects: map[string][]byte{"bucket/dir/shares.json": []byte("{}")}})

	data, err := backend.Load(context.Background(), "s3://bucket/dir/shares.json")
	require.NoError(t, err)
	require.Equal(t, "{}", string(data))

	_, err = backend.Load(context.Background(), "s3://bucket/other.json")
	require.ErrorContains(t, err, "s3://bucket/other.json")

	_, err = backend.Load(context.Background(), "s3://bucket")
	require.Error(t, err)
}

func TestSplitS3Location(t *testing.T) {

	bucket, key, err := SplitS3Location("s3://bucket/a/b/c.yaml")
	require.NoError(t, err)
	require.Equal(t, "bucket", bucket)
	require.Equal(t, "a/b/c.yaml", key)

	for _, location := range []string{"bucket/key", "s3://", "s3:///key", "s3://bucket/"} {
		_, _, err = SplitS3Location(location)
		require.Error(t, err, location)
	}
}

func TestRouter(t *testing.T) {

	path := filepath.Join(t.TempDir(), "shares.json")
	require.NoError(t, os.WriteFile(path, []byte("local"), 0600))

	r := Router{File: File{}}

	data, err := r.Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "local", string(data))

	_, err = r.Load(context.Background(), "s3://bucket/key")
	require.Error(t, err)

	r.S3 = NewS3(&mockS3{objects: map[string][]byte{"bucket/key": []byte("remote")}})

	data, err = r.Load(context.Background(), "s3://bucket/key")
	require.NoError(t, err)
	require.Equal(t, "remote", string(data))

	data, err = Router{}.Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "local", string(data))

	require.True(t, NeedsS3([]string{path, "s3://bucket/key"}))
	require.False(t, NeedsS3([]string{path}))
}
