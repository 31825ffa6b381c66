package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	now := time.UnixMilli(1760000000000)

	key := NewKey("resume", "My CV.PDF", now)
	assert.Regexp(t, regexp.MustCompile(`^resume-1760000000000-[0-9a-f]{8}\.pdf$`), key)

	key = NewKey("cover letter", "letter", now)
	assert.Regexp(t, regexp.MustCompile(`^cover_letter-1760000000000-[0-9a-f]{8}$`), key)

	key = NewKey("", "../../etc/passwd.txt", now)
	assert.Regexp(t, regexp.MustCompile(`^upload-1760000000000-[0-9a-f]{8}\.txt$`), key)
	assert.NoError(t, validateKey(key))
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"resume-1-abcd.pdf", false},
		{"", true},
		{"../escape", true},
		{"nested/key", true},
		{`win\key`, true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := validateKey(tt.key)
			if tt.wantErr {
				var keyErr *KeyError
				assert.ErrorAs(t, err, &keyErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocalStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
	ctx := context.Background()

	loc, err := store.Put(ctx, "resume-1.txt", []byte("hello"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "resume-1.txt"), loc)

	onDisk, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(onDisk))

	data, err := store.Get(ctx, "resume-1.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, store.Delete(ctx, "resume-1.txt"))
	require.NoError(t, store.Delete(ctx, "resume-1.txt"))

	_, err = store.Get(ctx, "resume-1.txt")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestLocalStore_RejectsBadKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "../x", []byte("x"), "")
	var keyErr *KeyError
	assert.ErrorAs(t, err, &keyErr)
}

func TestLocalStore_CanceledContext(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Put(ctx, "a.txt", []byte("x"), "")
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	fail    error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_RoundTrip(t *testing.T) {
	fake := newFakeS3()
	store := &S3Store{client: fake, bucket: "applicants"}
	ctx := context.Background()

	loc, err := store.Put(ctx, "resume-1.pdf", []byte("%PDF"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "s3://applicants/resume-1.pdf", loc)
	assert.Equal(t, "application/pdf", fake.types["resume-1.pdf"])

	data, err := store.Get(ctx, "resume-1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	require.NoError(t, store.Delete(ctx, "resume-1.pdf"))
	_, err = store.Get(ctx, "resume-1.pdf")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestS3Store_BackendError(t *testing.T) {
	cause := errors.New("connection reset")
	store := &S3Store{client: &fakeS3{fail: cause}, bucket: "applicants"}

	_, err := store.Put(context.Background(), "resume-1.pdf", []byte("x"), "")
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "s3", backendErr.Backend)
	assert.ErrorIs(t, err, cause)
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{})
	assert.Error(t, err)
}
