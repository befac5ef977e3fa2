package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/mesto/internal/filex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type putRecorder struct {
	bucket, key, contentType string
	body                     []byte
	err                      error
}

func stubS3(t *testing.T, rec *putRecorder) {
	t.Helper()
	oldLoad, oldPut, oldRead := loadDefaultAWSConfig, putObject, readImage
	t.Cleanup(func() {
		loadDefaultAWSConfig, putObject, readImage = oldLoad, oldPut, oldRead
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{Region: "us-east-1"}, nil
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		rec.bucket = aws.ToString(in.Bucket)
		rec.key = aws.ToString(in.Key)
		rec.contentType = aws.ToString(in.ContentType)
		rec.body, _ = io.ReadAll(in.Body)
		if rec.err != nil {
			return nil, rec.err
		}
		return &s3.PutObjectOutput{}, nil
	}
	readImage = func(path string, maxSize int64) ([]byte, string, error) {
		return []byte("png-bytes"), "image/png", nil
	}
}

func testS3Config() S3Config {
	return S3Config{
		Bucket:       "mesto",
		Region:       "us-east-1",
		BaseEndpoint: "http://localhost:9000/",
		AccessKey:    "minio",
		SecretKey:    "minio123",
	}
}

func TestS3AvatarUploader_Upload(t *testing.T) {
	rec := &putRecorder{}
	stubS3(t, rec)

	u := NewS3AvatarUploader(testS3Config(), testLog)
	u.now = func() time.Time { return time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC) }

	url, err := u.Upload(context.Background(), "/home/me/Me.PNG")
	require.NoError(t, err)

	assert.Equal(t, "mesto", rec.bucket)
	assert.True(t, strings.HasPrefix(rec.key, "avatars/2025/03/"), rec.key)
	assert.True(t, strings.HasSuffix(rec.key, ".png"), rec.key)
	assert.Equal(t, "image/png", rec.contentType)
	assert.Equal(t, []byte("png-bytes"), rec.body)
	assert.Equal(t, "http://localhost:9000/mesto/"+rec.key, url)
}

func TestS3AvatarUploader_PublicBaseURL(t *testing.T) {
	rec := &putRecorder{}
	stubS3(t, rec)

	cfg := testS3Config()
	cfg.PublicBaseURL = "https://cdn.example.com/"
	url, err := NewS3AvatarUploader(cfg, testLog).Upload(context.Background(), "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+rec.key, url)
}

func TestS3AvatarUploader_NotConfigured(t *testing.T) {
	_, err := NewS3AvatarUploader(S3Config{}, testLog).Upload(context.Background(), "a.png")
	require.ErrorIs(t, err, ErrUploadNotConfigured)
}

func TestS3AvatarUploader_PutError(t *testing.T) {
	rec := &putRecorder{err: errors.New("access denied")}
	stubS3(t, rec)

	_, err := NewS3AvatarUploader(testS3Config(), testLog).Upload(context.Background(), "a.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "put object")
}

func TestS3AvatarUploader_RejectsNonImage(t *testing.T) {
	stubS3(t, &putRecorder{})
	readImage = func(path string, maxSize int64) ([]byte, string, error) {
		return nil, "", filex.ErrNotAnImage
	}

	_, err := NewS3AvatarUploader(testS3Config(), testLog).Upload(context.Background(), "notes.txt")
	require.ErrorIs(t, err, filex.ErrNotAnImage)
}
