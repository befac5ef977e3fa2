package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/mesto/internal/filex"
	"github.com/dmitrijs2005/mesto/internal/logging"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const maxAvatarSize = 5 << 20

var ErrUploadNotConfigured = errors.New("avatar upload is not configured")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	readImage = filex.ReadImage
)

// S3Config points the uploader at an S3-compatible bucket. PublicBaseURL is
// the prefix under which uploaded objects are readable; it defaults to
// BaseEndpoint/Bucket.
type S3Config struct {
	Bucket        string
	Region        string
	BaseEndpoint  string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.BaseEndpoint != ""
}

// S3AvatarUploader stores avatar images in object storage and returns the
// URL to submit as the new avatar.
type S3AvatarUploader struct {
	cfg S3Config
	log logging.Logger
	now func() time.Time
}

func NewS3AvatarUploader(cfg S3Config, log logging.Logger) *S3AvatarUploader {
	return &S3AvatarUploader{cfg: cfg, log: log, now: time.Now}
}

func (u *S3AvatarUploader) objectKey(path string) string {
	d := u.now()
	ext := strings.ToLower(filepath.Ext(path))
	return fmt.Sprintf("avatars/%d/%02d/%v%s", d.Year(), d.Month(), uuid.New(), ext)
}

func (u *S3AvatarUploader) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(u.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.cfg.AccessKey,
			u.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(u.cfg.BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

func (u *S3AvatarUploader) publicURL(key string) string {
	base := u.cfg.PublicBaseURL
	if base == "" {
		base = strings.TrimRight(u.cfg.BaseEndpoint, "/") + "/" + u.cfg.Bucket
	}
	return strings.TrimRight(base, "/") + "/" + key
}

// Upload puts the image at path into the bucket and returns its public URL.
func (u *S3AvatarUploader) Upload(ctx context.Context, path string) (string, error) {
	if !u.cfg.Enabled() {
		return "", ErrUploadNotConfigured
	}

	data, contentType, err := readImage(path, maxAvatarSize)
	if err != nil {
		return "", err
	}

	c, err := u.client(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 client: %w", err)
	}

	key := u.objectKey(path)
	_, err = putObject(c, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.log.Error(ctx, "avatar upload failed", "op", "upload avatar", "key", key, "err", err)
		return "", fmt.Errorf("put object: %w", err)
	}

	u.log.Debug(ctx, "avatar uploaded", "key", key, "size", len(data))
	return u.publicURL(key), nil
}
