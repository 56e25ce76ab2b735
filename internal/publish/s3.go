// Package publish uploads finished renders to S3-compatible storage.
package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/taigrr/pfmray/internal/config"
)

// UploadTimeout bounds a single upload.
const UploadTimeout = 2 * time.Minute

// ErrBadTarget is returned for upload targets that are not s3://bucket[/prefix].
var ErrBadTarget = errors.New("bad upload target")

// ObjectPutter is the part of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Uploader streams files into one bucket under a key prefix.
type S3Uploader struct {
	Client ObjectPutter
	Bucket string
	Prefix string
}

// Target is a parsed s3:// URL.
type Target struct {
	Bucket string
	Prefix string
}

// ParseTarget parses s3://bucket/prefix. The prefix may be empty.
func ParseTarget(raw string) (Target, error) {
	rest, ok := strings.CutPrefix(raw, "s3://")
	if !ok {
		return Target{}, fmt.Errorf("%w: %q", ErrBadTarget, raw)
	}
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Target{}, fmt.Errorf("%w: %q has no bucket", ErrBadTarget, raw)
	}
	return Target{Bucket: bucket, Prefix: strings.Trim(prefix, "/")}, nil
}

// NewS3Uploader creates a client from the environment-supplied credentials.
// The bucket and prefix come from target; S3.Bucket is used when target
// names no bucket.
func NewS3Uploader(cfg config.S3Config, target Target) (*S3Uploader, error) {
	bucket := target.Bucket
	if bucket == "" {
		bucket = cfg.Bucket
	}
	if bucket == "" {
		return nil, fmt.Errorf("%w: no bucket configured", ErrBadTarget)
	}

	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create s3 session: %w", err)
	}

	return &S3Uploader{
		Client: s3.New(sess),
		Bucket: bucket,
		Prefix: target.Prefix,
	}, nil
}

// Key returns the object key a local file is stored under.
func (u *S3Uploader) Key(file string) string {
	return path.Join(u.Prefix, filepath.Base(file))
}

// Upload streams the file at file to its key and returns the key.
func (u *S3Uploader) Upload(ctx context.Context, file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := u.Key(file)
	_, err = u.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.Bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(ContentType(file)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}

// ContentType picks the MIME type of a render by extension.
func ContentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png":
		return "image/png"
	case ".pfm":
		return "image/x-portable-floatmap"
	default:
		return "application/octet-stream"
	}
}
