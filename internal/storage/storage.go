package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"condo_ledger/internal/config"
)

// Archiver keeps a copy of generated report workbooks.
type Archiver interface {
	Archive(ctx context.Context, name string, body []byte, contentType string) (string, error)
}

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Archiver uploads reports to Amazon S3 (or a compatible API).
type S3Archiver struct {
	uploader  uploader
	bucket    string
	keyPrefix string
}

func NewS3Archiver(client *s3.Client, bucket, keyPrefix string) *S3Archiver {
	return newS3Archiver(manager.NewUploader(client), bucket, keyPrefix)
}

func newS3Archiver(u uploader, bucket, keyPrefix string) *S3Archiver {
	return &S3Archiver{
		uploader:  u,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}
}

func (a *S3Archiver) key(name string) string {
	if a.keyPrefix == "" {
		return name
	}
	return a.keyPrefix + "/" + name
}

// Archive uploads body under <prefix>/<name> and returns its s3:// location.
func (a *S3Archiver) Archive(ctx context.Context, name string, body []byte, contentType string) (string, error) {
	if a.bucket == "" {
		return "", errors.New("storage bucket is required")
	}
	if strings.TrimSpace(name) == "" {
		return "", errors.New("object name is required")
	}

	key := a.key(name)
	_, err := a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}

var _ Archiver = (*S3Archiver)(nil)

// FromConfig builds an S3 archiver, or returns nil when no bucket is configured.
func FromConfig(ctx context.Context, cfg config.StorageConfig) (Archiver, error) {
	if cfg.Bucket == "" {
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Region),
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3Archiver(client, cfg.Bucket, cfg.KeyPrefix), nil
}
