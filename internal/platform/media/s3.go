// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/taibuivan/dishdiary/internal/platform/apperr"
	"github.com/taibuivan/dishdiary/internal/platform/ctxutil"
	"github.com/taibuivan/dishdiary/pkg/uuid"
)

// ObjectAPI is the subset of [s3.Client] used by [S3Storage].
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config locates the bucket and the public URL prefix of its objects.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	KeyPrefix       string
}

// S3Storage implements [Storage] on any S3-compatible store.
type S3Storage struct {
	api     ObjectAPI
	bucket  string
	baseURL string
	prefix  string
}

// NewS3Storage wraps an existing object API.
func NewS3Storage(api ObjectAPI, cfg S3Config) *S3Storage {
	return &S3Storage{
		api:     api,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		prefix:  strings.Trim(cfg.KeyPrefix, "/"),
	}
}

// NewS3Client builds an [s3.Client] from static credentials when given, or
// from the default AWS credential chain otherwise.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	options := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("media: load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Upload stores the image under "<prefix>/<uuid>.<ext>".
func (s *S3Storage) Upload(ctx context.Context, upload Upload) (*Object, error) {
	extension, contentType, err := Inspect(upload)
	if err != nil {
		return nil, err
	}

	key := uuid.New() + extension
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        upload.Body,
		ContentType: aws.String(contentType),
	}
	if upload.Size > 0 {
		input.ContentLength = aws.Int64(upload.Size)
	}

	if _, err := s.api.PutObject(ctx, input); err != nil {
		return nil, apperr.Upstream("Media host", fmt.Errorf("put %s: %w", key, err))
	}

	ctxutil.GetLogger(ctx).DebugContext(ctx, "media_uploaded", slog.String("key", key))

	return &Object{Key: key, URL: s.baseURL + "/" + key, ContentType: contentType}, nil
}

// Delete removes the object. Deleting a missing key succeeds.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperr.Upstream("Media host", fmt.Errorf("delete %s: %w", key, err))
	}
	return nil
}
