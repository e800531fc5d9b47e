// Package storage stores product images in an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"product-app/pkg/cloud"
	"product-app/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ObjectStore writes objects and reports the URL they are served from.
type ObjectStore interface {
	PutObject(ctx context.Context, key, contentType string, body []byte) error
	PublicURL(key string) string
}

// PutObjectAPI is the subset of *s3.Client used by S3Store.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Store struct {
	client  PutObjectAPI
	bucket  string
	baseURL string
	log     *zap.Logger
}

// NewS3Client creates an S3 client; a custom endpoint switches to path-style
// addressing, which LocalStack and MinIO expect.
func NewS3Client(cfg aws.Config, c utils.AWSConfig) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := cloud.Endpoint(c); endpoint != nil {
			o.BaseEndpoint = endpoint
			o.UsePathStyle = true
		}
	})
}

func NewS3Store(client PutObjectAPI, awsConfig utils.AWSConfig, s3Config utils.S3Config, log *zap.Logger) *S3Store {
	return &S3Store{
		client:  client,
		bucket:  s3Config.Bucket,
		baseURL: publicBaseURL(awsConfig, s3Config),
		log:     log.With(zap.String("storage", "s3")),
	}
}

func (s *S3Store) PutObject(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		s.log.Error("Failed to put object",
			zap.Error(err),
			zap.String("bucket", s.bucket),
			zap.String("key", key),
		)
		return fmt.Errorf("put object %s: %w", key, err)
	}

	s.log.Debug("Object stored",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int("size", len(body)),
	)
	return nil
}

// PublicURL joins the base URL with the key, escaping each path segment.
func (s *S3Store) PublicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + "/" + strings.Join(segments, "/")
}

func publicBaseURL(awsConfig utils.AWSConfig, s3Config utils.S3Config) string {
	switch {
	case s3Config.PublicBaseURL != "":
		return strings.TrimRight(s3Config.PublicBaseURL, "/")
	case awsConfig.Endpoint != "":
		return strings.TrimRight(awsConfig.Endpoint, "/") + "/" + s3Config.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s3Config.Bucket, awsConfig.Region)
	}
}
