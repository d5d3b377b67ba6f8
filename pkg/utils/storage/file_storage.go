package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	BrochureBucket = "brochures"
	GalleryBucket  = "gallery"

	MaxBrochureSize = 20 * 1024 * 1024 // 20MB
)

var (
	s3Client      *s3.Client
	publicBaseURL string
)

// Config holds the object store connection details.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

// InitStorage connects to the S3-compatible object store that holds
// brochures and gallery images.
func InitStorage(cfg Config) error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("storage endpoint is not set")
	}

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %v", err)
	}

	s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
		o.Region = "auto"
	})

	publicBaseURL = strings.TrimSuffix(cfg.PublicURL, "/")
	if publicBaseURL == "" {
		publicBaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
	}

	return nil
}

// ObjectKey builds a unique, URL-safe object key from a display title
// and the original filename.
func ObjectKey(title, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%s-%s%s", slug.Make(title), uuid.New().String(), ext)
}

func UploadFile(ctx context.Context, bucket, key, contentType string, body io.Reader) error {
	_, err := s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("could not upload to storage: %v", err)
	}
	return nil
}

func DeleteFile(ctx context.Context, bucket, key string) error {
	_, err := s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return err
}

// PublicURL resolves the public download URL for a stored object.
// Returns "" when the key is missing so callers can surface a distinct
// download error without failing the request that triggered it.
func PublicURL(bucket, key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", publicBaseURL, bucket, key)
}
