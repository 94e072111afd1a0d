package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"placement-cell-backend/internal/domain"
)

// Config holds credentials for an S3-compatible media store. Endpoint is
// left empty for AWS itself and set for compatible providers.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Endpoint        string
	Bucket          string
}

// Store implements domain.BlobStore on top of an S3-compatible bucket.
type Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

var _ domain.BlobStore = (*Store)(nil)

// New creates the S3 client and resolves the public base URL objects are
// served from.
func New(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("blobstore: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String("https://" + cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	if cfg.Endpoint != "" {
		baseURL = fmt.Sprintf("https://%s/%s", cfg.Endpoint, cfg.Bucket)
	}

	return &Store{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// Upload stores data under a random key inside folder and returns the
// public URL plus the key needed to delete the object later.
func (s *Store) Upload(ctx context.Context, data []byte, folder string, kind domain.BlobKind) (*domain.FileRef, error) {
	key := path.Join(folder, uuid.NewString())

	contentType := http.DetectContentType(data)
	if kind == domain.BlobKindDocument {
		contentType = "application/pdf"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("blobstore: put %s: %w", key, err)
	}

	return &domain.FileRef{
		URL:    s.baseURL + "/" + key,
		BlobID: key,
	}, nil
}

// Delete removes an object. Callers treat failures as non-fatal.
func (s *Store) Delete(ctx context.Context, blobID string, _ domain.BlobKind) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(blobID),
	})
	if err != nil {
		return fmt.Errorf("blobstore: delete %s: %w", blobID, err)
	}
	return nil
}
