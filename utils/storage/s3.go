package storage

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/config"
)

// ObjectStore is the boundary to the external binary store. Upload failures
// are fatal to the enclosing operation; Delete failures are treated as
// best-effort by callers (logged, never blocking).
type ObjectStore interface {
	Upload(ctx context.Context, body io.Reader, key, contentType string) (string, error)
	Presign(key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type S3Store struct {
	client        *s3.Client
	uploader      *manager.Uploader
	presignClient *s3.PresignClient
	cfg           config.StorageConfig
}

// NewS3Store builds the store from the default credential provider chain
// (env vars locally, IAM role in production).
func NewS3Store(ctx context.Context) (*S3Store, error) {
	storageCfg := config.LoadStorageConfig()

	awsCfg, err := aws_config.LoadDefaultConfig(ctx, aws_config.WithRegion(storageCfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for S3: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if storageCfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(storageCfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	log.Println("✅ AWS S3 client initialized. Bucket:", storageCfg.Bucket)

	return &S3Store{
		client:        client,
		uploader:      manager.NewUploader(client),
		presignClient: s3.NewPresignClient(client),
		cfg:           storageCfg,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, body io.Reader, key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return key, nil
}

// Presign creates a time-limited URL for reading the object.
func (s *S3Store) Presign(key string) (string, error) {
	req, err := s.presignClient.PresignGetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.cfg.PresignTTL))
	if err != nil {
		return "", fmt.Errorf("failed to presign URL for %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete S3 object %s: %w", key, err)
	}
	return nil
}
