package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the connection settings for the S3 object store.
// If AccessKey/SecretKey are empty the default credential chain is used.
type S3Config struct {
	Region       string
	AccessKey    string
	SecretKey    string
	SessionToken string
}

// S3Store is an [ObjectStore] backed by an S3 client.
type S3Store struct {
	client *s3.Client
}

func NewS3Store(ctx context.Context, cfg *S3Config) (*S3Store, error) {
	var opts []func(*config.LoadOptions) error
	// add credentials if provided
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken)))
	}
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %w", err)
	}

	return &S3Store{client: s3.NewFromConfig(awsCfg)}, nil
}

func (s *S3Store) GetObject(ctx context.Context, ref ObjectRef) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &ref.Bucket,
		Key:    &ref.Key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s, %w", ref, err)
	}
	return out.Body, nil
}

func (s *S3Store) PutObject(ctx context.Context, ref ObjectRef, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &ref.Bucket,
		Key:    &ref.Key,
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s, %w", ref, err)
	}
	return nil
}
