package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/reelforge/reelforge-api/internal/apperr"
)

// S3Config holds the configuration for S3 storage.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // Optional: for custom S3-compatible endpoints
	AccessKeyID     string // Optional: AWS access key ID
	SecretAccessKey string // Optional: AWS secret access key
}

// S3Store hosts audio assets in an S3 bucket.
type S3Store struct {
	client *s3.Client
	bucket string
	region string
}

// Compile-time check that S3Store implements Store.
var _ Store = (*S3Store)(nil)

// NewS3Store creates a new S3Store instance.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	var configOpts []func(*config.LoadOptions) error
	configOpts = append(configOpts, config.WithRegion(cfg.Region))

	// Use static credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		configOpts = append(configOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), configOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, clientOpts...)

	return &S3Store{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

// Upload writes the asset to S3 and returns the public URL.
// Assets are cached downstream for an hour; the key carries a unique
// suffix so re-synthesized audio never collides with a cached copy.
func (s *S3Store) Upload(ctx context.Context, key, contentType string, data io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         data,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=3600"),
	})
	if err != nil {
		return "", fmt.Errorf("storage: %w: upload to S3: %s", apperr.ErrUpstream, err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	return url, nil
}
