package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

// DefaultImageURLExpiry is how long a presigned recipe image URL stays valid.
const DefaultImageURLExpiry = time.Hour

// S3Config holds S3 client and bucket info
type S3Config struct {
	Client     *s3.Client
	BucketName string
	Expiry     time.Duration
}

// NewS3Config initializes the S3 client for the configured bucket and region
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET_NAME is not set")
	}

	// Load AWS config from environment or shared config
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Config{
		Client:     s3.NewFromConfig(awsCfg),
		BucketName: cfg.S3Bucket,
		Expiry:     DefaultImageURLExpiry,
	}, nil
}

// ParseObjectURL splits an s3://bucket/key reference. ok is false for any other form.
func ParseObjectURL(raw string) (bucket, key string, ok bool) {
	if !strings.HasPrefix(raw, s3Scheme) {
		return "", "", false
	}
	bucket, key, found := strings.Cut(strings.TrimPrefix(raw, s3Scheme), "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// SignImageURL turns an s3://bucket/key image reference into a presigned GET URL.
// Any other value is returned unchanged.
func (s *S3Config) SignImageURL(ctx context.Context, raw string) (string, error) {
	bucket, key, ok := ParseObjectURL(raw)
	if !ok {
		return raw, nil
	}
	if bucket != s.BucketName {
		return "", fmt.Errorf("image %q is outside bucket %s", raw, s.BucketName)
	}
	return s.GeneratePresignedURL(ctx, key, s.Expiry)
}

// GeneratePresignedURL generates a presigned URL for the given object key with the specified expiration time
func (s *S3Config) GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.Client)
	presignedURL, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", err
	}
	return presignedURL.URL, nil
}
