// Package s3store is a backend.BlobStore over an S3-compatible endpoint
// (the Supabase S3 gateway, Cloudflare R2, MinIO).
package s3store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/agrox/fieldops/internal/backend"
)

// Config holds the S3 endpoint settings.
type Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
}

// API is the subset of *s3.Client the store uses.
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Store implements backend.BlobStore and backend.BucketChecker.
type Store struct {
	api       API
	publicURL string
}

// New builds an S3 client for cfg.
func New(cfg Config) *Store {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(cfg.Endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region:       region,
		UsePathStyle: true,
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = cfg.Endpoint
	}
	return NewWithAPI(client, publicURL)
}

// NewWithAPI wraps an existing client.
func NewWithAPI(api API, publicURL string) *Store {
	return &Store{api: api, publicURL: strings.TrimRight(publicURL, "/")}
}

var (
	_ backend.BlobStore     = (*Store)(nil)
	_ backend.BucketChecker = (*Store)(nil)
)

// Upload puts the object. S3 PutObject always replaces an existing key,
// so Upsert has no effect here.
func (s *Store) Upload(ctx context.Context, obj backend.Object) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(obj.Bucket),
		Key:    aws.String(strings.TrimLeft(obj.Path, "/")),
		Body:   obj.Body,
	}
	if obj.ContentType != "" {
		input.ContentType = aws.String(obj.ContentType)
	}

	if _, err := s.api.PutObject(ctx, input); err != nil {
		return classify(err)
	}
	return nil
}

// PublicURL returns {publicURL}/{bucket}/{path}.
func (s *Store) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, bucket, strings.TrimLeft(path, "/"))
}

// CheckBucket runs HeadBucket.
func (s *Store) CheckBucket(ctx context.Context, bucket string) error {
	if _, err := s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return classify(err)
	}
	return nil
}

func classify(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("s3store: %w", err)
	}

	code := apiErr.ErrorCode()
	status := http.StatusBadRequest
	switch code {
	case "NoSuchBucket", "NotFound":
		// HeadBucket has no body, so a missing bucket only says NotFound.
		code = "NoSuchBucket"
		status = http.StatusNotFound
	case "AccessDenied", "Forbidden":
		status = http.StatusForbidden
	case "InvalidAccessKeyId", "SignatureDoesNotMatch":
		status = http.StatusUnauthorized
	}

	return fmt.Errorf("s3store: %w", backend.NewError(code, apiErr.ErrorMessage(), status))
}
