package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the settings for the hosted media backend.
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// S3Store uploads assets to an S3-compatible bucket and returns the
// canonical public URL as the asset reference. No local copy is retained.
type S3Store struct {
	client *s3.Client
	conf   S3Config
}

// NewS3Store creates an S3 client for the configured endpoint with static
// credentials.
func NewS3Store(ctx context.Context, conf S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(conf.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKey, conf.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, conf: conf}, nil
}

// Save validates the extension, uploads the object under a fresh name and
// returns the public URL the bucket serves it from.
func (s *S3Store) Save(ctx context.Context, originalFilename string, data []byte) (string, error) {
	name, err := storedName(originalFilename)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.conf.Bucket),
		Key:    aws.String(name),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.conf.Endpoint, s.conf.Bucket, name), nil
}

// Remove deletes the object a reference URL points at. Used to roll back
// an upload when the accompanying database write fails.
func (s *S3Store) Remove(ctx context.Context, ref string) error {
	key := path.Base(ref)
	if key == "" || key == "." || key == "/" {
		return fmt.Errorf("invalid asset reference: %q", ref)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.conf.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
