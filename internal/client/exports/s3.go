package exports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrNoBucket = errors.New("s3 bucket is not configured")

// S3Config describes the export bucket. Static keys are optional; without
// them the default AWS credential chain is used.
type S3Config struct {
	Bucket       string
	Prefix       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// PutObjectAPI is the part of *s3.Client the sink needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return config.LoadDefaultConfig(ctx, optFns...)
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) PutObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Sink uploads exports as objects under Prefix.
type S3Sink struct {
	client PutObjectAPI
	bucket string
	prefix string
}

func NewS3SinkWithClient(client PutObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

// NewS3Sink builds an S3 client from cfg. A custom endpoint switches to
// path-style addressing, as S3-compatible stores such as MinIO expect.
func NewS3Sink(ctx context.Context, c S3Config) (*S3Sink, error) {
	if c.Bucket == "" {
		return nil, ErrNoBucket
	}

	var opts []func(*config.LoadOptions) error
	if c.Region != "" {
		opts = append(opts, config.WithRegion(c.Region))
	}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}

	cfg, err := loadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3SinkWithClient(client, c.Bucket, c.Prefix), nil
}

func (s *S3Sink) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *S3Sink) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(name)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", s.bucket, s.key(name), err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key(name)), nil
}
