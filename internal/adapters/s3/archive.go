// Package s3 archives generated reports in an S3-compatible bucket (AWS S3 or MinIO).
package s3

import (
	"bytes"
	"context"
	"fmt"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/example/qc/internal/ports/secondary"
)

// Config holds explicit construction parameters. Credentials come from the
// default AWS chain (environment, shared config, instance role).
type Config struct {
	Region    string
	Bucket    string
	Endpoint  string // optional; if set enables custom endpoint (e.g. MinIO)
	PathStyle bool
}

// Archive implements secondary.ReportArchive. Single bucket; keys map to object keys directly.
type Archive struct {
	client *s3.Client
	bucket string
}

// New creates an archive from Config.
func New(ctx context.Context, cfg Config) (*Archive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewWithClient(client, cfg.Bucket), nil
}

// NewWithClient wraps an existing S3 client.
func NewWithClient(client *s3.Client, bucket string) *Archive {
	return &Archive{client: client, bucket: bucket}
}

// Put uploads the PDF under key and returns its s3:// location.
func (a *Archive) Put(ctx context.Context, key string, document []byte) (string, error) {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(a.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(document),
		ContentLength:      aws.Int64(int64(len(document))),
		ContentType:        aws.String(secondary.ReportContentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", secondary.ReportFilename)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive report: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}

// Ensure Archive implements the interface
var _ secondary.ReportArchive = (*Archive)(nil)
