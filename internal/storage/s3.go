package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"candidate-tracker/internal/export"
)

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string // 兼容 S3 的服务（MinIO 等）
	AccessKey string
	SecretKey string
	Prefix    string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver 把导出文件上传到 <prefix>/<时间戳>/<文件名>
type S3Archiver struct {
	client putObjectAPI
	bucket string
	prefix string
	now    func() time.Time
}

func NewS3Client(ctx context.Context, o S3Options) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if o.Region != "" {
		opts = append(opts, awsconfig.WithRegion(o.Region))
	}
	if o.AccessKey != "" && o.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	})
	return client, nil
}

func NewS3Archiver(client putObjectAPI, bucket, prefix string) (*S3Archiver, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	return &S3Archiver{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/"), now: time.Now}, nil
}

func (a *S3Archiver) Archive(ctx context.Context, f export.File) (string, error) {
	key := path.Join(a.prefix, a.now().UTC().Format("20060102T150405Z"), f.Name)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(f.Body),
		ContentType:   aws.String(f.ContentType),
		ContentLength: aws.Int64(int64(len(f.Body))),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return "s3://" + a.bucket + "/" + key, nil
}
