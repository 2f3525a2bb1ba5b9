// Package mirror uploads archive blobs to an S3-compatible object store.
// Mirroring is strictly best-effort: the local blob table is the durable
// source of truth and a mirror failure is only ever logged.
package mirror

import (
	"bytes"
	"context"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sethvargo/go-retry"

	"github.com/metco-eng/fieldvault/internal/logging"
	sc "github.com/metco-eng/fieldvault/internal/server/config"
)

// Seams for tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// Uploader mirrors archives into a fixed folder of a bucket.
type Uploader struct {
	config *sc.Config
	logger logging.Logger
}

func NewUploader(cfg *sc.Config, logger logging.Logger) *Uploader {
	return &Uploader{
		config: cfg,
		logger: logger.With("component", "mirror"),
	}
}

func (u *Uploader) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(u.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.config.S3RootUser,
			u.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(u.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Upload mirrors one archive blob, keyed by its filename under the
// configured folder. The outcome is observed only through the log: errors
// are swallowed after a couple of retries and never reach the caller.
func (u *Uploader) Upload(ctx context.Context, filename string, content []byte) {
	key := path.Join(u.config.S3Folder, filename)

	err := retry.Do(ctx, retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond)),
		func(ctx context.Context) error {
			if err := u.upload(ctx, key, content); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})
	if err != nil {
		u.logger.Error(ctx, "archive mirror failed",
			"filename", filename, "key", key, "error", err.Error())
		return
	}

	u.logger.Info(ctx, "archive mirrored",
		"filename", filename, "key", key, "size", len(content))
}

func (u *Uploader) upload(ctx context.Context, key string, content []byte) error {
	client, err := u.client(ctx)
	if err != nil {
		return err
	}

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.config.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("application/zip"),
	})
	return err
}
