// Package media uploads clip source files to S3-compatible object storage.
// Uploads are a side concern of clip creation: a failed upload never blocks
// the local clip record.
package media

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/creatorsync/creatorsync/internal/common"
	"github.com/creatorsync/creatorsync/internal/session"
)

// Test seams for AWS client construction.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Config holds object storage settings for the uploader.
type Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// Uploader puts media files into one bucket, keyed per user.
type Uploader struct {
	client *s3.Client
	bucket string
}

// NewUploader builds the S3 client from cfg. BaseEndpoint supports
// S3-compatible backends such as MinIO.
func NewUploader(ctx context.Context, cfg Config) (*Uploader, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		o.UsePathStyle = true
	})

	return &Uploader{client: client, bucket: cfg.Bucket}, nil
}

// UploadClipMedia streams the file at localPath into object storage under
// users/{userID}/media/{uuid} and returns the storage key. A nil session
// fails fast with ErrRemoteUnavailable.
func (u *Uploader) UploadClipMedia(ctx context.Context, sess *session.Session, localPath string) (string, error) {
	if sess == nil {
		return "", common.ErrRemoteUnavailable
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	key := fmt.Sprintf("users/%s/media/%v", sess.UserID, uuid.New())

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return "", fmt.Errorf("%w: upload failed: %w", common.ErrRemoteUnavailable, err)
	}

	return key, nil
}
