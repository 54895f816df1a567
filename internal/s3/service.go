package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/assurly/assurly/internal/config"
	ierr "github.com/assurly/assurly/internal/errors"
)

const defaultPresignExpiryDuration = 30 * time.Minute

// Service is the blob store for rendered policy documents and claim
// attachments. Upload returns a location of the form
// s3://bucket/key that is persisted on the owning record.
type Service interface {
	Upload(ctx context.Context, obj *Object) (string, error)
	Get(ctx context.Context, location string) ([]byte, error)
	GetPresignedUrl(ctx context.Context, location string) (string, error)
	Exists(ctx context.Context, location string) (bool, error)
}

type s3ServiceImpl struct {
	client *s3.Client
	config *config.S3Config
}

func NewService(cfg *config.Configuration) (Service, error) {
	if !cfg.S3.Enabled {
		return nil, nil
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(cfg.S3.Region),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to load aws config").
			Mark(ierr.ErrSystem)
	}

	return &s3ServiceImpl{
		config: &cfg.S3,
		client: s3.NewFromConfig(awsCfg),
	}, nil
}

func (s *s3ServiceImpl) bucketAndPrefix(category ObjectCategory) (string, string, error) {
	switch category {
	case CategoryPolicyDocument:
		return s.config.DocumentBucket, s.config.DocumentKeyPrefix, nil
	case CategoryClaimAttachment:
		return s.config.AttachmentBucket, s.config.AttachmentKeyPrefix, nil
	default:
		return "", "", ierr.NewErrorf("invalid object category: %s", category).
			Mark(ierr.ErrSystem)
	}
}

func (s *s3ServiceImpl) Upload(ctx context.Context, obj *Object) (string, error) {
	bucket, prefix, err := s.bucketAndPrefix(obj.Category)
	if err != nil {
		return "", err
	}

	key := obj.Key
	if prefix != "" {
		key = fmt.Sprintf("%s/%s", prefix, obj.Key)
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(obj.Data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("failed to upload object").
			WithMessage(fmt.Sprintf("bucket:%s, key:%s", bucket, key)).
			Mark(ierr.ErrSystem)
	}

	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}

func (s *s3ServiceImpl) Get(ctx context.Context, location string) ([]byte, error) {
	bucket, key, err := parseLocation(location)
	if err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get object").
			WithMessage(fmt.Sprintf("bucket:%s, key:%s", bucket, key)).
			Mark(ierr.ErrSystem)
	}
	defer result.Body.Close()

	return io.ReadAll(result.Body)
}

func (s *s3ServiceImpl) GetPresignedUrl(ctx context.Context, location string) (string, error) {
	bucket, key, err := parseLocation(location)
	if err != nil {
		return "", err
	}

	presigner := s3.NewPresignClient(s.client)
	result, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(defaultPresignExpiryDuration))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("failed to presign object url").
			WithMessage(fmt.Sprintf("bucket:%s, key:%s", bucket, key)).
			Mark(ierr.ErrSystem)
	}

	return result.URL, nil
}

func (s *s3ServiceImpl) Exists(ctx context.Context, location string) (bool, error) {
	bucket, key, err := parseLocation(location)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, nil
	}

	return true, nil
}

func parseLocation(location string) (string, string, error) {
	trimmed, ok := strings.CutPrefix(location, "s3://")
	if !ok {
		return "", "", ierr.NewErrorf("invalid blob location: %s", location).
			Mark(ierr.ErrValidation)
	}

	bucket, key, found := strings.Cut(trimmed, "/")
	if !found || bucket == "" || key == "" {
		return "", "", ierr.NewErrorf("invalid blob location: %s", location).
			Mark(ierr.ErrValidation)
	}

	return bucket, key, nil
}
