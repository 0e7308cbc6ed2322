package store

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/frontside/embersite/kernel/model"
	"github.com/sirupsen/logrus"
)

// Uploader is the part of s3manager.Uploader the store needs.
type Uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// S3Store uploads published resources to s3://<bucket>/<prefix>/<destination>.
type S3Store struct {
	Bucket   string
	Prefix   string
	uploader Uploader

	mu        sync.RWMutex
	published []model.Resource
}

func NewS3Store(cfg *model.S3Config) (*S3Store, error) {
	if cfg == nil || cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 sink requires 's3.bucket' in the config")
	}
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            aws.Config{Region: aws.String(cfg.Region)},
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	return NewS3StoreWithUploader(cfg, s3manager.NewUploader(sess)), nil
}

func NewS3StoreWithUploader(cfg *model.S3Config, uploader Uploader) *S3Store {
	return &S3Store{Bucket: cfg.Bucket, Prefix: cfg.Prefix, uploader: uploader}
}

func (s *S3Store) Publish(ctx context.Context, resources []model.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, resource := range resources {
		if err := s.upload(ctx, resource); err != nil {
			return err
		}
		s.published = append(s.published, resource)
	}
	return nil
}

func (s *S3Store) List() ([]model.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Resource, len(s.published))
	copy(result, s.published)
	return result, nil
}

func (s *S3Store) Key(resource model.Resource) string {
	return path.Join(s.Prefix, resource.DestinationPath)
}

func (s *S3Store) upload(ctx context.Context, resource model.Resource) error {
	f, err := os.Open(resource.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", resource.SourcePath, err)
	}
	defer func() { _ = f.Close() }()

	input := &s3manager.UploadInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key(resource)),
		Body:   f,
	}
	if contentType := mime.TypeByExtension(filepath.Ext(resource.SourcePath)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	out, err := s.uploader.UploadWithContext(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to upload %s to bucket [%s]: %w", resource.DestinationPath, s.Bucket, err)
	}
	logrus.Debugf("uploaded %s to %s", resource.DestinationPath, out.Location)
	return nil
}
