package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"agenda/config"
)

type S3Storage struct {
	client *minio.Client
	cfg    config.S3Config
	logger *zap.Logger
}

func NewS3Storage(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*S3Storage, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("s3 endpoint is not configured")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.Bucket, err)
		}
		logger.Info("s3 bucket created", zap.String("bucket", cfg.Bucket))
	}

	return &S3Storage{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

func (s *S3Storage) UploadFile(ctx context.Context, folder string, data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty file")
	}

	objectName := objectNameFor(folder, filename, uuid.New())
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentTypeOf(filename, data),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}

	s.logger.Debug("file uploaded",
		zap.String("bucket", s.cfg.Bucket),
		zap.String("object", objectName),
		zap.Int("size", len(data)),
	)

	return objectName, nil
}

func (s *S3Storage) GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if objectName == "" {
		return "", errors.New("empty object name")
	}

	presignedURL, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", objectName, err)
	}

	return presignedURL.String(), nil
}

// objectNameFor keeps the base name readable and prefixes it with an id so
// repeated exports never overwrite each other.
func objectNameFor(folder, filename string, id uuid.UUID) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "." || base == "/" || base == "" {
		base = "file.bin"
	}
	return path.Join(strings.Trim(folder, "/"), id.String()+"-"+base)
}

var knownContentTypes = map[string]string{
	".csv":  "text/csv; charset=utf-8",
	".json": "application/json",
}

func contentTypeOf(filename string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := knownContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
