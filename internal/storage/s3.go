package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"salon/config"
)

type S3Storage struct {
	client *minio.Client
	cfg    config.S3Config
	logger *zap.Logger
}

func NewS3Storage(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации клиента S3: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки существования бакета: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания бакета: %w", err)
		}
		logger.Info("создан бакет для отчетов", zap.String("bucket", cfg.Bucket))
	}

	return &S3Storage{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

func (s *S3Storage) UploadReport(ctx context.Context, prefix, filename string, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("пустые данные отчета")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := objectKey(prefix, uuid.New().String(), filename)

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:        contentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", filename),
	})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки отчета в S3: %w", err)
	}

	return objectName, nil
}

func (s *S3Storage) DeleteReport(ctx context.Context, objectName string) error {
	if objectName == "" {
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("ошибка удаления отчета из S3: %w", err)
	}

	return nil
}

func (s *S3Storage) GetReport(ctx context.Context, objectName string) ([]byte, error) {
	if objectName == "" {
		return nil, errors.New("пустой ключ отчета")
	}

	object, err := s.client.GetObject(ctx, s.cfg.Bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения отчета из S3: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("ошибка чтения отчета из S3: %w", err)
	}

	return data, nil
}

func (s *S3Storage) PresignedURL(ctx context.Context, objectName string) (string, error) {
	if objectName == "" {
		return "", errors.New("пустой ключ отчета")
	}

	presignedURL, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, objectName, s.cfg.PresignTTL, nil)
	if err != nil {
		return "", fmt.Errorf("ошибка генерации пресайн URL: %w", err)
	}

	return presignedURL.String(), nil
}
