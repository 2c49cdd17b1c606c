package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

var ErrReportNotFound = errors.New("отчет не найден")

// ReportStorage keeps generated documents such as commission statements.
type ReportStorage interface {
	UploadReport(ctx context.Context, prefix, filename string, data []byte, contentType string) (string, error)

	DeleteReport(ctx context.Context, objectKey string) error

	GetReport(ctx context.Context, objectKey string) ([]byte, error)

	PresignedURL(ctx context.Context, objectKey string) (string, error)
}

// objectKey builds "<prefix>/<unique>-<filename>" with path separators stripped from the filename.
func objectKey(prefix, unique, filename string) string {
	filename = strings.ReplaceAll(path.Base(filename), " ", "_")
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return fmt.Sprintf("%s-%s", unique, filename)
	}
	return fmt.Sprintf("%s/%s-%s", prefix, unique, filename)
}
