package storage

import (
	"context"
	"time"
)

// FileStorage keeps generated exports. Objects are addressed by the name
// returned from UploadFile.
type FileStorage interface {
	UploadFile(ctx context.Context, folder string, data []byte, filename string) (string, error)

	GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}
