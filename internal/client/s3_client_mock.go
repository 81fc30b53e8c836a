package client

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockS3Client implements S3ClientInterface for testing without AWS credentials
type MockS3Client struct {
	Bucket   string
	Region   string
	Endpoint string

	// Optional function overrides for custom test behavior
	GenerateReportKeyFunc    func(projectID, fileExt string) string
	GeneratePresignedURLFunc func(ctx context.Context, projectID, fileName, contentType string) (string, string, error)
	UploadFileFunc           func(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	DeleteFileFunc           func(ctx context.Context, key string) error
	GetFileURLFunc           func(key string) string
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		Bucket:   "test-bucket",
		Region:   "sa-east-1",
		Endpoint: "",
	}
}

// GenerateReportKey generates a unique report key for S3 storage
func (m *MockS3Client) GenerateReportKey(projectID, fileExt string) string {
	if m.GenerateReportKeyFunc != nil {
		return m.GenerateReportKeyFunc(projectID, fileExt)
	}

	now := time.Now()
	return fmt.Sprintf("reports/%s/%d/%02d/%s_%d%s",
		projectID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		now.UnixNano(),
		fileExt,
	)
}

// GeneratePresignedURL generates a mock presigned URL for testing
func (m *MockS3Client) GeneratePresignedURL(ctx context.Context, projectID, fileName, contentType string) (string, string, error) {
	if m.GeneratePresignedURLFunc != nil {
		return m.GeneratePresignedURLFunc(ctx, projectID, fileName, contentType)
	}

	fileExt := filepath.Ext(fileName)
	if fileExt == "" {
		fileExt = ".bin"
	}

	fileKey := m.GenerateReportKey(projectID, fileExt)

	// Mock presigned URL with all AWS signature parameters
	now := time.Now().UTC().Format("20060102T150405Z")
	presignedURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Credential=test-access-key%%2F%s%%2F%s%%2Fs3%%2Faws4_request&X-Amz-Date=%s&X-Amz-Expires=900&X-Amz-SignedHeaders=host&X-Amz-Signature=mocksignature123",
		m.Bucket,
		m.Region,
		fileKey,
		time.Now().UTC().Format("20060102"),
		m.Region,
		now,
	)

	return presignedURL, fileKey, nil
}

// UploadFile simulates file upload
func (m *MockS3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, file, contentType)
	}

	return m.GetFileURL(key), nil
}

// DeleteFile simulates file deletion
func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}

	return nil
}

// GetFileURL returns the public URL for a file
func (m *MockS3Client) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}

	if m.Endpoint != "" && !strings.Contains(m.Endpoint, "amazonaws.com") {
		return fmt.Sprintf("%s/%s/%s", m.Endpoint, m.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Bucket, m.Region, key)
}

// Ensure MockS3Client implements S3ClientInterface
var _ S3ClientInterface = (*MockS3Client)(nil)
