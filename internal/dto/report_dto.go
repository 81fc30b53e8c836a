package dto

import (
	"time"

	"github.com/google/uuid"
)

// ReportUploadURLRequest asks for a presigned upload URL for a report file
type ReportUploadURLRequest struct {
	FileName    string `json:"fileName" binding:"required,max=255" example:"q1-status-report.pdf"`
	ContentType string `json:"contentType" binding:"required,max=100" example:"application/pdf"`
}

// ReportUploadURLResponse carries the presigned PUT URL and the S3 key
// the client must echo back when confirming the upload
type ReportUploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
}

// CreateReportRequest confirms an uploaded report file and registers
// its metadata
type CreateReportRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=255" example:"Q1 Status Report"`
	FileKey     string `json:"fileKey" binding:"required,max=512"`
	ContentType string `json:"contentType" binding:"max=100" example:"application/pdf"`
	FileSize    int64  `json:"fileSize" binding:"gte=0" example:"482133"`
}

// ReportResponse represents an archived project report
type ReportResponse struct {
	ID          uuid.UUID `json:"reportId"`
	ProjectID   uuid.UUID `json:"projectId"`
	Title       string    `json:"title"`
	FileURL     string    `json:"fileUrl"`
	ContentType string    `json:"contentType"`
	FileSize    int64     `json:"fileSize"`
	UploadedBy  uuid.UUID `json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}
