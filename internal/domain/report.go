package domain

import "github.com/google/uuid"

// ProjectReport is the metadata of a report file archived for a
// project. The file body lives in S3 under FileKey.
type ProjectReport struct {
	BaseModel
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index:idx_project_reports_project_id" json:"project_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	FileKey     string    `gorm:"type:varchar(512);not null" json:"file_key"`
	ContentType string    `gorm:"type:varchar(100)" json:"content_type"`
	FileSize    int64     `gorm:"not null;default:0" json:"file_size"`
	UploadedBy  uuid.UUID `gorm:"type:uuid;not null" json:"uploaded_by"`
}

// TableName specifies the table name for ProjectReport
func (ProjectReport) TableName() string {
	return "project_reports"
}
