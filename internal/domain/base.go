package domain

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel contains common fields shared by persisted entities
type BaseModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"not null" json:"updatedAt"`
	DeletedAt *time.Time `gorm:"index" json:"deletedAt,omitempty"`
}

// Actor identifies the user performing an engine operation.
// It is always passed explicitly into service calls so that history
// entries carry the acting identity without ambient lookups.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}
