package models

import (
	"time"

	"github.com/google/uuid"
)

// Timestamps on domain rows are owned by the domain layer, so GORM's automatic
// tracking is switched off for them.

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

type UserProfile struct {
	UserID    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	Username  *string    `gorm:"size:100" json:"username"`
	FirstName *string    `gorm:"size:100" json:"first_name"`
	LastName  *string    `gorm:"size:100" json:"last_name"`
	Birthday  *time.Time `gorm:"type:date" json:"birthday"`
	PhotoURL  *string    `gorm:"size:1024" json:"photo_url"`
	CreatedAt time.Time  `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime:false" json:"updated_at"`
}
