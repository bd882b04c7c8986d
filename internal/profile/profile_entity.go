package profile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// UserProfile shares its primary key with the users row it belongs to.
type UserProfile struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex:uq_user_profile_email;not null"`
	FullName          string    `gorm:"type:varchar(255);not null"`
	Role              string    `gorm:"type:varchar(20);not null;default:employee"`
	TravelTimeMinutes int       `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
