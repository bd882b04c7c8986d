package certificate

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Certificate struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	StartDate   string    `gorm:"type:varchar(10);not null"`
	EndDate     string    `gorm:"type:varchar(10);not null"`
	Comment     string    `gorm:"type:text"`
	FileName    string    `gorm:"type:varchar(255);not null"`
	StoredPath  string    `gorm:"type:varchar(500);not null"`
	ContentType string    `gorm:"type:varchar(100)"`
	SizeBytes   int64     `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Certificate) TableName() string {
	return "certificates"
}
