package timeentry

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeEntry stores the date as a plain YYYY-MM-DD string and clock times as
// HH:MM strings. Keeping them as text avoids timezone drift between what the
// employee typed and what is aggregated later.
type TimeEntry struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_time_entries_user_date"`
	Date         string    `gorm:"type:varchar(10);not null;index:idx_time_entries_user_date"`
	StartTime    string    `gorm:"type:varchar(8)"`
	EndTime      string    `gorm:"type:varchar(8)"`
	NietGewerkt  bool      `gorm:"not null;default:false"`
	Verlof       bool      `gorm:"not null;default:false"`
	Ziek         bool      `gorm:"not null;default:false"`
	Recup        bool      `gorm:"not null;default:false"`
	Rechtstreeks bool      `gorm:"not null;default:false"`
	Bonnummer    string    `gorm:"type:varchar(100)"`
	Comment      string    `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}
