package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SauceModel mirrors the 'sauces' table. The membership sets are stored as
// PostgreSQL text arrays; the version column guards conditional vote writes.
type SauceModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name          string         `gorm:"type:varchar(255);not null"`
	Manufacturer  string         `gorm:"type:varchar(255);not null"`
	Description   string         `gorm:"type:text;not null"`
	MainPepper    string         `gorm:"type:varchar(255);not null"`
	ImageURL      string         `gorm:"type:text"`
	Heat          int            `gorm:"not null;default:0"`
	Likes         int            `gorm:"not null;default:0"`
	Dislikes      int            `gorm:"not null;default:0"`
	UsersLiked    pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	UsersDisliked pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	Version       int64          `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (SauceModel) TableName() string {
	return "sauces"
}
