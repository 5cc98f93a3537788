package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Game struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title      string         `gorm:"type:varchar(120);not null" json:"title"`
	Location   string         `gorm:"type:varchar(200);not null;default:''" json:"location"`
	StartTime  time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime    time.Time      `gorm:"not null" json:"end_time"`
	Capacity   int            `gorm:"not null;default:18" json:"capacity"`
	AccessCode string         `gorm:"type:varchar(5);uniqueIndex;not null" json:"access_code"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Registrations []Registration  `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"-"`
	Activity      []ActivityEntry `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Game) TableName() string { return "games" }

// IsPast reports whether the game has ended at the given instant.
func (g *Game) IsPast(now time.Time) bool {
	return g.EndTime.Before(now)
}
