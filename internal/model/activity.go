package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ActivityKind string

const (
	ActivityRequested   ActivityKind = "REQUESTED"
	ActivityApproved    ActivityKind = "APPROVED"
	ActivityDenied      ActivityKind = "DENIED"
	ActivityCancelled   ActivityKind = "CANCELLED"
	ActivityRemoved     ActivityKind = "REMOVED"
	ActivityMoved       ActivityKind = "MOVED"
	ActivityGameCreated ActivityKind = "GAME_CREATED"
	ActivityGameUpdated ActivityKind = "GAME_UPDATED"
)

// ActivityEntry is an append-only audit record. RegistrationID is nulled, not cascaded,
// when its registration goes away.
type ActivityEntry struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	GameID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"game_id"`
	RegistrationID *uuid.UUID        `gorm:"type:uuid;index" json:"registration_id,omitempty"`
	Kind           ActivityKind      `gorm:"type:varchar(20);not null" json:"kind"`
	Message        string            `gorm:"type:varchar(255);not null" json:"message"`
	Details        datatypes.JSONMap `gorm:"type:jsonb" json:"details,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`

	Registration *Registration `gorm:"foreignKey:RegistrationID;constraint:OnDelete:SET NULL" json:"-"`
}

func (ActivityEntry) TableName() string { return "activity_entries" }
