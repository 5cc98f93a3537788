package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationStatus string

const (
	StatusPending   RegistrationStatus = "PENDING"
	StatusConfirmed RegistrationStatus = "CONFIRMED"
	StatusWaitlist  RegistrationStatus = "WAITLIST"
	StatusDenied    RegistrationStatus = "DENIED"
	StatusCancelled RegistrationStatus = "CANCELLED"
	StatusRemoved   RegistrationStatus = "REMOVED"
)

// Statuses is every registration status in lifecycle order.
var Statuses = []RegistrationStatus{
	StatusPending, StatusConfirmed, StatusWaitlist, StatusDenied, StatusCancelled, StatusRemoved,
}

// Listed reports whether the status places a registration on an ordered list.
func (s RegistrationStatus) Listed() bool {
	return s == StatusConfirmed || s == StatusWaitlist
}

// Terminal reports whether players can no longer act on a registration in this status.
func (s RegistrationStatus) Terminal() bool {
	switch s {
	case StatusDenied, StatusCancelled, StatusRemoved:
		return true
	}
	return false
}

func (s RegistrationStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

type Registration struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	GameID      uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_registration_game_email;index:idx_registration_game_status" json:"game_id"`
	Name        string             `gorm:"type:varchar(120);not null" json:"name"`
	Email       string             `gorm:"type:varchar(254);not null;uniqueIndex:idx_registration_game_email" json:"email"`
	Phone       string             `gorm:"type:varchar(40);not null" json:"-"`
	PhoneDigits string             `gorm:"type:varchar(30);not null;default:''" json:"-"`
	Status      RegistrationStatus `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_registration_game_status" json:"status"`
	Position    *int               `json:"position"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func (Registration) TableName() string { return "registrations" }

// BeforeSave keeps the digits-only phone in step with the raw phone.
// Saves that only touch other columns (UpdateColumn) leave it alone.
func (r *Registration) BeforeSave(_ *gorm.DB) error {
	r.Normalize()
	return nil
}

// Normalize derives PhoneDigits from Phone.
func (r *Registration) Normalize() {
	r.PhoneDigits = DigitsOnly(r.Phone)
}

// DigitsOnly strips everything but ASCII digits.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// NormalizeEmail is the canonical stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
