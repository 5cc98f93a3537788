package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Game{},
		&Registration{},
		&ActivityEntry{},
		&Announcement{},
	); err != nil {
		return err
	}

	// Email is stored lower-cased; the index guards rows written by older clients too.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_registration_game_email_lower " +
			"ON registrations (game_id, (lower(email)))",
	).Error; err != nil {
		return err
	}

	// Positions are dense per list; ordering reads use this.
	if err := db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_registration_game_status_created " +
			"ON registrations (game_id, status, created_at, id)",
	).Error; err != nil {
		return err
	}

	return db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_activity_entries_created_desc " +
			"ON activity_entries (created_at DESC)",
	).Error
}
