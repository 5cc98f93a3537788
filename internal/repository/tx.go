package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories is the set of repositories bound to one unit of work.
type Repositories struct {
	Games         GameRepository
	Registrations RegistrationRepository
	Activities    ActivityRepository
}

// TxManager runs fn atomically: either every write made through repos commits, or none does.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type pgTxManager struct {
	db *gorm.DB
}

func NewPGTxManager(db *gorm.DB) TxManager {
	return &pgTxManager{db: db}
}

func (m *pgTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, Repositories{
			Games:         NewPGGameRepository(tx),
			Registrations: NewPGRegistrationRepository(tx),
			Activities:    NewPGActivityRepository(tx),
		})
	})
}
