package repository

import (
	"context"
	"database/sql"

	"parking_monitor/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, u models.AdminUser) (int, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.AdminUser, error)
}

// State is the single owner of device snapshots and transition history.
type State interface {
	Update(ctx context.Context, fn func(tx StateTx) error) error
	View(ctx context.Context, fn func(v StateView) error) error
}

type Repository struct {
	State State
	Auth  Authorization
}

func NewRepository(db *sql.DB, historyCap int) *Repository {
	return &Repository{
		State: NewStateMemory(historyCap),
		Auth:  NewUserRepository(db),
	}
}
