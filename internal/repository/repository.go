// Package repository defines the storage interfaces the service layer
// depends on. Concrete implementations live in subpackages (sqlite); tests
// substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/tharindu/classtrack/internal/model"
)

// ClassRepository persists class records. List returns the full catalog —
// filtering and sorting are client-side, so there is no query shape here.
type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	GetByID(ctx context.Context, id string) (*model.Class, error)
	List(ctx context.Context) ([]model.Class, error)
	Update(ctx context.Context, class *model.Class) error
	Delete(ctx context.Context, id string) error
}

// UserRepository persists staff accounts. Username lookups are
// case-insensitive; registration depends on that to reject near-duplicate
// names.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}
