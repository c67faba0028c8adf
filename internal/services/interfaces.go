package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/daybook-app/daybook/internal/models"
)

// DB is the subset of pgxpool.Pool the stores depend on. Production
// wiring passes the shared pool; tests substitute a fake.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// UserServiceInterface defines the contract for credential store operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, params models.UpdateUserParams) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthServiceInterface defines the contract for credential hashing and
// bearer token operations.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	IssueToken(userID uuid.UUID) (string, error)
	VerifyToken(tokenString string) (uuid.UUID, error)
}

// EntryServiceInterface defines the contract for journal entry operations
// used by handlers. Every operation is scoped to the owner id.
type EntryServiceInterface interface {
	Create(ctx context.Context, params models.CreateEntryParams) (*models.Entry, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Entry, error)
	GetByID(ctx context.Context, ownerID, entryID uuid.UUID) (*models.Entry, error)
	Update(ctx context.Context, ownerID, entryID uuid.UUID, params models.UpdateEntryParams) (*models.Entry, error)
	Delete(ctx context.Context, ownerID, entryID uuid.UUID) (*models.Entry, error)
	Search(ctx context.Context, ownerID uuid.UUID, query string) ([]*models.Entry, error)
	Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]*models.Entry, error)
}
