package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/models"
)

type mockUserService struct {
	CreateFunc     func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	UpdateFunc     func(ctx context.Context, id uuid.UUID, params models.UpdateUserParams) (*models.User, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) (*models.User, error)
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserService) Update(ctx context.Context, id uuid.UUID, params models.UpdateUserParams) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *mockUserService) Delete(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, nil
}

type mockAuthService struct {
	HashPasswordFunc   func(password string) (string, error)
	VerifyPasswordFunc func(hash, password string) bool
	IssueTokenFunc     func(userID uuid.UUID) (string, error)
	VerifyTokenFunc    func(tokenString string) (uuid.UUID, error)
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockAuthService) VerifyPassword(hash, password string) bool {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(hash, password)
	}
	return hash == "hashed_"+password
}

func (m *mockAuthService) IssueToken(userID uuid.UUID) (string, error) {
	if m.IssueTokenFunc != nil {
		return m.IssueTokenFunc(userID)
	}
	return "token-" + userID.String(), nil
}

func (m *mockAuthService) VerifyToken(tokenString string) (uuid.UUID, error) {
	if m.VerifyTokenFunc != nil {
		return m.VerifyTokenFunc(tokenString)
	}
	return uuid.Nil, nil
}

type mockEntryService struct {
	CreateFunc      func(ctx context.Context, params models.CreateEntryParams) (*models.Entry, error)
	ListByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) ([]*models.Entry, error)
	GetByIDFunc     func(ctx context.Context, ownerID, entryID uuid.UUID) (*models.Entry, error)
	UpdateFunc      func(ctx context.Context, ownerID, entryID uuid.UUID, params models.UpdateEntryParams) (*models.Entry, error)
	DeleteFunc      func(ctx context.Context, ownerID, entryID uuid.UUID) (*models.Entry, error)
	SearchFunc      func(ctx context.Context, ownerID uuid.UUID, query string) ([]*models.Entry, error)
	RecentFunc      func(ctx context.Context, ownerID uuid.UUID, limit int) ([]*models.Entry, error)
}

func (m *mockEntryService) Create(ctx context.Context, params models.CreateEntryParams) (*models.Entry, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockEntryService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Entry, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return []*models.Entry{}, nil
}

func (m *mockEntryService) GetByID(ctx context.Context, ownerID, entryID uuid.UUID) (*models.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, entryID)
	}
	return nil, nil
}

func (m *mockEntryService) Update(ctx context.Context, ownerID, entryID uuid.UUID, params models.UpdateEntryParams) (*models.Entry, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ownerID, entryID, params)
	}
	return nil, nil
}

func (m *mockEntryService) Delete(ctx context.Context, ownerID, entryID uuid.UUID) (*models.Entry, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, entryID)
	}
	return nil, nil
}

func (m *mockEntryService) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]*models.Entry, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, ownerID, query)
	}
	return []*models.Entry{}, nil
}

func (m *mockEntryService) Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]*models.Entry, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, ownerID, limit)
	}
	return []*models.Entry{}, nil
}

type mockSummarizer struct {
	SummarizeFunc func(ctx context.Context, userID uuid.UUID, entries []*models.Entry) (string, error)
}

func (m *mockSummarizer) Summarize(ctx context.Context, userID uuid.UUID, entries []*models.Entry) (string, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, userID, entries)
	}
	return "", nil
}
