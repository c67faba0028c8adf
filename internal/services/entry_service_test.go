package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/daybook-app/daybook/internal/models"
)

func entryRow(id, ownerID uuid.UUID, title, content string, mood models.Mood) []any {
	now := time.Now().UTC()
	return []any{id, title, content, mood, ownerID, now, now}
}

func TestEntryService_Create_DefaultsMoodInInsert(t *testing.T) {
	ownerID := uuid.New()
	var gotArgs []any

	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			gotArgs = args
			return rowFromValues(entryRow(uuid.New(), ownerID, "Morning", "Felt great", models.MoodNeutral)...)
		},
	}

	service := NewEntryService(db)
	entry, err := service.Create(context.Background(), models.CreateEntryParams{
		Title:     "  Morning  ",
		Content:   "Felt great",
		CreatedBy: ownerID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotArgs[0] != "Morning" {
		t.Errorf("expected trimmed title in insert, got %v", gotArgs[0])
	}
	if gotArgs[2] != models.MoodNeutral {
		t.Errorf("expected neutral mood default in insert, got %v", gotArgs[2])
	}
	if entry.Mood != models.MoodNeutral {
		t.Errorf("expected neutral mood back, got %q", entry.Mood)
	}
}

func TestEntryService_GetByID_ScopesToOwner(t *testing.T) {
	ownerID := uuid.New()
	entryID := uuid.New()
	var gotArgs []any

	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			gotArgs = args
			return rowFromValues(entryRow(entryID, ownerID, "Morning", "Felt great", models.MoodHappy)...)
		},
	}

	service := NewEntryService(db)
	entry, err := service.GetByID(context.Background(), ownerID, entryID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotArgs[0] != entryID || gotArgs[1] != ownerID {
		t.Errorf("expected query scoped to (%s, %s), got %v", entryID, ownerID, gotArgs)
	}
	if entry.ID != entryID {
		t.Errorf("expected entry %s, got %s", entryID, entry.ID)
	}
}

func TestEntryService_GetByID_NotFound(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return fakeRow{scanFunc: func(dest ...any) error {
				return pgx.ErrNoRows
			}}
		},
	}

	// Someone else's entry scans zero rows, same as a missing one.
	service := NewEntryService(db)
	_, err := service.GetByID(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEntryService_Update_NilFieldsStayNil(t *testing.T) {
	ownerID := uuid.New()
	entryID := uuid.New()
	var gotArgs []any

	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			gotArgs = args
			return rowFromValues(entryRow(entryID, ownerID, "Morning", "new", models.MoodHappy)...)
		},
	}

	content := "new"
	service := NewEntryService(db)
	if _, err := service.Update(context.Background(), ownerID, entryID, models.UpdateEntryParams{Content: &content}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Args line up with the COALESCE slots: id, owner, title, content, mood.
	if gotArgs[0] != entryID || gotArgs[1] != ownerID {
		t.Errorf("expected update scoped to (%s, %s), got %v", entryID, ownerID, gotArgs)
	}
	if title, _ := gotArgs[2].(*string); title != nil {
		t.Errorf("expected nil title arg so COALESCE keeps the stored value, got %q", *title)
	}
	got, ok := gotArgs[3].(*string)
	if !ok || got == nil || *got != "new" {
		t.Errorf("expected content arg, got %v", gotArgs[3])
	}
	if mood, _ := gotArgs[4].(*models.Mood); mood != nil {
		t.Errorf("expected nil mood arg so COALESCE keeps the stored value, got %q", *mood)
	}
}

func TestEntryService_Update_NotFound(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return fakeRow{scanFunc: func(dest ...any) error {
				return pgx.ErrNoRows
			}}
		},
	}

	title := "New title"
	service := NewEntryService(db)
	_, err := service.Update(context.Background(), uuid.New(), uuid.New(), models.UpdateEntryParams{Title: &title})
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEntryService_Delete_NotFound(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return fakeRow{scanFunc: func(dest ...any) error {
				return pgx.ErrNoRows
			}}
		},
	}

	service := NewEntryService(db)
	_, err := service.Delete(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEntryService_ListByOwner_EmptyIsNotNil(t *testing.T) {
	db := &fakeDB{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &fakeRows{}, nil
		},
	}

	service := NewEntryService(db)
	entries, err := service.ListByOwner(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestEntryService_Search_EscapesPattern(t *testing.T) {
	ownerID := uuid.New()
	var gotArgs []any

	db := &fakeDB{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			gotArgs = args
			return &fakeRows{rows: [][]any{
				entryRow(uuid.New(), ownerID, "Sale day", "Everything 50% off", models.MoodExcited),
			}}, nil
		},
	}

	service := NewEntryService(db)
	entries, err := service.Search(context.Background(), ownerID, "  50%  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotArgs[0] != ownerID {
		t.Errorf("expected search scoped to owner %s, got %v", ownerID, gotArgs[0])
	}
	if gotArgs[1] != `%50\%%` {
		t.Errorf("expected escaped LIKE pattern, got %v", gotArgs[1])
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
}

func TestEntryService_Recent_PassesLimit(t *testing.T) {
	ownerID := uuid.New()
	var gotArgs []any

	db := &fakeDB{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			gotArgs = args
			return &fakeRows{rows: [][]any{
				entryRow(uuid.New(), ownerID, "Morning", "Felt great", models.MoodHappy),
			}}, nil
		},
	}

	service := NewEntryService(db)
	entries, err := service.Recent(context.Background(), ownerID, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotArgs[1] != 10 {
		t.Errorf("expected limit 10, got %v", gotArgs[1])
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
}

func TestEntryService_List_RowsError(t *testing.T) {
	db := &fakeDB{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &fakeRows{err: errors.New("connection reset")}, nil
		},
	}

	service := NewEntryService(db)
	if _, err := service.ListByOwner(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error from rows iteration")
	}
}
