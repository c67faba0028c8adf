package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/daybook-app/daybook/internal/models"
)

var (
	ErrEntryNotFound   = errors.New("entry not found")
	ErrTitleRequired   = errors.New("title cannot be empty")
	ErrContentRequired = errors.New("content cannot be empty")
	ErrInvalidMood     = errors.New("invalid mood tag")
	ErrEmptyQuery      = errors.New("search query cannot be empty")
)

const entryColumns = "id, title, content, mood, created_by, created_at, updated_at"

// EntryService owns the journal entry lifecycle. Every read and write is
// scoped to the owner in SQL, so an entry belonging to someone else is
// indistinguishable from a missing one.
type EntryService struct {
	db DB
}

func NewEntryService(db DB) *EntryService {
	return &EntryService{db: db}
}

func (s *EntryService) Create(ctx context.Context, params models.CreateEntryParams) (*models.Entry, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	content := strings.TrimSpace(params.Content)
	if content == "" {
		return nil, ErrContentRequired
	}

	mood := params.Mood
	if mood == "" {
		mood = models.MoodNeutral
	}
	if !mood.Valid() {
		return nil, ErrInvalidMood
	}

	entry := &models.Entry{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO entries (title, content, mood, created_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+entryColumns,
		title, content, mood, params.CreatedBy,
	).Scan(&entry.ID, &entry.Title, &entry.Content, &entry.Mood, &entry.CreatedBy, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("creating entry: %w", err)
	}

	return entry, nil
}

func (s *EntryService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Entry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+entryColumns+`
		 FROM entries
		 WHERE created_by = $1
		 ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (s *EntryService) GetByID(ctx context.Context, ownerID, entryID uuid.UUID) (*models.Entry, error) {
	entry := &models.Entry{}
	err := s.db.QueryRow(ctx,
		`SELECT `+entryColumns+`
		 FROM entries
		 WHERE id = $1 AND created_by = $2`,
		entryID, ownerID,
	).Scan(&entry.ID, &entry.Title, &entry.Content, &entry.Mood, &entry.CreatedBy, &entry.CreatedAt, &entry.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting entry: %w", err)
	}

	return entry, nil
}

// Update applies a partial update: nil fields keep their stored value.
// Supplied fields are validated the same way Create validates them, and
// updated_at is refreshed.
func (s *EntryService) Update(ctx context.Context, ownerID, entryID uuid.UUID, params models.UpdateEntryParams) (*models.Entry, error) {
	if params.Title != nil {
		trimmed := strings.TrimSpace(*params.Title)
		if trimmed == "" {
			return nil, ErrTitleRequired
		}
		params.Title = &trimmed
	}
	if params.Content != nil {
		trimmed := strings.TrimSpace(*params.Content)
		if trimmed == "" {
			return nil, ErrContentRequired
		}
		params.Content = &trimmed
	}
	if params.Mood != nil && !params.Mood.Valid() {
		return nil, ErrInvalidMood
	}

	entry := &models.Entry{}
	err := s.db.QueryRow(ctx,
		`UPDATE entries SET
		   title = COALESCE($3, title),
		   content = COALESCE($4, content),
		   mood = COALESCE($5, mood),
		   updated_at = now()
		 WHERE id = $1 AND created_by = $2
		 RETURNING `+entryColumns,
		entryID, ownerID, params.Title, params.Content, params.Mood,
	).Scan(&entry.ID, &entry.Title, &entry.Content, &entry.Mood, &entry.CreatedBy, &entry.CreatedAt, &entry.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating entry: %w", err)
	}

	return entry, nil
}

// Delete permanently removes the entry and returns the deleted record.
func (s *EntryService) Delete(ctx context.Context, ownerID, entryID uuid.UUID) (*models.Entry, error) {
	entry := &models.Entry{}
	err := s.db.QueryRow(ctx,
		`DELETE FROM entries
		 WHERE id = $1 AND created_by = $2
		 RETURNING `+entryColumns,
		entryID, ownerID,
	).Scan(&entry.ID, &entry.Title, &entry.Content, &entry.Mood, &entry.CreatedBy, &entry.CreatedAt, &entry.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("deleting entry: %w", err)
	}

	return entry, nil
}

// Search returns the owner's entries whose title or content contains the
// trimmed query, case-insensitively, newest first. Pure substring
// containment: LIKE metacharacters in the query are escaped.
func (s *EntryService) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]*models.Entry, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, ErrEmptyQuery
	}

	pattern := "%" + escapeLike(trimmed) + "%"
	rows, err := s.db.Query(ctx,
		`SELECT `+entryColumns+`
		 FROM entries
		 WHERE created_by = $1
		   AND (title ILIKE $2 OR content ILIKE $2)
		 ORDER BY created_at DESC, id DESC`,
		ownerID, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("searching entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Recent returns the owner's newest entries, capped at limit. This is the
// read-only accessor the AI summary collaborator consumes.
func (s *EntryService) Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]*models.Entry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+entryColumns+`
		 FROM entries
		 WHERE created_by = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		ownerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recent entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]*models.Entry, error) {
	entries := []*models.Entry{}
	for rows.Next() {
		entry := &models.Entry{}
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Content, &entry.Mood, &entry.CreatedBy, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}
	return entries, nil
}

// escapeLike escapes LIKE/ILIKE metacharacters so user input matches
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
