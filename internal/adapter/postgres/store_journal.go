package postgres

import (
	"context"
	"fmt"

	"github.com/Strob0t/clientdesk/internal/domain/journal"
)

const journalColumns = `id::text, user_id, title, body, deleted, created_at, updated_at`

func scanJournal(row scannable) (journal.Journal, error) {
	var j journal.Journal
	err := row.Scan(&j.ID, &j.UserID, &j.Title, &j.Body, &j.Deleted, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}

func (s *Store) GetJournal(ctx context.Context, owner int64, id string) (*journal.Journal, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+journalColumns+` FROM journals WHERE id = $1 AND user_id = $2 AND deleted = FALSE`, id, owner)
	j, err := scanJournal(row)
	if err != nil {
		return nil, notFoundWrap(err, "get journal %s", id)
	}
	return &j, nil
}

func (s *Store) ListJournals(ctx context.Context, filter journal.ListFilter) ([]journal.Journal, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+journalColumns+` FROM journals
		 WHERE user_id = $1 AND deleted = FALSE
		 ORDER BY updated_at DESC
		 LIMIT $2`, filter.UserID, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	defer rows.Close()

	var journals []journal.Journal
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal: %w", err)
		}
		journals = append(journals, j)
	}
	return orEmpty(journals), rows.Err()
}

func (s *Store) CreateJournal(ctx context.Context, j *journal.Journal) (string, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO journals (id, user_id, title, body) VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		j.ID, j.UserID, j.Title, j.Body,
	).Scan(&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return "", conflictWrap(err, "create journal")
	}
	return j.ID, nil
}

func (s *Store) UpdateJournal(ctx context.Context, owner int64, req journal.UpdateRequest) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE journals SET title = $3, body = $4, updated_at = now()
		 WHERE id = $1 AND user_id = $2 AND deleted = FALSE`,
		req.JournalID, owner, req.Title, req.Body)
	return execExpectOne(tag, err, "update journal %s", req.JournalID)
}
