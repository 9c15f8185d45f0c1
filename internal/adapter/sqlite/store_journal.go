package sqlite

import (
	"context"
	"fmt"

	"github.com/Strob0t/clientdesk/internal/domain/journal"
)

const journalColumns = `id, user_id, title, body, deleted, created_at, updated_at`

func scanJournal(row scannable) (journal.Journal, error) {
	var (
		j                journal.Journal
		deleted          int
		created, updated int64
	)
	if err := row.Scan(&j.ID, &j.UserID, &j.Title, &j.Body, &deleted, &created, &updated); err != nil {
		return j, err
	}
	j.Deleted = deleted != 0
	j.CreatedAt, j.UpdatedAt = fromMillis(created), fromMillis(updated)
	return j, nil
}

func (s *Store) GetJournal(ctx context.Context, owner int64, id string) (*journal.Journal, error) {
	j, err := scanJournal(s.db.QueryRowContext(ctx,
		`SELECT `+journalColumns+` FROM journals WHERE id = ? AND user_id = ? AND deleted = 0`, id, owner))
	if err != nil {
		return nil, notFoundWrap(err, "get journal %s", id)
	}
	return &j, nil
}

func (s *Store) ListJournals(ctx context.Context, filter journal.ListFilter) ([]journal.Journal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+journalColumns+` FROM journals
		 WHERE user_id = ? AND deleted = 0
		 ORDER BY updated_at DESC, id ASC
		 LIMIT ?`, filter.UserID, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	journals := []journal.Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal: %w", err)
		}
		journals = append(journals, j)
	}
	return journals, rows.Err()
}

func (s *Store) CreateJournal(ctx context.Context, j *journal.Journal) (string, error) {
	now := s.now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journals (id, user_id, title, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		j.ID, j.UserID, j.Title, j.Body, toMillis(now), toMillis(now))
	if err != nil {
		return "", conflictWrap(err, "create journal")
	}
	j.CreatedAt, j.UpdatedAt = fromMillis(toMillis(now)), fromMillis(toMillis(now))
	return j.ID, nil
}

func (s *Store) UpdateJournal(ctx context.Context, owner int64, req journal.UpdateRequest) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE journals SET title = ?, body = ?, updated_at = ?
		 WHERE id = ? AND user_id = ? AND deleted = 0`,
		req.Title, req.Body, toMillis(s.now()), req.JournalID, owner)
	return expectOne(res, err, "update journal %s", req.JournalID)
}
