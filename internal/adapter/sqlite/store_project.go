package sqlite

import (
	"context"
	"fmt"

	"github.com/Strob0t/clientdesk/internal/domain/project"
)

const projectColumns = `id, name, type, address, start_timestamp, completed, deleted, created_at, updated_at`

func scanProject(row scannable) (project.Project, error) {
	var (
		p                  project.Project
		created, updated   int64
		completed, deleted int
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Address, &p.StartTimestamp, &completed, &deleted, &created, &updated); err != nil {
		return p, err
	}
	p.Completed, p.Deleted = completed != 0, deleted != 0
	p.CreatedAt, p.UpdatedAt = fromMillis(created), fromMillis(updated)
	return p, nil
}

func (s *Store) GetProject(ctx context.Context, id int64) (*project.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ? AND deleted = 0`, id))
	if err != nil {
		return nil, notFoundWrap(err, "get project %d", id)
	}
	return &p, nil
}

func (s *Store) FindProject(ctx context.Context, id int64) (*project.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if err != nil {
		return nil, notFoundWrap(err, "find project %d", id)
	}
	return &p, nil
}

func (s *Store) ListProjects(ctx context.Context, filter project.ListFilter) ([]project.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects
		 WHERE deleted = 0 AND (? = 1 OR completed = 0)
		 ORDER BY start_timestamp ASC, id ASC`, boolInt(filter.IncludeCompleted))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	projects := []project.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) CreateProject(ctx context.Context, req project.CreateRequest) (int64, error) {
	now := toMillis(s.now())
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (name, type, address, start_timestamp, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		req.Name, req.Type, req.Address, req.StartTimestamp, now, now)
	if err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create project: last insert id: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateProject(ctx context.Context, req project.UpdateRequest) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, type = ?, address = ?, start_timestamp = ?, updated_at = ?
		 WHERE id = ? AND deleted = 0`,
		req.Name, req.Type, req.Address, req.StartTimestamp, toMillis(s.now()), req.ID)
	return expectOne(res, err, "update project %d", req.ID)
}

func (s *Store) CompleteProject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET completed = 1, updated_at = ? WHERE id = ? AND deleted = 0`, toMillis(s.now()), id)
	return expectOne(res, err, "complete project %d", id)
}

func (s *Store) SoftDeleteProject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET deleted = 1, updated_at = ? WHERE id = ? AND deleted = 0`, toMillis(s.now()), id)
	return expectOne(res, err, "delete project %d", id)
}
