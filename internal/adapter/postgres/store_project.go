package postgres

import (
	"context"
	"fmt"

	"github.com/Strob0t/clientdesk/internal/domain/project"
)

const projectColumns = `id, name, type, address, start_timestamp, completed, deleted, created_at, updated_at`

func scanProject(row scannable) (project.Project, error) {
	var p project.Project
	err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Address, &p.StartTimestamp, &p.Completed, &p.Deleted, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) GetProject(ctx context.Context, id int64) (*project.Project, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND deleted = FALSE`, id)
	p, err := scanProject(row)
	if err != nil {
		return nil, notFoundWrap(err, "get project %d", id)
	}
	return &p, nil
}

func (s *Store) FindProject(ctx context.Context, id int64) (*project.Project, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err != nil {
		return nil, notFoundWrap(err, "find project %d", id)
	}
	return &p, nil
}

func (s *Store) ListProjects(ctx context.Context, filter project.ListFilter) ([]project.Project, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects
		 WHERE deleted = FALSE AND ($1 OR completed = FALSE)
		 ORDER BY start_timestamp ASC, id ASC`, filter.IncludeCompleted)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return orEmpty(projects), rows.Err()
}

func (s *Store) CreateProject(ctx context.Context, req project.CreateRequest) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO projects (name, type, address, start_timestamp) VALUES ($1, $2, $3, $4) RETURNING id`,
		req.Name, req.Type, req.Address, req.StartTimestamp,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateProject(ctx context.Context, req project.UpdateRequest) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE projects SET name = $2, type = $3, address = $4, start_timestamp = $5, updated_at = now()
		 WHERE id = $1 AND deleted = FALSE`,
		req.ID, req.Name, req.Type, req.Address, req.StartTimestamp)
	return execExpectOne(tag, err, "update project %d", req.ID)
}

func (s *Store) CompleteProject(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE projects SET completed = TRUE, updated_at = now() WHERE id = $1 AND deleted = FALSE`, id)
	return execExpectOne(tag, err, "complete project %d", id)
}

func (s *Store) SoftDeleteProject(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE projects SET deleted = TRUE, updated_at = now() WHERE id = $1 AND deleted = FALSE`, id)
	return execExpectOne(tag, err, "delete project %d", id)
}
