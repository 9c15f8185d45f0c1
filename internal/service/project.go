package service

import (
	"context"

	"github.com/Strob0t/clientdesk/internal/domain/project"
	"github.com/Strob0t/clientdesk/internal/domain/user"
	"github.com/Strob0t/clientdesk/internal/operation"
	"github.com/Strob0t/clientdesk/internal/port/database"
)

const (
	msgProjectNotFound = "Project does not exist."
	msgProjectView     = "Current user does not have permission to view projects."
	msgProjectCreate   = "Current user does not have permission to create projects."
	msgProjectUpdate   = "Current user does not have permission to update projects."
	msgProjectEdit     = "Current user does not have permission to edit projects."
	msgProjectDelete   = "Current user does not have permission to delete projects."
)

// ProjectService handles the administrator-only project operations.
type ProjectService struct {
	store  database.Store
	runner *operation.Runner
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store database.Store, runner *operation.Runner) *ProjectService {
	return &ProjectService{store: store, runner: runner}
}

type projectPayload struct {
	Project project.Detail `json:"project"`
}

type projectsPayload struct {
	Projects []project.Summary `json:"projects"`
}

type projectIDPayload struct {
	ID int64 `json:"id"`
}

// Get returns one active project.
func (s *ProjectService) Get(ctx context.Context, actor user.Actor, p operation.Params) operation.Envelope {
	req := project.DecodeID(p)
	return operation.Run(ctx, s.runner, operation.Operation[projectPayload]{
		Name:      "project.get",
		Kind:      operation.KindReadOne,
		Actor:     actor,
		Authorize: requireRole(user.RoleAdmin, msgProjectView),
		Validate:  func(l *operation.ErrorList) { operation.Check(l, req, project.Messages) },
		Execute: func(ctx context.Context) (projectPayload, error) {
			pr, err := s.store.GetProject(ctx, req.ID)
			if err != nil {
				return projectPayload{}, err
			}
			return projectPayload{Project: pr.Detail()}, nil
		},
		NotFound: msgProjectNotFound,
		Failure:  "Undetermined error loading project.",
	})
}

// List returns active projects ordered by start time. Completed projects are
// included only when completed=1. An empty result is a success.
func (s *ProjectService) List(ctx context.Context, actor user.Actor, p operation.Params) operation.Envelope {
	filter := project.DecodeFilter(p)
	return operation.Run(ctx, s.runner, operation.Operation[projectsPayload]{
		Name:      "project.list",
		Kind:      operation.KindReadMany,
		Actor:     actor,
		Authorize: requireRole(user.RoleAdmin, msgProjectView),
		Execute: func(ctx context.Context) (projectsPayload, error) {
			rows, err := s.store.ListProjects(ctx, filter)
			if err != nil {
				return projectsPayload{}, err
			}
			out := projectsPayload{Projects: make([]project.Summary, 0, len(rows))}
			for i := range rows {
				out.Projects = append(out.Projects, rows[i].Summary())
			}
			return out, nil
		},
		Failure: "Undetermined error loading projects.",
	})
}

// Create inserts a new project.
func (s *ProjectService) Create(ctx context.Context, actor user.Actor, p operation.Params) operation.Envelope {
	req := project.DecodeCreate(p)
	return operation.Run(ctx, s.runner, operation.Operation[projectIDPayload]{
		Name:      "project.create",
		Kind:      operation.KindCreate,
		Actor:     actor,
		Authorize: requireRole(user.RoleAdmin, msgProjectCreate),
		Validate:  func(l *operation.ErrorList) { operation.Check(l, req, project.Messages) },
		Execute: func(ctx context.Context) (projectIDPayload, error) {
			id, err := s.store.CreateProject(ctx, req)
			return projectIDPayload{ID: id}, err
		},
		Failure: "Undetermined error saving project.",
	})
}

// Update rewrites every field of an active project. It never inserts.
func (s *ProjectService) Update(ctx context.Context, actor user.Actor, p operation.Params) operation.Envelope {
	req := project.DecodeUpdate(p)
	return operation.Run(ctx, s.runner, operation.Operation[projectIDPayload]{
		Name:      "project.update",
		Kind:      operation.KindUpdate,
		Actor:     actor,
		Authorize: requireRole(user.RoleAdmin, msgProjectUpdate),
		Validate:  func(l *operation.ErrorList) { operation.Check(l, req, project.Messages) },
		Execute: func(ctx context.Context) (projectIDPayload, error) {
			return projectIDPayload{ID: req.ID}, s.store.UpdateProject(ctx, req)
		},
		NotFound: msgProjectNotFound,
		Failure:  "Undetermined error updating project.",
	})
}

// Complete flags a project as completed so the default list hides it.
func (s *ProjectService) Complete(ctx context.Context, actor user.Actor, p operation.Params) operation.Envelope {
	req := project.DecodeID(p)
	return operation.Run(ctx, s.runner, operation.Operation[projectIDPayload]{
		Name:      "project.complete",
		Kind:      operation.KindMarkComplete,
		Actor:     actor,
		Authorize: requireRole(user.RoleAdmin, msgProjectEdit),
		Validate:  func(l *operation.ErrorList) { operation.Check(l, req, project.Messages) },
		Execute: func(ctx context.Context) (projectIDPayload, error) {
			return projectIDPayload{ID: req.ID}, s.store.CompleteProject(ctx, req.ID)
		},
		NotFound: msgProjectNotFound,
		Failure:  "Undetermined error completing project.",
	})
}

// Delete soft-deletes a project. The row stays in the store.
func (s *ProjectService) Delete(ctx context.Context, actor user.Actor, p operation.Params) operation.Envelope {
	req := project.DecodeID(p)
	return operation.Run(ctx, s.runner, operation.Operation[projectIDPayload]{
		Name:      "project.delete",
		Kind:      operation.KindSoftDelete,
		Actor:     actor,
		Authorize: requireRole(user.RoleAdmin, msgProjectDelete),
		Validate:  func(l *operation.ErrorList) { operation.Check(l, req, project.Messages) },
		Execute: func(ctx context.Context) (projectIDPayload, error) {
			return projectIDPayload{ID: req.ID}, s.store.SoftDeleteProject(ctx, req.ID)
		},
		NotFound: msgProjectNotFound,
		Failure:  "Undetermined error deleting project.",
	})
}
