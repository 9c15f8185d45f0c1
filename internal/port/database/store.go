// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/Strob0t/clientdesk/internal/domain/affiliate"
	"github.com/Strob0t/clientdesk/internal/domain/journal"
	"github.com/Strob0t/clientdesk/internal/domain/project"
	"github.com/Strob0t/clientdesk/internal/domain/user"
)

// Store is the port interface for database operations.
//
// Point reads return domain.ErrNotFound when no row matches. Updates return
// domain.ErrNotFound when zero rows are affected and never insert. Inserts
// return the new identifier. Every statement is parameterized and runs on
// its own; the store never opens a multi-statement transaction.
type Store interface {
	// Projects
	GetProject(ctx context.Context, id int64) (*project.Project, error)  // active rows only
	FindProject(ctx context.Context, id int64) (*project.Project, error) // unfiltered
	ListProjects(ctx context.Context, filter project.ListFilter) ([]project.Project, error)
	CreateProject(ctx context.Context, req project.CreateRequest) (int64, error)
	UpdateProject(ctx context.Context, req project.UpdateRequest) error
	CompleteProject(ctx context.Context, id int64) error
	SoftDeleteProject(ctx context.Context, id int64) error

	// Journals, always scoped to their owner
	GetJournal(ctx context.Context, owner int64, id string) (*journal.Journal, error)
	ListJournals(ctx context.Context, filter journal.ListFilter) ([]journal.Journal, error)
	CreateJournal(ctx context.Context, j *journal.Journal) (string, error)
	UpdateJournal(ctx context.Context, owner int64, req journal.UpdateRequest) error

	// Users
	GetUser(ctx context.Context, id int64) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	CreateUser(ctx context.Context, u *user.User) (int64, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error

	// Affiliates
	ListAffiliates(ctx context.Context) ([]user.User, error)
	ListAffiliatesByID(ctx context.Context, ids []int64) ([]user.User, error)
	GetAffiliateByLink(ctx context.Context, link string) (*user.User, error)
	AffiliateLinkExists(ctx context.Context, link string) (bool, error)
	CreateClick(ctx context.Context, c *affiliate.Click) (int64, error)
	ListConversions(ctx context.Context, sponsor int64) ([]user.User, error)
}
