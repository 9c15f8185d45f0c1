package service

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/Strob0t/clientdesk/internal/domain"
	"github.com/Strob0t/clientdesk/internal/domain/affiliate"
	"github.com/Strob0t/clientdesk/internal/domain/journal"
	"github.com/Strob0t/clientdesk/internal/domain/project"
	"github.com/Strob0t/clientdesk/internal/domain/user"
	"github.com/Strob0t/clientdesk/internal/port/database"
)

// Ensure mockStore implements database.Store at compile time.
var _ database.Store = (*mockStore)(nil)

// mockStore is a minimal in-memory implementation of database.Store for testing.
type mockStore struct {
	projects []project.Project
	journals []journal.Journal
	users    []user.User
	clicks   []affiliate.Click

	// mutations counts every insert or update call, successful or not.
	mutations int

	// Error hooks, set these to inject failures.
	getProjectErr    error
	listProjectsErr  error
	createProjectErr error
	createJournalErr error
	getUserErr       error
	createUserErr    error
	createClickErr   error

	// beforeCreateUser runs at the start of CreateUser.
	beforeCreateUser func(m *mockStore)
}

func (m *mockStore) nextProjectID() int64 {
	return int64(len(m.projects) + 1)
}

func (m *mockStore) GetProject(_ context.Context, id int64) (*project.Project, error) {
	if m.getProjectErr != nil {
		return nil, m.getProjectErr
	}
	for i := range m.projects {
		if m.projects[i].ID == id && !m.projects[i].Deleted {
			p := m.projects[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) FindProject(_ context.Context, id int64) (*project.Project, error) {
	for i := range m.projects {
		if m.projects[i].ID == id {
			p := m.projects[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListProjects(_ context.Context, filter project.ListFilter) ([]project.Project, error) {
	if m.listProjectsErr != nil {
		return nil, m.listProjectsErr
	}
	var out []project.Project
	for _, p := range m.projects {
		if p.Deleted || (p.Completed && !filter.IncludeCompleted) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartTimestamp != out[j].StartTimestamp {
			return out[i].StartTimestamp < out[j].StartTimestamp
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *mockStore) CreateProject(_ context.Context, req project.CreateRequest) (int64, error) {
	m.mutations++
	if m.createProjectErr != nil {
		return 0, m.createProjectErr
	}
	p := project.Project{
		ID:             m.nextProjectID(),
		Name:           req.Name,
		Type:           req.Type,
		Address:        req.Address,
		StartTimestamp: req.StartTimestamp,
	}
	m.projects = append(m.projects, p)
	return p.ID, nil
}

func (m *mockStore) updateActiveProject(id int64, fn func(*project.Project)) error {
	m.mutations++
	for i := range m.projects {
		if m.projects[i].ID == id && !m.projects[i].Deleted {
			fn(&m.projects[i])
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) UpdateProject(_ context.Context, req project.UpdateRequest) error {
	return m.updateActiveProject(req.ID, func(p *project.Project) {
		p.Name, p.Type, p.Address, p.StartTimestamp = req.Name, req.Type, req.Address, req.StartTimestamp
	})
}

func (m *mockStore) CompleteProject(_ context.Context, id int64) error {
	return m.updateActiveProject(id, func(p *project.Project) { p.Completed = true })
}

func (m *mockStore) SoftDeleteProject(_ context.Context, id int64) error {
	return m.updateActiveProject(id, func(p *project.Project) { p.Deleted = true })
}

func (m *mockStore) GetJournal(_ context.Context, owner int64, id string) (*journal.Journal, error) {
	for i := range m.journals {
		j := m.journals[i]
		if j.ID == id && j.UserID == owner && !j.Deleted {
			return &j, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListJournals(_ context.Context, filter journal.ListFilter) ([]journal.Journal, error) {
	var out []journal.Journal
	for _, j := range m.journals {
		if j.UserID == filter.UserID && !j.Deleted {
			out = append(out, j)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].UpdatedAt.After(out[k].UpdatedAt) })
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *mockStore) CreateJournal(_ context.Context, j *journal.Journal) (string, error) {
	m.mutations++
	if m.createJournalErr != nil {
		return "", m.createJournalErr
	}
	now := time.Now()
	j.CreatedAt, j.UpdatedAt = now, now
	m.journals = append(m.journals, *j)
	return j.ID, nil
}

func (m *mockStore) UpdateJournal(_ context.Context, owner int64, req journal.UpdateRequest) error {
	m.mutations++
	for i := range m.journals {
		j := &m.journals[i]
		if j.ID == req.JournalID && j.UserID == owner && !j.Deleted {
			j.Title, j.Body, j.UpdatedAt = req.Title, req.Body, time.Now()
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) GetUser(_ context.Context, id int64) (*user.User, error) {
	if m.getUserErr != nil {
		return nil, m.getUserErr
	}
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	if m.getUserErr != nil {
		return nil, m.getUserErr
	}
	for i := range m.users {
		if strings.EqualFold(m.users[i].Email, email) {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) CreateUser(_ context.Context, u *user.User) (int64, error) {
	m.mutations++
	if m.beforeCreateUser != nil {
		m.beforeCreateUser(m)
	}
	if m.createUserErr != nil {
		return 0, m.createUserErr
	}
	u.ID = int64(len(m.users) + 100)
	u.CreatedAt = time.Now()
	m.users = append(m.users, *u)
	return u.ID, nil
}

func (m *mockStore) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	m.mutations++
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].PasswordHash = hash
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) affiliates() []user.User {
	var out []user.User
	for _, u := range m.users {
		if u.Role == user.RoleAffiliate {
			out = append(out, u)
		}
	}
	return out
}

func (m *mockStore) ListAffiliates(_ context.Context) ([]user.User, error) {
	out := m.affiliates()
	sort.SliceStable(out, func(i, j int) bool { return out[i].AffiliateName < out[j].AffiliateName })
	return out, nil
}

func (m *mockStore) ListAffiliatesByID(_ context.Context, ids []int64) ([]user.User, error) {
	var out []user.User
	for _, u := range m.affiliates() {
		if slices.Contains(ids, u.ID) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockStore) GetAffiliateByLink(_ context.Context, link string) (*user.User, error) {
	for _, u := range m.affiliates() {
		if u.AffiliateLink == link {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) AffiliateLinkExists(ctx context.Context, link string) (bool, error) {
	_, err := m.GetAffiliateByLink(ctx, link)
	return err == nil, nil
}

func (m *mockStore) CreateClick(_ context.Context, c *affiliate.Click) (int64, error) {
	m.mutations++
	if m.createClickErr != nil {
		return 0, m.createClickErr
	}
	c.ID = int64(len(m.clicks) + 1)
	m.clicks = append(m.clicks, *c)
	return c.ID, nil
}

func (m *mockStore) ListConversions(_ context.Context, sponsor int64) ([]user.User, error) {
	var out []user.User
	for _, u := range m.users {
		if u.SponsorID == sponsor {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
