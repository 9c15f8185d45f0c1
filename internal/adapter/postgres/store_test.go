package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Strob0t/clientdesk/internal/adapter/postgres"
	"github.com/Strob0t/clientdesk/internal/domain"
	"github.com/Strob0t/clientdesk/internal/domain/affiliate"
	"github.com/Strob0t/clientdesk/internal/domain/journal"
	"github.com/Strob0t/clientdesk/internal/domain/project"
	"github.com/Strob0t/clientdesk/internal/domain/user"
)

// setupStore creates a pgxpool connection, runs all migrations, and returns a
// ready-to-use Store. The pool is closed via t.Cleanup.
func setupStore(t *testing.T) *postgres.Store {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("requires DATABASE_URL")
	}

	ctx := context.Background()

	// Run goose migrations first (uses embedded SQL files).
	if err := postgres.RunMigrations(ctx, dsn); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return postgres.NewStore(pool)
}

func uniqueEmail() string {
	return "test-" + uuid.NewString()[:8] + "@example.com"
}

func createAffiliate(t *testing.T, store *postgres.Store, sponsor int64) *user.User {
	t.Helper()
	u := &user.User{
		Email:         uniqueEmail(),
		PasswordHash:  "x",
		FirstName:     "Aff",
		Role:          user.RoleAffiliate,
		SponsorID:     sponsor,
		AffiliateName: "Aff " + uuid.NewString()[:6],
		AffiliateLink: "link-" + uuid.NewString()[:8],
	}
	if _, err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create affiliate: %v", err)
	}
	return u
}

func TestStore_ProjectLifecycle(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id, err := store.CreateProject(ctx, project.CreateRequest{Name: "Kitchen", Address: "1 Elm St", StartTimestamp: 1700000000})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetProject(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Kitchen" || got.StartTimestamp != 1700000000 {
		t.Errorf("unexpected project: %+v", got)
	}

	err = store.UpdateProject(ctx, project.UpdateRequest{ID: id, Name: "Kitchen 2", Type: "remodel", Address: "2 Elm St", StartTimestamp: 1700000001})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := store.CompleteProject(ctx, id); err != nil {
		t.Fatalf("complete: %v", err)
	}
	active, err := store.ListProjects(ctx, project.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, p := range active {
		if p.ID == id {
			t.Error("completed project should be hidden from the default list")
		}
	}

	if err := store.SoftDeleteProject(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetProject(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get after delete: expected ErrNotFound, got %v", err)
	}
	row, err := store.FindProject(ctx, id)
	if err != nil {
		t.Fatalf("find after delete: %v", err)
	}
	if !row.Deleted || !row.Completed || row.Type != "remodel" {
		t.Errorf("unexpected row after delete: %+v", row)
	}

	err = store.UpdateProject(ctx, project.UpdateRequest{ID: id, Name: "x", Type: "x", Address: "x", StartTimestamp: 1})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("update deleted: expected ErrNotFound, got %v", err)
	}
}

func TestStore_JournalScopedToOwner(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	owner := &user.User{Email: uniqueEmail(), Role: user.RoleMember}
	if _, err := store.CreateUser(ctx, owner); err != nil {
		t.Fatalf("create owner: %v", err)
	}
	other := &user.User{Email: uniqueEmail(), Role: user.RoleMember}
	if _, err := store.CreateUser(ctx, other); err != nil {
		t.Fatalf("create other: %v", err)
	}

	id, err := store.CreateJournal(ctx, &journal.Journal{ID: uuid.NewString(), UserID: owner.ID, Title: "t", Body: "b"})
	if err != nil {
		t.Fatalf("create journal: %v", err)
	}

	if _, err := store.GetJournal(ctx, other.ID, id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("other owner: expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetJournal(ctx, owner.ID, "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("malformed id: expected ErrNotFound, got %v", err)
	}

	err = store.UpdateJournal(ctx, other.ID, journal.UpdateRequest{JournalID: id, Title: "x", Body: "y"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("update by other owner: expected ErrNotFound, got %v", err)
	}
	if err := store.UpdateJournal(ctx, owner.ID, journal.UpdateRequest{JournalID: id, Title: "new", Body: "y"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, err := store.ListJournals(ctx, journal.ListFilter{UserID: owner.ID, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Title != "new" {
		t.Errorf("unexpected journals: %+v", list)
	}
}

func TestStore_AffiliatesAndConversions(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	sponsor := createAffiliate(t, store, 0)
	first := createAffiliate(t, store, sponsor.ID)
	second := createAffiliate(t, store, sponsor.ID)

	dup := &user.User{Email: uniqueEmail(), Role: user.RoleAffiliate, AffiliateLink: sponsor.AffiliateLink}
	if _, err := store.CreateUser(ctx, dup); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate link: expected ErrConflict, got %v", err)
	}

	byLink, err := store.GetAffiliateByLink(ctx, sponsor.AffiliateLink)
	if err != nil || byLink.ID != sponsor.ID {
		t.Fatalf("get by link: %v, %+v", err, byLink)
	}
	exists, err := store.AffiliateLinkExists(ctx, "missing-"+uuid.NewString())
	if err != nil || exists {
		t.Errorf("exists on missing link: %v, %v", exists, err)
	}

	if _, err := store.CreateClick(ctx, &affiliate.Click{AffiliateID: sponsor.ID, IPAddress: "203.0.113.1"}); err != nil {
		t.Fatalf("create click: %v", err)
	}

	conv, err := store.ListConversions(ctx, sponsor.ID)
	if err != nil {
		t.Fatalf("conversions: %v", err)
	}
	if len(conv) != 2 || conv[0].ID != second.ID || conv[1].ID != first.ID {
		t.Errorf("conversions should be newest first: %+v", conv)
	}

	byID, err := store.ListAffiliatesByID(ctx, []int64{first.ID, -1})
	if err != nil || len(byID) != 1 {
		t.Errorf("by id: %v, %+v", err, byID)
	}

	byEmail, err := store.GetUserByEmail(ctx, sponsor.Email)
	if err != nil || byEmail.ID != sponsor.ID {
		t.Errorf("by email: %v", err)
	}
}
