package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Strob0t/clientdesk/internal/domain/journal"
	"github.com/Strob0t/clientdesk/internal/domain/user"
	"github.com/Strob0t/clientdesk/internal/operation"
)

var writer = user.Actor{UserID: 7, Role: user.RoleMember}

func newJournalService(store *mockStore) *JournalService {
	svc := NewJournalService(store, nil)
	n := 0
	svc.newID = func() string {
		n++
		return "j-" + string(rune('0'+n))
	}
	return svc
}

func TestJournalCreate(t *testing.T) {
	store := &mockStore{}
	env := newJournalService(store).Create(context.Background(), writer, operation.Params{"title": "Day 1", "body": "hello"})

	require.True(t, env.Success, env.Errors)
	assert.Equal(t, journalSavedPayload{Message: "Journal created", JournalID: "j-1"}, env.Payload)
	require.Len(t, store.journals, 1)
	assert.Equal(t, int64(7), store.journals[0].UserID)
}

func TestJournalCreate_WithIDIs405(t *testing.T) {
	store := &mockStore{}
	env := newJournalService(store).Create(context.Background(), writer, operation.Params{
		"journal_id": "j-9", "title": "t", "body": "b",
	})

	assert.Equal(t, http.StatusMethodNotAllowed, env.Status)
	assert.Equal(t, []string{journal.ShapeMessage}, env.Errors)
	assert.Zero(t, store.mutations)
}

func TestJournalCreate_Anonymous(t *testing.T) {
	store := &mockStore{}
	env := newJournalService(store).Create(context.Background(), user.Actor{}, operation.Params{"title": "t", "body": "b"})
	assert.Equal(t, http.StatusForbidden, env.Status)
	assert.Equal(t, []string{"Authentication is required to access journals."}, env.Errors)
	assert.Zero(t, store.mutations)
}

func TestJournalUpdate(t *testing.T) {
	store := &mockStore{journals: []journal.Journal{
		{ID: "a", UserID: 7, Title: "old", Body: "old"},
		{ID: "b", UserID: 8, Title: "theirs", Body: "theirs"},
	}}
	svc := newJournalService(store)
	ctx := context.Background()

	env := svc.Update(ctx, writer, operation.Params{"journal_id": "a", "title": "new", "body": "text"})
	require.True(t, env.Success)
	assert.Equal(t, journalSavedPayload{Message: "Journal updated"}, env.Payload)
	assert.Equal(t, "new", store.journals[0].Title)

	other := svc.Update(ctx, writer, operation.Params{"journal_id": "b", "title": "x", "body": "y"})
	assert.Equal(t, http.StatusNotFound, other.Status)
	assert.Equal(t, "theirs", store.journals[1].Title)

	missing := svc.Update(ctx, writer, operation.Params{"title": "x", "body": "y"})
	assert.Equal(t, http.StatusBadRequest, missing.Status)
	assert.Equal(t, []string{journal.Messages["journal_id"]}, missing.Errors)
}

func TestJournalGetAndList(t *testing.T) {
	now := time.Now()
	store := &mockStore{journals: []journal.Journal{
		{ID: "a", UserID: 7, Title: "older", UpdatedAt: now.Add(-time.Hour)},
		{ID: "b", UserID: 7, Title: "newer", UpdatedAt: now},
		{ID: "c", UserID: 8, Title: "theirs", UpdatedAt: now},
	}}
	svc := newJournalService(store)
	ctx := context.Background()

	one := svc.Get(ctx, writer, operation.Params{"id": "a"})
	require.True(t, one.Success)
	assert.Equal(t, "older", one.Payload.(journalPayload).Journal.Title)

	theirs := svc.Get(ctx, writer, operation.Params{"id": "c"})
	assert.Equal(t, http.StatusNotFound, theirs.Status)
	assert.Equal(t, []string{"No journals were found."}, theirs.Errors)

	noID := svc.Get(ctx, writer, operation.Params{})
	assert.Equal(t, []string{"No journal id passed to the query."}, noID.Errors)

	list := svc.List(ctx, writer, operation.Params{})
	require.True(t, list.Success)
	rows := list.Payload.(journalsPayload).Journals
	require.Len(t, rows, 2)
	assert.Equal(t, "newer", rows[0].Title)
}

func TestJournalList_EmptyIsNotFound(t *testing.T) {
	env := newJournalService(&mockStore{}).List(context.Background(), writer, operation.Params{})
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, []string{"No journals were found."}, env.Errors)
}
