package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Strob0t/clientdesk/internal/domain"
	"github.com/Strob0t/clientdesk/internal/domain/journal"
	"github.com/Strob0t/clientdesk/internal/domain/user"
	"github.com/Strob0t/clientdesk/internal/operation"
	"github.com/Strob0t/clientdesk/internal/port/database"
)

const (
	msgJournalAuth     = "Authentication is required to access journals."
	msgJournalNotFound = "No journals were found."
)

// JournalService handles journal CRUD scoped to the requesting user.
type JournalService struct {
	store  database.Store
	runner *operation.Runner
	newID  func() string
}

// NewJournalService creates a new JournalService.
func NewJournalService(store database.Store, runner *operation.Runner) *JournalService {
	return &JournalService{store: store, runner: runner, newID: uuid.NewString}
}

type journalPayload struct {
	Journal *journal.Journal `json:"journal"`
}

type journalsPayload struct {
	Journals []journal.Journal `json:"journals"`
}

type journalSavedPayload struct {
	Message   string `json:"message"`
	JournalID string `json:"journal_id,omitempty"`
}

// Get returns one of the actor's journals.
func (s *JournalService) Get(ctx context.Context, actor user.Actor, p operation.Params) operation.Envelope {
	req := journal.DecodeGet(p)
	return operation.Run(ctx, s.runner, operation.Operation[journalPayload]{
		Name:      "journal.get",
		Kind:      operation.KindReadOne,
		Actor:     actor,
		Authorize: requireAuthenticated(msgJournalAuth),
		Validate:  func(l *operation.ErrorList) { operation.Check(l, req, journal.Messages) },
		Execute: func(ctx context.Context) (journalPayload, error) {
			j, err := s.store.GetJournal(ctx, actor.UserID, req.ID)
			return journalPayload{Journal: j}, err
		},
		NotFound: msgJournalNotFound,
		Failure:  "Undetermined error loading journals.",
	})
}

// List returns the actor's journals, most recently updated first. An empty
// result is reported as not found.
func (s *JournalService) List(ctx context.Context, actor user.Actor, p operation.Params) operation.Envelope {
	filter := journal.DecodeList(actor.UserID, p)
	return operation.Run(ctx, s.runner, operation.Operation[journalsPayload]{
		Name:      "journal.list",
		Kind:      operation.KindReadMany,
		Actor:     actor,
		Authorize: requireAuthenticated(msgJournalAuth),
		Execute: func(ctx context.Context) (journalsPayload, error) {
			rows, err := s.store.ListJournals(ctx, filter)
			if err != nil {
				return journalsPayload{}, err
			}
			if len(rows) == 0 {
				return journalsPayload{}, domain.ErrNotFound
			}
			return journalsPayload{Journals: rows}, nil
		},
		NotFound: msgJournalNotFound,
		Failure:  "Undetermined error loading journals.",
	})
}

// Create inserts a new journal owned by the actor. A request carrying a
// journal id belongs on the update route and is rejected with 405.
func (s *JournalService) Create(ctx context.Context, actor user.Actor, p operation.Params) operation.Envelope {
	req := journal.DecodeCreate(p)
	return operation.Run(ctx, s.runner, operation.Operation[journalSavedPayload]{
		Name:      "journal.create",
		Kind:      operation.KindCreate,
		Actor:     actor,
		Authorize: requireAuthenticated(msgJournalAuth),
		Validate:  func(l *operation.ErrorList) { journal.CheckCreate(l, req) },
		Execute: func(ctx context.Context) (journalSavedPayload, error) {
			id, err := s.store.CreateJournal(ctx, &journal.Journal{
				ID:     s.newID(),
				UserID: actor.UserID,
				Title:  req.Title,
				Body:   req.Body,
			})
			if err != nil {
				return journalSavedPayload{}, err
			}
			return journalSavedPayload{Message: "Journal created", JournalID: id}, nil
		},
		Failure: "Undetermined error saving journal.",
	})
}

// Update rewrites the title and body of one of the actor's journals.
func (s *JournalService) Update(ctx context.Context, actor user.Actor, p operation.Params) operation.Envelope {
	req := journal.DecodeUpdate(p)
	return operation.Run(ctx, s.runner, operation.Operation[journalSavedPayload]{
		Name:      "journal.update",
		Kind:      operation.KindUpdate,
		Actor:     actor,
		Authorize: requireAuthenticated(msgJournalAuth),
		Validate:  func(l *operation.ErrorList) { operation.Check(l, req, journal.Messages) },
		Execute: func(ctx context.Context) (journalSavedPayload, error) {
			if err := s.store.UpdateJournal(ctx, actor.UserID, req); err != nil {
				return journalSavedPayload{}, err
			}
			return journalSavedPayload{Message: "Journal updated"}, nil
		},
		NotFound: msgJournalNotFound,
		Failure:  "Undetermined error updating journal.",
	})
}
