package operation_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Strob0t/clientdesk/internal/domain"
	"github.com/Strob0t/clientdesk/internal/domain/user"
	"github.com/Strob0t/clientdesk/internal/operation"
)

var (
	admin  = user.Actor{UserID: 1, Role: user.RoleAdmin}
	member = user.Actor{UserID: 2, Role: user.RoleMember}
)

func requireAdmin(a user.Actor) string {
	if !a.Has(user.RoleAdmin) {
		return "Current user does not have permission to create projects."
	}
	return ""
}

type recordingObserver struct {
	calls []operation.Envelope
}

func (o *recordingObserver) ObserveOperation(_ context.Context, _ string, _ operation.Kind, env operation.Envelope, _ time.Duration) {
	o.calls = append(o.calls, env)
}

func TestRun_Success(t *testing.T) {
	obs := &recordingObserver{}
	r := operation.NewRunner(nil, obs)
	calls := 0

	env := operation.Run(context.Background(), r, operation.Operation[map[string]int64]{
		Name:      "project.create",
		Kind:      operation.KindCreate,
		Actor:     admin,
		Authorize: requireAdmin,
		Validate:  func(*operation.ErrorList) {},
		Execute: func(context.Context) (map[string]int64, error) {
			calls++
			return map[string]int64{"id": 9}, nil
		},
	})

	want := operation.Envelope{
		Success: true,
		Status:  http.StatusOK,
		Errors:  []string{},
		Payload: map[string]int64{"id": 9},
	}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("envelope mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, calls)
	require.Len(t, obs.calls, 1)
	assert.Equal(t, env, obs.calls[0])
}

func TestRun_RejectionSkipsExecute(t *testing.T) {
	calls := 0
	env := operation.Run(context.Background(), nil, operation.Operation[int]{
		Name:  "project.update",
		Kind:  operation.KindUpdate,
		Actor: admin,
		Validate: func(l *operation.ErrorList) {
			l.Add(operation.ClassValidation, "No type given for project.")
			l.Add(operation.ClassValidation, "No address given for project.")
		},
		Execute: func(context.Context) (int, error) {
			calls++
			return 0, nil
		},
	})

	assert.Zero(t, calls, "execute must not run after a rejection")
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Equal(t, []string{"No type given for project.", "No address given for project."}, env.Errors)
	assert.Nil(t, env.Payload)
}

func TestRun_AuthorizationWinsOverValidation(t *testing.T) {
	calls := 0
	env := operation.Run(context.Background(), nil, operation.Operation[int]{
		Name:      "project.create",
		Kind:      operation.KindCreate,
		Actor:     member,
		Authorize: requireAdmin,
		Validate: func(l *operation.ErrorList) {
			l.Add(operation.ClassValidation, "No name given for project.")
		},
		Execute: func(context.Context) (int, error) {
			calls++
			return 0, nil
		},
	})

	assert.Zero(t, calls)
	assert.Equal(t, http.StatusForbidden, env.Status)
	assert.Equal(t, []string{
		"Current user does not have permission to create projects.",
		"No name given for project.",
	}, env.Errors, "validation still runs after an authorization failure")
}

func TestRun_ValidateRunsForAnonymous(t *testing.T) {
	validated := false
	env := operation.Run(context.Background(), nil, operation.Operation[int]{
		Name:      "project.create",
		Kind:      operation.KindCreate,
		Authorize: requireAdmin,
		Validate:  func(*operation.ErrorList) { validated = true },
		Execute:   func(context.Context) (int, error) { return 0, nil },
	})

	assert.True(t, validated)
	assert.Equal(t, http.StatusForbidden, env.Status)
	assert.Equal(t, []string{"Current user does not have permission to create projects."}, env.Errors)
}

func TestRun_ExecuteErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantErrors []string
	}{
		{
			name:       "not found",
			err:        fmt.Errorf("get project 4: %w", domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantErrors: []string{"Project does not exist."},
		},
		{
			name:       "driver failure is not leaked",
			err:        errors.New("pq: connection refused on 10.0.0.3"),
			wantStatus: http.StatusInternalServerError,
			wantErrors: []string{"Undetermined error saving project."},
		},
		{
			name:       "explicit class",
			err:        operation.Errorf(operation.ClassShapeMismatch, "Wrong route."),
			wantStatus: http.StatusMethodNotAllowed,
			wantErrors: []string{"Wrong route."},
		},
		{
			name:       "validation sentinel keeps message",
			err:        fmt.Errorf("That affiliate link is already taken.: %w", domain.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantErrors: []string{"That affiliate link is already taken."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := operation.Run(context.Background(), nil, operation.Operation[*int]{
				Name:     "project.get",
				Kind:     operation.KindReadOne,
				NotFound: "Project does not exist.",
				Failure:  "Undetermined error saving project.",
				Execute:  func(context.Context) (*int, error) { return nil, tt.err },
			})
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantStatus, env.Status)
			assert.Equal(t, tt.wantErrors, env.Errors)
			assert.Nil(t, env.Payload)
		})
	}
}

func TestRun_PanicBecomesDataAccessError(t *testing.T) {
	env := operation.Run(context.Background(), nil, operation.Operation[int]{
		Name: "journal.create",
		Kind: operation.KindCreate,
		Execute: func(context.Context) (int, error) {
			panic("nil map write")
		},
	})

	assert.False(t, env.Success)
	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Equal(t, []string{"Undetermined error."}, env.Errors)
}

func TestRun_PrecheckRedirect(t *testing.T) {
	validated, executed := false, false
	env := operation.Run(context.Background(), nil, operation.Operation[int]{
		Name: "affiliate.register",
		Kind: operation.KindCreate,
		Precheck: func(context.Context) (*operation.Redirect, error) {
			return &operation.Redirect{Location: "/login", Reason: "exists"}, nil
		},
		Validate: func(*operation.ErrorList) { validated = true },
		Execute: func(context.Context) (int, error) {
			executed = true
			return 0, nil
		},
	})

	assert.False(t, validated)
	assert.False(t, executed)
	assert.True(t, env.Success)
	assert.Empty(t, env.Errors)
	assert.Equal(t, http.StatusSeeOther, env.Status)
	require.NotNil(t, env.Redirect)
	assert.Equal(t, "/login", env.Redirect.Location)
}

func TestRun_PrecheckError(t *testing.T) {
	env := operation.Run(context.Background(), nil, operation.Operation[int]{
		Name:     "affiliate.register",
		Kind:     operation.KindCreate,
		Failure:  "Undetermined error registering affiliate.",
		Precheck: func(context.Context) (*operation.Redirect, error) { return nil, errors.New("db down") },
		Execute:  func(context.Context) (int, error) { return 1, nil },
	})

	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Equal(t, []string{"Undetermined error registering affiliate."}, env.Errors)
}

func TestRun_RejectedPayload(t *testing.T) {
	echo := map[string]any{"email": "a@b.c"}
	env := operation.Run(context.Background(), nil, operation.Operation[int]{
		Name:            "affiliate.register",
		Kind:            operation.KindCreate,
		RejectedPayload: echo,
		Validate: func(l *operation.ErrorList) {
			l.Add(operation.ClassValidation, "No first name given.")
		},
		Execute: func(context.Context) (int, error) { return 1, nil },
	})

	assert.False(t, env.Success)
	assert.Equal(t, echo, env.Payload)
}

// Success is false iff errors is non-empty, for every path through Run.
func TestRun_EnvelopeInvariant(t *testing.T) {
	ops := []operation.Operation[int]{
		{Name: "ok", Execute: func(context.Context) (int, error) { return 1, nil }},
		{Name: "auth", Authorize: requireAdmin, Execute: func(context.Context) (int, error) { return 1, nil }},
		{Name: "fail", Execute: func(context.Context) (int, error) { return 0, errors.New("x") }},
		{Name: "missing", Execute: func(context.Context) (int, error) { return 0, domain.ErrNotFound }},
		{Name: "redirect", Precheck: func(context.Context) (*operation.Redirect, error) {
			return &operation.Redirect{Location: "/"}, nil
		}},
	}
	for _, op := range ops {
		t.Run(op.Name, func(t *testing.T) {
			env := operation.Run(context.Background(), nil, op)
			assert.Equal(t, env.Success, len(env.Errors) == 0)
			assert.NotNil(t, env.Errors)
		})
	}
}

func TestRun_ExecuteRedirect(t *testing.T) {
	env := operation.Run(context.Background(), nil, operation.Operation[int]{
		Name: "affiliate.register",
		Kind: operation.KindCreate,
		Execute: func(context.Context) (int, error) {
			return 0, fmt.Errorf("insert user: %w", &operation.RedirectError{
				Redirect: operation.Redirect{Location: "/login", Reason: "exists"},
			})
		},
	})

	assert.True(t, env.Success)
	assert.Equal(t, http.StatusSeeOther, env.Status)
	assert.Empty(t, env.Errors)
	require.NotNil(t, env.Redirect)
	assert.Equal(t, operation.Redirect{Location: "/login", Reason: "exists"}, *env.Redirect)
}
