// Package operation implements the request-handling protocol shared by every
// controller: authorize, validate every field, perform at most one
// data-access call, and answer with a uniform Envelope.
package operation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Strob0t/clientdesk/internal/domain"
	"github.com/Strob0t/clientdesk/internal/domain/user"
)

const tracerName = "github.com/Strob0t/clientdesk/internal/operation"

// Kind is the shape of an operation.
type Kind string

const (
	KindReadOne      Kind = "read_one"
	KindReadMany     Kind = "read_many"
	KindCreate       Kind = "create"
	KindUpdate       Kind = "update"
	KindSoftDelete   Kind = "soft_delete"
	KindMarkComplete Kind = "mark_complete"
)

// State is a step of the per-invocation state machine:
// Received → Validating → {Rejected | Mutating} → Responded.
type State string

const (
	StateReceived   State = "received"
	StateValidating State = "validating"
	StateRejected   State = "rejected"
	StateMutating   State = "mutating"
	StateResponded  State = "responded"
)

// Operation describes one invocation. Only Name, Kind and Execute are
// required.
type Operation[T any] struct {
	Name  string
	Kind  Kind
	Actor user.Actor

	// Authorize returns the message to report when the actor lacks the
	// capability, or "" when allowed.
	Authorize func(user.Actor) string
	// Precheck runs before validation. It loads whatever Validate needs and
	// may short-circuit the operation with a redirect, e.g. when the identity
	// being registered already exists.
	Precheck func(ctx context.Context) (*Redirect, error)
	// Validate records every field problem. It is always called, even after an
	// authorization failure.
	Validate func(l *ErrorList)
	// Execute performs the single data-access call. It runs only when the
	// ErrorList is empty after validation.
	Execute func(ctx context.Context) (T, error)

	// NotFound is reported when Execute returns domain.ErrNotFound.
	NotFound string
	// Failure is the generic message reported for data-access errors.
	Failure string
	// RejectedPayload is attached to the envelope when validation fails.
	RejectedPayload any
}

// Observer is notified once per invocation with the final envelope.
type Observer interface {
	ObserveOperation(ctx context.Context, name string, kind Kind, env Envelope, elapsed time.Duration)
}

// Runner drives operations. A nil *Runner is usable and logs to slog.Default.
type Runner struct {
	log      *slog.Logger
	observer Observer
}

// NewRunner creates a Runner. Both arguments may be nil.
func NewRunner(log *slog.Logger, obs Observer) *Runner {
	return &Runner{log: log, observer: obs}
}

func (r *Runner) logger() *slog.Logger {
	if r == nil || r.log == nil {
		return slog.Default()
	}
	return r.log
}

// Run executes op and returns its envelope. It never panics and never
// returns an error: every failure is rendered into the envelope.
func Run[T any](ctx context.Context, r *Runner, op Operation[T]) (env Envelope) {
	start := time.Now()
	log := r.logger().With("op", op.Name, "kind", string(op.Kind))

	ctx, span := otel.Tracer(tracerName).Start(ctx, op.Name, trace.WithAttributes(
		attribute.String("operation.kind", string(op.Kind)),
		attribute.Bool("operation.anonymous", op.Actor.Anonymous()),
	))
	defer func() {
		log.DebugContext(ctx, "operation state", "state", StateResponded, "status", env.Status)
		span.SetAttributes(attribute.Int("operation.status", env.Status))
		if !env.Success {
			span.SetStatus(codes.Error, http.StatusText(env.Status))
		}
		span.End()
		if r != nil && r.observer != nil {
			r.observer.ObserveOperation(ctx, op.Name, op.Kind, env, time.Since(start))
		}
	}()

	log.DebugContext(ctx, "operation state", "state", StateReceived)
	if op.Precheck != nil {
		redirect, err := op.Precheck(ctx)
		if err != nil {
			log.ErrorContext(ctx, "operation precheck failed", "error", err)
			return Failure(ClassDataAccess, failureMessage(op.Failure))
		}
		if redirect != nil {
			return Redirected(redirect.Location, redirect.Reason)
		}
	}

	log.DebugContext(ctx, "operation state", "state", StateValidating)
	var errs ErrorList
	if op.Authorize != nil {
		if msg := op.Authorize(op.Actor); msg != "" {
			errs.Add(ClassAuthorization, msg)
		}
	}
	if op.Validate != nil {
		op.Validate(&errs)
	}
	if !errs.Empty() {
		log.DebugContext(ctx, "operation state", "state", StateRejected, "errors", len(errs.msgs))
		return Fail(&errs, op.RejectedPayload)
	}

	log.DebugContext(ctx, "operation state", "state", StateMutating)
	payload, err := execute(ctx, op)
	if err != nil {
		span.RecordError(err)
		return classify(ctx, log, op, err)
	}
	return OK(payload)
}

// execute calls op.Execute and converts a panic into an error.
func execute[T any](ctx context.Context, op Operation[T]) (payload T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in %s: %v", op.Name, rec)
		}
	}()
	return op.Execute(ctx)
}

// classify renders an Execute error. Internal detail is logged, never returned.
func classify[T any](ctx context.Context, log *slog.Logger, op Operation[T], err error) Envelope {
	var (
		opErr *Error
		rdErr *RedirectError
	)
	switch {
	case errors.As(err, &rdErr):
		return Redirected(rdErr.Redirect.Location, rdErr.Redirect.Reason)
	case errors.As(err, &opErr):
		return Failure(opErr.Class, opErr.Message)
	case errors.Is(err, domain.ErrNotFound):
		msg := op.NotFound
		if msg == "" {
			msg = "Not found."
		}
		return Failure(ClassNotFound, msg)
	case errors.Is(err, domain.ErrValidation):
		return Failure(ClassValidation, validationMessage(err))
	default:
		log.ErrorContext(ctx, "operation data access failed", "error", err)
		return Failure(ClassDataAccess, failureMessage(op.Failure))
	}
}

// validationMessage strips the sentinel suffix from a wrapped ErrValidation,
// e.g. "That affiliate link is already taken.: validation failed".
func validationMessage(err error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+domain.ErrValidation.Error())
	if msg == domain.ErrValidation.Error() {
		return "Invalid request."
	}
	return msg
}

func failureMessage(msg string) string {
	if msg == "" {
		return "Undetermined error."
	}
	return msg
}
