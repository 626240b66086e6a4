// Package service implements the mutation pipeline guarding all writes to
// the catalog: validation, uniqueness checks, optimistic concurrency, and
// the store write, in that order, so purely local checks short-circuit
// before anything touches the store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	catalogmetrics "catalog/internal/catalog/metrics"
	"catalog/internal/catalog/models"
	"catalog/internal/catalog/notify"
	"catalog/internal/catalog/store"
	"catalog/internal/catalog/validate"
	"catalog/pkg/email"
)

// Service orchestrates the mutation pipeline. It is stateless between
// invocations: the candidate is owned only for the duration of one call and
// never retained. Concurrency across requests comes from the host runtime;
// concurrent updates to the same id are arbitrated by the store's atomic
// replace plus the currency check.
type Service struct {
	store     store.Store
	validator *validate.ItemValidator
	notifier  notify.Notifier
	recipient email.Recipient
	metrics   *catalogmetrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Option configures optional collaborators.
type Option func(*Service)

func WithNotifier(n notify.Notifier, recipient email.Recipient) Option {
	return func(s *Service) {
		s.notifier = n
		s.recipient = recipient
	}
}

func WithMetrics(m *catalogmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New constructs the pipeline with an injected store so tests can substitute
// doubles.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:     st,
		validator: validate.New(),
		logger:    slog.Default(),
		tracer:    otel.Tracer("catalog/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create runs the create pipeline: validate, name uniqueness, code
// uniqueness, persist at version 0. The notification afterwards is
// best-effort and never affects the returned result.
func (s *Service) Create(ctx context.Context, candidate *models.Item) Result {
	ctx, span := s.tracer.Start(ctx, "catalog.create")
	defer span.End()
	start := time.Now()
	result := s.create(ctx, candidate)
	s.finish(ctx, "create", result, start)
	return result
}

func (s *Service) create(ctx context.Context, candidate *models.Item) Result {
	candidate.Normalize()

	if violations := s.validator.Check(candidate); len(violations) > 0 {
		return Invalid{Violations: violations}
	}

	conflict, err := s.conflictingName(ctx, candidate.Name, "")
	if err != nil {
		return Fault{Err: err}
	}
	if conflict != nil {
		return *conflict
	}

	codeConflict, err := s.conflictingCode(ctx, candidate.Code)
	if err != nil {
		return Fault{Err: err}
	}
	if codeConflict != nil {
		return *codeConflict
	}

	now := time.Now()
	candidate.ID = uuid.NewString()
	candidate.Version = 0
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	id, err := s.store.Insert(ctx, candidate)
	if err != nil {
		return Fault{Err: err}
	}

	s.notify(ctx, notify.KindItemCreated, candidate)
	return Created{ID: id}
}

// Update runs the update pipeline. The version token is checked first so a
// malformed token wins over an invalid candidate; then validation, the
// self-exempt name uniqueness check, and the currency check gate the atomic
// full replace. Fields absent from the candidate are cleared, not merged.
func (s *Service) Update(ctx context.Context, candidate *models.Item, versionToken string) Result {
	ctx, span := s.tracer.Start(ctx, "catalog.update")
	defer span.End()
	start := time.Now()
	result := s.update(ctx, candidate, versionToken)
	s.finish(ctx, "update", result, start)
	return result
}

func (s *Service) update(ctx context.Context, candidate *models.Item, versionToken string) Result {
	supplied, ok := parseVersionToken(versionToken)
	if !ok {
		return BadVersion{Token: versionToken}
	}

	candidate.Normalize()

	if violations := s.validator.Check(candidate); len(violations) > 0 {
		return Invalid{Violations: violations}
	}

	conflict, err := s.conflictingName(ctx, candidate.Name, candidate.ID)
	if err != nil {
		return Fault{Err: err}
	}
	if conflict != nil {
		return *conflict
	}

	if candidate.ID == "" {
		return NotFound{}
	}

	if blocked, err := s.checkCurrency(ctx, candidate.ID, supplied); err != nil {
		return Fault{Err: err}
	} else if blocked != nil {
		return blocked
	}

	// The currency check above and this replace are not atomic together; a
	// concurrent delete in the window surfaces as NotFound here. The replace
	// itself increments the version atomically inside the store.
	updated, err := s.store.ReplaceByID(ctx, candidate.ID, candidate)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NotFound{ID: candidate.ID}
		}
		return Fault{Err: err}
	}

	s.notify(ctx, notify.KindItemUpdated, updated)
	return Updated{Version: updated.Version}
}

// Delete removes the item. Deleting an id that does not exist is success
// with Existed=false, never an error.
func (s *Service) Delete(ctx context.Context, id string) Result {
	ctx, span := s.tracer.Start(ctx, "catalog.delete")
	defer span.End()
	start := time.Now()

	existed, err := s.store.DeleteByID(ctx, id)
	var result Result
	if err != nil {
		result = Fault{Err: err}
	} else {
		result = Deleted{Existed: existed}
		// Deletes of absent ids succeed but change nothing, so stay silent.
		if existed {
			s.notify(ctx, notify.KindItemDeleted, &models.Item{ID: id})
		}
	}
	s.finish(ctx, "delete", result, start)
	return result
}

// FindByID is the read path; it bypasses the mutation state machine.
func (s *Service) FindByID(ctx context.Context, id string) (*models.Item, error) {
	return s.store.FindByID(ctx, id)
}

// Find lists items matching the filter; read path as well.
func (s *Service) Find(ctx context.Context, filter models.Filter) ([]*models.Item, error) {
	return s.store.Find(ctx, filter)
}

// notify publishes the change event without coupling delivery failures to
// business success: errors are logged and counted, nothing more.
func (s *Service) notify(ctx context.Context, kind notify.Kind, item *models.Item) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, notify.NewEvent(kind, item, s.recipient)); err != nil {
		s.metrics.IncrementNotify("failed")
		s.logger.WarnContext(ctx, "notification failed",
			"kind", string(kind),
			"item_id", item.ID,
			"error", err,
		)
		return
	}
	s.metrics.IncrementNotify("sent")
}

func (s *Service) finish(ctx context.Context, operation string, result Result, start time.Time) {
	s.metrics.IncrementOutcome(operation, result.Tag())
	s.metrics.ObservePipelineLatency(operation, time.Since(start))
	if fault, ok := result.(Fault); ok {
		s.logger.ErrorContext(ctx, "pipeline infrastructure fault",
			"operation", operation,
			"error", fault.Err,
		)
	}
}
