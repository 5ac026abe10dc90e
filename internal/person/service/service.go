// Package service orchestrates registry record mutations: normalization,
// validation, persistence, caching and the audit trail.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks PersonStore,PhotoStore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"registru/internal/audit"
	"registru/internal/person/metrics"
	"registru/internal/person/models"
	"registru/internal/person/query"
	"registru/internal/person/validation"
	dErrors "registru/pkg/domain-errors"
	"registru/pkg/platform/sentinel"
	"registru/pkg/requestcontext"
)

// PersonStore is the persistence contract the service depends on.
type PersonStore interface {
	Create(ctx context.Context, p *models.Person) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Person, error)
	Update(ctx context.Context, id uuid.UUID, apply func(*models.Person) error) (*models.Person, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params query.Params) ([]*models.Person, int, error)
}

// PhotoStore saves and serves identity document photos.
type PhotoStore interface {
	Save(ctx context.Context, r io.Reader, originalName string) (string, error)
	Remove(ctx context.Context, path string) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// ListResult is one page of the filtered, sorted registry view.
type ListResult struct {
	Items    []*models.Person
	Total    int
	Page     int
	PageSize int
}

// Service implements the registry operations.
type Service struct {
	store    PersonStore
	photos   PhotoStore
	cache    *Cache
	audit    audit.Publisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
	pageSize int
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.audit = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithCache(c *Cache) Option {
	return func(s *Service) { s.cache = c }
}

func WithPhotoStore(p PhotoStore) Option {
	return func(s *Service) { s.photos = p }
}

func WithPageSize(n int) Option {
	return func(s *Service) { s.pageSize = n }
}

// New constructs a Service.
func New(store PersonStore, opts ...Option) *Service {
	s := &Service{
		store:    store,
		audit:    audit.Noop{},
		logger:   slog.Default(),
		tracer:   otel.Tracer("registru/person"),
		pageSize: query.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates and stores a new record. There are no uniqueness rules:
// identical submissions yield distinct records.
func (s *Service) Create(ctx context.Context, cmd CreatePersonCommand) (*models.Person, error) {
	ctx, span := s.tracer.Start(ctx, "person.create")
	defer span.End()

	p := cmd.toPerson()
	validation.NormalizePerson(p)
	if err := validation.ValidatePerson(p); err != nil {
		s.countValidationFailure()
		return nil, err
	}

	now := requestcontext.Now(ctx)
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.store.Create(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create person")
	}

	s.cache.Set(ctx, p)
	s.audit.Emit(ctx, audit.Event{Action: audit.ActionPersonCreated, PersonID: p.ID})
	if s.metrics != nil {
		s.metrics.PersonCreated.Inc()
	}
	s.logger.InfoContext(ctx, "person created", "person_id", p.ID)

	return p, nil
}

// Get fetches a record by id, serving from cache when possible.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	ctx, span := s.tracer.Start(ctx, "person.get")
	defer span.End()

	if p := s.cache.Get(ctx, id); p != nil {
		if s.metrics != nil {
			s.metrics.CacheHits.Inc()
		}
		return p, nil
	}
	if s.cache != nil && s.metrics != nil {
		s.metrics.CacheMisses.Inc()
	}

	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
	}

	s.cache.Set(ctx, p)
	return p, nil
}

// List evaluates the listing contract: filter, sort, paginate, with the
// total measured on the filtered set.
func (s *Service) List(ctx context.Context, params query.Params) (*ListResult, error) {
	ctx, span := s.tracer.Start(ctx, "person.list")
	defer span.End()

	start := time.Now()
	params = params.Normalized(s.pageSize)

	items, total, err := s.store.List(ctx, params)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list people")
	}
	if s.metrics != nil {
		s.metrics.ObserveList(start)
	}

	return &ListResult{
		Items:    items,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// Update merges the provided fields onto the stored record atomically. The
// merged record is re-normalized and re-validated before anything is written,
// so a partial update can never leave an invalid record behind.
func (s *Service) Update(ctx context.Context, id uuid.UUID, cmd UpdatePersonCommand) (*models.Person, error) {
	ctx, span := s.tracer.Start(ctx, "person.update")
	defer span.End()

	p, err := s.store.Update(ctx, id, func(rec *models.Person) error {
		cmd.applyTo(rec)
		validation.NormalizePerson(rec)
		if err := validation.ValidatePerson(rec); err != nil {
			return err
		}
		rec.UpdatedAt = requestcontext.Now(ctx)
		return nil
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			s.countValidationFailure()
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update person")
	}

	s.cache.Invalidate(ctx, id)
	s.cache.Set(ctx, p)
	s.audit.Emit(ctx, audit.Event{Action: audit.ActionPersonUpdated, PersonID: id})
	if s.metrics != nil {
		s.metrics.PersonUpdated.Inc()
	}
	s.logger.InfoContext(ctx, "person updated", "person_id", id)

	return p, nil
}

// Delete removes a record and its photo, if any.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "person.delete")
	defer span.End()

	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete person")
	}

	if s.photos != nil && p.IDPhotoPath != "" {
		if err := s.photos.Remove(ctx, p.IDPhotoPath); err != nil {
			s.logger.WarnContext(ctx, "remove person photo", "person_id", id, "error", err)
		}
	}

	s.cache.Invalidate(ctx, id)
	s.audit.Emit(ctx, audit.Event{Action: audit.ActionPersonDeleted, PersonID: id})
	if s.metrics != nil {
		s.metrics.PersonDeleted.Inc()
	}
	s.logger.InfoContext(ctx, "person deleted", "person_id", id)

	return nil
}

// AttachPhoto stores an identity-card photo and records its path on the
// person. A previous photo is removed after the record points at the new one.
func (s *Service) AttachPhoto(ctx context.Context, id uuid.UUID, r io.Reader, originalName string) (*models.Person, error) {
	ctx, span := s.tracer.Start(ctx, "person.attach_photo")
	defer span.End()

	if s.photos == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "photo storage not configured")
	}

	path, err := s.photos.Save(ctx, r, originalName)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("cannot store photo: %v", err))
	}

	var previous string
	p, err := s.store.Update(ctx, id, func(rec *models.Person) error {
		previous = rec.IDPhotoPath
		rec.IDPhotoPath = path
		rec.UpdatedAt = requestcontext.Now(ctx)
		return nil
	})
	if err != nil {
		_ = s.photos.Remove(ctx, path)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to attach photo")
	}

	if previous != "" && previous != path {
		if err := s.photos.Remove(ctx, previous); err != nil {
			s.logger.WarnContext(ctx, "remove previous photo", "person_id", id, "error", err)
		}
	}

	s.cache.Invalidate(ctx, id)
	s.cache.Set(ctx, p)
	s.audit.Emit(ctx, audit.Event{Action: audit.ActionPersonUpdated, PersonID: id, Summary: "photo attached"})
	if s.metrics != nil {
		s.metrics.PersonUpdated.Inc()
	}

	return p, nil
}

// OpenPhoto streams the stored photo for a person. The second return value
// is the stored filename, used to infer the content type.
func (s *Service) OpenPhoto(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	if s.photos == nil {
		return nil, "", dErrors.New(dErrors.CodeNotFound, "photo not found")
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if p.IDPhotoPath == "" {
		return nil, "", dErrors.New(dErrors.CodeNotFound, "photo not found")
	}

	rc, err := s.photos.Open(ctx, p.IDPhotoPath)
	if err != nil {
		return nil, "", dErrors.New(dErrors.CodeNotFound, "photo not found")
	}
	return rc, p.IDPhotoPath, nil
}

func (s *Service) countValidationFailure() {
	if s.metrics != nil {
		s.metrics.ValidationFailed.Inc()
	}
}
