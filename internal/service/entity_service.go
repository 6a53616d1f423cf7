package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/eduverse/portal-api/internal/query"
	"github.com/eduverse/portal-api/internal/schema"
	"github.com/eduverse/portal-api/internal/validate"
	appErrors "github.com/eduverse/portal-api/pkg/errors"
)

// entityRepository is the storage surface the service drives.
type entityRepository[T any] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, f query.Filter) ([]T, error)
	Insert(ctx context.Context, record map[string]interface{}) (int64, error)
	Update(ctx context.Context, id int64, patch map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// EntityService runs the validate → filter → repository pipeline for one
// entity kind and classifies failures for the response layer.
type EntityService[T any] struct {
	entity    schema.Entity
	repo      entityRepository[T]
	validator *validate.Validator
	cache     *CacheService
	logger    *zap.Logger
}

// NewEntityService constructs the service. The cache may be nil or disabled.
func NewEntityService[T any](entity schema.Entity, repo entityRepository[T], validator *validate.Validator, cache *CacheService, logger *zap.Logger) *EntityService[T] {
	if validator == nil {
		validator = validate.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntityService[T]{entity: entity, repo: repo, validator: validator, cache: cache, logger: logger}
}

// Get returns a single record. Malformed and unknown identifiers both
// surface as not-found.
func (s *EntityService[T]) Get(ctx context.Context, rawID string) (*T, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	key := s.cacheKey("get", strconv.FormatInt(id, 10))
	var cached T
	if s.cache.Enabled() && s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound(s.entity.Display)
		}
		return nil, appErrors.Internal(err)
	}

	s.cache.Set(ctx, key, record)
	return record, nil
}

// List returns records matching the list-query parameters in the entity's
// fixed order.
func (s *EntityService[T]) List(ctx context.Context, params url.Values) ([]T, error) {
	key := s.cacheKey("list", params.Encode())
	var cached []T
	if s.cache.Enabled() && s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	filter := query.Build(s.entity, params)
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	if rows == nil {
		rows = make([]T, 0)
	}

	s.cache.Set(ctx, key, rows)
	return rows, nil
}

// Create validates the payload and inserts the sanitized record, returning
// the stored row with its assigned identifier.
func (s *EntityService[T]) Create(ctx context.Context, payload map[string]interface{}) (*T, error) {
	record, err := s.validator.Create(s.entity, payload)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Insert(ctx, record)
	if err != nil {
		return nil, appErrors.Internal(err)
	}

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err)
	}

	s.invalidate(ctx)
	return created, nil
}

// Update validates a partial payload and applies it to an existing record.
// The existence check is a separate read so a missing identifier reports
// not-found rather than silently succeeding.
func (s *EntityService[T]) Update(ctx context.Context, rawID string, payload map[string]interface{}) (*T, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound(s.entity.Display)
		}
		return nil, appErrors.Internal(err)
	}

	patch, err := s.validator.Update(s.entity, payload)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, appErrors.Internal(err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err)
	}

	s.invalidate(ctx)
	return updated, nil
}

// Delete removes a record after confirming it exists and returns the
// deleted row.
func (s *EntityService[T]) Delete(ctx context.Context, rawID string) (*T, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound(s.entity.Display)
		}
		return nil, appErrors.Internal(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, appErrors.Internal(err)
	}

	s.invalidate(ctx)
	return record, nil
}

// Entity exposes the schema descriptor backing this service.
func (s *EntityService[T]) Entity() schema.Entity {
	return s.entity
}

func (s *EntityService[T]) parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.NotFound(s.entity.Display)
	}
	return id, nil
}

func (s *EntityService[T]) cacheKey(op, suffix string) string {
	return fmt.Sprintf("portal:%s:%s:%s", s.entity.Name, op, suffix)
}

func (s *EntityService[T]) invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, fmt.Sprintf("portal:%s:*", s.entity.Name))
}
