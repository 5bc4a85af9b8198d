package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/yogeshrakate/skill-matrix-backend/internal/domain"
	internal_errors "github.com/yogeshrakate/skill-matrix-backend/internal/errors"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

type EntityService interface {
	Create(ctx context.Context, tag string, values map[string]string) (domain.EntityRecord, error)
	Get(ctx context.Context, tag, id string) (domain.EntityRecord, error)
	List(ctx context.Context, tag string, offset, limit int) ([]domain.EntityRecord, error)
	Update(ctx context.Context, tag, id string, values map[string]string) error
	Delete(ctx context.Context, tag, id string) error
}

// EntityStorage performs CRUD over a descriptor's table. Implementations rely
// on the descriptor alone for identifiers; values are passed as parameters.
type EntityStorage interface {
	CreateEntity(ctx context.Context, desc domain.EntityDescriptor, rec domain.EntityRecord) error
	EntityById(ctx context.Context, desc domain.EntityDescriptor, id string) (domain.EntityRecord, error)
	ListEntities(ctx context.Context, desc domain.EntityDescriptor, offset, limit int) ([]domain.EntityRecord, error)
	UpdateEntity(ctx context.Context, desc domain.EntityDescriptor, rec domain.EntityRecord) error
	DeleteEntity(ctx context.Context, desc domain.EntityDescriptor, id string) error
}

// Entities serves the admin CRUD surface through the static entity registry.
type Entities struct {
	storage EntityStorage
}

func NewEntities(storage EntityStorage) *Entities {
	return &Entities{storage: storage}
}

func descriptor(tag string) (domain.EntityDescriptor, error) {
	desc, ok := domain.Entities[tag]
	if !ok {
		return domain.EntityDescriptor{}, &internal_errors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("Unknown entity type %q", tag),
			StatusCode: http.StatusBadRequest,
		}
	}
	return desc, nil
}

// checkValues rejects unknown fields and requires every declared column.
func checkValues(desc domain.EntityDescriptor, values map[string]string) error {
	for field := range values {
		if !containsColumn(desc, field) {
			return &internal_errors.ErrorWithStatusCode{
				Message:    fmt.Sprintf("Unknown field %q for %s", field, desc.Tag),
				StatusCode: http.StatusBadRequest,
			}
		}
	}
	for _, col := range desc.Columns {
		if values[col] == "" {
			return &internal_errors.ErrorWithStatusCode{
				Message:    fmt.Sprintf("Field %q is required for %s", col, desc.Tag),
				StatusCode: http.StatusBadRequest,
			}
		}
	}
	return nil
}

func containsColumn(desc domain.EntityDescriptor, field string) bool {
	for _, col := range desc.Columns {
		if col == field {
			return true
		}
	}
	return false
}

func (s *Entities) Create(ctx context.Context, tag string, values map[string]string) (domain.EntityRecord, error) {
	desc, err := descriptor(tag)
	if err != nil {
		return domain.EntityRecord{}, err
	}
	if err := checkValues(desc, values); err != nil {
		return domain.EntityRecord{}, err
	}

	rec := domain.EntityRecord{Id: uuid.NewString(), Values: values}
	if err := s.storage.CreateEntity(ctx, desc, rec); err != nil {
		return domain.EntityRecord{}, err
	}
	return rec, nil
}

func (s *Entities) Get(ctx context.Context, tag, id string) (domain.EntityRecord, error) {
	desc, err := descriptor(tag)
	if err != nil {
		return domain.EntityRecord{}, err
	}
	return s.storage.EntityById(ctx, desc, id)
}

func (s *Entities) List(ctx context.Context, tag string, offset, limit int) ([]domain.EntityRecord, error) {
	desc, err := descriptor(tag)
	if err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	return s.storage.ListEntities(ctx, desc, offset, limit)
}

func (s *Entities) Update(ctx context.Context, tag, id string, values map[string]string) error {
	desc, err := descriptor(tag)
	if err != nil {
		return err
	}
	if err := checkValues(desc, values); err != nil {
		return err
	}
	return s.storage.UpdateEntity(ctx, desc, domain.EntityRecord{Id: id, Values: values})
}

func (s *Entities) Delete(ctx context.Context, tag, id string) error {
	desc, err := descriptor(tag)
	if err != nil {
		return err
	}
	return s.storage.DeleteEntity(ctx, desc, id)
}
