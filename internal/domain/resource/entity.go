package resource

import (
	"errors"
	"strings"
	"time"

	"rentalflow/internal/domain/rental"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
)

const MaxResourceNameLength = 255

// Specification describes a type of rentable resource (what an Intent asks
// for). The catalog is read-only for the lifecycle core.
type Specification struct {
	id   uuid.UUID
	name string
}

func NewSpecification(id uuid.UUID, name string) (*Specification, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Specification{id: id, name: strings.TrimSpace(name)}, nil
}

func (s *Specification) ID() uuid.UUID { return s.id }
func (s *Specification) Name() string  { return s.name }

// Resource is a concrete instance of a specification with an availability
// window offers are matched against.
type Resource struct {
	id              uuid.UUID
	specificationID uuid.UUID
	name            string
	availability    rental.Window
	createdAt       time.Time
	updatedAt       time.Time
}

func NewResource(id, specificationID uuid.UUID, name string, availability rental.Window) (*Resource, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Resource{
		id:              id,
		specificationID: specificationID,
		name:            strings.TrimSpace(name),
		availability:    availability,
	}, nil
}

func (r *Resource) ID() uuid.UUID               { return r.id }
func (r *Resource) SpecificationID() uuid.UUID  { return r.specificationID }
func (r *Resource) Name() string                { return r.name }
func (r *Resource) Availability() rental.Window { return r.availability }
func (r *Resource) CreatedAt() time.Time        { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time        { return r.updatedAt }

// IsAvailableFor reports whether the availability window covers the whole
// requested rental window.
func (r *Resource) IsAvailableFor(window rental.Window) bool {
	return r.availability.Covers(window)
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	return nil
}
