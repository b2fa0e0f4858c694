package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"budgetflow/internal/domain"
	"budgetflow/internal/port"
)

// SpecialistService manages the persisted specialist roster used for row
// ownership assignment on uploads.
type SpecialistService interface {
	Add(ctx context.Context, name string) (*domain.Specialist, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Specialist, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Remove(ctx context.Context, id uuid.UUID) error
}

type specialistService struct {
	repo port.SpecialistRepository
}

// NewSpecialistService creates a new SpecialistService implementation.
func NewSpecialistService(repo port.SpecialistRepository) SpecialistService {
	return &specialistService{repo: repo}
}

func (s *specialistService) Add(ctx context.Context, name string) (*domain.Specialist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: specialist name is empty", domain.ErrForbidden)
	}

	specialist := &domain.Specialist{
		ID:        uuid.New(),
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, specialist); err != nil {
		return nil, err
	}
	return specialist, nil
}

func (s *specialistService) List(ctx context.Context, activeOnly bool) ([]domain.Specialist, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *specialistService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

func (s *specialistService) Remove(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
