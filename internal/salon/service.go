package salon

import (
	"context"
	"strings"
)

// CreateRequest carries data to create a salon.
type CreateRequest struct {
	Name        string
	Description string
	Address     string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Salon, error)
	GetByID(ctx context.Context, id string) (*Salon, error)
	List(ctx context.Context, filter Filter) ([]*Salon, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Salon, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	sal := &Salon{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Address:     strings.TrimSpace(req.Address),
	}
	if err := s.repo.Create(ctx, sal); err != nil {
		return nil, err
	}
	return sal, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Salon, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Salon, int, error) {
	return s.repo.List(ctx, filter)
}
