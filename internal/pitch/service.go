package pitch

import (
	"context"
	"errors"
)

var ErrPitchNotFound = errors.New("pitch not found")

type Service interface {
	Create(ctx context.Context, req CreatePitchRequest) (*Pitch, error)
	GetAll(ctx context.Context) ([]Pitch, error)
	GetByID(ctx context.Context, id int) (*Pitch, error)
	Update(ctx context.Context, id int, req UpdatePitchRequest) (*Pitch, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreatePitchRequest) (*Pitch, error) {
	surfaceType := req.SurfaceType
	if surfaceType == "" {
		surfaceType = "grass"
	}
	return s.repo.Create(ctx, req.Name, req.Address, surfaceType, req.PricePerHour)
}

func (s *service) GetAll(ctx context.Context) ([]Pitch, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id int) (*Pitch, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrPitchNotFound
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, id int, req UpdatePitchRequest) (*Pitch, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, ErrPitchNotFound
	}

	surfaceType := req.SurfaceType
	if surfaceType == "" {
		surfaceType = "grass"
	}
	return s.repo.Update(ctx, id, req.Name, req.Address, surfaceType, req.PricePerHour)
}

func (s *service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFoundOrUnchanged) {
			return ErrPitchNotFound
		}
		return err
	}
	return nil
}
