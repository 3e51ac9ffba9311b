package discount

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FieldFinderOrganization/fieldfinder/internal/pricing"
)

var (
	ErrDiscountNotFound = errors.New("discount not found")
	ErrDiscountInvalid  = errors.New("discount is not valid")
	ErrBadDateRange     = errors.New("end date must be after start date")
)

type Service interface {
	Create(ctx context.Context, req CreateDiscountRequest) (*Discount, error)
	Get(ctx context.Context, id int) (*Discount, error)
	List(ctx context.Context) ([]Discount, error)
	ListValid(ctx context.Context, now time.Time) ([]Discount, error)
	Update(ctx context.Context, id int, req UpdateDiscountRequest) (*Discount, error)
	Delete(ctx context.Context, id int) error

	// ResolveCodes validates each code against status and date window and
	// returns the pricing view. An unknown or expired code fails the whole
	// resolution rather than being silently dropped.
	ResolveCodes(ctx context.Context, codes []string, now time.Time) ([]pricing.Discount, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func fromRequest(req CreateDiscountRequest) (*Discount, error) {
	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}

	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}

	if !endDate.After(startDate) {
		return nil, ErrBadDateRange
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}

	return &Discount{
		Code:              req.Code,
		Description:       req.Description,
		DiscountType:      req.DiscountType,
		Percent:           req.Percent,
		Value:             req.Value,
		Scope:             req.Scope,
		ProductIDs:        req.ProductIDs,
		Categories:        req.Categories,
		MinOrderValue:     req.MinOrderValue,
		MaxDiscountAmount: req.MaxDiscountAmount,
		StartDate:         startDate,
		EndDate:           endDate,
		Status:            status,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateDiscountRequest) (*Discount, error) {
	d, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, d)
}

func (s *service) Get(ctx context.Context, id int) (*Discount, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrDiscountNotFound
	}
	return d, nil
}

func (s *service) List(ctx context.Context) ([]Discount, error) {
	return s.repo.List(ctx)
}

func (s *service) ListValid(ctx context.Context, now time.Time) ([]Discount, error) {
	return s.repo.ListValid(ctx, now)
}

func (s *service) Update(ctx context.Context, id int, req UpdateDiscountRequest) (*Discount, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, ErrDiscountNotFound
	}

	d, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, d)
}

func (s *service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFoundOrUnchanged) {
			return ErrDiscountNotFound
		}
		return err
	}
	return nil
}

func (s *service) ResolveCodes(ctx context.Context, codes []string, now time.Time) ([]pricing.Discount, error) {
	resolved := make([]pricing.Discount, 0, len(codes))

	for _, code := range codes {
		d, err := s.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDiscountNotFound, code)
		}

		if !d.ValidAt(now) {
			return nil, fmt.Errorf("%w: %s", ErrDiscountInvalid, code)
		}

		resolved = append(resolved, d.Pricing())
	}

	return resolved, nil
}
