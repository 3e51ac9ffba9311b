package catalog

import (
	"context"

	"github.com/lib/pq"
)

type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)

	// ListProducts returns the products visible under category (empty means
	// all), narrowed by filters.
	ListProducts(ctx context.Context, category string, filters Filters) ([]Product, error)
	ListCategories(ctx context.Context) ([]Category, error)

	// Navigate replays a breadcrumb path from the root and applies the final
	// click, returning the resolved state and history.
	Navigate(ctx context.Context, path []string, item string) (*NavigateResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	return s.repo.CreateProduct(ctx, &Product{
		Name:      req.Name,
		Category:  req.Category,
		Brand:     req.Brand,
		Gender:    req.Gender,
		Price:     req.Price,
		SalePrice: req.SalePrice,
		Sizes:     pq.StringArray(req.Sizes),
	})
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, category string, filters Filters) ([]Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	return FilterProducts(products, category, NewTree(categories), filters), nil
}

func (s *service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) Navigate(ctx context.Context, path []string, item string) (*NavigateResponse, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	nav := NewNavigator(NewTree(categories))
	for _, clicked := range path {
		nav.Click(clicked)
	}
	state := nav.Click(item)

	return &NavigateResponse{State: state, History: nav.History()}, nil
}
