package payment

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FieldFinderOrganization/fieldfinder/internal/cart"
	"github.com/FieldFinderOrganization/fieldfinder/internal/catalog"
	"github.com/FieldFinderOrganization/fieldfinder/internal/discount"
	"github.com/FieldFinderOrganization/fieldfinder/internal/email"
	"github.com/FieldFinderOrganization/fieldfinder/internal/pricing"
	"github.com/FieldFinderOrganization/fieldfinder/internal/user"
)

type MockPaymentRepo struct{ mock.Mock }

func (m *MockPaymentRepo) CreatePayment(ctx context.Context, p *Payment) (*Payment, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockPaymentRepo) GetByIdempotencyKey(ctx context.Context, key string) (*Payment, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockPaymentRepo) GetUserPayments(ctx context.Context, userID int) ([]Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Payment), args.Error(1)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) Add(ctx context.Context, userID int, req cart.AddItemRequest) (*cart.Item, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartService) Get(ctx context.Context, userID int) ([]cart.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Item), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, userID int, itemID string, quantity int) (*cart.Item, error) {
	args := m.Called(ctx, userID, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartService) Remove(ctx context.Context, userID int, itemID string) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *MockCartService) Clear(ctx context.Context, userID int) error {
	return m.Called(ctx, userID).Error(0)
}

type MockCatalogRepo struct{ mock.Mock }

func (m *MockCatalogRepo) CreateProduct(ctx context.Context, p *catalog.Product) (*catalog.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockCatalogRepo) GetProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockCatalogRepo) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockCatalogRepo) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

type MockDiscountService struct{ mock.Mock }

func (m *MockDiscountService) Create(ctx context.Context, req discount.CreateDiscountRequest) (*discount.Discount, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discount.Discount), args.Error(1)
}

func (m *MockDiscountService) Get(ctx context.Context, id int) (*discount.Discount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discount.Discount), args.Error(1)
}

func (m *MockDiscountService) List(ctx context.Context) ([]discount.Discount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]discount.Discount), args.Error(1)
}

func (m *MockDiscountService) ListValid(ctx context.Context, now time.Time) ([]discount.Discount, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]discount.Discount), args.Error(1)
}

func (m *MockDiscountService) Update(ctx context.Context, id int, req discount.UpdateDiscountRequest) (*discount.Discount, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discount.Discount), args.Error(1)
}

func (m *MockDiscountService) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDiscountService) ResolveCodes(ctx context.Context, codes []string, now time.Time) ([]pricing.Discount, error) {
	args := m.Called(ctx, codes, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.Discount), args.Error(1)
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*user.User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockProvider struct{ mock.Mock }

func (m *MockProvider) Charge(ctx context.Context, amount int64, method string) (string, error) {
	args := m.Called(ctx, amount, method)
	return args.String(0), args.Error(1)
}

type paymentMocks struct {
	repo        *MockPaymentRepo
	cartSvc     *MockCartService
	products    *MockCatalogRepo
	discountSvc *MockDiscountService
	userRepo    *MockUserRepo
	provider    *MockProvider
}

func newTestService(t *testing.T) (Service, paymentMocks) {
	t.Helper()
	m := paymentMocks{
		repo:        new(MockPaymentRepo),
		cartSvc:     new(MockCartService),
		products:    new(MockCatalogRepo),
		discountSvc: new(MockDiscountService),
		userRepo:    new(MockUserRepo),
		provider:    new(MockProvider),
	}
	emailSvc := email.New("noreply@fieldfinder.vn", "FieldFinder", "", "587", "", "", "localhost:0")
	svc := NewService(m.repo, m.cartSvc, m.products, m.discountSvc, m.userRepo, m.provider, emailSvc)
	return svc, m
}

func testCart() []cart.Item {
	return []cart.Item{
		{ID: "p1-42", ProductID: "p1", Name: "Pegasus", Size: "42", UnitPrice: 300000, Quantity: 1},
		{ID: "p2-M", ProductID: "p2", Name: "Dry Top", Size: "M", UnitPrice: 100000, Quantity: 2},
	}
}

func TestCreatePayment(t *testing.T) {
	t.Run("Charges the discounted cart total and clears the cart", func(t *testing.T) {
		svc, m := newTestService(t)

		m.cartSvc.On("Get", mock.Anything, 7).Return(testCart(), nil)
		m.products.On("GetProductByID", mock.Anything, "p1").
			Return(&catalog.Product{ID: "p1", Category: "Running Shoes"}, nil)
		m.products.On("GetProductByID", mock.Anything, "p2").
			Return(&catalog.Product{ID: "p2", Category: "Tops"}, nil)
		m.discountSvc.On("ResolveCodes", mock.Anything, []string{"SUMMER10"}, mock.AnythingOfType("time.Time")).
			Return([]pricing.Discount{
				{Code: "SUMMER10", Type: pricing.TypePercentage, Scope: pricing.ScopeGlobal, Percent: 10},
			}, nil)
		m.repo.On("GetByIdempotencyKey", mock.Anything, mock.AnythingOfType("string")).Return(nil, sql.ErrNoRows)

		// Base 500000 minus 10% = 450000.
		m.provider.On("Charge", mock.Anything, int64(450000), "card").Return("PAY-123", nil)
		m.repo.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p *Payment) bool {
			return p.Amount == 450000 && p.Status == StatusSucceeded && p.ProviderTx == "PAY-123"
		})).Return(&Payment{ID: 1, UserID: 7, Amount: 450000, Method: "card", ProviderTx: "PAY-123", Status: StatusSucceeded}, nil)
		m.cartSvc.On("Clear", mock.Anything, 7).Return(nil)
		m.userRepo.On("FindByID", mock.Anything, 7).Return(nil, sql.ErrNoRows)

		result, err := svc.Create(context.Background(), 7, CreatePaymentRequest{
			Method:        "card",
			DiscountCodes: []string{"SUMMER10"},
		})

		require.NoError(t, err)
		assert.True(t, result.Created)
		assert.Equal(t, int64(500000), result.Quote.Base)
		assert.Equal(t, int64(450000), result.Quote.Total)
		m.repo.AssertExpectations(t)
		m.cartSvc.AssertExpectations(t)
	})

	t.Run("Empty cart", func(t *testing.T) {
		svc, m := newTestService(t)

		m.cartSvc.On("Get", mock.Anything, 7).Return([]cart.Item{}, nil)

		_, err := svc.Create(context.Background(), 7, CreatePaymentRequest{Method: "card"})
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("Resubmitted key returns the original payment", func(t *testing.T) {
		svc, m := newTestService(t)

		existing := &Payment{ID: 9, UserID: 7, Amount: 500000, Status: StatusSucceeded, IdempotencyKey: "key-1"}

		m.cartSvc.On("Get", mock.Anything, 7).Return(testCart(), nil)
		m.products.On("GetProductByID", mock.Anything, mock.AnythingOfType("string")).
			Return(&catalog.Product{}, nil)
		m.discountSvc.On("ResolveCodes", mock.Anything, []string(nil), mock.AnythingOfType("time.Time")).
			Return([]pricing.Discount{}, nil)
		m.repo.On("GetByIdempotencyKey", mock.Anything, "key-1").Return(existing, nil)

		result, err := svc.Create(context.Background(), 7, CreatePaymentRequest{
			Method:         "card",
			IdempotencyKey: "key-1",
		})

		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, 9, result.Payment.ID)
		m.repo.AssertNotCalled(t, "CreatePayment")
		m.cartSvc.AssertNotCalled(t, "Clear")
	})

	t.Run("Declined charge", func(t *testing.T) {
		svc, m := newTestService(t)

		m.cartSvc.On("Get", mock.Anything, 7).Return(testCart(), nil)
		m.products.On("GetProductByID", mock.Anything, mock.AnythingOfType("string")).
			Return(&catalog.Product{}, nil)
		m.discountSvc.On("ResolveCodes", mock.Anything, []string(nil), mock.AnythingOfType("time.Time")).
			Return([]pricing.Discount{}, nil)
		m.repo.On("GetByIdempotencyKey", mock.Anything, mock.AnythingOfType("string")).Return(nil, sql.ErrNoRows)
		m.provider.On("Charge", mock.Anything, int64(500000), "card").Return("", errors.New("declined"))

		_, err := svc.Create(context.Background(), 7, CreatePaymentRequest{Method: "card"})
		assert.ErrorIs(t, err, ErrChargeFailed)
		m.repo.AssertNotCalled(t, "CreatePayment")
	})
}

func TestStubProvider(t *testing.T) {
	ref, err := NewStubProvider().Charge(context.Background(), 100000, "card")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "PAY-"))
}
