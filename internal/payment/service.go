package payment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/FieldFinderOrganization/fieldfinder/internal/cart"
	"github.com/FieldFinderOrganization/fieldfinder/internal/catalog"
	"github.com/FieldFinderOrganization/fieldfinder/internal/discount"
	"github.com/FieldFinderOrganization/fieldfinder/internal/email"
	"github.com/FieldFinderOrganization/fieldfinder/internal/logger"
	"github.com/FieldFinderOrganization/fieldfinder/internal/metrics"
	"github.com/FieldFinderOrganization/fieldfinder/internal/pricing"
	"github.com/FieldFinderOrganization/fieldfinder/internal/user"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrChargeFailed = errors.New("payment charge failed")
)

type Service interface {
	Create(ctx context.Context, userID int, req CreatePaymentRequest) (*PaymentResult, error)
	GetUserPayments(ctx context.Context, userID int) ([]Payment, error)
}

type service struct {
	repo        Repository
	cartSvc     cart.Service
	products    catalog.Repository
	discountSvc discount.Service
	userRepo    user.Repository
	provider    Provider
	emailSvc    *email.Service
	now         func() time.Time
}

func NewService(
	repo Repository,
	cartSvc cart.Service,
	products catalog.Repository,
	discountSvc discount.Service,
	userRepo user.Repository,
	provider Provider,
	emailSvc *email.Service,
) Service {
	return &service{
		repo:        repo,
		cartSvc:     cartSvc,
		products:    products,
		discountSvc: discountSvc,
		userRepo:    userRepo,
		provider:    provider,
		emailSvc:    emailSvc,
		now:         time.Now,
	}
}

func (s *service) Create(ctx context.Context, userID int, req CreatePaymentRequest) (*PaymentResult, error) {
	items, err := s.cartSvc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	priced, err := s.priceItems(ctx, items)
	if err != nil {
		return nil, err
	}

	discounts, err := s.discountSvc.ResolveCodes(ctx, req.DiscountCodes, s.now())
	if err != nil {
		return nil, err
	}

	quote := pricing.QuoteItems(priced, discounts)

	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	if existing, err := s.repo.GetByIdempotencyKey(ctx, key); err == nil {
		return &PaymentResult{Payment: existing, Quote: quote, Created: false}, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	providerTx, err := s.provider.Charge(ctx, quote.Total, req.Method)
	if err != nil {
		metrics.RecordPayment(req.Method, StatusFailed)
		return nil, ErrChargeFailed
	}

	created, err := s.repo.CreatePayment(ctx, &Payment{
		UserID:         userID,
		Amount:         quote.Total,
		Method:         req.Method,
		ProviderTx:     providerTx,
		Status:         StatusSucceeded,
		IdempotencyKey: key,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateSubmission) {
			existing, gerr := s.repo.GetByIdempotencyKey(ctx, key)
			if gerr != nil {
				return nil, gerr
			}
			return &PaymentResult{Payment: existing, Quote: quote, Created: false}, nil
		}
		return nil, err
	}

	metrics.RecordPayment(req.Method, StatusSucceeded)
	for _, d := range discounts {
		metrics.RecordDiscountApplied(string(d.Scope), string(d.Type))
	}

	// Cart clearing and the receipt are best-effort after the charge.
	if cerr := s.cartSvc.Clear(ctx, userID); cerr != nil {
		logger.WithError(cerr).Error("failed to clear cart after payment", "user_id", userID)
	}
	if u, uerr := s.userRepo.FindByID(ctx, userID); uerr == nil && u != nil {
		if serr := s.emailSvc.SendPaymentReceipt(ctx, u.Email, u.Name, created.Amount, created.ProviderTx); serr != nil {
			logger.WithError(serr).Error("failed to queue payment receipt", "payment_id", created.ID)
		}
	}

	return &PaymentResult{Payment: created, Quote: quote, Created: true}, nil
}

// priceItems turns cart lines into pricing items, resolving each product's
// category so category-scoped discounts can match.
func (s *service) priceItems(ctx context.Context, items []cart.Item) ([]pricing.Item, error) {
	priced := make([]pricing.Item, 0, len(items))
	for _, it := range items {
		category := ""
		if p, err := s.products.GetProductByID(ctx, it.ProductID); err == nil {
			category = p.Category
		}
		priced = append(priced, pricing.Item{
			ProductID: it.ProductID,
			Category:  category,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	return priced, nil
}

func (s *service) GetUserPayments(ctx context.Context, userID int) ([]Payment, error) {
	return s.repo.GetUserPayments(ctx, userID)
}
