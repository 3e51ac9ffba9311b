package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FieldFinderOrganization/fieldfinder/internal/catalog"
	"github.com/FieldFinderOrganization/fieldfinder/internal/metrics"
)

var (
	ErrItemNotFound = errors.New("cart item not found")
	ErrInvalidSize  = errors.New("product not available in that size")
)

const cartTTL = 30 * 24 * time.Hour

type Service interface {
	Add(ctx context.Context, userID int, req AddItemRequest) (*Item, error)
	Get(ctx context.Context, userID int) ([]Item, error)
	UpdateQuantity(ctx context.Context, userID int, itemID string, quantity int) (*Item, error)
	Remove(ctx context.Context, userID int, itemID string) error
	Clear(ctx context.Context, userID int) error
}

type service struct {
	redis    *redis.Client
	products catalog.Repository
}

func NewService(rdb *redis.Client, products catalog.Repository) Service {
	return &service{redis: rdb, products: products}
}

func cartKey(userID int) string {
	return fmt.Sprintf("cart:%d", userID)
}

func itemKey(productID, size string) string {
	return productID + "-" + size
}

func (s *service) Add(ctx context.Context, userID int, req AddItemRequest) (*Item, error) {
	p, err := s.products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if len(p.Sizes) > 0 && !hasSize(p.Sizes, req.Size) {
		return nil, ErrInvalidSize
	}

	key := cartKey(userID)
	field := itemKey(req.ProductID, req.Size)

	item := Item{
		ID:        field,
		ProductID: p.ID,
		Name:      p.Name,
		Size:      req.Size,
		UnitPrice: p.EffectivePrice(),
		Quantity:  req.Quantity,
	}

	// Duplicate adds accumulate quantity on the existing line.
	if raw, err := s.redis.HGet(ctx, key, field).Result(); err == nil {
		var existing Item
		if err := json.Unmarshal([]byte(raw), &existing); err == nil {
			item.Quantity += existing.Quantity
		}
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	if err := s.save(ctx, key, field, item); err != nil {
		return nil, err
	}

	metrics.RecordCartOperation("add")
	return &item, nil
}

func (s *service) Get(ctx context.Context, userID int) ([]Item, error) {
	raw, err := s.redis.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(raw))
	for _, v := range raw {
		var item Item
		if err := json.Unmarshal([]byte(v), &item); err != nil {
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *service) UpdateQuantity(ctx context.Context, userID int, itemID string, quantity int) (*Item, error) {
	key := cartKey(userID)

	raw, err := s.redis.HGet(ctx, key, itemID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	var item Item
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return nil, err
	}

	// Dropping below one removes the line.
	if quantity < 1 {
		if err := s.redis.HDel(ctx, key, itemID).Err(); err != nil {
			return nil, err
		}
		metrics.RecordCartOperation("remove")
		return nil, nil
	}

	item.Quantity = quantity
	if err := s.save(ctx, key, itemID, item); err != nil {
		return nil, err
	}

	metrics.RecordCartOperation("update")
	return &item, nil
}

func (s *service) Remove(ctx context.Context, userID int, itemID string) error {
	removed, err := s.redis.HDel(ctx, cartKey(userID), itemID).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrItemNotFound
	}

	metrics.RecordCartOperation("remove")
	return nil
}

func (s *service) Clear(ctx context.Context, userID int) error {
	if err := s.redis.Del(ctx, cartKey(userID)).Err(); err != nil {
		return err
	}

	metrics.RecordCartOperation("clear")
	return nil
}

func (s *service) save(ctx context.Context, key, field string, item Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	if err := s.redis.HSet(ctx, key, field, data).Err(); err != nil {
		return err
	}
	return s.redis.Expire(ctx, key, cartTTL).Err()
}

func hasSize(sizes []string, size string) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}
