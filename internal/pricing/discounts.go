package pricing

import "math"

type DiscountType string

const (
	TypePercentage  DiscountType = "PERCENTAGE"
	TypeFixedAmount DiscountType = "FIXED_AMOUNT"
)

type Scope string

const (
	ScopeGlobal          Scope = "GLOBAL"
	ScopeSpecificProduct Scope = "SPECIFIC_PRODUCT"
	ScopeCategory        Scope = "CATEGORY"
)

// Discount is the pricing view of a discount: just the fields the math needs.
type Discount struct {
	Code    string
	Type    DiscountType
	Scope   Scope
	Percent float64 // PERCENTAGE
	Value   int64   // FIXED_AMOUNT

	ProductIDs []string // SPECIFIC_PRODUCT
	Categories []string // CATEGORY

	MinOrderValue     int64
	MaxDiscountAmount int64 // 0 means no cap
}

// Item is one order line the discount scope can match against. Pitch
// bookings quote with no items; only GLOBAL discounts reach them.
type Item struct {
	ProductID string
	Category  string
	UnitPrice int64
	Quantity  int
}

// Applied records the amount one discount contributed to a quote.
type Applied struct {
	Code   string `json:"code"`
	Amount int64  `json:"amount"`
}

// Quote is the resolved pricing of an order.
type Quote struct {
	Base     int64     `json:"base"`
	Discount int64     `json:"discount"`
	Total    int64     `json:"total"`
	Applied  []Applied `json:"applied,omitempty"`
}

// BaseTotal sums unit price times quantity over the items.
func BaseTotal(items []Item) int64 {
	var total int64
	for _, it := range items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}

func (d Discount) matches(it Item) bool {
	switch d.Scope {
	case ScopeSpecificProduct:
		for _, id := range d.ProductIDs {
			if id == it.ProductID {
				return true
			}
		}
	case ScopeCategory:
		for _, cat := range d.Categories {
			if cat == it.Category {
				return true
			}
		}
	}
	return false
}

// applicableSubtotal is the part of the order the discount may reduce:
// the whole base for GLOBAL, otherwise the sum over matching items.
func (d Discount) applicableSubtotal(base int64, items []Item) int64 {
	if d.Scope == ScopeGlobal {
		return base
	}

	var sub int64
	for _, it := range items {
		if d.matches(it) {
			sub += it.UnitPrice * int64(it.Quantity)
		}
	}
	return sub
}

// Amount computes the reduction a single discount yields against the base
// total. The discount is skipped entirely when the base is below its
// minimum order value. Fixed amounts are clamped to the applicable
// subtotal; percentages are capped by MaxDiscountAmount when set.
func (d Discount) Amount(base int64, items []Item) int64 {
	if d.MinOrderValue > 0 && base < d.MinOrderValue {
		return 0
	}

	applicable := d.applicableSubtotal(base, items)
	if applicable <= 0 {
		return 0
	}

	switch d.Type {
	case TypeFixedAmount:
		if d.Value > applicable {
			return applicable
		}
		if d.Value < 0 {
			return 0
		}
		return d.Value
	case TypePercentage:
		amount := int64(math.Round(float64(applicable) * d.Percent / 100))
		if amount < 0 {
			return 0
		}
		if d.MaxDiscountAmount > 0 && amount > d.MaxDiscountAmount {
			return d.MaxDiscountAmount
		}
		return amount
	}

	return 0
}

// QuoteItems prices a set of order items under the selected discounts.
func QuoteItems(items []Item, discounts []Discount) Quote {
	return QuoteBase(BaseTotal(items), items, discounts)
}

// QuoteBase prices an order with a precomputed base total (pitch bookings
// pass slot subtotals here with no items).
//
// Stacking is additive and independent: every discount is evaluated
// against the same base total and the amounts are summed, never
// sequentially compounded. Kept for compatibility with existing orders.
func QuoteBase(base int64, items []Item, discounts []Discount) Quote {
	q := Quote{Base: base}

	for _, d := range discounts {
		amount := d.Amount(base, items)
		if amount == 0 {
			continue
		}
		q.Discount += amount
		q.Applied = append(q.Applied, Applied{Code: d.Code, Amount: amount})
	}

	q.Total = base - q.Discount
	if q.Total < 0 {
		q.Total = 0
	}

	return q
}
