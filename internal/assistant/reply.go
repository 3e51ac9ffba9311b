package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindPlainMessage      Kind = "plain_message"
	KindProductList       Kind = "product_list"
	KindBookingSuggestion Kind = "booking_suggestion"
	KindOrderIntent       Kind = "order_intent"
)

var (
	ErrUnknownKind    = errors.New("unknown reply kind")
	ErrMissingPayload = errors.New("reply payload missing for kind")
)

type ProductRef struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Reason    string `json:"reason,omitempty"`
}

type BookingSuggestion struct {
	PitchID int      `json:"pitchId"`
	Date    string   `json:"date"`
	Slots   []string `json:"slots"`
}

type OrderItem struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type OrderIntent struct {
	Items []OrderItem `json:"items"`
}

// Reply is the assistant response, discriminated by Kind. Exactly the
// payload named by Kind is set; everything else stays nil.
type Reply struct {
	Kind     Kind               `json:"kind"`
	Message  string             `json:"message,omitempty"`
	Products []ProductRef       `json:"products,omitempty"`
	Booking  *BookingSuggestion `json:"booking,omitempty"`
	Order    *OrderIntent       `json:"order,omitempty"`
}

// DecodeReply parses a raw model response into a Reply. Markdown code
// fences around the JSON are tolerated; an unknown kind or a missing
// payload for the declared kind is an error, never guessed at.
func DecodeReply(raw string) (*Reply, error) {
	var reply Reply
	if err := json.Unmarshal([]byte(stripFences(raw)), &reply); err != nil {
		return nil, fmt.Errorf("malformed reply: %w", err)
	}

	switch reply.Kind {
	case KindPlainMessage:
		if reply.Message == "" {
			return nil, ErrMissingPayload
		}
	case KindProductList:
		if len(reply.Products) == 0 {
			return nil, ErrMissingPayload
		}
	case KindBookingSuggestion:
		if reply.Booking == nil || reply.Booking.PitchID == 0 || len(reply.Booking.Slots) == 0 {
			return nil, ErrMissingPayload
		}
	case KindOrderIntent:
		if reply.Order == nil || len(reply.Order.Items) == 0 {
			return nil, ErrMissingPayload
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, reply.Kind)
	}

	return &reply, nil
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
