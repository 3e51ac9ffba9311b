package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/FieldFinderOrganization/fieldfinder/internal/catalog"
	"github.com/FieldFinderOrganization/fieldfinder/internal/logger"
	"github.com/FieldFinderOrganization/fieldfinder/internal/metrics"
	"github.com/FieldFinderOrganization/fieldfinder/internal/pitch"
)

const systemPrompt = `You are the FieldFinder assistant. You help customers book
sports fields and shop for sports goods. Respond with a single JSON object and
nothing else, shaped as one of:
  {"kind":"plain_message","message":"..."}
  {"kind":"product_list","message":"...","products":[{"productId":"...","name":"...","reason":"..."}]}
  {"kind":"booking_suggestion","message":"...","booking":{"pitchId":1,"date":"YYYY-MM-DD","slots":["6:00 - 7:00"]}}
  {"kind":"order_intent","message":"...","order":{"items":[{"productId":"...","size":"...","quantity":1}]}}
Only reference pitches and products from the context below.`

type Service interface {
	Chat(ctx context.Context, message string) (*Reply, error)
}

type service struct {
	client    Client
	pitchRepo pitch.Repository
	products  catalog.Repository
}

func NewService(client Client, pitchRepo pitch.Repository, products catalog.Repository) Service {
	return &service{client: client, pitchRepo: pitchRepo, products: products}
}

func (s *service) Chat(ctx context.Context, message string) (*Reply, error) {
	prompt, err := s.buildPrompt(ctx, message)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	reply, err := DecodeReply(raw)
	if err != nil {
		// Malformed model output degrades to a plain message rather
		// than failing the chat.
		logger.WithError(err).Error("assistant reply failed strict decode")
		reply = &Reply{Kind: KindPlainMessage, Message: strings.TrimSpace(raw)}
	}

	metrics.RecordChatRequest(string(reply.Kind))
	return reply, nil
}

func (s *service) buildPrompt(ctx context.Context, message string) (string, error) {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nPitches:\n")

	pitches, err := s.pitchRepo.GetAll(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range pitches {
		fmt.Fprintf(&b, "- id=%d %s (%s), %d VND/hour\n", p.ID, p.Name, p.Address, p.PricePerHour)
	}

	b.WriteString("\nProducts:\n")
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range products {
		fmt.Fprintf(&b, "- id=%s %s (%s, %s), %d VND\n", p.ID, p.Name, p.Category, p.Brand, p.EffectivePrice())
	}

	b.WriteString("\nCustomer: ")
	b.WriteString(message)
	return b.String(), nil
}
