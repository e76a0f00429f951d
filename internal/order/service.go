package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/otel"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/supabase"
)

// OrderLister is the slice of the persistence collaborator the history screen
// needs.
type OrderLister interface {
	ListOrdersByUser(
		c context.Context,
		userID uuid.UUID,
		accessToken string,
	) ([]supabase.OrderRecord, error)
}

// Service reads an authenticated user's order history from the hosted
// backend. Orders arrive newest first; this service only maps them through.
type Service struct {
	orders OrderLister
}

func NewService(orders OrderLister) *Service {
	return &Service{orders: orders}
}

func (s *Service) ListByUser(
	c context.Context,
	userID uuid.UUID,
	accessToken string,
) ([]supabase.OrderRecord, error) {
	c, span := otel.Tracer.Start(c, "OrderService ListByUser")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService ListByUser").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProcess, "fetching order history").
		Logger()

	logger.Info().Msg("fetching order history")
	orders, err := s.orders.ListOrdersByUser(c, userID, accessToken)
	if err != nil {
		err = fmt.Errorf("failed fetching order history with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("fetched %d orders", len(orders))

	return orders, nil
}
