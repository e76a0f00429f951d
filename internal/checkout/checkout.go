package checkout

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/cart"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common/constants"
	inErrors "github.com/angel343234/Isa-Crochet-shop-platform/internal/common/errors"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/metrics"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/otel"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/supabase"
)

type State string

const (
	StateEditing    State = "editing"
	StateReviewing  State = "reviewing"
	StateSubmitting State = "submitting"
	StateComplete   State = "complete"
)

// ShippingInfo is the transient form a checkout attempt validates. Phone is
// held normalized once Review accepts it.
type ShippingInfo struct {
	Name    string
	Address string
	Phone   string
}

// Attempt is one checkout attempt for one session. FailureMessage holds the
// backend's message verbatim after a failed submission; OrderID and FinalTotal
// are only set once the attempt completes.
type Attempt struct {
	State          State
	Form           ShippingInfo
	FailureMessage string
	OrderID        int64
	FinalTotal     decimal.Decimal
}

// Result is what a successful confirmation hands back for display, including
// the total snapshotted before the cart was cleared.
type Result struct {
	OrderID    int64
	TotalPrice decimal.Decimal
}

// OrderCreator is the slice of the persistence collaborator the aggregator
// needs.
type OrderCreator interface {
	CreateOrder(c context.Context, order supabase.OrderRecord) (supabase.OrderRecord, error)
}

// Service turns a session's cart plus a shipping form into a persisted order.
// Each session moves through editing -> reviewing -> submitting -> complete;
// persistence failures drop the attempt back to reviewing with the cart and
// form untouched.
type Service struct {
	mu       sync.Mutex
	attempts map[uuid.UUID]*Attempt
	carts    *cart.Store
	orders   OrderCreator
}

func NewService(carts *cart.Store, orders OrderCreator) *Service {
	return &Service{
		attempts: make(map[uuid.UUID]*Attempt),
		carts:    carts,
		orders:   orders,
	}
}

func (s *Service) attempt(sessionID uuid.UUID) *Attempt {
	att, ok := s.attempts[sessionID]
	if !ok {
		att = &Attempt{State: StateEditing}
		s.attempts[sessionID] = att
	}
	return att
}

// Attempt returns a copy of the session's current attempt.
func (s *Service) Attempt(sessionID uuid.UUID) Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.attempt(sessionID)
}

// Review validates the shipping form and moves the attempt to reviewing. A
// phone that does not normalize to exactly 10 digits is a user-correctable
// failure: the attempt stays in editing and no state changes.
func (s *Service) Review(c context.Context, sessionID uuid.UUID, form ShippingInfo) error {
	c, span := otel.Tracer.Start(c, "CheckoutService Review")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService Review").
		Str(log.KeySessionID, sessionID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating shipping form").Logger()
	logger.Info().Msg("validating shipping form")
	if !ValidPhone(form.Phone) {
		err := fmt.Errorf(
			"failed validating phone=%q with error=%w",
			form.Phone,
			inErrors.ErrInvalidPhone,
		)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if s.carts.IsEmpty(sessionID) {
		err := fmt.Errorf("failed reviewing checkout with error=%w", inErrors.ErrEmptyCart)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	form.Phone = NormalizePhone(form.Phone)
	logger.Info().Msg("validated shipping form")

	s.mu.Lock()
	defer s.mu.Unlock()
	att := s.attempt(sessionID)
	if att.State == StateSubmitting {
		err := fmt.Errorf("failed reviewing checkout with error=%w", inErrors.ErrSubmitInFlight)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	att.State = StateReviewing
	att.Form = form
	att.FailureMessage = ""
	logger.Info().Str(log.KeyCheckoutState, string(att.State)).Msg("moved attempt to reviewing")

	return nil
}

// Cancel moves a reviewing attempt back to editing. The form is kept so the
// user loses nothing.
func (s *Service) Cancel(c context.Context, sessionID uuid.UUID) {
	_, span := otel.Tracer.Start(c, "CheckoutService Cancel")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService Cancel").
		Str(log.KeySessionID, sessionID.String()).
		Logger()

	s.mu.Lock()
	defer s.mu.Unlock()
	att := s.attempt(sessionID)
	if att.State != StateReviewing {
		logger.Info().Str(log.KeyCheckoutState, string(att.State)).Msg("nothing to cancel")
		return
	}
	att.State = StateEditing
	logger.Info().Msg("moved attempt back to editing")
}

// Confirm builds the order payload from the cart snapshot, hands it to the
// persistence collaborator, and on success clears the cart and completes the
// attempt. On failure the attempt returns to reviewing carrying the backend's
// message; the cart is never cleared and no partial order is retained. A
// second confirm while one is in flight is rejected.
func (s *Service) Confirm(
	c context.Context,
	sessionID uuid.UUID,
	userID *uuid.UUID,
) (Result, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService Confirm")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService Confirm").
		Str(log.KeySessionID, sessionID.String()).
		Logger()

	s.mu.Lock()
	att := s.attempt(sessionID)
	switch att.State {
	case StateSubmitting:
		s.mu.Unlock()
		err := fmt.Errorf("failed confirming checkout with error=%w", inErrors.ErrSubmitInFlight)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Result{}, err
	case StateReviewing:
	default:
		s.mu.Unlock()
		err := fmt.Errorf("failed confirming checkout with error=%w", inErrors.ErrNotReviewing)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Result{}, err
	}
	att.State = StateSubmitting
	form := att.Form
	s.mu.Unlock()

	logger = logger.With().Str(log.KeyProcess, "building order payload").Logger()
	logger.Info().Msg("building order payload")
	lines := s.carts.Lines(sessionID)
	totalPrice := s.carts.TotalPrice(sessionID)
	items := make([]supabase.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = supabase.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
			ImageURL:  line.ImageURL,
			Variation: line.Variation,
		}
	}
	order := supabase.OrderRecord{
		ID:              newOrderID(),
		CustomerName:    form.Name,
		CustomerAddress: form.Address,
		CustomerPhone:   form.Phone,
		TotalPrice:      totalPrice,
		Items:           items,
		UserID:          userID,
		Status:          constants.OrderStatusPendingPayment,
	}
	logger = logger.With().
		Int64(log.KeyOrderID, order.ID).
		Str(log.KeyTotalPrice, totalPrice.String()).
		Logger()
	logger.Info().Msg("built order payload")

	logger = logger.With().Str(log.KeyProcess, "creating order").Logger()
	logger.Info().Msg("creating order")
	created, err := s.orders.CreateOrder(c, order)
	if err != nil {
		// The attempt keeps the backend's own message; the caller gets the
		// wrapped error.
		backendMessage := err.Error()
		apiErr := &supabase.Error{}
		if errors.As(err, &apiErr) {
			backendMessage = apiErr.Message
		}
		err = fmt.Errorf("failed creating order with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		metrics.OrdersSubmitted.WithLabelValues("error").Inc()

		s.mu.Lock()
		att.State = StateReviewing
		att.FailureMessage = backendMessage
		s.mu.Unlock()
		return Result{}, err
	}
	logger.Info().Msg("created order")

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	s.carts.Clear(sessionID)
	metrics.OrdersSubmitted.WithLabelValues("ok").Inc()
	logger.Info().Msg("cleared cart")

	s.mu.Lock()
	att.State = StateComplete
	att.FailureMessage = ""
	att.OrderID = created.ID
	att.FinalTotal = totalPrice
	s.mu.Unlock()

	return Result{OrderID: created.ID, TotalPrice: totalPrice}, nil
}

// newOrderID mirrors the storefront's 6-digit order numbers; the backend row
// it lands in is still the authoritative record.
func newOrderID() int64 {
	return 100000 + rand.Int64N(900000)
}
