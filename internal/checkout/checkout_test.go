package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/cart"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common/constants"
	inErrors "github.com/angel343234/Isa-Crochet-shop-platform/internal/common/errors"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/config"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/supabase"
)

type fakeOrderCreator struct {
	err     error
	got     supabase.OrderRecord
	started chan struct{}
	release chan struct{}
}

func (f *fakeOrderCreator) CreateOrder(
	c context.Context,
	order supabase.OrderRecord,
) (supabase.OrderRecord, error) {
	f.got = order
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return supabase.OrderRecord{}, f.err
	}
	return order, nil
}

func product(id int64, name string, price int64) supabase.Product {
	return supabase.Product{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromInt(price),
	}
}

// seedCart fills the session with 2x product A at 100 and 1x product B at 50,
// total 250 across 3 items.
func seedCart(carts *cart.Store, sessionID uuid.UUID) {
	carts.Add(sessionID, product(1, "tulip bouquet", 100), "")
	carts.Add(sessionID, product(1, "tulip bouquet", 100), "")
	carts.Add(sessionID, product(2, "sunflower", 50), "red")
}

func validForm() ShippingInfo {
	return ShippingInfo{
		Name:    "Maria Lopez",
		Address: "Av. Universidad 101, Aguascalientes",
		Phone:   "449-123 4567",
	}
}

func TestReviewRejectsInvalidPhone(t *testing.T) {
	carts := cart.NewStore(time.Hour)
	svc := NewService(carts, &fakeOrderCreator{})
	sessionID := uuid.New()
	seedCart(carts, sessionID)

	form := validForm()
	form.Phone = "123"
	err := svc.Review(context.Background(), sessionID, form)

	assert.ErrorIs(t, err, inErrors.ErrInvalidPhone)
	assert.Equal(t, StateEditing, svc.Attempt(sessionID).State)
}

func TestReviewRejectsElevenDigitPhone(t *testing.T) {
	carts := cart.NewStore(time.Hour)
	svc := NewService(carts, &fakeOrderCreator{})
	sessionID := uuid.New()
	seedCart(carts, sessionID)

	form := validForm()
	form.Phone = "449 123 45678"
	err := svc.Review(context.Background(), sessionID, form)

	assert.ErrorIs(t, err, inErrors.ErrInvalidPhone)
}

func TestReviewRejectsEmptyCart(t *testing.T) {
	carts := cart.NewStore(time.Hour)
	svc := NewService(carts, &fakeOrderCreator{})
	sessionID := uuid.New()

	err := svc.Review(context.Background(), sessionID, validForm())

	assert.ErrorIs(t, err, inErrors.ErrEmptyCart)
	assert.Equal(t, StateEditing, svc.Attempt(sessionID).State)
}

func TestReviewNormalizesPhoneAndMovesToReviewing(t *testing.T) {
	carts := cart.NewStore(time.Hour)
	svc := NewService(carts, &fakeOrderCreator{})
	sessionID := uuid.New()
	seedCart(carts, sessionID)

	err := svc.Review(context.Background(), sessionID, validForm())

	require.NoError(t, err)
	att := svc.Attempt(sessionID)
	assert.Equal(t, StateReviewing, att.State)
	assert.Equal(t, "4491234567", att.Form.Phone)
	assert.Equal(t, "Maria Lopez", att.Form.Name)
}

func TestCancelKeepsForm(t *testing.T) {
	carts := cart.NewStore(time.Hour)
	svc := NewService(carts, &fakeOrderCreator{})
	sessionID := uuid.New()
	seedCart(carts, sessionID)
	require.NoError(t, svc.Review(context.Background(), sessionID, validForm()))

	svc.Cancel(context.Background(), sessionID)

	att := svc.Attempt(sessionID)
	assert.Equal(t, StateEditing, att.State)
	assert.Equal(t, "Maria Lopez", att.Form.Name)

	// Review again with the same form goes straight back to reviewing.
	require.NoError(t, svc.Review(context.Background(), sessionID, att.Form))
	assert.Equal(t, StateReviewing, svc.Attempt(sessionID).State)
}

func TestCancelWithoutReviewIsNoOp(t *testing.T) {
	carts := cart.NewStore(time.Hour)
	svc := NewService(carts, &fakeOrderCreator{})
	sessionID := uuid.New()

	svc.Cancel(context.Background(), sessionID)

	assert.Equal(t, StateEditing, svc.Attempt(sessionID).State)
}

func TestConfirmRequiresReviewing(t *testing.T) {
	carts := cart.NewStore(time.Hour)
	svc := NewService(carts, &fakeOrderCreator{})
	sessionID := uuid.New()
	seedCart(carts, sessionID)

	_, err := svc.Confirm(context.Background(), sessionID, nil)

	assert.ErrorIs(t, err, inErrors.ErrNotReviewing)
}

func TestConfirmCreatesOrderAndClearsCart(t *testing.T) {
	carts := cart.NewStore(time.Hour)
	creator := &fakeOrderCreator{}
	svc := NewService(carts, creator)
	sessionID := uuid.New()
	userID := uuid.New()
	seedCart(carts, sessionID)
	require.NoError(t, svc.Review(context.Background(), sessionID, validForm()))

	result, err := svc.Confirm(context.Background(), sessionID, &userID)

	require.NoError(t, err)
	assert.True(t, result.TotalPrice.Equal(decimal.NewFromInt(250)))
	assert.GreaterOrEqual(t, result.OrderID, int64(100000))
	assert.Less(t, result.OrderID, int64(1000000))

	order := creator.got
	assert.Equal(t, "Maria Lopez", order.CustomerName)
	assert.Equal(t, "Av. Universidad 101, Aguascalientes", order.CustomerAddress)
	assert.Equal(t, "4491234567", order.CustomerPhone)
	assert.Equal(t, constants.OrderStatusPendingPayment, order.Status)
	require.NotNil(t, order.UserID)
	assert.Equal(t, userID, *order.UserID)
	require.Len(t, order.Items, 2)
	assert.EqualValues(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "tulip bouquet", order.Items[0].Name)
	assert.Equal(t, "red", order.Items[1].Variation)

	assert.True(t, carts.IsEmpty(sessionID))
	att := svc.Attempt(sessionID)
	assert.Equal(t, StateComplete, att.State)
	assert.Equal(t, result.OrderID, att.OrderID)
	assert.True(t, att.FinalTotal.Equal(decimal.NewFromInt(250)))
}

func TestConfirmAnonymousOmitsUserID(t *testing.T) {
	carts := cart.NewStore(time.Hour)
	creator := &fakeOrderCreator{}
	svc := NewService(carts, creator)
	sessionID := uuid.New()
	seedCart(carts, sessionID)
	require.NoError(t, svc.Review(context.Background(), sessionID, validForm()))

	_, err := svc.Confirm(context.Background(), sessionID, nil)

	require.NoError(t, err)
	assert.Nil(t, creator.got.UserID)
}

func TestConfirmFailureKeepsCartAndReturnsToReviewing(t *testing.T) {
	carts := cart.NewStore(time.Hour)
	creator := &fakeOrderCreator{err: errors.New("duplicate key value violates unique constraint")}
	svc := NewService(carts, creator)
	sessionID := uuid.New()
	seedCart(carts, sessionID)
	require.NoError(t, svc.Review(context.Background(), sessionID, validForm()))

	_, err := svc.Confirm(context.Background(), sessionID, nil)

	require.Error(t, err)
	att := svc.Attempt(sessionID)
	assert.Equal(t, StateReviewing, att.State)
	assert.Equal(t, "duplicate key value violates unique constraint", att.FailureMessage)
	assert.EqualValues(t, 3, carts.TotalItems(sessionID))

	// Same attempt can be confirmed again once the backend recovers.
	creator.err = nil
	result, err := svc.Confirm(context.Background(), sessionID, nil)
	require.NoError(t, err)
	assert.True(t, result.TotalPrice.Equal(decimal.NewFromInt(250)))
	assert.Empty(t, svc.Attempt(sessionID).FailureMessage)
}

func TestConfirmFailureSurfacesBackendMessageVerbatim(t *testing.T) {
	carts := cart.NewStore(time.Hour)
	creator := &fakeOrderCreator{err: &supabase.Error{
		Message:    "new row violates row-level security policy for table \"orders\"",
		Code:       "42501",
		HTTPStatus: 403,
	}}
	svc := NewService(carts, creator)
	sessionID := uuid.New()
	seedCart(carts, sessionID)
	require.NoError(t, svc.Review(context.Background(), sessionID, validForm()))

	_, err := svc.Confirm(context.Background(), sessionID, nil)

	require.Error(t, err)
	assert.Equal(
		t,
		"new row violates row-level security policy for table \"orders\"",
		svc.Attempt(sessionID).FailureMessage,
	)
}

func TestConfirmAgainstBackendClient(t *testing.T) {
	var inserted supabase.OrderRecord
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/orders", r.URL.Path)

		payload := []supabase.OrderRecord{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload, 1)
		inserted = payload[0]

		body, err := json.Marshal(payload)
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write(body)
	}))
	defer server.Close()

	carts := cart.NewStore(time.Hour)
	client := supabase.NewClient(config.Supabase{URL: server.URL, AnonKey: "anon-key"})
	svc := NewService(carts, client)
	sessionID := uuid.New()
	seedCart(carts, sessionID)
	require.NoError(t, svc.Review(context.Background(), sessionID, validForm()))

	result, err := svc.Confirm(context.Background(), sessionID, nil)

	require.NoError(t, err)
	assert.Equal(t, inserted.ID, result.OrderID)
	assert.True(t, inserted.TotalPrice.Equal(decimal.NewFromInt(250)))
	assert.True(t, carts.IsEmpty(sessionID))
	assert.Equal(t, StateComplete, svc.Attempt(sessionID).State)
}

func TestConfirmBackendRejectionKeepsMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"message":"canceling statement due to statement timeout","code":"57014"}`)
	}))
	defer server.Close()

	carts := cart.NewStore(time.Hour)
	client := supabase.NewClient(config.Supabase{URL: server.URL, AnonKey: "anon-key"})
	svc := NewService(carts, client)
	sessionID := uuid.New()
	seedCart(carts, sessionID)
	require.NoError(t, svc.Review(context.Background(), sessionID, validForm()))

	_, err := svc.Confirm(context.Background(), sessionID, nil)

	require.Error(t, err)
	att := svc.Attempt(sessionID)
	assert.Equal(t, StateReviewing, att.State)
	assert.Equal(t, "canceling statement due to statement timeout", att.FailureMessage)
	assert.EqualValues(t, 3, carts.TotalItems(sessionID))
}

func TestConfirmRejectsSecondSubmitInFlight(t *testing.T) {
	carts := cart.NewStore(time.Hour)
	creator := &fakeOrderCreator{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewService(carts, creator)
	sessionID := uuid.New()
	seedCart(carts, sessionID)
	require.NoError(t, svc.Review(context.Background(), sessionID, validForm()))

	done := make(chan error, 1)
	go func() {
		_, err := svc.Confirm(context.Background(), sessionID, nil)
		done <- err
	}()
	<-creator.started

	_, err := svc.Confirm(context.Background(), sessionID, nil)
	assert.ErrorIs(t, err, inErrors.ErrSubmitInFlight)

	reviewErr := svc.Review(context.Background(), sessionID, validForm())
	assert.ErrorIs(t, reviewErr, inErrors.ErrSubmitInFlight)

	close(creator.release)
	require.NoError(t, <-done)
	assert.Equal(t, StateComplete, svc.Attempt(sessionID).State)
}
