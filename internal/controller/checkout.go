package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/checkout"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common/constants"
	inErrors "github.com/angel343234/Isa-Crochet-shop-platform/internal/common/errors"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common/validate"
	inHttp "github.com/angel343234/Isa-Crochet-shop-platform/internal/http"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/otel"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/supabase"
	"github.com/angel343234/Isa-Crochet-shop-platform/pkg/request"
	"github.com/angel343234/Isa-Crochet-shop-platform/pkg/response"
)

const bankTransferInstructions = "Transfer the total to BBVA, CLABE XXXXXXXXXXX, " +
	"then send the receipt together with your order number via WhatsApp or Instagram."

type CheckoutController struct {
	service *checkout.Service
}

func AttachCheckoutController(mux *mux.Router, service *checkout.Service) {
	controller := CheckoutController{service: service}

	router := mux.PathPrefix("/checkout").Subrouter()
	router.HandleFunc("", controller.FindAttempt).Methods(http.MethodGet)
	router.HandleFunc("/review", controller.Review).Methods(http.MethodPost)
	router.HandleFunc("/confirm", controller.Confirm).Methods(http.MethodPost)
	router.HandleFunc("/cancel", controller.Cancel).Methods(http.MethodPost)
}

func (t CheckoutController) FindAttempt(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController FindAttempt")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutController FindAttempt").
		Logger()

	sessionID, err := common.SessionIDFromContext(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	att := t.service.Attempt(sessionID)
	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found checkout attempt",
		"data": map[string]interface{}{
			"state":           att.State,
			"failure_message": att.FailureMessage,
			"order_id":        att.OrderID,
		},
	})
}

func (t CheckoutController) Review(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController Review")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutController Review").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.ShippingForm{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	if err := validate.New().StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	sessionID, err := common.SessionIDFromContext(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().Str(log.KeyProcess, "reviewing checkout").Logger()
	logger.Info().Msg("reviewing checkout")
	c = logger.WithContext(c)
	form := checkout.ShippingInfo{
		Name:    reqBody.Name,
		Address: reqBody.Address,
		Phone:   reqBody.Phone,
	}
	if err := t.service.Review(c, sessionID, form); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusBadRequest
		if errors.Is(err, inErrors.ErrSubmitInFlight) {
			statusCode = http.StatusConflict
		}
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("reviewed checkout")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "checkout is ready to confirm",
	})
}

func (t CheckoutController) Confirm(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController Confirm")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutController Confirm").
		Logger()

	sessionID, err := common.SessionIDFromContext(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	userID := common.UserIDFromContext(c)

	logger = logger.With().Str(log.KeyProcess, "confirming checkout").Logger()
	logger.Info().Msg("confirming checkout")
	c = logger.WithContext(c)
	result, err := t.service.Confirm(c, sessionID, userID)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusBadGateway
		apiErr := &supabase.Error{}
		switch {
		case errors.Is(err, inErrors.ErrNotReviewing),
			errors.Is(err, inErrors.ErrSubmitInFlight):
			statusCode = http.StatusConflict
		case errors.As(err, &apiErr):
			statusCode = http.StatusBadGateway
		}
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Int64(log.KeyOrderID, result.OrderID).Logger()
	logger.Info().Msg("confirmed checkout")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "order is pending payment",
		"data": response.CheckoutComplete{
			OrderID:      result.OrderID,
			TotalPrice:   result.TotalPrice,
			Status:       constants.OrderStatusPendingPayment,
			Instructions: bankTransferInstructions,
		},
	})
}

func (t CheckoutController) Cancel(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController Cancel")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutController Cancel").
		Logger()

	sessionID, err := common.SessionIDFromContext(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	c = logger.WithContext(c)
	t.service.Cancel(c, sessionID)

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "checkout back to editing",
	})
}
