package controller

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common"
	inErrors "github.com/angel343234/Isa-Crochet-shop-platform/internal/common/errors"
	inHttp "github.com/angel343234/Isa-Crochet-shop-platform/internal/http"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/order"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/otel"
	"github.com/angel343234/Isa-Crochet-shop-platform/pkg/response"
)

type OrderController struct {
	service *order.Service
}

// AttachOrderController expects the router to already carry the auth
// middleware; order history is never anonymous.
func AttachOrderController(mux *mux.Router, service *order.Service) {
	controller := OrderController{service: service}

	mux.HandleFunc("", controller.ListOrders).Methods(http.MethodGet)
}

func (t OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController ListOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController ListOrders").
		Logger()

	userID := common.UserIDFromContext(c)
	if userID == nil {
		err := inErrors.ErrEmptyAuth
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().
		Str(log.KeyProcess, "listing orders").
		Str(log.KeyUserID, userID.String()).
		Logger()
	logger.Info().Msg("listing orders")
	c = logger.WithContext(c)
	orders, err := t.service.ListByUser(c, *userID, common.AccessTokenFromContext(c))
	if err != nil {
		err = fmt.Errorf("failed listing orders with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadGateway,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("listed %d orders", len(orders))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "listed orders",
		"data":       response.NewOrders(orders),
	})
}
