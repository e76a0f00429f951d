package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/cart"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/catalog"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common"
	inErrors "github.com/angel343234/Isa-Crochet-shop-platform/internal/common/errors"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common/validate"
	inHttp "github.com/angel343234/Isa-Crochet-shop-platform/internal/http"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/metrics"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/otel"
	"github.com/angel343234/Isa-Crochet-shop-platform/pkg/request"
	"github.com/angel343234/Isa-Crochet-shop-platform/pkg/response"
)

type CartController struct {
	store   *cart.Store
	catalog *catalog.Service
}

func AttachCartController(mux *mux.Router, store *cart.Store, catalog *catalog.Service) {
	controller := CartController{store: store, catalog: catalog}

	router := mux.PathPrefix("/carts").Subrouter()
	router.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	router.HandleFunc("/items", controller.AddItem).Methods(http.MethodPost)
	router.HandleFunc("/items", controller.RemoveItem).Methods(http.MethodDelete)
}

func (t CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCart").
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

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found cart",
		"data":       response.NewCart(t.store.Lines(sessionID)),
	})
}

func (t CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddItem").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.AddCartItem{}
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

	logger = logger.With().
		Str(log.KeyProcess, "finding product").
		Int64(log.KeyProductID, reqBody.ProductID).
		Str(log.KeyVariation, reqBody.Variation).
		Logger()
	logger.Info().Msg("finding product")
	c = logger.WithContext(c)
	product, err := t.catalog.FindProduct(c, reqBody.ProductID)
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusBadGateway
		if errors.Is(err, inErrors.ErrProductNotFound) {
			statusCode = http.StatusNotFound
		}
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "adding cart line").Logger()
	logger.Info().Msg("adding cart line")
	line := t.store.Add(sessionID, product, reqBody.Variation)
	metrics.CartItemsAdded.Inc()
	logger.Info().
		Int32(log.KeyQuantity, line.Quantity).
		Msg("added cart line")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "added cart line",
		"data":       response.NewCart(t.store.Lines(sessionID)),
	})
}

func (t CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveItem").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.RemoveCartItem{}
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

	// Removing a line that does not exist is a silent no-op, not an error.
	logger = logger.With().
		Str(log.KeyProcess, "removing cart line").
		Int64(log.KeyProductID, reqBody.ProductID).
		Str(log.KeyVariation, reqBody.Variation).
		Logger()
	logger.Info().Msg("removing cart line")
	if removed := t.store.Remove(sessionID, reqBody.ProductID, reqBody.Variation); removed {
		metrics.CartItemsRemoved.Inc()
		logger.Info().Msg("removed cart line")
	} else {
		logger.Info().Msg("no matching cart line")
	}

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "removed cart line",
		"data":       response.NewCart(t.store.Lines(sessionID)),
	})
}
