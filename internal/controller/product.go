package controller

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/catalog"
	inHttp "github.com/angel343234/Isa-Crochet-shop-platform/internal/http"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/otel"
	"github.com/angel343234/Isa-Crochet-shop-platform/pkg/response"
)

type ProductController struct {
	service *catalog.Service
}

func AttachProductController(mux *mux.Router, service *catalog.Service) {
	controller := ProductController{service: service}

	router := mux.PathPrefix("/products").Subrouter()
	router.HandleFunc("", controller.ListProducts).Methods(http.MethodGet)
}

func (t ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController ListProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController ListProducts").
		Logger()

	filter := catalog.Filter{
		Category:      r.URL.Query().Get("cat"),
		Query:         r.URL.Query().Get("q"),
		PublishedOnly: true,
	}

	logger = logger.With().Str(log.KeyProcess, "listing products").Logger()
	logger.Info().Msg("listing products")
	c = logger.WithContext(c)
	products, err := t.service.ListProducts(c, filter)
	if err != nil {
		err = fmt.Errorf("failed listing products with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadGateway,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("listed %d products", len(products))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "listed products",
		"data":       response.NewProducts(products),
	})
}
