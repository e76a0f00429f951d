package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inErrors "github.com/angel343234/Isa-Crochet-shop-platform/internal/common/errors"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/otel"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/supabase"
)

const (
	cacheKeyProducts = "storefront:products"
	cacheTTL         = time.Hour
)

// ProductLister is the slice of the persistence collaborator the catalog
// needs.
type ProductLister interface {
	ListProducts(c context.Context) ([]supabase.Product, error)
}

// Filter narrows a product listing the way the storefront screens do:
// category equality, case-insensitive substring search on name/description,
// and hiding unpublished products.
type Filter struct {
	Category      string
	Query         string
	PublishedOnly bool
}

// Service lists products from the hosted backend with a Redis cache in front;
// filtering happens in process over the cached list.
type Service struct {
	products ProductLister
	cache    *redis.Client
}

func NewService(products ProductLister, cache *redis.Client) *Service {
	return &Service{products: products, cache: cache}
}

func (s *Service) fetchAll(c context.Context) ([]supabase.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService fetchAll")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService fetchAll").
		Str(log.KeyCacheKey, cacheKeyProducts).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding products in cache").Logger()
	logger.Info().Msg("finding products in cache")
	cached, err := s.cache.Get(c, cacheKeyProducts).Result()
	if err != nil {
		err = fmt.Errorf("failed finding products in cache with error=%w", err)
		logger.Info().Err(err).Msg(err.Error())

		logger = logger.With().Str(log.KeyProcess, "fetching products from backend").Logger()
		logger.Info().Msg("fetching products from backend")
		products, err := s.products.ListProducts(c)
		if err != nil {
			err = fmt.Errorf("failed fetching products with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		logger.Info().Msg("fetched products from backend")

		logger = logger.With().Str(log.KeyProcess, "inserting products in cache").Logger()
		logger.Info().Msg("inserting products in cache")
		payload, err := json.Marshal(products)
		if err != nil {
			err = fmt.Errorf("failed marshaling products with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		if err := s.cache.Set(c, cacheKeyProducts, payload, cacheTTL).Err(); err != nil {
			// A cold cache is not worth failing the listing over.
			err = fmt.Errorf("failed inserting products in cache with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		} else {
			logger.Info().Msg("inserted products in cache")
		}

		return products, nil
	}
	logger.Info().Msg("found products in cache")

	logger = logger.With().Str(log.KeyProcess, "unmarshaling cache").Logger()
	products := []supabase.Product{}
	if err := json.Unmarshal([]byte(cached), &products); err != nil {
		err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("unmarshaled cache")

	return products, nil
}

// ListProducts returns the catalog narrowed by the filter.
func (s *Service) ListProducts(c context.Context, filter Filter) ([]supabase.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService ListProducts")
	defer span.End()

	products, err := s.fetchAll(c)
	if err != nil {
		otel.RecordError(err, span)
		return nil, err
	}
	return Apply(products, filter), nil
}

// FindProduct looks a product up by id so callers snapshot catalog data
// server-side instead of trusting the client.
func (s *Service) FindProduct(c context.Context, id int64) (supabase.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService FindProduct").
		Int64(log.KeyProductID, id).
		Logger()

	products, err := s.fetchAll(c)
	if err != nil {
		otel.RecordError(err, span)
		return supabase.Product{}, err
	}
	for _, product := range products {
		if product.ID == id {
			return product, nil
		}
	}

	err = fmt.Errorf("failed finding productId=%d with error=%w", id, inErrors.ErrProductNotFound)
	otel.RecordError(err, span)
	logger.Error().Err(err).Msg(err.Error())
	return supabase.Product{}, err
}

// Apply filters in insertion order, the way the storefront screens filter the
// fetched list.
func Apply(products []supabase.Product, filter Filter) []supabase.Product {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := []supabase.Product{}
	for _, product := range products {
		if filter.PublishedOnly && !product.Published {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if query != "" {
			name := strings.ToLower(product.Name)
			desc := strings.ToLower(product.Description)
			if !strings.Contains(name, query) && !strings.Contains(desc, query) {
				continue
			}
		}
		out = append(out, product)
	}
	return out
}
