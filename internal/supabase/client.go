package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/config"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/otel"
)

// Client talks to the hosted persistence/auth collaborator: PostgREST under
// /rest/v1 for data, GoTrue under /auth/v1 for authentication. All durable
// state lives on the other side of this client.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func NewClient(cfg config.Supabase) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		httpClient: otelhttp.DefaultClient,
	}
}

func (s *Client) newRequest(
	c context.Context,
	method, path string,
	body io.Reader,
	accessToken string,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(c, method, s.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed creating request to %s with error=%w", path, err)
	}
	req.Header.Set("apikey", s.anonKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+s.anonKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestId := log.RequestIDFromContext(c); requestId != "" {
		req.Header.Set("X-Request-Id", requestId)
	}
	return req, nil
}

// decodeError turns a non-2xx response into a *Error carrying the backend's
// message verbatim.
func decodeError(resp *http.Response) error {
	apiErr := Error{HTTPStatus: resp.StatusCode}
	raw, err := io.ReadAll(resp.Body)
	if err != nil || len(raw) == 0 {
		apiErr.Message = resp.Status
		return &apiErr
	}
	if err := json.Unmarshal(raw, &apiErr); err != nil || apiErr.Message == "" {
		// GoTrue uses several error shapes; fall back to the common ones
		// before giving up and returning the raw body.
		alt := struct {
			ErrorDescription string `json:"error_description"`
			Msg              string `json:"msg"`
		}{}
		if err := json.Unmarshal(raw, &alt); err == nil {
			switch {
			case alt.ErrorDescription != "":
				apiErr.Message = alt.ErrorDescription
			case alt.Msg != "":
				apiErr.Message = alt.Msg
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = string(raw)
	}
	return &apiErr
}

// ListProducts fetches every row of the products table.
func (s *Client) ListProducts(c context.Context) ([]Product, error) {
	c, span := otel.Tracer.Start(c, "SupabaseClient ListProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SupabaseClient ListProducts").
		Str(log.KeyProcess, "fetching products").
		Logger()

	logger.Info().Msg("fetching products")
	req, err := s.newRequest(c, http.MethodGet, "/rest/v1/products?select=*", nil, "")
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed fetching products with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = decodeError(resp)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "decoding products").Logger()
	raws := []rawProduct{}
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		err = fmt.Errorf("failed decoding products with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	products := make([]Product, len(raws))
	for i, raw := range raws {
		products[i] = raw.coerce()
	}
	logger.Info().Msgf("fetched %d products", len(products))

	return products, nil
}

// CreateOrder inserts the order and returns the created row. Backend failures
// come back as *Error so the checkout aggregator can show the message as-is.
func (s *Client) CreateOrder(c context.Context, order OrderRecord) (OrderRecord, error) {
	c, span := otel.Tracer.Start(c, "SupabaseClient CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SupabaseClient CreateOrder").
		Int64(log.KeyOrderID, order.ID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "marshaling order").Logger()
	payload, err := json.Marshal([]OrderRecord{order})
	if err != nil {
		err = fmt.Errorf("failed marshaling order with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return OrderRecord{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Info().Msg("inserting order")
	req, err := s.newRequest(c, http.MethodPost, "/rest/v1/orders", bytes.NewReader(payload), "")
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return OrderRecord{}, err
	}
	req.Header.Set("Prefer", "return=representation")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return OrderRecord{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		err = decodeError(resp)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return OrderRecord{}, err
	}
	logger.Info().Msg("inserted order")

	logger = logger.With().Str(log.KeyProcess, "decoding created order").Logger()
	created := []OrderRecord{}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		err = fmt.Errorf("failed decoding created order with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return OrderRecord{}, err
	}
	if len(created) == 0 {
		err = fmt.Errorf("order insert returned no representation")
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return OrderRecord{}, err
	}
	logger.Info().Msg("decoded created order")

	return created[0], nil
}

// ListOrdersByUser fetches the user's orders, newest first.
func (s *Client) ListOrdersByUser(
	c context.Context,
	userID uuid.UUID,
	accessToken string,
) ([]OrderRecord, error) {
	c, span := otel.Tracer.Start(c, "SupabaseClient ListOrdersByUser")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SupabaseClient ListOrdersByUser").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProcess, "fetching orders").
		Logger()

	logger.Info().Msg("fetching orders")
	path := fmt.Sprintf(
		"/rest/v1/orders?select=*&user_id=eq.%s&order=created_at.desc",
		userID.String(),
	)
	req, err := s.newRequest(c, http.MethodGet, path, nil, accessToken)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed fetching orders with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = decodeError(resp)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "decoding orders").Logger()
	orders := []OrderRecord{}
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		err = fmt.Errorf("failed decoding orders with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("fetched %d orders", len(orders))

	return orders, nil
}
