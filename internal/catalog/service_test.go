package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	inErrors "github.com/angel343234/Isa-Crochet-shop-platform/internal/common/errors"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/supabase"
)

type fakeProductLister struct {
	products []supabase.Product
	err      error
	calls    int
}

func (f *fakeProductLister) ListProducts(c context.Context) ([]supabase.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func sampleProducts() []supabase.Product {
	return []supabase.Product{
		{
			ID:          1,
			Name:        "Tulip Bouquet",
			Description: "crochet tulips in a paper wrap",
			Price:       decimal.NewFromInt(150),
			Category:    "bouquets",
			Published:   true,
		},
		{
			ID:          2,
			Name:        "Sunflower",
			Description: "single stem",
			Price:       decimal.NewFromInt(50),
			Category:    "flowers",
			Published:   true,
		},
		{
			ID:          3,
			Name:        "Keychain Frog",
			Description: "tiny frog with a tulip hat",
			Price:       decimal.NewFromInt(35),
			Category:    "keychains",
			Published:   false,
		},
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		filter      Filter
		expectedIDs []int64
	}{
		{name: "NoFilter", filter: Filter{}, expectedIDs: []int64{1, 2, 3}},
		{name: "PublishedOnly", filter: Filter{PublishedOnly: true}, expectedIDs: []int64{1, 2}},
		{name: "Category", filter: Filter{Category: "flowers"}, expectedIDs: []int64{2}},
		{
			name:        "QueryMatchesName",
			filter:      Filter{Query: "sunflower"},
			expectedIDs: []int64{2},
		},
		{
			name:        "QueryMatchesDescription",
			filter:      Filter{Query: "TULIP"},
			expectedIDs: []int64{1, 3},
		},
		{
			name:        "QueryTrimmed",
			filter:      Filter{Query: "  frog  "},
			expectedIDs: []int64{3},
		},
		{
			name:        "QueryAndPublished",
			filter:      Filter{Query: "tulip", PublishedOnly: true},
			expectedIDs: []int64{1},
		},
		{name: "NoMatch", filter: Filter{Category: "hats"}, expectedIDs: []int64{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			filtered := Apply(sampleProducts(), test.filter)
			ids := make([]int64, len(filtered))
			for i, product := range filtered {
				ids[i] = product.ID
			}
			assert.Equal(t, test.expectedIDs, ids)
		})
	}
}

func setupCache(t *testing.T, c context.Context) *redis.Client {
	t.Helper()

	redisContainer, err := testRedis.Run(
		c,
		"redis:7.4.2-alpine3.21",
		testRedis.WithLogLevel(testRedis.LogLevelVerbose),
	)
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	})

	redisConnStr, err := redisContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}
	redisOpt, err := redis.ParseURL(redisConnStr)
	if err != nil {
		t.Fatalf("failed parsing redis connection string with error: %s", err)
	}
	redisClient := redis.NewClient(redisOpt)
	if err = redisClient.Ping(c).Err(); err != nil {
		t.Fatalf("failed ping redis client with error: %s", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	return redisClient
}

func TestListProductsServesSecondReadFromCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	c := context.Background()
	cache := setupCache(t, c)
	lister := &fakeProductLister{products: sampleProducts()}
	svc := NewService(lister, cache)

	first, err := svc.ListProducts(c, Filter{})
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := svc.ListProducts(c, Filter{PublishedOnly: true})
	require.NoError(t, err)
	assert.Len(t, second, 2)

	assert.Equal(t, 1, lister.calls)
}

func TestFindProduct(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	c := context.Background()
	cache := setupCache(t, c)
	lister := &fakeProductLister{products: sampleProducts()}
	svc := NewService(lister, cache)

	product, err := svc.FindProduct(c, 2)
	require.NoError(t, err)
	assert.Equal(t, "Sunflower", product.Name)

	_, err = svc.FindProduct(c, 99)
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestListProductsPropagatesBackendError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	c := context.Background()
	cache := setupCache(t, c)
	lister := &fakeProductLister{err: errors.New("upstream unavailable")}
	svc := NewService(lister, cache)

	_, err := svc.ListProducts(c, Filter{})
	assert.ErrorContains(t, err, "upstream unavailable")
}
