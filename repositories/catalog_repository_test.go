package repositories

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsBody = `{"data":[
	{"id":1,"slug":"runner-black","title":"Runner - Black","price":4000,
	 "size":[{"id":1,"sizess":"38"}],
	 "images":[{"url":"/u.jpg","formats":{"large":{"url":"/l.jpg"}}}]},
	{"id":2,"slug":"strider-brown","title":"Strider - Brown","price":9000,
	 "size":[{"id":2,"sizess":"40"}]}
]}`

func catalogServer(t *testing.T, hits *int32, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetProductsDecodesAndDerivesColor(t *testing.T) {
	var hits int32
	srv := catalogServer(t, &hits, productsBody)
	repo := NewCatalogRepository(srv.URL)

	products := repo.GetProducts(context.Background(), "")
	require.Len(t, products, 2)
	assert.Equal(t, "Runner - Black", products[0].Title)
	assert.Equal(t, "Black", products[0].Color)
	assert.Equal(t, "Brown", products[1].Color)
	assert.Equal(t, "/l.jpg", products[0].FirstImageURL())
}

func TestGetProductsServedFromCache(t *testing.T) {
	var hits int32
	srv := catalogServer(t, &hits, productsBody)
	repo := NewCatalogRepository(srv.URL)

	first := repo.GetProducts(context.Background(), "")
	second := repo.GetProducts(context.Background(), "")
	assert.Equal(t, first, second)

	// The second call is answered from cache; it only kicks off a
	// background refresh, so at most one extra request lands.
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&hits) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGetProductsCachedPerCategory(t *testing.T) {
	var hits int32
	srv := catalogServer(t, &hits, productsBody)
	repo := NewCatalogRepository(srv.URL)

	repo.GetProducts(context.Background(), "sneakers")
	repo.GetProducts(context.Background(), "boots")
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestGetProductsUpstreamErrorYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	repo := NewCatalogRepository(srv.URL)

	products := repo.GetProducts(context.Background(), "")
	assert.Empty(t, products)
}

func TestGetProductsUnreachableUpstreamYieldsEmpty(t *testing.T) {
	repo := NewCatalogRepository("http://127.0.0.1:1")

	products := repo.GetProducts(context.Background(), "")
	assert.Empty(t, products)
}

func TestGetProductBySlug(t *testing.T) {
	var hits int32
	srv := catalogServer(t, &hits, productsBody)
	repo := NewCatalogRepository(srv.URL)

	product, found := repo.GetProductBySlug(context.Background(), "runner-black")
	require.True(t, found)
	assert.Equal(t, 1, product.ID)
	assert.Equal(t, "Black", product.Color)
}

func TestGetProductBySlugNotFound(t *testing.T) {
	var hits int32
	srv := catalogServer(t, &hits, `{"data":[]}`)
	repo := NewCatalogRepository(srv.URL)

	_, found := repo.GetProductBySlug(context.Background(), "missing")
	assert.False(t, found)
}

func TestGetProductByID(t *testing.T) {
	var hits int32
	srv := catalogServer(t, &hits, productsBody)
	repo := NewCatalogRepository(srv.URL)

	product, found := repo.GetProductByID(context.Background(), 1)
	require.True(t, found)
	assert.Equal(t, "runner-black", product.Slug)
}

func TestGetCategoriesCached(t *testing.T) {
	var hits int32
	srv := catalogServer(t, &hits, `{"data":[{"id":1,"name":"Sneakers","slug":"sneakers"}]}`)
	repo := NewCatalogRepository(srv.URL)

	categories := repo.GetCategories(context.Background())
	require.Len(t, categories, 1)
	assert.Equal(t, "sneakers", categories[0].Slug)

	repo.GetCategories(context.Background())
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestGetBannersUpstreamErrorYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()
	repo := NewCatalogRepository(srv.URL)

	assert.Empty(t, repo.GetBanners(context.Background()))
}
