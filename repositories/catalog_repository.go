package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"shoe-shop/models"
	"shoe-shop/utils"
)

// CatalogRepository reads categories, products and banners from the headless
// CMS. Failures never cross this boundary: callers get empty collections and
// the error is logged. Read-mostly data is memoized for five minutes and
// refreshed stale-while-revalidate.
type CatalogRepository struct {
	baseURL string
	client  *http.Client
	cache   *utils.TTLCache
}

func NewCatalogRepository(baseURL string) *CatalogRepository {
	return &CatalogRepository{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   utils.NewTTLCache(utils.DefaultCacheTTL),
	}
}

type productsEnvelope struct {
	Data []models.Product `json:"data"`
}

type categoriesEnvelope struct {
	Data []models.Category `json:"data"`
}

type bannersEnvelope struct {
	Data []models.Banner `json:"data"`
}

// GetProducts fetches the product collection, optionally restricted to a
// category slug, with derived colors attached.
func (r *CatalogRepository) GetProducts(ctx context.Context, categorySlug string) []models.Product {
	apiURL := r.baseURL + "/products?fields[0]=id&fields[1]=slug&fields[2]=title&fields[3]=price" +
		"&populate[0]=images&populate[1]=category&populate[2]=size"
	if categorySlug != "" {
		apiURL += "&filters[category][slug][$eq]=" + url.QueryEscape(categorySlug)
	}

	key := utils.CacheKey("products", map[string]interface{}{"category": categorySlug})
	if cached, ok := r.cache.Get(key); ok {
		r.refreshProducts(apiURL, key)
		return cached.([]models.Product)
	}

	products, err := r.fetchProducts(ctx, apiURL)
	if err != nil {
		log.Println("Error fetching products:", err)
		return []models.Product{}
	}
	r.cache.Set(key, products)
	return products
}

// refreshProducts re-fetches in the background after stale data has been
// served. Fire and forget: failure is logged, never surfaced, never retried.
func (r *CatalogRepository) refreshProducts(apiURL, key string) {
	go func() {
		products, err := r.fetchProducts(context.Background(), apiURL)
		if err != nil {
			log.Println("Background fetch failed:", err)
			return
		}
		r.cache.Set(key, products)
	}()
}

func (r *CatalogRepository) fetchProducts(ctx context.Context, apiURL string) ([]models.Product, error) {
	var envelope productsEnvelope
	if err := r.fetchJSON(ctx, apiURL, &envelope); err != nil {
		return nil, err
	}

	products := envelope.Data
	if products == nil {
		products = []models.Product{}
	}
	for i := range products {
		products[i].Color = models.DeriveColor(products[i].Title)
	}
	return products, nil
}

func (r *CatalogRepository) GetCategories(ctx context.Context) []models.Category {
	apiURL := r.baseURL + "/categories?fields[0]=id&fields[1]=name&fields[2]=slug"

	key := utils.CacheKey("categories", nil)
	if cached, ok := r.cache.Get(key); ok {
		return cached.([]models.Category)
	}

	var envelope categoriesEnvelope
	if err := r.fetchJSON(ctx, apiURL, &envelope); err != nil {
		log.Println("Error fetching categories:", err)
		return []models.Category{}
	}

	categories := envelope.Data
	if categories == nil {
		categories = []models.Category{}
	}
	r.cache.Set(key, categories)
	return categories
}

// GetProductBySlug returns the product and whether it was found.
func (r *CatalogRepository) GetProductBySlug(ctx context.Context, slug string) (models.Product, bool) {
	apiURL := r.baseURL + "/products?filters[slug][$eq]=" + url.QueryEscape(slug) +
		"&populate[0]=images&populate[1]=category&populate[2]=size"

	products, err := r.fetchProducts(ctx, apiURL)
	if err != nil {
		log.Println("Error fetching product:", err)
		return models.Product{}, false
	}
	if len(products) == 0 {
		return models.Product{}, false
	}
	return products[0], true
}

// GetProductByID resolves a single product for cart line construction.
func (r *CatalogRepository) GetProductByID(ctx context.Context, id int) (models.Product, bool) {
	apiURL := fmt.Sprintf("%s/products?filters[id][$eq]=%d&populate[0]=images&populate[1]=category&populate[2]=size",
		r.baseURL, id)

	products, err := r.fetchProducts(ctx, apiURL)
	if err != nil {
		log.Println("Error fetching product:", err)
		return models.Product{}, false
	}
	if len(products) == 0 {
		return models.Product{}, false
	}
	return products[0], true
}

func (r *CatalogRepository) GetBanners(ctx context.Context) []models.Banner {
	apiURL := r.baseURL + "/banners?populate[0]=image"

	key := utils.CacheKey("banners", nil)
	if cached, ok := r.cache.Get(key); ok {
		return cached.([]models.Banner)
	}

	var envelope bannersEnvelope
	if err := r.fetchJSON(ctx, apiURL, &envelope); err != nil {
		log.Println("Error fetching banners:", err)
		return []models.Banner{}
	}

	banners := envelope.Data
	if banners == nil {
		banners = []models.Banner{}
	}
	r.cache.Set(key, banners)
	return banners
}

func (r *CatalogRepository) fetchJSON(ctx context.Context, apiURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from catalog API", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
