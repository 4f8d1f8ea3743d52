package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"shoe-shop/repositories"
	"shoe-shop/services"
)

type ProductController struct {
	Catalog *repositories.CatalogRepository
}

func NewProductController(catalog *repositories.CatalogRepository) *ProductController {
	return &ProductController{Catalog: catalog}
}

// @Summary Get all categories
// @Description Get list of all catalog categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *ProductController) GetAllCategories(c *gin.Context) {
	categories := ctrl.Catalog.GetCategories(c.Request.Context())
	c.JSON(200, gin.H{"success": true, "message": "Categories retrieved", "data": categories})
}

// @Summary Get home banners
// @Description Get the banner slides for the home page
// @Tags Banners
// @Produce json
// @Success 200 {object} models.Response
// @Router /banners [get]
func (ctrl *ProductController) GetBanners(c *gin.Context) {
	banners := ctrl.Catalog.GetBanners(c.Request.Context())
	c.JSON(200, gin.H{"success": true, "message": "Banners retrieved", "data": banners})
}

func filterSelectionFromQuery(c *gin.Context) services.FilterSelection {
	return services.FilterSelection{
		PriceRanges: c.QueryArray("price"),
		Sizes:       c.QueryArray("size"),
		Colors:      c.QueryArray("color"),
	}
}

// @Summary Get product listing
// @Description Get products filtered by price bracket, size and color, sorted
// @Tags Products
// @Produce json
// @Param category query string false "Category slug"
// @Param price query []string false "Price brackets" collectionFormat(multi)
// @Param size query []string false "Sizes" collectionFormat(multi)
// @Param color query []string false "Colors" collectionFormat(multi)
// @Param sort query string false "Sort key" Enums(default, price-asc, price-desc, title-asc, title-desc)
// @Success 200 {object} models.Response
// @Router /listing [get]
func (ctrl *ProductController) GetListing(c *gin.Context) {
	products := ctrl.Catalog.GetProducts(c.Request.Context(), c.Query("category"))

	sortKey := c.DefaultQuery("sort", services.SortDefault)
	view := services.DeriveView(products, filterSelectionFromQuery(c), sortKey)

	c.JSON(200, gin.H{
		"success": true,
		"message": "Products retrieved",
		"data":    view,
		"meta": gin.H{
			"total":            len(view),
			"available_sizes":  services.AvailableSizes(products),
			"available_colors": services.AvailableColors(products),
			"price_ranges":     services.PriceRanges,
		},
	})
}

// @Summary Get product grid window
// @Description Get the virtualized grid rows intersecting the viewport
// @Tags Products
// @Produce json
// @Param category query string false "Category slug"
// @Param price query []string false "Price brackets" collectionFormat(multi)
// @Param size query []string false "Sizes" collectionFormat(multi)
// @Param color query []string false "Colors" collectionFormat(multi)
// @Param sort query string false "Sort key"
// @Param scroll_top query int false "Viewport scroll offset in px" default(0)
// @Param viewport_height query int false "Viewport height in px" default(800)
// @Success 200 {object} models.Response
// @Router /listing/grid [get]
func (ctrl *ProductController) GetListingGrid(c *gin.Context) {
	products := ctrl.Catalog.GetProducts(c.Request.Context(), c.Query("category"))

	sortKey := c.DefaultQuery("sort", services.SortDefault)
	view := services.DeriveView(products, filterSelectionFromQuery(c), sortKey)

	scrollTop, _ := strconv.Atoi(c.DefaultQuery("scroll_top", "0"))
	viewportHeight, _ := strconv.Atoi(c.DefaultQuery("viewport_height", "800"))

	v := services.NewVirtualizer()
	visible := v.VisibleRows(len(view), scrollTop, viewportHeight)

	rows := make([]gin.H, 0, len(visible))
	for _, row := range visible {
		rows = append(rows, gin.H{
			"index":  row.Index,
			"start":  row.Start,
			"height": row.Height,
			"items":  v.RowItems(view, row.Index),
		})
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Product grid retrieved",
		"data": gin.H{
			"total_items":  len(view),
			"total_rows":   v.TotalRows(len(view)),
			"total_height": v.TotalHeight(len(view)),
			"rows":         rows,
		},
	})
}

// @Summary Get product by slug
// @Description Get product details
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{slug} [get]
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	product, found := ctrl.Catalog.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if !found {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Product retrieved", "data": product})
}
