package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"shoe-shop/models"
	"shoe-shop/repositories"
	"shoe-shop/services"
)

type CartController struct {
	Ephemeral repositories.KVStore
	Durable   repositories.KVStore
	Catalog   *repositories.CatalogRepository
}

func NewCartController(ephemeral, durable repositories.KVStore, catalog *repositories.CatalogRepository) *CartController {
	return &CartController{Ephemeral: ephemeral, Durable: durable, Catalog: catalog}
}

func (ctrl *CartController) cartService(c *gin.Context) *services.CartService {
	return services.NewCartService(ctrl.Ephemeral, ctrl.Durable,
		c.GetString("session_id"), c.GetString("client_id"))
}

// @Summary Get cart
// @Description Get the visitor's cart with derived totals
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart := ctrl.cartService(c)
	items := cart.Load(c.Request.Context())

	c.JSON(200, gin.H{
		"success": true,
		"message": "Cart retrieved",
		"data": models.CartResponse{
			Items:          items,
			ItemCount:      len(items),
			Subtotal:       items.Subtotal(),
			InstallmentOf3: items.InstallmentOf3(),
		},
		"meta": gin.H{"cities": models.Cities},
	})
}

// @Summary Add item to cart
// @Description Add a product in a chosen size; an existing line gains quantity instead of duplicating
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.AddToCartRequest true "Item to add"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "product_id and size are required"})
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, found := ctrl.Catalog.GetProductByID(c.Request.Context(), req.ProductID)
	if !found {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if !product.HasSize(req.Size) {
		c.JSON(400, gin.H{"success": false, "message": "Size not available for this product"})
		return
	}

	item := models.CartItem{
		ID:            product.ID,
		Name:          product.Title,
		Size:          req.Size,
		ActualPrice:   product.Price,
		DiscountPrice: product.Price,
		Image:         product.FirstImageURL(),
	}

	cart := ctrl.cartService(c)
	if err := cart.AddOrIncrement(c.Request.Context(), item, req.Quantity); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to persist cart"})
		return
	}

	items := cart.Load(c.Request.Context())
	c.JSON(200, gin.H{
		"success": true,
		"message": "Item added to cart",
		"data": models.CartResponse{
			Items:          items,
			ItemCount:      len(items),
			Subtotal:       items.Subtotal(),
			InstallmentOf3: items.InstallmentOf3(),
		},
	})
}

// @Summary Update quantities
// @Description Apply a batch of quantity edits in one update
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.UpdateQuantitiesRequest true "Quantity edits"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items [patch]
func (ctrl *CartController) UpdateQuantities(c *gin.Context) {
	var req models.UpdateQuantitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "items with product_id, size and quantity >= 1 are required"})
		return
	}

	cart := ctrl.cartService(c)
	for _, edit := range req.Items {
		cart.StageQuantity(models.ItemKey(edit.ProductID, edit.Size), edit.Quantity)
	}
	if err := cart.CommitQuantities(c.Request.Context()); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to persist cart"})
		return
	}

	items := cart.Load(c.Request.Context())
	c.JSON(200, gin.H{
		"success": true,
		"message": "Cart updated",
		"data": models.CartResponse{
			Items:          items,
			ItemCount:      len(items),
			Subtotal:       items.Subtotal(),
			InstallmentOf3: items.InstallmentOf3(),
		},
	})
}

// @Summary Remove item
// @Description Remove the line item matching product id and size
// @Tags Cart
// @Produce json
// @Param product_id query int true "Product ID"
// @Param size query string true "Size"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Query("product_id"))
	size := c.Query("size")
	if err != nil || productID <= 0 || size == "" {
		c.JSON(400, gin.H{"success": false, "message": "product_id and size are required"})
		return
	}

	cart := ctrl.cartService(c)
	if err := cart.Remove(c.Request.Context(), productID, size); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to persist cart"})
		return
	}

	items := cart.Load(c.Request.Context())
	c.JSON(200, gin.H{
		"success": true,
		"message": "Item removed",
		"data": models.CartResponse{
			Items:          items,
			ItemCount:      len(items),
			Subtotal:       items.Subtotal(),
			InstallmentOf3: items.InstallmentOf3(),
		},
	})
}

// @Summary Clear cart
// @Description Empty the cart and drop the stored blob from both tiers
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	cart := ctrl.cartService(c)
	if err := cart.Clear(c.Request.Context()); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to clear stored cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart cleared"})
}
