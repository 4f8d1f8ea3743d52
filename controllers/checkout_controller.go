package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shoe-shop/config"
	"shoe-shop/models"
	"shoe-shop/repositories"
	"shoe-shop/services"
)

type CheckoutController struct {
	Ephemeral repositories.KVStore
	Durable   repositories.KVStore
}

func NewCheckoutController(ephemeral, durable repositories.KVStore) *CheckoutController {
	return &CheckoutController{Ephemeral: ephemeral, Durable: durable}
}

func (ctrl *CheckoutController) checkoutService(c *gin.Context) *services.CheckoutService {
	cart := services.NewCartService(ctrl.Ephemeral, ctrl.Durable,
		c.GetString("session_id"), c.GetString("client_id"))
	return services.NewCheckoutService(ctrl.Ephemeral, cart,
		c.GetString("session_id"), config.AppConfig.CheckoutDelay)
}

// @Summary Proceed to checkout
// @Description Snapshot the cart and fulfillment city; refused for an empty cart or missing city
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.ProceedToCheckoutRequest true "Fulfillment city"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Proceed(c *gin.Context) {
	var req models.ProceedToCheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	checkout := ctrl.checkoutService(c)
	snapshot, err := checkout.Proceed(c.Request.Context(), req.City)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(400, gin.H{"success": false, "message": "Your cart is empty"})
		case errors.Is(err, services.ErrCityRequired):
			c.JSON(400, gin.H{"success": false, "message": "Please select your city before proceeding to checkout"})
		default:
			c.JSON(500, gin.H{"success": false, "message": "Failed to start checkout"})
		}
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Checkout started",
		"data": gin.H{
			"state":        checkout.State(),
			"snapshot":     snapshot,
			"shipping_fee": services.ShippingFee,
			"total":        checkout.Total(snapshot),
		},
	})
}

// @Summary Get checkout state
// @Description Get the captured snapshot and totals for the checkout page
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /checkout [get]
func (ctrl *CheckoutController) GetCheckout(c *gin.Context) {
	checkout := ctrl.checkoutService(c)
	snapshot, err := checkout.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(404, gin.H{
			"success": false,
			"message": "No checkout data found",
			"data":    gin.H{"return_to": "/cart"},
		})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Checkout retrieved",
		"data": gin.H{
			"state":        checkout.State(),
			"snapshot":     snapshot,
			"shipping_fee": services.ShippingFee,
			"total":        checkout.Total(snapshot),
		},
	})
}

// @Summary Complete order
// @Description Submit the order form; the simulated processing always succeeds and clears the cart
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.OrderForm true "Order form"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /checkout/complete [post]
func (ctrl *CheckoutController) Complete(c *gin.Context) {
	var form models.OrderForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "All required fields must be filled", "error": err.Error()})
		return
	}

	checkout := ctrl.checkoutService(c)
	total, err := checkout.Complete(c.Request.Context(), form)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoSnapshot):
			c.JSON(404, gin.H{
				"success": false,
				"message": "No checkout data found",
				"data":    gin.H{"return_to": "/cart"},
			})
		case errors.Is(err, services.ErrSubmissionInFlight):
			c.JSON(409, gin.H{"success": false, "message": "Order submission already in progress"})
		default:
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
		}
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Order confirmed! Thank you for your order.",
		"data": gin.H{
			"state": checkout.State(),
			"total": total,
		},
	})
}
