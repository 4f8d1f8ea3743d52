package routes

import (
	"shoe-shop/config"
	"shoe-shop/controllers"
	"shoe-shop/middleware"
	"shoe-shop/models"
	"shoe-shop/repositories"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	var ephemeral repositories.KVStore
	if models.RedisClient != nil {
		ephemeral = repositories.NewRedisKV(models.RedisClient, config.AppConfig.SessionTTL)
	} else {
		ephemeral = repositories.NewMemoryKV()
	}
	durable := repositories.NewPostgresKV(config.DB)
	catalog := repositories.NewCatalogRepository(config.AppConfig.CatalogAPIURL)

	productCtrl := controllers.NewProductController(catalog)
	cartCtrl := controllers.NewCartController(ephemeral, durable, catalog)
	checkoutCtrl := controllers.NewCheckoutController(ephemeral, durable)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.GET("/categories", productCtrl.GetAllCategories)
	router.GET("/banners", productCtrl.GetBanners)
	router.GET("/listing", productCtrl.GetListing)
	router.GET("/listing/grid", productCtrl.GetListingGrid)
	router.GET("/products/:slug", productCtrl.GetProductBySlug)

	visitor := router.Group("/")
	visitor.Use(middleware.SessionMiddleware())
	{
		visitor.GET("/cart", cartCtrl.GetCart)
		visitor.DELETE("/cart", cartCtrl.ClearCart)
		visitor.POST("/cart/items", cartCtrl.AddItem)
		visitor.PATCH("/cart/items", cartCtrl.UpdateQuantities)
		visitor.DELETE("/cart/items", cartCtrl.RemoveItem)

		visitor.POST("/checkout", checkoutCtrl.Proceed)
		visitor.GET("/checkout", checkoutCtrl.GetCheckout)
		visitor.POST("/checkout/complete", checkoutCtrl.Complete)
	}
}
