package router

import (
	"fmt"
	"strings"

	"github.com/agrimarket/agrimarket/internal/cache"
	"github.com/agrimarket/agrimarket/internal/config"
	"github.com/agrimarket/agrimarket/internal/constants"
	adminhandlers "github.com/agrimarket/agrimarket/internal/http/handlers/admin"
	publichandlers "github.com/agrimarket/agrimarket/internal/http/handlers/public"
	shophandlers "github.com/agrimarket/agrimarket/internal/http/handlers/shop"
	"github.com/agrimarket/agrimarket/internal/logger"
	"github.com/agrimarket/agrimarket/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with all middleware and routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	shopHandler := shophandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "agm"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
		}

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.Me)
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/:product_id", publicHandler.AddCartItem)
			user.DELETE("/cart/:product_id", publicHandler.RemoveCartItem)
			user.POST("/orders", publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
		}

		shop := apiV1.Group("/shop")
		shop.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		shop.Use(RequireRoles(constants.RoleShopOwner, constants.RoleFarmer, constants.RoleAdmin))
		{
			shop.POST("/products", shopHandler.CreateProduct)
			shop.PUT("/products/:id", shopHandler.UpdateProduct)
			shop.DELETE("/products/:id", shopHandler.DeleteProduct)
		}

		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		admin.Use(RequireRoles(constants.RoleAdmin))
		{
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PUT("/orders/:id", adminHandler.UpdateOrderStatus)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
