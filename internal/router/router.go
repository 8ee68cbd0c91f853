package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantryloop/backend/internal/api"
	"github.com/pantryloop/backend/internal/middleware"
)

// Handlers bundles the API handlers the router mounts.
type Handlers struct {
	Auth     *api.AuthHandler
	Group    *api.GroupHandler
	Category *api.CategoryHandler
	Product  *api.ProductHandler
	Recipe   *api.RecipeHandler
	Shopping *api.ShoppingHandler
}

// SetupRouter configures the application routes. Auth routes are open, group
// management requires a valid token, and the catalog routes additionally
// require group membership.
func SetupRouter(
	handlers Handlers,
	validator middleware.TokenValidator,
	resolver middleware.TenantResolver,
	log *zap.SugaredLogger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	handlers.Auth.RegisterRoutes(v1)

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(validator))
	handlers.Group.RegisterRoutes(authed)

	scoped := authed.Group("")
	scoped.Use(middleware.GroupMiddleware(resolver))
	handlers.Category.RegisterRoutes(scoped)
	handlers.Product.RegisterRoutes(scoped)
	handlers.Recipe.RegisterRoutes(scoped)
	handlers.Shopping.RegisterRoutes(scoped)

	return router
}
