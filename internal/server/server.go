package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantryloop/backend/config"
	"github.com/pantryloop/backend/internal/api"
	"github.com/pantryloop/backend/internal/cache"
	"github.com/pantryloop/backend/internal/router"
	"github.com/pantryloop/backend/internal/service"
)

// Server wires the services and handlers together and owns the HTTP listener.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	log    *zap.SugaredLogger
}

// New builds a fully wired server from its external dependencies.
func New(cfg *config.Config, db *gorm.DB, store cache.Store, log *zap.SugaredLogger) *Server {
	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	groupService := service.NewGroupService(db, store, log)
	categoryService := service.NewCategoryService(db, log)
	productService := service.NewProductService(db, log)
	recipeService := service.NewRecipeService(db, log)
	shoppingService := service.NewShoppingService(db, store, log)
	seedService := service.NewSeedService(db, log)

	handlers := router.Handlers{
		Auth:     api.NewAuthHandler(authService),
		Group:    api.NewGroupHandler(groupService, seedService, cfg.TemplateFile),
		Category: api.NewCategoryHandler(categoryService),
		Product:  api.NewProductHandler(productService),
		Recipe:   api.NewRecipeHandler(recipeService, shoppingService),
		Shopping: api.NewShoppingHandler(shoppingService),
	}

	engine := router.SetupRouter(handlers, authService, groupService, log)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
		log: log,
	}
}

// Engine exposes the underlying router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Infow("starting server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
