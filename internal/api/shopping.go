package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantryloop/backend/internal/middleware"
	"github.com/pantryloop/backend/internal/service"
)

type ShoppingHandler struct {
	shoppingService *service.ShoppingService
}

func NewShoppingHandler(shoppingService *service.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{shoppingService: shoppingService}
}

func (h *ShoppingHandler) RegisterRoutes(router *gin.RouterGroup) {
	shopping := router.Group("/shopping")
	{
		shopping.GET("", h.ListShoppingItems)
		shopping.GET("/display", h.GetAggregated)
		shopping.GET("/hash", h.GetHash)
		shopping.POST("", h.AddItem)
		shopping.POST("/promote-checklist", h.PromoteChecklist)
		shopping.POST("/refill", h.Refill)
		shopping.POST("/remove", h.RemoveItem)
		shopping.POST("/remove-from-recipe", h.RemoveFromRecipe)
	}
}

func (h *ShoppingHandler) ListShoppingItems(c *gin.Context) {
	group := middleware.GroupFromContext(c)
	items, err := h.shoppingService.ListItems(c.Request.Context(), group.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shopping list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetAggregated returns the consolidated shopping list, one entry per product
// with its amounts merged into a display string.
func (h *ShoppingHandler) GetAggregated(c *gin.Context) {
	group := middleware.GroupFromContext(c)
	items, err := h.shoppingService.Aggregated(c.Request.Context(), group.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shopping list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetHash returns the group's shopping list change counter. Clients poll it
// and refetch the list when the value moves.
func (h *ShoppingHandler) GetHash(c *gin.Context) {
	group := middleware.GroupFromContext(c)
	hash, err := h.shoppingService.ReadHash(c.Request.Context(), group.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read shopping hash"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hash": hash})
}

func (h *ShoppingHandler) AddItem(c *gin.Context) {
	var req AddIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := middleware.GroupFromContext(c)
	userID := middleware.UserIDFromContext(c)
	item, err := h.shoppingService.AddItem(c.Request.Context(), group.ID, req.ProductID, userID, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ShoppingHandler) PromoteChecklist(c *gin.Context) {
	group := middleware.GroupFromContext(c)
	userID := middleware.UserIDFromContext(c)
	if err := h.shoppingService.PromoteChecklist(c.Request.Context(), group.ID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to promote checklist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "checklist added to shopping list"})
}

func (h *ShoppingHandler) Refill(c *gin.Context) {
	group := middleware.GroupFromContext(c)
	if err := h.shoppingService.Refill(c.Request.Context(), group.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refill shopping list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "shopping list refilled"})
}

// RemoveItem removes every shopping list row sharing the given row's product.
// Ticking a box once clears split and duplicate lines together.
func (h *ShoppingHandler) RemoveItem(c *gin.Context) {
	var req RemoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := middleware.GroupFromContext(c)
	if err := h.shoppingService.RemoveItem(c.Request.Context(), group.ID, req.IngredientID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

func (h *ShoppingHandler) RemoveFromRecipe(c *gin.Context) {
	var req RemoveFromRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := middleware.GroupFromContext(c)
	if err := h.shoppingService.RemoveFromRecipe(c.Request.Context(), group.ID, req.RecipeID, req.IngredientID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove ingredient"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ingredient removed"})
}
