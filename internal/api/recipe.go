package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantryloop/backend/internal/middleware"
	"github.com/pantryloop/backend/internal/service"
)

type RecipeHandler struct {
	recipeService   *service.RecipeService
	shoppingService *service.ShoppingService
}

func NewRecipeHandler(recipeService *service.RecipeService, shoppingService *service.ShoppingService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, shoppingService: shoppingService}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/mine", h.ListMyRecipes)
		recipes.GET("/checklist", h.GetChecklist)
		recipes.GET("/by-name/:slug", h.GetRecipeByName)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.GET("/:id/items", h.ListItems)
		recipes.POST("/:id/items", h.AddIngredient)
		recipes.POST("/:id/promote", h.PromoteRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	group := middleware.GroupFromContext(c)
	recipes, err := h.recipeService.List(c.Request.Context(), group.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) ListMyRecipes(c *gin.Context) {
	group := middleware.GroupFromContext(c)
	userID := middleware.UserIDFromContext(c)
	recipes, err := h.recipeService.ListByUser(c.Request.Context(), group.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := middleware.GroupFromContext(c)
	userID := middleware.UserIDFromContext(c)
	recipe, err := h.recipeService.Create(c.Request.Context(), group.ID, userID, req.Name, req.Source)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": req.Name + " already exists!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// GetChecklist returns the group's standing checklist, creating it on first use.
func (h *RecipeHandler) GetChecklist(c *gin.Context) {
	group := middleware.GroupFromContext(c)
	checklist, err := h.recipeService.Checklist(c.Request.Context(), group.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch checklist"})
		return
	}

	items, err := h.recipeService.Items(c.Request.Context(), group.ID, checklist.ID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch checklist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": checklist, "items": items})
}

func (h *RecipeHandler) GetRecipeByName(c *gin.Context) {
	group := middleware.GroupFromContext(c)
	recipe, exact, err := h.recipeService.ResolveByName(c.Request.Context(), group.ID, c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}

	items, err := h.recipeService.Items(c.Request.Context(), group.ID, recipe.ID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipe": recipe,
		"exact":  exact,
		"items":  items,
	})
}

func (h *RecipeHandler) ListItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	group := middleware.GroupFromContext(c)
	onList := c.Query("on_shopping_list") == "true"
	items, err := h.recipeService.Items(c.Request.Context(), group.ID, id, onList)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *RecipeHandler) AddIngredient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req AddIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := middleware.GroupFromContext(c)
	userID := middleware.UserIDFromContext(c)
	ingredient, err := h.recipeService.AddIngredient(c.Request.Context(), group.ID, id, req.ProductID, userID, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe or product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add ingredient"})
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

// PromoteRecipe copies the recipe's pantry ingredients onto the shopping list.
func (h *RecipeHandler) PromoteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	group := middleware.GroupFromContext(c)
	userID := middleware.UserIDFromContext(c)
	if err := h.shoppingService.PromoteRecipe(c.Request.Context(), group.ID, id, userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to promote recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ingredients added to shopping list"})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	group := middleware.GroupFromContext(c)
	if err := h.recipeService.Delete(c.Request.Context(), group.ID, id); err != nil {
		if errors.Is(err, service.ErrReservedRecipe) {
			c.JSON(http.StatusForbidden, gin.H{"error": "the checklist cannot be deleted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}
