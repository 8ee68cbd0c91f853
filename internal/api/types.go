package api

import "github.com/google/uuid"

// RegisterRequest is the body for user registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// JoinGroupRequest carries a join code generated by a group member.
type JoinGroupRequest struct {
	Token string `json:"token" binding:"required"`
}

// CreateCategoryRequest is the body for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateCategoryRequest is the body for renaming or reordering a category.
type UpdateCategoryRequest struct {
	Name          string `json:"name" binding:"required"`
	SortingWeight int    `json:"sorting_weight"`
}

// CreateProductRequest is the body for creating a product.
type CreateProductRequest struct {
	Name           string     `json:"name" binding:"required"`
	PluralisedName string     `json:"pluralised_name"`
	CategoryID     *uuid.UUID `json:"category_id"`
}

// UpdateProductRequest is the body for editing a product.
type UpdateProductRequest struct {
	Name           string     `json:"name" binding:"required"`
	PluralisedName string     `json:"pluralised_name"`
	CategoryID     *uuid.UUID `json:"category_id"`
}

// CreateRecipeRequest is the body for creating a recipe.
type CreateRecipeRequest struct {
	Name   string `json:"name" binding:"required"`
	Source string `json:"source"`
}

// AddIngredientRequest is the body for adding a line to a recipe or the
// shopping list.
type AddIngredientRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Amount    string    `json:"amount"`
}

// RemoveItemRequest identifies a shopping list line to remove. Every list
// line sharing the line's product name is removed with it.
type RemoveItemRequest struct {
	IngredientID uuid.UUID `json:"ingredient_id" binding:"required"`
}

// RemoveFromRecipeRequest identifies a recipe line to remove by name
// cascade. When RecipeID is unset the removal spans all of the group's
// recipes.
type RemoveFromRecipeRequest struct {
	IngredientID uuid.UUID  `json:"ingredient_id" binding:"required"`
	RecipeID     *uuid.UUID `json:"recipe_id"`
}
