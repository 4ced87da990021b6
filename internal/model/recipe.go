package model

// Recipe represents a stored recipe and the inventory it consumes.
type Recipe struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Ingredients  map[string]int `json:"ingredients"`
	Instructions string         `json:"instructions"`
}

// RecipeRequest is the payload of POST /add-recipe.
type RecipeRequest struct {
	RcpName      string         `json:"rcpName" validate:"required,max=50"`
	Ingredients  map[string]int `json:"ingredients" validate:"required,min=1,dive,keys,required,endkeys,gt=0"`
	Instructions string         `json:"instructions" validate:"required"`
}

// DeleteRecipeRequest is the payload of POST /delete-recipe.
type DeleteRecipeRequest struct {
	RcpID string `json:"rcpId" validate:"required"`
}

// CookRequest is the payload of POST /make-recipe.
type CookRequest struct {
	RcpName string `json:"rcpName" validate:"required,max=50"`
}
