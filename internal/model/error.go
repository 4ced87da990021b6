package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string       `json:"error"`
	Message       string       `json:"message"`
	Fields        []FieldError `json:"fields,omitempty"`
	CorrelationID string       `json:"correlationId,omitempty"`
}

// FieldError describes one request field that failed validation.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeNoProducts         = "NO_PRODUCTS"
	ErrCodeNoRecipes          = "NO_RECIPES"
	ErrCodeInvalidID          = "INVALID_ID"
	ErrCodeRecipeExists       = "RECIPE_EXISTS"
	ErrCodeRecipeNotFound     = "RECIPE_NOT_FOUND"
	ErrCodeMissingIngredients = "MISSING_INGREDIENTS"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNoProducts         = NewDomainError(ErrCodeNoProducts, "No products in database.")
	ErrNoRecipes          = NewDomainError(ErrCodeNoRecipes, "No recipes in database.")
	ErrInvalidID          = NewDomainError(ErrCodeInvalidID, "Invalid ID. Check inventory and make sure ID is correct.")
	ErrRecipeExists       = NewDomainError(ErrCodeRecipeExists, "A recipe with that name already exists.")
	ErrRecipeNotFound     = NewDomainError(ErrCodeRecipeNotFound, "Recipe not found.")
	ErrMissingIngredients = NewDomainError(ErrCodeMissingIngredients, "Not enough ingredients in inventory.")
)

// DeleteAll is the delete target that clears a whole collection.
const DeleteAll = "all"
