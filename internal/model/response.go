package model

// SuccessResponse is the envelope returned by every mutating endpoint.
// Domain failures are reported with Success false and a Message.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
