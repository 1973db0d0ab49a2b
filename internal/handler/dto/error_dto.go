package dto

// ErrorResponse is the single error shape every failing route returns.
type ErrorResponse struct {
	Error string `json:"error"`
}
