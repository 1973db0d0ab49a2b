package dto

type GenerateAPIKeyResponse struct {
	APIKey string `json:"api_key"`
}
