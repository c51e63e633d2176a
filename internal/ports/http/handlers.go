package http

import (
	"context"
	"encoding/json"

	"tokengateway/internal/domain/token"
)

type TokenDataService interface {
	GetTokenData(ctx context.Context, address string) *token.Result
}

// TokenData is the success body of GET /api/tokenData/:tokenAddress.
type TokenData struct {
	Price    json.Number     `json:"price" swaggertype:"number" example:"1.23"`
	Metadata json.RawMessage `json:"metadata" swaggertype:"object"`
}

// TokenDataError is the body returned when the upstream provider fails.
type TokenDataError struct {
	Error   string `json:"error" example:"Failed to fetch token data"`
	Details string `json:"details" example:"price lookup: moralis: do request: connection refused"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}
