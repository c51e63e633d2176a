package http

import (
	"encoding/json"

	"tokengateway/internal/domain/token"
)

// ToHTTPTokenData renders the price as a bare JSON number.
func ToHTTPTokenData(d *token.Data) *TokenData {
	if d == nil {
		return nil
	}
	return &TokenData{
		Price:    json.Number(d.Price.String()),
		Metadata: d.Metadata,
	}
}

func ToHTTPTokenDataError(f *token.Failure) *TokenDataError {
	if f == nil {
		return nil
	}
	return &TokenDataError{
		Error:   f.Error,
		Details: f.Details,
	}
}
