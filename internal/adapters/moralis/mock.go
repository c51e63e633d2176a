package moralis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"tokengateway/internal/domain/token"
)

// MockProvider serves fixed token data without network access. It backs the
// "mock" upstream provider setting for local development.
type MockProvider struct {
	price decimal.Decimal
}

func NewMockProvider() *MockProvider {
	return &MockProvider{price: decimal.NewFromInt(1)}
}

func (p *MockProvider) Fetch(_ context.Context, q token.Query) (*token.Snapshot, error) {
	metadata, err := json.Marshal(map[string]any{
		"address":  q.Address,
		"chain":    q.Chain,
		"name":     "Mock Token",
		"symbol":   "MOCK",
		"decimals": "18",
	})
	if err != nil {
		return nil, token.NewUpstreamError(token.OpMetadataLookup, fmt.Errorf("mock: %w", err))
	}

	return &token.Snapshot{
		Price: token.PriceQuote{
			USDPrice:     p.price,
			ExchangeName: "mock",
		},
		Metadata: metadata,
	}, nil
}
