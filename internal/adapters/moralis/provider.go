package moralis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"tokengateway/internal/adapters/metrics"
	"tokengateway/internal/domain/token"
)

const (
	functionTokenPrice    = "getTokenPrice"
	functionTokenMetadata = "getTokenMetadata"
)

var (
	errMissingPrice    = errors.New("response has no usdPrice")
	errMissingMetadata = errors.New("response has no metadata")
)

type priceParams struct {
	Address string `json:"address"`
	Chain   string `json:"chain"`
}

type metadataParams struct {
	Addresses []string `json:"addresses"`
	Chain     string   `json:"chain"`
}

type priceResult struct {
	USDPrice     *decimal.Decimal `json:"usdPrice"`
	ExchangeName string           `json:"exchangeName"`
}

// Provider implements token.Provider on top of the Moralis token API.
type Provider struct {
	client  *Client
	metrics *metrics.Metrics
}

// NewProvider creates a new Moralis token provider. m may be nil.
func NewProvider(client *Client, m *metrics.Metrics) *Provider {
	return &Provider{
		client:  client,
		metrics: m,
	}
}

// Fetch runs the price and metadata lookups in parallel. The first failure
// cancels the other lookup and is returned as a *token.UpstreamError.
func (p *Provider) Fetch(ctx context.Context, q token.Query) (*token.Snapshot, error) {
	var (
		quote    token.PriceQuote
		metadata json.RawMessage
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		quote, err = p.GetPrice(gctx, q)
		return err
	})

	g.Go(func() error {
		var err error
		metadata, err = p.GetMetadata(gctx, q)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &token.Snapshot{
		Price:    quote,
		Metadata: metadata,
	}, nil
}

// GetPrice looks up the token's USD price.
func (p *Provider) GetPrice(ctx context.Context, q token.Query) (token.PriceQuote, error) {
	start := time.Now()

	var res priceResult
	err := p.client.Call(ctx, functionTokenPrice, priceParams{
		Address: q.Address,
		Chain:   q.Chain.String(),
	}, &res)
	if err == nil && res.USDPrice == nil {
		err = errMissingPrice
	}

	p.metrics.ObserveUpstream(token.OpPriceLookup, time.Since(start), err)
	if err != nil {
		return token.PriceQuote{}, token.NewUpstreamError(token.OpPriceLookup, err)
	}

	return token.PriceQuote{
		USDPrice:     *res.USDPrice,
		ExchangeName: res.ExchangeName,
	}, nil
}

// GetMetadata looks up the token's metadata. The provider's result is
// returned unchanged.
func (p *Provider) GetMetadata(ctx context.Context, q token.Query) (json.RawMessage, error) {
	start := time.Now()

	var res json.RawMessage
	err := p.client.Call(ctx, functionTokenMetadata, metadataParams{
		Addresses: []string{q.Address},
		Chain:     q.Chain.String(),
	}, &res)
	if err == nil && isEmptyJSON(res) {
		err = errMissingMetadata
	}

	p.metrics.ObserveUpstream(token.OpMetadataLookup, time.Since(start), err)
	if err != nil {
		return nil, token.NewUpstreamError(token.OpMetadataLookup, err)
	}

	return res, nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
