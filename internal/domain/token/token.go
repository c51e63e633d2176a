package token

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"tokengateway/internal/domain/chain"
)

const (
	OpPriceLookup    = "price lookup"
	OpMetadataLookup = "metadata lookup"
)

// FailureMessage is the error text returned to callers when the upstream
// provider could not produce token data.
const FailureMessage = "Failed to fetch token data"

// Query identifies one token lookup. Address is passed to the upstream
// provider exactly as received.
type Query struct {
	Address string
	Chain   chain.ID
}

// PriceQuote is the price lookup payload of the upstream provider.
type PriceQuote struct {
	USDPrice     decimal.Decimal
	ExchangeName string
}

// Snapshot holds the results of the two upstream lookups for one token.
type Snapshot struct {
	Price    PriceQuote
	Metadata json.RawMessage
}

// Data is the aggregated token data returned to the caller.
type Data struct {
	Price    decimal.Decimal
	Metadata json.RawMessage
}

// Failure is the structured form of an upstream failure. Op is kept for
// logging and is not part of the response body.
type Failure struct {
	Error   string
	Details string
	Op      string
}

// Result carries either Data or Failure, never both.
type Result struct {
	Data    *Data
	Failure *Failure
}

func (r *Result) Failed() bool {
	return r.Failure != nil
}

type Provider interface {
	Fetch(ctx context.Context, q Query) (*Snapshot, error)
}

// UpstreamError is returned by providers when either lookup fails.
type UpstreamError struct {
	Op  string
	Err error
}

func NewUpstreamError(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Err: err}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
