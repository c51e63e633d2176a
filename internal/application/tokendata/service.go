package tokendata

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tokengateway/internal/adapters/logger"
	"tokengateway/internal/domain/chain"
	"tokengateway/internal/domain/token"
)

// Service combines the upstream price and metadata lookups into one result.
// Upstream failures are returned as token.Failure values, not errors, so the
// HTTP layer decides the status code.
type Service struct {
	provider token.Provider
	chain    chain.ID
	logger   *logger.Logger
}

func NewService(provider token.Provider, chainID chain.ID, logger *logger.Logger) *Service {
	return &Service{
		provider: provider,
		chain:    chainID,
		logger:   logger,
	}
}

func (s *Service) GetTokenData(ctx context.Context, address string) *token.Result {
	q := token.Query{
		Address: address,
		Chain:   s.chain,
	}

	snapshot, err := s.provider.Fetch(ctx, q)
	if err != nil {
		op := "upstream"
		var upstreamErr *token.UpstreamError
		if errors.As(err, &upstreamErr) {
			op = upstreamErr.Op
		}

		s.logger.Warn("Token data lookup failed",
			zap.String("address", address),
			zap.String("chain", s.chain.String()),
			zap.String("op", op),
			zap.Error(err),
		)

		return &token.Result{
			Failure: &token.Failure{
				Error:   token.FailureMessage,
				Details: err.Error(),
				Op:      op,
			},
		}
	}

	return &token.Result{
		Data: &token.Data{
			Price:    snapshot.Price.USDPrice,
			Metadata: snapshot.Metadata,
		},
	}
}
