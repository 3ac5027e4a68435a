package report

import (
	"context"
	"fmt"

	"bond-monitor/internal/dataset"
	"bond-monitor/internal/interfaces"
	"bond-monitor/internal/logger"
	"bond-monitor/internal/permission"
	"bond-monitor/internal/types"
)

// Service runs the full reporting pipeline for one request: load, validate,
// clean, permission, business filters, tenor pivot, bucket. Every request
// re-reads the trade file and the permission graph, so invocations share
// no mutable state.
type Service struct {
	tradeFile string
	graphs    interfaces.GraphSource
}

func New(tradeFile string, graphs interfaces.GraphSource) *Service {
	return &Service{tradeFile: tradeFile, graphs: graphs}
}

// Run produces the bucketed risk report for a caller. Any stage failure
// aborts the request; the inner error stays reachable through errors.As.
func (s *Service) Run(ctx context.Context, username, filter, fromDate string) ([]types.BucketRecord, error) {
	records, err := s.run(ctx, username, filter, fromDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidFormat, err)
	}
	return records, nil
}

func (s *Service) run(ctx context.Context, username, filter, fromDate string) ([]types.BucketRecord, error) {
	tbl, err := dataset.Load(s.tradeFile)
	if err != nil {
		return nil, err
	}
	if err := dataset.ValidateSchema(tbl); err != nil {
		return nil, err
	}
	trades, err := dataset.Clean(tbl)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "Trade file cleaned", "rows", len(trades))

	graph, err := s.graphs.Load()
	if err != nil {
		return nil, err
	}
	access, err := graph.Resolve(username)
	if err != nil {
		return nil, err
	}
	trades = permission.Filter(trades, access)
	logger.Debug(ctx, "Permission filter applied", "username", username, "rows", len(trades))

	trades = filterRMHF(trades, filter)
	trades, err = filterFromDate(ctx, trades, fromDate)
	if err != nil {
		return nil, err
	}

	p, err := pivotTenors(ctx, trades)
	if err != nil {
		return nil, err
	}
	return bucketTenors(p), nil
}
