package interfaces

import (
	"context"

	"bond-monitor/internal/types"
)

type Reporter interface {
	Run(ctx context.Context, username, filter, fromDate string) ([]types.BucketRecord, error)
}
