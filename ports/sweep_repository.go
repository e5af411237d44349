package ports

import (
	"context"

	"gopower/domain/core"
	"gopower/domain/power"
)

// SweepRepository persists completed sweep results for later tabulation and
// export. Implementations must store estimates in their original order.
type SweepRepository interface {
	SaveSweep(ctx context.Context, result *power.SweepResult) error
	GetSweep(ctx context.Context, id core.SweepID) (*power.SweepResult, error)
	ListSweeps(ctx context.Context) ([]*power.SweepResult, error)
}
