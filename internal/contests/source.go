// Package contests aggregates upcoming contest listings from multiple judge
// sites, with a fixed-TTL cache in Postgres and a stale-if-error fallback.
package contests

import (
	"context"

	"github.com/hari10031/CodeSync-sub001/internal/types"
)

// Source is one upstream contest provider.
type Source interface {
	// Name identifies the source in listings and metrics.
	Name() string
	// Upcoming returns contests that have not started yet.
	Upcoming(ctx context.Context) ([]types.Contest, error)
}
