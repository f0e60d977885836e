package usecase

import (
	"context"

	"servease/internal/domain/entity"
)

// StatsUsecase defines the interface for platform-wide statistics.
type StatsUsecase interface {
	// PlatformStats recomputes the counters from the current collections.
	PlatformStats(ctx context.Context) (*entity.PlatformStats, error)
}
