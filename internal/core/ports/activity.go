package ports

import (
	"context"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

// ActivityRecorder accepts audit entries without blocking the caller.
type ActivityRecorder interface {
	Record(activity domain.Activity)
}

// ActivityRepository persists and reads the activity log.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]*domain.Activity, error)
}
