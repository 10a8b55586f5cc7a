package ports

import (
	"context"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
)

type ActivityRepository interface {
	Record(ctx context.Context, a domain.Activity) error
	List(ctx context.Context, limit int) ([]domain.Activity, error)
}
