package reference

import (
	"context"

	"NavSentinel/internal/model"
)

// Source provides the most recent officially published fund values.
type Source interface {
	Latest(ctx context.Context) (*model.ReferenceSnapshot, error)
	Name() string
}
