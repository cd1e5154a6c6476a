package outbound

import (
	"context"
	"sport-reel-generator/domain"
)

type GenerationRecorderPort interface {
	Save(ctx context.Context, record domain.GenerationRecord) error
	ListRecent(ctx context.Context, limit int) ([]domain.GenerationRecord, error)
}
