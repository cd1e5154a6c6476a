package inbound

import (
	"context"
	"sport-reel-generator/domain"
)

type RunPipelineParams struct {
	Sport string
	Photo []byte
}

type AssetPipelinePort interface {
	Run(ctx context.Context, params RunPipelineParams) (*domain.PipelineResult, error)
}
