package outbound

import (
	"context"
	"sport-reel-generator/domain"
)

type SubmitVideoJobRequest struct {
	Photo       []byte
	Prompt      string
	Duration    int
	AspectRatio string
	Watermark   bool
}

type VideoBackendPort interface {
	Submit(ctx context.Context, req SubmitVideoJobRequest) (string, error)
	GetJob(ctx context.Context, jobID string) (domain.VideoJob, error)
}
