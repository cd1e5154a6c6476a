package services

import (
	"context"
	"sport-reel-generator/application/ports/inbound"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/domain"
	"time"
)

const videoStage = "video"

type VideoSettings struct {
	Prompt        string
	Duration      int
	AspectRatio   string
	PollInterval  time.Duration
	PollTimeout   time.Duration
	StatusRetries int
}

type videoGenerator struct {
	logger   outbound.LoggerPort
	backend  outbound.VideoBackendPort
	fetcher  outbound.ContentFetcherPort
	poller   *videoJobPoller
	settings VideoSettings
}

func NewVideoGenerator(logger outbound.LoggerPort, backend outbound.VideoBackendPort, fetcher outbound.ContentFetcherPort,
	settings VideoSettings) inbound.VideoGeneratorPort {
	return &videoGenerator{
		logger:   logger,
		backend:  backend,
		fetcher:  fetcher,
		poller:   newVideoJobPoller(logger, backend, settings.PollInterval, settings.PollTimeout, settings.StatusRetries),
		settings: settings,
	}
}

func (v *videoGenerator) Generate(ctx context.Context, params inbound.GenerateVideoParams) ([]byte, error) {
	if len(params.Photo) == 0 {
		return nil, domain.NewValidationError("photo must not be empty")
	}

	jobID, err := v.backend.Submit(ctx, outbound.SubmitVideoJobRequest{
		Photo:       params.Photo,
		Prompt:      v.settings.Prompt,
		Duration:    v.settings.Duration,
		AspectRatio: v.settings.AspectRatio,
		Watermark:   false,
	})
	if err != nil {
		return nil, domain.AsStageError(videoStage, "failed to submit video job", err)
	}

	v.logger.InfoWithFields("video job submitted", map[string]interface{}{
		"request_id": params.RequestID,
		"sport":      params.Sport,
		"job_id":     jobID,
	})

	job, err := v.poller.Await(ctx, jobID)
	if err != nil {
		return nil, err
	}

	outputURL := job.OutputURL()
	if outputURL == "" {
		return nil, domain.NewUpstreamError(videoStage, "job succeeded but produced no output", nil)
	}

	video, err := v.fetcher.FetchURL(ctx, outputURL)
	if err != nil {
		return nil, domain.AsStageError(videoStage, "failed to fetch video output", err)
	}
	if len(video) == 0 {
		return nil, domain.NewUpstreamError(videoStage, "video output is empty", nil)
	}

	v.logger.InfoWithFields("video job completed", map[string]interface{}{
		"request_id": params.RequestID,
		"job_id":     jobID,
		"bytes":      len(video),
	})

	return video, nil
}
