package services

import (
	"context"
	"fmt"
	"sport-reel-generator/application/ports/inbound"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/channel_utils"
	"sport-reel-generator/domain"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	scriptStage   = "script"
	storeStage    = "store"
	pipelineStage = "pipeline"
)

type PipelineSettings struct {
	// Concurrent runs the narration chain and the video chain side by side.
	Concurrent     bool
	RequestTimeout time.Duration
}

type assetPipeline struct {
	logger          outbound.LoggerPort
	workerPool      outbound.TaskDispatcher
	scriptGenerator outbound.ScriptGeneratorPort
	voiceover       inbound.VoiceoverGeneratorPort
	video           inbound.VideoGeneratorPort
	store           outbound.ArtifactStorePort
	recorder        outbound.GenerationRecorderPort
	settings        PipelineSettings
	newRequestID    func() (string, error)
	now             func() time.Time
}

func NewAssetPipeline(
	logger outbound.LoggerPort,
	workerPool outbound.TaskDispatcher,
	scriptGenerator outbound.ScriptGeneratorPort,
	voiceover inbound.VoiceoverGeneratorPort,
	video inbound.VideoGeneratorPort,
	store outbound.ArtifactStorePort,
	recorder outbound.GenerationRecorderPort,
	settings PipelineSettings) inbound.AssetPipelinePort {
	return &assetPipeline{
		logger:          logger,
		workerPool:      workerPool,
		scriptGenerator: scriptGenerator,
		voiceover:       voiceover,
		video:           video,
		store:           store,
		recorder:        recorder,
		settings:        settings,
		newRequestID:    newRequestID,
		now:             time.Now,
	}
}

// newRequestID returns a UUIDv7: millisecond timestamp prefix plus random bits.
func newRequestID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Run produces the script, voiceover and video for one request. Any stage failure aborts the whole
// run; artifacts already uploaded are left in place.
func (p *assetPipeline) Run(ctx context.Context, params inbound.RunPipelineParams) (*domain.PipelineResult, error) {
	sport := strings.TrimSpace(params.Sport)
	if sport == "" {
		return nil, domain.NewValidationError("sport must not be empty")
	}
	if len(params.Photo) == 0 {
		return nil, domain.NewValidationError("photo must not be empty")
	}

	requestID, err := p.newRequestID()
	if err != nil {
		return nil, domain.NewUpstreamError(pipelineStage, "failed to create request id", err)
	}
	request := domain.NewGenerationRequest(requestID, sport, params.Photo)
	logger := p.logger.With(map[string]interface{}{"request_id": requestID})

	runCtx, cancel := p.runContext(ctx)
	defer cancel()

	logger.InfoWithFields("pipeline started", map[string]interface{}{
		"sport":       sport,
		"photo_bytes": len(params.Photo),
		"concurrent":  p.settings.Concurrent,
	})
	started := p.now()

	result := &domain.PipelineResult{RequestID: requestID}
	if p.settings.Concurrent {
		err = p.runConcurrently(runCtx, cancel, logger, request, result)
	} else {
		err = p.runSequentially(runCtx, logger, request, result)
	}
	if err != nil {
		logger.ErrorWithFields(err, "pipeline failed", map[string]interface{}{
			"kind": domain.KindOf(err),
		})
		return nil, err
	}

	logger.InfoWithFields("pipeline finished", map[string]interface{}{
		"script_url":    result.ScriptURL,
		"voiceover_url": result.VoiceoverURL,
		"video_url":     result.VideoURL,
		"elapsed":       p.now().Sub(started).String(),
	})

	p.record(ctx, logger, sport, *result)

	return result, nil
}

func (p *assetPipeline) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.settings.RequestTimeout > 0 {
		return context.WithTimeout(ctx, p.settings.RequestTimeout)
	}
	return context.WithCancel(ctx)
}

func (p *assetPipeline) runSequentially(ctx context.Context, logger outbound.LoggerPort,
	request domain.GenerationRequest, result *domain.PipelineResult) error {
	if err := p.runNarrationChain(ctx, logger, request, result); err != nil {
		return err
	}
	return p.runVideoChain(ctx, logger, request, result)
}

// runConcurrently dispatches both chains and joins them. The first error cancels the other chain.
// Each chain writes only its own result fields, and those writes happen before its error channel closes.
func (p *assetPipeline) runConcurrently(ctx context.Context, cancel context.CancelFunc, logger outbound.LoggerPort,
	request domain.GenerationRequest, result *domain.PipelineResult) error {
	narrationErrCh := p.dispatch(func() error {
		return p.runNarrationChain(ctx, logger, request, result)
	})
	videoErrCh := p.dispatch(func() error {
		return p.runVideoChain(ctx, logger, request, result)
	})

	// The merge must outlive cancellation so that no chain error is dropped.
	mergedErrCh, err := channel_utils.MergeChannels(context.WithoutCancel(ctx), p.workerPool, narrationErrCh, videoErrCh)
	if err != nil {
		cancel()
		for range narrationErrCh {
		}
		for range videoErrCh {
		}
		return domain.NewUpstreamError(pipelineStage, "failed to join pipeline stages", err)
	}

	var firstErr error
	for err := range mergedErrCh {
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}
	return firstErr
}

func (p *assetPipeline) dispatch(task func() error) <-chan error {
	errCh := make(chan error, 1)
	run := func() {
		defer close(errCh)
		defer func() {
			if r := recover(); r != nil {
				errCh <- domain.NewUpstreamError(pipelineStage, fmt.Sprintf("stage panicked: %v", r), nil)
			}
		}()
		if err := task(); err != nil {
			errCh <- err
		}
	}

	if err := p.workerPool.Submit(run); err != nil {
		errCh <- domain.NewUpstreamError(pipelineStage, "failed to dispatch stage", err)
		close(errCh)
	}
	return errCh
}

// runNarrationChain: script -> upload -> voiceover from the uploaded script URL -> upload.
func (p *assetPipeline) runNarrationChain(ctx context.Context, logger outbound.LoggerPort,
	request domain.GenerationRequest, result *domain.PipelineResult) error {
	script, err := p.scriptGenerator.Generate(ctx, outbound.GenerateScriptRequest{Sport: request.Sport})
	if err != nil {
		return domain.AsStageError(scriptStage, "script generation failed", err)
	}
	if strings.TrimSpace(script) == "" {
		return domain.NewUpstreamError(scriptStage, "script backend returned empty text", nil)
	}

	scriptAsset, err := p.upload(ctx, logger, domain.NewScriptArtifact(request.RequestID, script))
	if err != nil {
		return err
	}

	audio, err := p.voiceover.Synthesize(ctx, scriptAsset.URL)
	if err != nil {
		return domain.AsStageError(voiceoverStage, "voiceover generation failed", err)
	}
	if len(audio) == 0 {
		return domain.NewUpstreamError(voiceoverStage, "speech backend returned no audio", nil)
	}

	audioAsset, err := p.upload(ctx, logger, domain.NewAudioArtifact(request.RequestID, audio))
	if err != nil {
		return err
	}

	result.ScriptURL = scriptAsset.URL
	result.VoiceoverURL = audioAsset.URL
	return nil
}

// runVideoChain: submit and poll the video job -> upload.
func (p *assetPipeline) runVideoChain(ctx context.Context, logger outbound.LoggerPort,
	request domain.GenerationRequest, result *domain.PipelineResult) error {
	video, err := p.video.Generate(ctx, inbound.GenerateVideoParams{
		RequestID: request.RequestID,
		Sport:     request.Sport,
		Photo:     request.Photo,
	})
	if err != nil {
		return domain.AsStageError(videoStage, "video generation failed", err)
	}

	videoAsset, err := p.upload(ctx, logger, domain.NewVideoArtifact(request.RequestID, video))
	if err != nil {
		return err
	}

	result.VideoURL = videoAsset.URL
	return nil
}

func (p *assetPipeline) upload(ctx context.Context, logger outbound.LoggerPort, artifact domain.Artifact) (domain.StoredAsset, error) {
	asset, err := p.store.Upload(ctx, artifact)
	if err != nil {
		return domain.StoredAsset{}, domain.AsStageError(storeStage, fmt.Sprintf("failed to upload %s", artifact.Name), err)
	}
	if asset.URL == "" {
		return domain.StoredAsset{}, domain.NewUpstreamError(storeStage, fmt.Sprintf("store returned no url for %s", artifact.Name), nil)
	}

	logger.DebugWithFields("artifact uploaded", map[string]interface{}{
		"artifact": artifact.Name,
		"url":      asset.URL,
		"bytes":    len(artifact.Content),
	})
	return asset, nil
}

func (p *assetPipeline) record(ctx context.Context, logger outbound.LoggerPort, sport string, result domain.PipelineResult) {
	if p.recorder == nil {
		return
	}
	err := p.recorder.Save(ctx, domain.GenerationRecord{
		PipelineResult: result,
		Sport:          sport,
		CreatedAt:      p.now().UTC(),
	})
	if err != nil {
		logger.Error(err, "failed to record generation")
		return
	}
	log.Debug().Str("request_id", result.RequestID).Msg("generation recorded")
}
