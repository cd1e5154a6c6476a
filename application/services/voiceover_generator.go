package services

import (
	"context"
	"sport-reel-generator/application/ports/inbound"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/domain"
	"strings"
)

const voiceoverStage = "voiceover"

type voiceoverGenerator struct {
	logger      outbound.LoggerPort
	fetcher     outbound.ContentFetcherPort
	synthesizer outbound.SpeechSynthesizerPort
}

func NewVoiceoverGenerator(logger outbound.LoggerPort, fetcher outbound.ContentFetcherPort,
	synthesizer outbound.SpeechSynthesizerPort) inbound.VoiceoverGeneratorPort {
	return &voiceoverGenerator{
		logger:      logger,
		fetcher:     fetcher,
		synthesizer: synthesizer,
	}
}

// Synthesize reads the script back from the store by URL, so it can run anywhere the URL resolves.
func (v *voiceoverGenerator) Synthesize(ctx context.Context, scriptURL string) ([]byte, error) {
	if strings.TrimSpace(scriptURL) == "" {
		return nil, domain.NewValidationError("script url must not be empty")
	}

	script, err := v.fetcher.FetchURL(ctx, scriptURL)
	if err != nil {
		v.logger.ErrorWithFields(err, "failed to fetch stored script", map[string]interface{}{
			"script_url": scriptURL,
		})
		return nil, domain.AsStageError(voiceoverStage, "failed to fetch script", err)
	}

	text := strings.TrimSpace(string(script))
	if text == "" {
		return nil, domain.NewUpstreamError(voiceoverStage, "stored script is empty", nil)
	}

	audio, err := v.synthesizer.Synthesize(ctx, outbound.SynthesizeSpeechRequest{Text: text})
	if err != nil {
		return nil, domain.AsStageError(voiceoverStage, "speech synthesis failed", err)
	}

	v.logger.DebugWithFields("voiceover synthesized", map[string]interface{}{
		"script_url": scriptURL,
		"bytes":      len(audio),
	})

	return audio, nil
}
