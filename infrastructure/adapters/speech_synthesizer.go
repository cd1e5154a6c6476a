package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/config"
	"sport-reel-generator/domain"
)

const voiceoverStage = "voiceover"

type synthesizeRequest struct {
	Input       synthesisInput `json:"input"`
	Voice       voiceSelection `json:"voice"`
	AudioConfig audioConfig    `json:"audioConfig"`
}

type synthesisInput struct {
	Text string `json:"text"`
}

type voiceSelection struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name,omitempty"`
}

type audioConfig struct {
	AudioEncoding string  `json:"audioEncoding"`
	SpeakingRate  float64 `json:"speakingRate"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

type speechSynthesizer struct {
	ContentFetcher
	logger       outbound.LoggerPort
	speechConfig *config.SpeechConfig
}

func NewSpeechSynthesizer(contentFetcher ContentFetcher, speechConfig *config.SpeechConfig, logger outbound.LoggerPort) outbound.SpeechSynthesizerPort {
	return &speechSynthesizer{
		ContentFetcher: contentFetcher,
		logger:         logger,
		speechConfig:   speechConfig,
	}
}

func (s *speechSynthesizer) Synthesize(ctx context.Context, req outbound.SynthesizeSpeechRequest) ([]byte, error) {
	httpReq, err := s.getRequest(ctx, req.Text)
	if err != nil {
		return nil, domain.NewUpstreamError(voiceoverStage, "failed to build synthesis request", err)
	}

	rawRes, err := s.FetchContent(httpReq)
	if err != nil {
		return nil, domain.AsStageError(voiceoverStage, "speech backend request failed", err)
	}

	var res synthesizeResponse
	if err := json.Unmarshal(rawRes, &res); err != nil {
		s.logger.Error(err, "Failed to unmarshal the synthesis response")
		return nil, domain.NewUpstreamError(voiceoverStage, "unexpected speech backend response", err)
	}

	audio, err := base64.StdEncoding.DecodeString(res.AudioContent)
	if err != nil {
		s.logger.Error(err, "Failed to decode the audio content")
		return nil, domain.NewUpstreamError(voiceoverStage, "audio content is not valid base64", err)
	}
	if len(audio) == 0 {
		return nil, domain.NewUpstreamError(voiceoverStage, "speech backend returned no audio", nil)
	}

	return audio, nil
}

func (s *speechSynthesizer) getRequest(ctx context.Context, text string) (*http.Request, error) {
	reqBody := synthesizeRequest{
		Input: synthesisInput{Text: text},
		Voice: voiceSelection{
			LanguageCode: s.speechConfig.LanguageCode,
			Name:         s.speechConfig.VoiceName,
		},
		AudioConfig: audioConfig{
			AudioEncoding: "MP3",
			SpeakingRate:  s.speechConfig.SpeakingRate,
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		s.logger.Error(err, "Failed to marshal the request body for the speech backend")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.speechConfig.ApiUrl, bytes.NewBuffer(jsonPayload))
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to create the HTTP POST request", map[string]interface{}{
			"URL": s.speechConfig.ApiUrl,
		})
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", s.speechConfig.ApiKey)

	return req, nil
}
