package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/config"
	"sport-reel-generator/domain"
	"strings"
	"time"

	"github.com/donovanhide/eventsource"
)

const DoneSignal = "[DONE]"

const scriptStage = "script"

const scriptPromptTemplate = "Write a narration script for a 30 second highlight reel about the sport %s. " +
	"Open with a hook, cover where the sport began and one defining moment in its history, " +
	"and close with a line that makes the viewer want to play. " +
	"Use plain spoken sentences only: no headings, no stage directions, no emojis. Keep it under 90 words."

type chatGptRequest struct {
	Stream    bool             `json:"stream"`
	Model     string           `json:"model"`
	MaxTokens int              `json:"max_tokens,omitempty"`
	Messages  []chatGptMessage `json:"messages"`
}

type chatGptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatGptChunkBody struct {
	Choices []chatGptResponseChoice `json:"choices"`
}

type chatGptResponseChoice struct {
	Index int `json:"index"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
}

type gptScriptGenerator struct {
	logger    outbound.LoggerPort
	gptConfig *config.GptConfig
	timeout   time.Duration
	transport http.RoundTripper
}

func NewGptScriptGenerator(gptConfig *config.GptConfig, timeout time.Duration, logger outbound.LoggerPort) outbound.ScriptGeneratorPort {
	return &gptScriptGenerator{
		logger:    logger,
		gptConfig: gptConfig,
		timeout:   timeout,
		transport: http.DefaultTransport,
	}
}

// ScriptPrompt renders the fixed prompt for a sport.
func ScriptPrompt(sport string) string {
	return fmt.Sprintf(scriptPromptTemplate, sport)
}

// Generate streams one chat completion and returns the accumulated text. A single attempt is made.
func (s *gptScriptGenerator) Generate(ctx context.Context, req outbound.GenerateScriptRequest) (string, error) {
	if strings.TrimSpace(req.Sport) == "" {
		return "", domain.NewValidationError("sport must not be empty")
	}

	newCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	httpReq, err := s.createRequest(newCtx, req.Sport)
	if err != nil {
		return "", domain.NewUpstreamError(scriptStage, "failed to build completion request", err)
	}

	stream, err := eventsource.SubscribeWith("", s.newStreamClient(), httpReq)
	if err != nil {
		s.logger.Error(err, "Failed to subscribe to script stream")
		return "", domain.AsStageError(scriptStage, "completion request failed", err)
	}

	script, readErrSeen, err := s.readScript(newCtx, stream)
	s.closeStream(stream, cancel, readErrSeen)

	return script, err
}

// newStreamClient returns a client per stream: the library overwrites CheckRedirect on the client it is given.
func (s *gptScriptGenerator) newStreamClient() *http.Client {
	return &http.Client{
		Transport: s.transport,
		Timeout:   s.timeout,
	}
}

// readScript consumes the stream until the done signal or a failure. The bool reports whether the
// receive goroutine already delivered its read error.
func (s *gptScriptGenerator) readScript(ctx context.Context, stream *eventsource.Stream) (string, bool, error) {
	var builder strings.Builder
	for {
		select {
		case <-ctx.Done():
			return "", false, domain.AsStageError(scriptStage, "script stream interrupted", ctx.Err())
		case ev, ok := <-stream.Events:
			if !ok || ev.Data() == DoneSignal {
				script, err := s.finish(builder.String())
				return script, false, err
			}
			payload, err := s.extractPayload(ev)
			if err != nil {
				return "", false, domain.NewUpstreamError(scriptStage, "unexpected completion chunk", err)
			}
			builder.WriteString(payload)
		case err := <-stream.Errors:
			if errors.Is(err, io.EOF) && builder.Len() > 0 {
				s.logger.Debug("Script stream closed without done signal")
				script, err := s.finish(builder.String())
				return script, true, err
			}
			s.logger.Error(err, "Error occurred during script streaming")
			return "", true, domain.NewUpstreamError(scriptStage, "script stream failed", err)
		}
	}
}

// closeStream stops the receive goroutine before closing the stream. That goroutine reports its final
// read error on Errors and would panic if the channel were already closed, so the request is cancelled
// and Errors drained until that error arrives. The goroutine then sees the closed stream before reconnecting.
func (s *gptScriptGenerator) closeStream(stream *eventsource.Stream, cancel context.CancelFunc, readErrSeen bool) {
	cancel()

	if !readErrSeen {
		guard := time.NewTimer(s.timeout)
		defer guard.Stop()

	drain:
		for {
			select {
			case <-stream.Events:
			case <-stream.Errors:
				break drain
			case <-guard.C:
				// Leaving the stream open is safe; closing it now could crash the process.
				s.logger.Warn("Script stream did not stop after cancellation")
				return
			}
		}
	}

	stream.Close()
}

func (s *gptScriptGenerator) finish(script string) (string, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return "", domain.NewUpstreamError(scriptStage, "text backend returned an empty script", nil)
	}
	return script, nil
}

func (s *gptScriptGenerator) extractPayload(event eventsource.Event) (string, error) {
	var chunkBody chatGptChunkBody
	err := json.Unmarshal([]byte(event.Data()), &chunkBody)
	if err != nil {
		s.logger.Error(err, "Failed to unmarshal event data")
		return "", err
	}
	if len(chunkBody.Choices) == 0 {
		return "", nil
	}

	return chunkBody.Choices[0].Delta.Content, nil
}

func (s *gptScriptGenerator) createRequest(ctx context.Context, sport string) (*http.Request, error) {
	promptReq := chatGptRequest{
		Stream:    true,
		Model:     s.gptConfig.Model,
		MaxTokens: s.gptConfig.MaxTokens,
		Messages: []chatGptMessage{
			{Role: "user", Content: ScriptPrompt(sport)},
		},
	}

	payloadBytes, err := json.Marshal(promptReq)
	if err != nil {
		s.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gptConfig.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		s.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.gptConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
