package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/config"
	"sport-reel-generator/domain"
	"strings"
)

const videoStage = "video"

type imageToVideoRequest struct {
	Model       string `json:"model"`
	PromptImage string `json:"promptImage"`
	PromptText  string `json:"promptText,omitempty"`
	Duration    int    `json:"duration"`
	Ratio       string `json:"ratio"`
	Watermark   bool   `json:"watermark"`
}

type imageToVideoResponse struct {
	ID string `json:"id"`
}

type taskResponse struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	Output      []string `json:"output"`
	Failure     string   `json:"failure"`
	FailureCode string   `json:"failureCode"`
}

type runwayVideoBackend struct {
	ContentFetcher
	logger      outbound.LoggerPort
	videoConfig *config.VideoConfig
}

func NewRunwayVideoBackend(contentFetcher ContentFetcher, videoConfig *config.VideoConfig, logger outbound.LoggerPort) outbound.VideoBackendPort {
	return &runwayVideoBackend{
		ContentFetcher: contentFetcher,
		logger:         logger,
		videoConfig:    videoConfig,
	}
}

func (r *runwayVideoBackend) Submit(ctx context.Context, req outbound.SubmitVideoJobRequest) (string, error) {
	reqBody := imageToVideoRequest{
		Model:       r.videoConfig.Model,
		PromptImage: photoDataURL(req.Photo),
		PromptText:  req.Prompt,
		Duration:    req.Duration,
		Ratio:       req.AspectRatio,
		Watermark:   req.Watermark,
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		r.logger.Error(err, "Failed to marshal the image to video request")
		return "", domain.NewUpstreamError(videoStage, "failed to build submit request", err)
	}

	httpReq, err := r.newRequest(ctx, http.MethodPost, "/v1/image_to_video", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", domain.NewUpstreamError(videoStage, "failed to build submit request", err)
	}

	rawRes, err := r.FetchContent(httpReq)
	if err != nil {
		return "", domain.AsStageError(videoStage, "video job submission failed", err)
	}

	var res imageToVideoResponse
	if err := json.Unmarshal(rawRes, &res); err != nil {
		r.logger.Error(err, "Failed to unmarshal the submit response")
		return "", domain.NewUpstreamError(videoStage, "unexpected submit response", err)
	}
	if res.ID == "" {
		return "", domain.NewUpstreamError(videoStage, "video backend returned no job id", nil)
	}

	return res.ID, nil
}

func (r *runwayVideoBackend) GetJob(ctx context.Context, jobID string) (domain.VideoJob, error) {
	httpReq, err := r.newRequest(ctx, http.MethodGet, "/v1/tasks/"+url.PathEscape(jobID), nil)
	if err != nil {
		return domain.VideoJob{}, domain.NewUpstreamError(videoStage, "failed to build status request", err)
	}

	rawRes, err := r.FetchContent(httpReq)
	if err != nil {
		return domain.VideoJob{}, domain.AsStageError(videoStage, "video job status request failed", err)
	}

	var res taskResponse
	if err := json.Unmarshal(rawRes, &res); err != nil {
		r.logger.Error(err, "Failed to unmarshal the task response")
		return domain.VideoJob{}, domain.NewUpstreamError(videoStage, "unexpected status response", err)
	}

	status, err := mapTaskStatus(res.Status)
	if err != nil {
		return domain.VideoJob{}, domain.NewUpstreamError(videoStage, "unexpected status response", err)
	}

	failure := res.Failure
	if failure == "" && res.FailureCode != "" {
		failure = res.FailureCode
	}

	return domain.VideoJob{
		ID:            jobID,
		Status:        status,
		Outputs:       res.Output,
		FailureReason: failure,
	}, nil
}

func (r *runwayVideoBackend) newRequest(ctx context.Context, method string, path string, body *bytes.Buffer) (*http.Request, error) {
	endpoint := strings.TrimRight(r.videoConfig.ApiUrl, "/") + path

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
	}
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to create the HTTP request", map[string]interface{}{
			"method": method,
			"URL":    endpoint,
		})
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+r.videoConfig.ApiKey)
	req.Header.Set("X-Runway-Version", r.videoConfig.ApiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func mapTaskStatus(status string) (domain.JobStatus, error) {
	switch strings.ToUpper(status) {
	case "PENDING", "THROTTLED":
		return domain.JobStatusPending, nil
	case "RUNNING":
		return domain.JobStatusRunning, nil
	case "SUCCEEDED":
		return domain.JobStatusSucceeded, nil
	case "FAILED", "CANCELLED":
		return domain.JobStatusFailed, nil
	default:
		return "", fmt.Errorf("unknown task status %q", status)
	}
}

func photoDataURL(photo []byte) string {
	mimeType := http.DetectContentType(photo)
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/jpeg"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(photo)
}
