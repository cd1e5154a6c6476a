package services

import (
	"context"
	"fmt"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/domain"
	"time"
)

// videoJobPoller drives a submitted job to a terminal state:
// SUBMITTED -> {PENDING|RUNNING}* -> SUCCEEDED | FAILED, or TIMED OUT once the deadline passes.
type videoJobPoller struct {
	logger        outbound.LoggerPort
	backend       outbound.VideoBackendPort
	interval      time.Duration
	timeout       time.Duration
	statusRetries int
}

func newVideoJobPoller(logger outbound.LoggerPort, backend outbound.VideoBackendPort, interval time.Duration,
	timeout time.Duration, statusRetries int) *videoJobPoller {
	if statusRetries < 0 {
		statusRetries = 0
	}
	return &videoJobPoller{
		logger:        logger,
		backend:       backend,
		interval:      interval,
		timeout:       timeout,
		statusRetries: statusRetries,
	}
}

// Await returns the job once it succeeded. A FAILED job is an upstream error; running past the
// deadline or losing the caller's context is a timeout and no further status queries are issued.
func (p *videoJobPoller) Await(ctx context.Context, jobID string) (domain.VideoJob, error) {
	pollCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	attempts := 0
	for {
		select {
		case <-pollCtx.Done():
			return domain.VideoJob{}, p.stopped(ctx, jobID, attempts)
		case <-timer.C:
		}

		job, err := p.query(pollCtx, jobID)
		attempts++
		if err != nil {
			if pollCtx.Err() != nil {
				return domain.VideoJob{}, p.stopped(ctx, jobID, attempts)
			}
			return domain.VideoJob{}, err
		}

		p.logger.DebugWithFields("video job polled", map[string]interface{}{
			"job_id":  jobID,
			"status":  job.Status,
			"attempt": attempts,
		})

		if !job.Status.IsTerminal() {
			timer.Reset(p.interval)
			continue
		}

		if job.Status == domain.JobStatusFailed {
			reason := job.FailureReason
			if reason == "" {
				reason = "no reason given"
			}
			return domain.VideoJob{}, domain.NewUpstreamError(videoStage, fmt.Sprintf("job %s failed: %s", jobID, reason), nil)
		}
		return job, nil
	}
}

// query reads the job status, retrying transient read failures with a linear backoff.
func (p *videoJobPoller) query(ctx context.Context, jobID string) (domain.VideoJob, error) {
	var lastErr error
	for try := 0; try <= p.statusRetries; try++ {
		if try > 0 {
			if err := sleepContext(ctx, time.Duration(try)*p.interval/2); err != nil {
				return domain.VideoJob{}, err
			}
		}

		job, err := p.backend.GetJob(ctx, jobID)
		if err == nil {
			return job, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		p.logger.WarnWithFields("video job status read failed", map[string]interface{}{
			"job_id": jobID,
			"try":    try + 1,
			"error":  err.Error(),
		})
	}

	return domain.VideoJob{}, domain.AsStageError(videoStage, "failed to read job status", lastErr)
}

func (p *videoJobPoller) stopped(parent context.Context, jobID string, attempts int) error {
	if err := parent.Err(); err != nil {
		return domain.NewTimeoutError(videoStage, fmt.Sprintf("request ended while polling job %s", jobID), err)
	}
	return domain.NewTimeoutError(videoStage,
		fmt.Sprintf("job %s did not finish within %s (%d status queries)", jobID, p.timeout, attempts),
		context.DeadlineExceeded)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
