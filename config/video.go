package config

import (
	"fmt"
	"time"
)

const DefaultVideoPrompt = "Dynamic sports highlight, fast camera motion, energetic"

type VideoConfig struct {
	ApiUrl        string
	ApiKey        string
	ApiVersion    string
	Model         string
	Prompt        string
	Duration      int
	AspectRatio   string
	PollInterval  time.Duration
	PollTimeout   time.Duration
	StatusRetries int
}

func GetVideoConfig() (*VideoConfig, error) {
	apiKey, err := requireEnv("VIDEO_API_KEY")
	if err != nil {
		return nil, err
	}
	duration, err := getEnvInt("VIDEO_DURATION_SECONDS", 5)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, fmt.Errorf("VIDEO_DURATION_SECONDS must be positive")
	}
	pollInterval, err := getEnvDuration("VIDEO_POLL_INTERVAL", 10*time.Second)
	if err != nil {
		return nil, err
	}
	pollTimeout, err := getEnvDuration("VIDEO_POLL_TIMEOUT", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	statusRetries, err := getEnvInt("VIDEO_STATUS_RETRIES", 2)
	if err != nil {
		return nil, err
	}
	if statusRetries < 0 {
		return nil, fmt.Errorf("VIDEO_STATUS_RETRIES must not be negative")
	}

	return &VideoConfig{
		ApiUrl:        getEnv("VIDEO_API_URL", "https://api.dev.runwayml.com"),
		ApiKey:        apiKey,
		ApiVersion:    getEnv("VIDEO_API_VERSION", "2024-11-06"),
		Model:         getEnv("VIDEO_MODEL", "gen4_turbo"),
		Prompt:        getEnv("VIDEO_PROMPT", DefaultVideoPrompt),
		Duration:      duration,
		AspectRatio:   getEnv("VIDEO_ASPECT_RATIO", "720:1280"),
		PollInterval:  pollInterval,
		PollTimeout:   pollTimeout,
		StatusRetries: statusRetries,
	}, nil
}
