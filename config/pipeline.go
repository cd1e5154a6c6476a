package config

import "time"

type PipelineConfig struct {
	Concurrent     bool
	RequestTimeout time.Duration
	HTTPTimeout    time.Duration
	WorkerPoolSize int
}

func GetPipelineConfig() (*PipelineConfig, error) {
	concurrent, err := getEnvBool("PIPELINE_CONCURRENT", true)
	if err != nil {
		return nil, err
	}
	requestTimeout, err := getEnvDuration("REQUEST_TIMEOUT", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	httpTimeout, err := getEnvDuration("HTTP_CLIENT_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	workerPoolSize, err := getEnvInt("WORKER_POOL_SIZE", 64)
	if err != nil {
		return nil, err
	}

	return &PipelineConfig{
		Concurrent:     concurrent,
		RequestTimeout: requestTimeout,
		HTTPTimeout:    httpTimeout,
		WorkerPoolSize: workerPoolSize,
	}, nil
}
