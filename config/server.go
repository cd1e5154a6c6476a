package config

import "time"

type ServerConfig struct {
	Addr             string
	LogLevel         string
	LogPretty        bool
	MaxPhotoBytes    int
	VideoCatalogFile string
	ShutdownTimeout  time.Duration
}

func GetServerConfig() (*ServerConfig, error) {
	logPretty, err := getEnvBool("LOG_PRETTY", false)
	if err != nil {
		return nil, err
	}
	maxPhotoBytes, err := getEnvInt("MAX_PHOTO_BYTES", 10<<20)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	return &ServerConfig{
		Addr:             getEnv("HTTP_ADDR", ":8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogPretty:        logPretty,
		MaxPhotoBytes:    maxPhotoBytes,
		VideoCatalogFile: getEnv("VIDEO_CATALOG_FILE", "mock/videos.json"),
		ShutdownTimeout:  shutdownTimeout,
	}, nil
}
