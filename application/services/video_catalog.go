package services

import (
	"context"
	"sport-reel-generator/application/ports/inbound"
	"sport-reel-generator/application/ports/outbound"
)

type videoCatalog struct {
	logger      outbound.LoggerPort
	fixed       []string
	recorder    outbound.GenerationRecorderPort
	recentLimit int
}

// NewVideoCatalog lists the fixed feed first, followed by up to recentLimit recently generated videos.
func NewVideoCatalog(logger outbound.LoggerPort, fixed []string, recorder outbound.GenerationRecorderPort,
	recentLimit int) inbound.VideoCatalogPort {
	return &videoCatalog{
		logger:      logger,
		fixed:       fixed,
		recorder:    recorder,
		recentLimit: recentLimit,
	}
}

func (v *videoCatalog) ListVideos(ctx context.Context) ([]string, error) {
	videos := make([]string, 0, len(v.fixed)+v.recentLimit)
	seen := make(map[string]struct{}, cap(videos))
	add := func(url string) {
		if url == "" {
			return
		}
		if _, ok := seen[url]; ok {
			return
		}
		seen[url] = struct{}{}
		videos = append(videos, url)
	}

	for _, url := range v.fixed {
		add(url)
	}

	if v.recorder == nil || v.recentLimit <= 0 {
		return videos, nil
	}

	records, err := v.recorder.ListRecent(ctx, v.recentLimit)
	if err != nil {
		// The fixed feed is still worth serving.
		v.logger.Error(err, "failed to list recent generations")
		return videos, nil
	}
	for _, record := range records {
		add(record.VideoURL)
	}

	return videos, nil
}
