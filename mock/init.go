package mock_catalog

import (
	"errors"
	"io/fs"
	"sport-reel-generator/application/ports/outbound"
)

// LoadVideoURLs returns the URLs of the fixed feed. A missing file yields an empty feed.
func LoadVideoURLs(fileName string, logger outbound.LoggerPort) ([]string, error) {
	if fileName == "" {
		return nil, nil
	}

	videos, err := NewFileVideoReader(logger).Read(fileName)
	if errors.Is(err, fs.ErrNotExist) {
		logger.WarnWithFields("video catalog file not found, serving generated videos only", map[string]interface{}{
			"file": fileName,
		})
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(videos))
	for _, v := range videos {
		urls = append(urls, v.URL)
	}

	logger.InfoWithFields("video catalog loaded", map[string]interface{}{
		"file":   fileName,
		"videos": len(urls),
	})

	return urls, nil
}
