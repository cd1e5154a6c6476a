package mock_catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sport-reel-generator/application/ports/outbound"
	"strings"
)

type VideoReader interface {
	Read(fileName string) ([]CatalogVideo, error)
}

type fileVideoReader struct {
	logger outbound.LoggerPort
}

func NewFileVideoReader(logger outbound.LoggerPort) VideoReader {
	return &fileVideoReader{
		logger: logger,
	}
}

func (f *fileVideoReader) Read(fileName string) ([]CatalogVideo, error) {
	videos, err := f.readJSONFile(fileName)
	if err != nil {
		return nil, err
	}

	for i, v := range videos {
		if strings.TrimSpace(v.URL) == "" {
			return nil, fmt.Errorf("%s: entry %d has no url", fileName, i)
		}
	}

	return videos, nil
}

func (f *fileVideoReader) readJSONFile(fileName string) ([]CatalogVideo, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			f.logger.Error(err, "failed to close file")
		}
	}(file)

	var videos []CatalogVideo
	if err := json.NewDecoder(file).Decode(&videos); err != nil {
		f.logger.Error(err, "failed to decode json")
		return nil, err
	}

	return videos, nil
}
