package adapters

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/domain"
	"strings"
)

// filesystemArtifactStore keeps artifacts on local disk for development; the HTTP server
// publishes the root directory so the returned URLs resolve.
type filesystemArtifactStore struct {
	logger        outbound.LoggerPort
	basePath      string
	publicBaseURL string
}

func NewFilesystemArtifactStore(basePath string, publicBaseURL string, logger outbound.LoggerPort) (outbound.ArtifactStorePort, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &filesystemArtifactStore{
		logger:        logger,
		basePath:      basePath,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *filesystemArtifactStore) Upload(ctx context.Context, artifact domain.Artifact) (domain.StoredAsset, error) {
	if err := ctx.Err(); err != nil {
		return domain.StoredAsset{}, domain.AsStageError(storeStage, "upload cancelled", err)
	}
	key, err := sanitizeKey(artifactKey(artifact))
	if err != nil {
		return domain.StoredAsset{}, domain.NewUpstreamError(storeStage, "invalid artifact name", err)
	}

	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return domain.StoredAsset{}, domain.NewUpstreamError(storeStage, "failed to create namespace directory", err)
	}

	// Write-then-rename so a reader never sees a half-written object.
	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return domain.StoredAsset{}, domain.NewUpstreamError(storeStage, "failed to create object", err)
	}
	if _, err := tmp.Write(artifact.Content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return domain.StoredAsset{}, domain.NewUpstreamError(storeStage, "failed to write object", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return domain.StoredAsset{}, domain.NewUpstreamError(storeStage, "failed to write object", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		s.logger.Warn("failed to relax object permissions: " + err.Error())
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		_ = os.Remove(tmp.Name())
		return domain.StoredAsset{}, domain.NewUpstreamError(storeStage, "failed to publish object", err)
	}

	url := s.publicBaseURL + "/" + key
	s.logger.DebugWithFields("artifact stored", map[string]interface{}{
		"path": fullPath,
		"url":  url,
	})

	return domain.StoredAsset{URL: url}, nil
}

// sanitizeKey normalizes a key and prevents escaping the storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.ToSlash(filepath.Clean(key))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid key")
	}
	return cleaned, nil
}
