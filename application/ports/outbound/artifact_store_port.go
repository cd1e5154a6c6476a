package outbound

import (
	"context"
	"sport-reel-generator/domain"
)

type ArtifactStorePort interface {
	// Upload persists the artifact under its visibility namespace, publishes it and returns its public URL.
	// Uploading the same name again overwrites the object and yields the same URL.
	Upload(ctx context.Context, artifact domain.Artifact) (domain.StoredAsset, error)
}
