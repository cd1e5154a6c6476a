package adapters

import (
	"bytes"
	"context"
	"fmt"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/config"
	"sport-reel-generator/domain"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/rs/zerolog/log"
)

const storeStage = "store"

type s3ArtifactStore struct {
	s3Svc         s3iface.S3API
	s3Config      *config.S3Config
	publicBaseURL string
	timeout       time.Duration
}

func NewS3ArtifactStore(s3Svc s3iface.S3API, s3Config *config.S3Config, publicBaseURL string, timeout time.Duration) outbound.ArtifactStorePort {
	return &s3ArtifactStore{
		s3Svc:         s3Svc,
		s3Config:      s3Config,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		timeout:       timeout,
	}
}

// Upload writes the object with its content type and a public-read ACL in one PutObject call.
func (s *s3ArtifactStore) Upload(ctx context.Context, artifact domain.Artifact) (domain.StoredAsset, error) {
	if artifact.Name == "" {
		return domain.StoredAsset{}, domain.NewUpstreamError(storeStage, "artifact name must not be empty", nil)
	}
	itemPath := artifactKey(artifact)

	newCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.s3Config.BucketName),
		Key:           aws.String(itemPath),
		Body:          bytes.NewReader(artifact.Content),
		ContentLength: aws.Int64(int64(len(artifact.Content))),
		ContentType:   aws.String(artifact.MimeType),
		ACL:           aws.String(s3.ObjectCannedACLPublicRead),
	}

	_, err := s.s3Svc.PutObjectWithContext(newCtx, putInput)
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", s.s3Config.BucketName).
			Str("key", itemPath).
			Msg("Failed to upload object to S3")
		return domain.StoredAsset{}, domain.AsStageError(storeStage, "failed to upload "+artifact.Name, err)
	}

	s3Url := s.objectURL(itemPath)
	log.Debug().
		Str("s3Url", s3Url).
		Int("bytes", len(artifact.Content)).
		Msg("Successfully uploaded object to S3")

	return domain.StoredAsset{URL: s3Url}, nil
}

func (s *s3ArtifactStore) objectURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.s3Config.BucketName, s.s3Config.Region, key)
}

func artifactKey(artifact domain.Artifact) string {
	return artifact.Visibility.Prefix() + "/" + artifact.Name
}
