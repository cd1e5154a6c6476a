package domain

import (
	"fmt"
	"time"
)

type ArtifactKind string

const (
	ScriptArtifactKind ArtifactKind = "script"
	AudioArtifactKind  ArtifactKind = "audio"
	VideoArtifactKind  ArtifactKind = "video"
)

type Visibility string

const (
	TempVisibility  Visibility = "temp"
	FinalVisibility Visibility = "final"
)

// Prefix returns the store namespace an artifact of this visibility lives under.
func (v Visibility) Prefix() string {
	if v == FinalVisibility {
		return "reel"
	}
	return "temp"
}

const (
	TextPlainMimeType = "text/plain"
	AudioMpegMimeType = "audio/mpeg"
	VideoMp4MimeType  = "video/mp4"
)

type GenerationRequest struct {
	RequestID string
	Sport     string
	Photo     []byte
}

func NewGenerationRequest(requestID string, sport string, photo []byte) GenerationRequest {
	return GenerationRequest{
		RequestID: requestID,
		Sport:     sport,
		Photo:     photo,
	}
}

type Artifact struct {
	Name       string
	MimeType   string
	Content    []byte
	Visibility Visibility
}

// ArtifactName builds the {kind}-{requestId}.{ext} object name.
func ArtifactName(kind ArtifactKind, requestID string, ext string) string {
	return fmt.Sprintf("%s-%s.%s", kind, requestID, ext)
}

func NewScriptArtifact(requestID string, script string) Artifact {
	return Artifact{
		Name:       ArtifactName(ScriptArtifactKind, requestID, "txt"),
		MimeType:   TextPlainMimeType,
		Content:    []byte(script),
		Visibility: TempVisibility,
	}
}

func NewAudioArtifact(requestID string, audio []byte) Artifact {
	return Artifact{
		Name:       ArtifactName(AudioArtifactKind, requestID, "mp3"),
		MimeType:   AudioMpegMimeType,
		Content:    audio,
		Visibility: TempVisibility,
	}
}

func NewVideoArtifact(requestID string, video []byte) Artifact {
	return Artifact{
		Name:       ArtifactName(VideoArtifactKind, requestID, "mp4"),
		MimeType:   VideoMp4MimeType,
		Content:    video,
		Visibility: TempVisibility,
	}
}

type StoredAsset struct {
	URL string
}

type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusSucceeded JobStatus = "SUCCEEDED"
	JobStatusFailed    JobStatus = "FAILED"
)

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusSucceeded || s == JobStatusFailed
}

type VideoJob struct {
	ID            string
	Status        JobStatus
	Outputs       []string
	FailureReason string
}

// OutputURL returns the first output reference, or "" when the job has none.
func (j VideoJob) OutputURL() string {
	if len(j.Outputs) == 0 {
		return ""
	}
	return j.Outputs[0]
}

type PipelineResult struct {
	RequestID    string
	ScriptURL    string
	VoiceoverURL string
	VideoURL     string
}

type GenerationRecord struct {
	PipelineResult
	Sport     string
	CreatedAt time.Time
}
