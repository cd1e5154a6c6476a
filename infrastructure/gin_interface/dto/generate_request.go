package dto

import (
	"encoding/base64"
	"errors"
	"strings"
)

type GenerateRequest struct {
	Sport string `json:"sport" binding:"required"`
	// Photo is base64, either bare or as a data URL.
	Photo string `json:"photo" binding:"required"`
}

type GenerateResponse struct {
	RequestID    string `json:"request_id"`
	ScriptURL    string `json:"script_url"`
	VoiceoverURL string `json:"voiceover_url"`
	VideoURL     string `json:"video_url"`
}

type VideosResponse struct {
	Videos []string `json:"videos"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

var ErrPhotoEncoding = errors.New("photo must be base64 encoded")

// DecodePhoto strips an optional data URL header and decodes padded or unpadded base64.
func (r GenerateRequest) DecodePhoto() ([]byte, error) {
	encoded := strings.TrimSpace(r.Photo)
	if strings.HasPrefix(encoded, "data:") {
		idx := strings.Index(encoded, ",")
		if idx < 0 || !strings.HasSuffix(encoded[:idx], ";base64") {
			return nil, ErrPhotoEncoding
		}
		encoded = encoded[idx+1:]
	}

	photo, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		photo, err = base64.RawStdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, ErrPhotoEncoding
		}
	}
	return photo, nil
}
