package inbound

import "context"

type GenerateVideoParams struct {
	RequestID string
	Sport     string
	Photo     []byte
}

type VideoGeneratorPort interface {
	Generate(ctx context.Context, params GenerateVideoParams) ([]byte, error)
}
