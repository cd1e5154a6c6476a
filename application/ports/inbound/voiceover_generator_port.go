package inbound

import "context"

type VoiceoverGeneratorPort interface {
	Synthesize(ctx context.Context, scriptURL string) ([]byte, error)
}
