package outbound

import "context"

type GenerateScriptRequest struct {
	Sport string
}

type ScriptGeneratorPort interface {
	Generate(ctx context.Context, req GenerateScriptRequest) (string, error)
}
