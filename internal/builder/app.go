package builder

import (
	"context"
	"fmt"

	"genai-gateway/internal/adapters"
	"genai-gateway/internal/app"
	"genai-gateway/internal/config"
)

// BuildContainer は外部サービスとの接続を確立し、依存関係を組み立てます。
func BuildContainer(ctx context.Context, cfg config.Config) (*app.Container, error) {
	gemini, err := adapters.NewGeminiAdapter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini adapter: %w", err)
	}

	return &app.Container{
		Config:    cfg,
		Generator: gemini,
	}, nil
}
