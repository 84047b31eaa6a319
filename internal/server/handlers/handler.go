package handlers

import (
	"fmt"

	"genai-gateway/internal/adapters"
	"genai-gateway/internal/config"
)

// maxRequestBodyBytes は /generate が受け付けるリクエストボディの上限です。
const maxRequestBodyBytes = 1 << 20

type Handler struct {
	cfg       config.Config
	generator adapters.TextGenerator
}

// NewHandler は読み取り専用の設定と生成アダプターを受け取り、ハンドラーを初期化します。
func NewHandler(cfg config.Config, generator adapters.TextGenerator) (*Handler, error) {
	if generator == nil {
		return nil, fmt.Errorf("text generator is required")
	}
	return &Handler{
		cfg:       cfg,
		generator: generator,
	}, nil
}
