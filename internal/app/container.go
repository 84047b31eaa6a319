package app

import (
	"genai-gateway/internal/adapters"
	"genai-gateway/internal/config"
)

// Container はアプリケーションの依存関係（DIコンテナ）を保持します。
// 起動時に一度だけ構築され、リクエスト間で変更されることはありません。
type Container struct {
	Config config.Config

	// External Adapters
	Generator adapters.TextGenerator
}
