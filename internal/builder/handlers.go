package builder

import (
	"fmt"

	"genai-gateway/internal/app"
	"genai-gateway/internal/server/handlers"
)

// AppHandlers は生成されたすべての HTTP ハンドラーを保持する構造体です。
// server パッケージはこの構造体を受け取ってルーティングを行います。
type AppHandlers struct {
	Gateway *handlers.Handler
}

// BuildHandlers は各ハンドラーの依存関係をすべて組み立て、AppHandlers 構造体を返します。
func BuildHandlers(c *app.Container) (*AppHandlers, error) {
	gateway, err := handlers.NewHandler(c.Config, c.Generator)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gateway handler: %w", err)
	}

	return &AppHandlers{
		Gateway: gateway,
	}, nil
}
