package main

import (
	"context"
	"log/slog"
	"os"

	"genai-gateway/internal/server"
)

func main() {
	if err := server.Run(context.Background()); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}
