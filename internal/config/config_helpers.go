package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/netarmor/securenet"
)

// --- 環境変数ヘルパー ---

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration は "90s" や "2m" 形式の値を解釈します。不正な値はデフォルトに戻します。
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Invalid duration in environment, using default", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return d
}

func getEnvInt32(key string, defaultValue int32) int32 {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return int32(n)
}

func parseCommaSeparatedList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// loadEnvFile は既に設定済みの環境変数を上書きしません。
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// --- バリデーション ---

// ValidateEssentialConfig はゲートウェイの起動に不可欠な設定を検証します。
func ValidateEssentialConfig(cfg *Config) error {
	if cfg.ProjectID == "" {
		return fmt.Errorf("configuration error: GCP_PROJECT_ID environment variable is required")
	}

	if cfg.GeminiModel == "" {
		return fmt.Errorf("configuration error: GEMINI_MODEL must not be empty")
	}

	if cfg.GenerateTimeout <= 0 {
		return fmt.Errorf("configuration error: GENERATE_TIMEOUT must be positive, got %s", cfg.GenerateTimeout)
	}

	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("configuration error: SHUTDOWN_TIMEOUT must be positive, got %s", cfg.ShutdownTimeout)
	}

	if cfg.MaxOutputTokens < 0 {
		return fmt.Errorf("configuration error: MAX_OUTPUT_TOKENS must not be negative, got %d", cfg.MaxOutputTokens)
	}

	if cfg.GenAIBaseURL != "" && !IsSecureURL(cfg.GenAIBaseURL) {
		return fmt.Errorf("security error: GENAI_BASE_URL ('%s') must be HTTPS or localhost", cfg.GenAIBaseURL)
	}

	return nil
}

// IsSecureURL は指定された URL が HTTPS または localhost であるか判定します。
func IsSecureURL(rawURL string) bool {
	return securenet.IsSecureServiceURL(rawURL)
}
