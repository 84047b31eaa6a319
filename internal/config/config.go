package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	DefaultPort     = "8080"
	DefaultLocation = "us-central1"
	DefaultModel    = "gemini-2.5-pro"
	// DefaultGenerateTimeout Gemini の 1 回の応答を待つ上限時間
	DefaultGenerateTimeout = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultEnvFile         = ".env"
	// MaxDetailLength エラーレスポンスの detail に含める最大文字数
	MaxDetailLength = 500
)

// Config は環境変数から読み込まれたゲートウェイの全設定を保持します。
// 起動時に一度だけ構築され、以降は値として各コンポーネントに渡されます。
type Config struct {
	Port        string
	ProjectID   string
	LocationID  string
	GeminiModel string

	// GenAIBaseURL は Vertex AI エンドポイントを差し替える場合に指定します (ローカル検証用)。
	GenAIBaseURL    string
	MaxOutputTokens int32
	GenerateTimeout time.Duration
	ShutdownTimeout time.Duration

	AllowedOrigins []string
	LogLevel       slog.Level
}

// LoadConfig は環境変数から設定を読み込み、Config 構造体を生成します。
func LoadConfig() *Config {
	return &Config{
		Port:            getEnv("PORT", DefaultPort),
		ProjectID:       getEnv("GCP_PROJECT_ID", ""),
		LocationID:      getEnv("GCP_LOCATION", DefaultLocation),
		GeminiModel:     getEnv("GEMINI_MODEL", DefaultModel),
		GenAIBaseURL:    getEnv("GENAI_BASE_URL", ""),
		MaxOutputTokens: getEnvInt32("MAX_OUTPUT_TOKENS", 0),
		GenerateTimeout: getEnvDuration("GENERATE_TIMEOUT", DefaultGenerateTimeout),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		AllowedOrigins:  parseCommaSeparatedList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}
}

// LoadDotEnv はローカル開発用の .env ファイルを読み込みます。
// ファイルが存在しない場合はエラーにしません。
func LoadDotEnv(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return loadEnvFile(path)
}
