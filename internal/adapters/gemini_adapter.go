package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"genai-gateway/internal/config"
	"genai-gateway/internal/domain"

	"google.golang.org/genai"
)

// TextGenerator はプロンプトからテキストを生成する唯一の能力を抽象化します。
// テストでは決定的なスタブに差し替えます。
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// contentGenerator は genai.Models のうちアダプターが使うメソッドだけを切り出したものです。
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAdapter は Vertex AI 上の Gemini を使用した TextGenerator の実装です。
type GeminiAdapter struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	genCfg  *genai.GenerateContentConfig
}

// NewGeminiAdapter は Vertex AI バックエンドの genai クライアントを初期化します。
// 認証には実行環境の Application Default Credentials を使用します。
func NewGeminiAdapter(ctx context.Context, cfg config.Config) (*GeminiAdapter, error) {
	return newVertexAdapter(ctx, cfg, vertexClientConfig(cfg))
}

// vertexClientConfig は設定から Vertex AI 向けの genai.ClientConfig を組み立てます。
func vertexClientConfig(cfg config.Config) *genai.ClientConfig {
	clientCfg := &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  cfg.ProjectID,
		Location: cfg.LocationID,
	}
	if cfg.GenAIBaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.GenAIBaseURL}
	}
	return clientCfg
}

func newVertexAdapter(ctx context.Context, cfg config.Config, clientCfg *genai.ClientConfig) (*GeminiAdapter, error) {
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	slog.Info("Vertex AI initialized",
		"project", cfg.ProjectID,
		"location", cfg.LocationID,
		"model", cfg.GeminiModel,
	)
	return newGeminiAdapter(client.Models, cfg), nil
}

func newGeminiAdapter(models contentGenerator, cfg config.Config) *GeminiAdapter {
	// 温度などはモデルのデフォルトに任せ、候補数と (指定時のみ) 出力上限だけを設定します
	genCfg := &genai.GenerateContentConfig{
		CandidateCount:  1,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
	return &GeminiAdapter{
		models:  models,
		model:   cfg.GeminiModel,
		timeout: cfg.GenerateTimeout,
		genCfg:  genCfg,
	}
}

// GenerateText はプロンプトを Gemini に送信し、最初の候補のテキストを返します。
// リトライは行いません。
func (a *GeminiAdapter) GenerateText(ctx context.Context, prompt string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	resp, err := a.models.GenerateContent(ctx, a.model, genai.Text(prompt), a.genCfg)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("generation timed out after %s: %w", a.timeout, err)
		}
		return "", err
	}

	return extractText(resp)
}

// extractText はレスポンスからテキストを取り出し、ブロックや空応答をドメインエラーに変換します。
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", domain.ErrNoCandidates
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		return "", &domain.BlockedError{Reason: string(fb.BlockReason)}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", domain.ErrNoCandidates
	}
	candidate := resp.Candidates[0]

	if isBlockingFinishReason(candidate.FinishReason) {
		return "", &domain.BlockedError{Reason: string(candidate.FinishReason)}
	}

	if candidate.Content == nil {
		return "", domain.ErrEmptyText
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", domain.ErrEmptyText
	}
	return sb.String(), nil
}

// isBlockingFinishReason は正常終了 (STOP) と出力上限 (MAX_TOKENS) 以外をブロックとみなします。
func isBlockingFinishReason(reason genai.FinishReason) bool {
	switch reason {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop, genai.FinishReasonMaxTokens:
		return false
	default:
		return true
	}
}
