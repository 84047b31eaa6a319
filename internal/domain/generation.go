package domain

import (
	"errors"
	"fmt"
)

// エラーレスポンスの error フィールドに入るカテゴリです。
const (
	CategoryInvalidRequest = "Invalid request"
	CategoryContentBlocked = "Content blocked"
	CategoryNoCandidates   = "No response from model"
	CategoryEmptyResponse  = "Empty response"
	CategoryGeneration     = "Generation failed"
	CategoryInternal       = "Internal server error"

	CategoryNotFound         = "Not found"
	CategoryMethodNotAllowed = "Method not allowed"
)

var (
	// ErrNoCandidates はモデルが候補を 1 件も返さなかったことを表します。
	ErrNoCandidates = errors.New("model returned empty candidates list")
	// ErrEmptyText は候補にテキストが含まれていなかったことを表します。
	ErrEmptyText = errors.New("model returned empty text")
)

// GenerateRequest は /generate のリクエストボディです。
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateResponse は生成成功時のレスポンスです。text 以外のフィールドは持ちません。
type GenerateResponse struct {
	Text string `json:"text"`
}

// ErrorResponse は全エンドポイント共通のエラーレスポンスです。
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Project string `json:"project"`
	Model   string `json:"model"`
}

// BlockedError はプロバイダーの安全フィルタにより応答が差し止められたことを表します。
type BlockedError struct {
	// Reason はプロバイダーが返したブロック理由 (例: "SAFETY", "PROHIBITED_CONTENT")
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("Model blocked response due to: %s", e.Reason)
}
