package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"genai-gateway/internal/config"
	"genai-gateway/internal/domain"
	"genai-gateway/internal/metrics"

	"github.com/shouni/go-utils/text"
)

// Generate は {"prompt": "..."} を受け取り、Gemini の生成結果を {"text": "..."} で返します。
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	req, err := decodeGenerateRequest(r.Body)
	if err != nil {
		slog.WarnContext(ctx, "Failed to decode generate request", "error", err)
		metrics.IncGenerate(metrics.OutcomeInvalid)
		writeError(w, http.StatusBadRequest, domain.CategoryInvalidRequest, "Invalid JSON body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		metrics.IncGenerate(metrics.OutcomeInvalid)
		writeError(w, http.StatusBadRequest, domain.CategoryInvalidRequest, "Prompt cannot be empty")
		return
	}

	slog.InfoContext(ctx, "Generating",
		"model", h.cfg.GeminiModel,
		"prompt_length", len(req.Prompt),
	)

	start := time.Now()
	generated, err := h.generator.GenerateText(ctx, req.Prompt)
	metrics.ObserveGenerateDuration(time.Since(start))
	if err != nil {
		h.writeGenerateError(w, r, err)
		return
	}

	slog.InfoContext(ctx, "Generation successful", "output_length", len(generated))
	metrics.IncGenerate(metrics.OutcomeSuccess)
	writeJSON(w, http.StatusOK, domain.GenerateResponse{Text: generated})
}

// writeGenerateError はプロバイダーのエラーを分類し、対応するエラーレスポンスを返します。
func (h *Handler) writeGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var blocked *domain.BlockedError
	switch {
	case errors.As(err, &blocked):
		slog.WarnContext(ctx, "Generation blocked", "finish_reason", blocked.Reason)
		metrics.IncGenerate(metrics.OutcomeBlocked)
		writeError(w, http.StatusBadRequest, domain.CategoryContentBlocked, blocked.Error())

	case errors.Is(err, domain.ErrNoCandidates):
		slog.WarnContext(ctx, "No candidates in response")
		metrics.IncGenerate(metrics.OutcomeNoCandidates)
		writeError(w, http.StatusInternalServerError, domain.CategoryNoCandidates, "Model returned empty candidates list")

	case errors.Is(err, domain.ErrEmptyText):
		slog.WarnContext(ctx, "Empty text in response")
		metrics.IncGenerate(metrics.OutcomeEmpty)
		writeError(w, http.StatusInternalServerError, domain.CategoryEmptyResponse, "Model returned empty text")

	default:
		detail := text.Truncate(err.Error(), config.MaxDetailLength, "")
		slog.ErrorContext(ctx, "Generation failed", "error", detail)
		metrics.IncGenerate(metrics.OutcomeFailed)
		writeError(w, http.StatusInternalServerError, domain.CategoryGeneration, detail)
	}
}

// decodeGenerateRequest はボディがちょうど 1 つの JSON オブジェクトであることを検証します。
// キーは大文字小文字を区別し、"prompt" 以外の表記は未指定として扱います。
func decodeGenerateRequest(body io.Reader) (domain.GenerateRequest, error) {
	var req domain.GenerateRequest

	dec := json.NewDecoder(body)
	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return req, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return req, fmt.Errorf("unexpected data after JSON object")
	}

	raw, ok := fields["prompt"]
	if !ok {
		return req, nil
	}
	if err := json.Unmarshal(raw, &req.Prompt); err != nil {
		return req, fmt.Errorf("prompt must be a string: %w", err)
	}
	return req, nil
}
