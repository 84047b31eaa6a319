package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"genai-gateway/internal/config"
	"genai-gateway/internal/domain"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/shouni/go-utils/text"
)

// writeJSON は v を JSON としてステータス付きで書き込みます。
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// writeError は detail を上限文字数に切り詰めてからエラーレスポンスを書き込みます。
func writeError(w http.ResponseWriter, status int, category, detail string) {
	writeJSON(w, status, domain.ErrorResponse{
		Error:  category,
		Detail: text.Truncate(detail, config.MaxDetailLength, ""),
	})
}

// NotFound は未定義ルートに JSON で応答します。
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, domain.CategoryNotFound, r.URL.Path)
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, domain.CategoryMethodNotAllowed, r.Method+" "+r.URL.Path)
}

// Recoverer はハンドラー内の panic を捕捉し、JSON の 500 エラーに変換するミドルウェアです。
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.ErrorContext(r.Context(), "Unhandled panic",
				"panic", rec,
				"request_id", middleware.GetReqID(r.Context()),
				"stack", string(debug.Stack()),
			)
			writeError(w, http.StatusInternalServerError, domain.CategoryInternal, panicDetail(rec))
		}()
		next.ServeHTTP(w, r)
	})
}

func panicDetail(rec any) string {
	switch v := rec.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return "unexpected panic"
	}
}
