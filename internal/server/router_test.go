package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"genai-gateway/internal/app"
	"genai-gateway/internal/builder"
	"genai-gateway/internal/config"
)

type stubGenerator struct {
	text  string
	calls atomic.Int32
}

func (s *stubGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	s.calls.Add(1)
	return s.text, nil
}

func newTestServer(t *testing.T, origins []string) (*httptest.Server, *stubGenerator) {
	t.Helper()
	gen := &stubGenerator{text: "OK"}
	cfg := config.Config{
		ProjectID:      "demo-project",
		LocationID:     config.DefaultLocation,
		GeminiModel:    "gemini-test",
		AllowedOrigins: origins,
	}
	h, err := builder.BuildHandlers(&app.Container{Config: cfg, Generator: gen})
	if err != nil {
		t.Fatalf("BuildHandlers returned error: %v", err)
	}
	srv := httptest.NewServer(NewRouter(cfg, h))
	t.Cleanup(srv.Close)
	return srv, gen
}

func readJSON(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestRouterHealth(t *testing.T) {
	srv, gen := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := readJSON(t, resp)
	if body["status"] != "ok" || body["project"] != "demo-project" || body["model"] != "gemini-test" {
		t.Fatalf("unexpected health body: %v", body)
	}
	if gen.calls.Load() != 0 {
		t.Fatalf("health must not call the provider")
	}
}

func TestRouterGenerateScenarios(t *testing.T) {
	srv, gen := newTestServer(t, nil)

	resp, err := http.Post(srv.URL+"/generate", "application/json", strings.NewReader(`{"prompt":"Reply with: OK"}`))
	if err != nil {
		t.Fatalf("POST /generate: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body := readJSON(t, resp); len(body) != 1 || body["text"] != "OK" {
		t.Fatalf(`expected {"text":"OK"}, got %v`, body)
	}

	resp, err = http.Post(srv.URL+"/generate", "application/json", strings.NewReader(`{"prompt":""}`))
	if err != nil {
		t.Fatalf("POST /generate: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if body := readJSON(t, resp); body["error"] == "" {
		t.Fatalf("expected error field, got %v", body)
	}
	if gen.calls.Load() != 1 {
		t.Fatalf("expected only the valid request to reach the provider, got %d calls", gen.calls.Load())
	}
}

func TestRouterUnknownRouteAndMethod(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	readJSON(t, resp)

	resp, err = http.Get(srv.URL + "/generate")
	if err != nil {
		t.Fatalf("GET /generate: %v", err)
	}
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
	readJSON(t, resp)
}

func TestRouterMetrics(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	post, err := http.Post(srv.URL+"/generate", "application/json", strings.NewReader(`{"prompt":"hi"}`))
	if err != nil {
		t.Fatalf("POST /generate: %v", err)
	}
	post.Body.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `genai_gateway_generate_requests_total{outcome="success"}`) {
		t.Fatalf("expected generate counter in metrics output")
	}
}

func TestRouterCORS(t *testing.T) {
	srv, _ := newTestServer(t, []string{"https://app.example"})

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set("Origin", "https://app.example")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header for unknown origin, got %q", got)
	}
}

func TestRouterWithoutCORSHasNoHeaders(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set("Origin", "https://app.example")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("CORS must be disabled by default, got %q", got)
	}
}
