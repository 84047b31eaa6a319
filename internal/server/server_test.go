package server

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRunFailsFastWithoutProject(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("GCP_PROJECT_ID", "")

	err := Run(context.Background())
	if err == nil {
		t.Fatalf("expected startup error without GCP_PROJECT_ID")
	}
	if !strings.Contains(err.Error(), "GCP_PROJECT_ID") {
		t.Fatalf("expected descriptive error, got %v", err)
	}
}

func TestServeReportsListenError(t *testing.T) {
	srv := &http.Server{Addr: "256.0.0.1:bad"}

	err := serve(srv, time.Second)
	if err == nil || !strings.Contains(err.Error(), "server error") {
		t.Fatalf("expected listen error, got %v", err)
	}
}
