package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/parlorchat/parlor-server/internal/auth"
	"github.com/parlorchat/parlor-server/internal/config"
	"github.com/parlorchat/parlor-server/internal/core"
	"github.com/parlorchat/parlor-server/internal/log"
	"github.com/parlorchat/parlor-server/internal/metrics"
	"github.com/parlorchat/parlor-server/internal/store"
	"github.com/parlorchat/parlor-server/internal/store/sqlite"
)

// startTestServer boots the full router against an in-memory store.
func startTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	logger := log.New("error")

	// One metrics set shared by the hub and the /metrics endpoint, as in
	// app.New; a split pair would serve gauges the hub never touches.
	m := metrics.New()

	hub := core.NewHub(st, logger, m)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	cfg := config.Default()
	cfg.UploadDir = t.TempDir()
	cfg.AdminKey = "test-admin-key"

	jwtConfig := &auth.JWTConfig{
		Secret: []byte("test-secret-change-me"),
		Issuer: "test",
		TTL:    24 * time.Hour,
	}
	authService := auth.NewService(st, jwtConfig, 5*time.Minute)

	server := NewServer(hub, authService, st, m, cfg, logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, st
}
