package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) Health(ctx context.Context) error {
	return m.err
}

func TestHealthHandler_Health_AllHealthy(t *testing.T) {
	handler := NewHealthHandler(&mockHealthChecker{}, &mockHealthChecker{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	handler.Health(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected ok status, got %q", resp.Status)
	}
	if resp.Service != "daybook" {
		t.Errorf("expected service name in payload, got %q", resp.Service)
	}
	if resp.Checks["postgres"].Status != "ok" || resp.Checks["redis"].Status != "ok" {
		t.Errorf("expected passing checks, got %v", resp.Checks)
	}
}

func TestHealthHandler_Health_PostgresDown(t *testing.T) {
	handler := NewHealthHandler(&mockHealthChecker{err: errors.New("connection refused")}, &mockHealthChecker{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	handler.Health(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rr.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("expected unhealthy status, got %q", resp.Status)
	}
	if resp.Checks["postgres"].Error == "" {
		t.Error("expected the postgres failure detail in the payload")
	}
	if resp.Checks["redis"].Status != "ok" {
		t.Errorf("expected redis to stay ok, got %q", resp.Checks["redis"].Status)
	}
}

func TestHealthHandler_Health_RedisDownIsDegraded(t *testing.T) {
	handler := NewHealthHandler(&mockHealthChecker{}, &mockHealthChecker{err: errors.New("timeout")})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	handler.Health(rr, req)

	// The limiters fail open, so losing Redis degrades the service
	// without taking it out of rotation.
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("expected degraded status, got %q", resp.Status)
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	handler := NewHealthHandler(&mockHealthChecker{}, &mockHealthChecker{})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rr := httptest.NewRecorder()

	handler.Ready(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestHealthHandler_Ready_PostgresDown(t *testing.T) {
	handler := NewHealthHandler(&mockHealthChecker{err: errors.New("connection refused")}, &mockHealthChecker{})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rr := httptest.NewRecorder()

	handler.Ready(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rr.Code)
	}
}

func TestHealthHandler_Ready_ToleratesRedisOutage(t *testing.T) {
	handler := NewHealthHandler(&mockHealthChecker{}, &mockHealthChecker{err: errors.New("timeout")})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rr := httptest.NewRecorder()

	handler.Ready(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestHealthHandler_Live(t *testing.T) {
	handler := NewHealthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rr := httptest.NewRecorder()

	handler.Live(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}
