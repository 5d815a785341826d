package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"playcafe-cloud/internal/pricing"
	sessionapp "playcafe-cloud/internal/session/application"
	"playcafe-cloud/internal/session/infrastructure/memory"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func newTestHandler(t *testing.T) (*Handler, *fixedClock) {
	t.Helper()
	clock := &fixedClock{now: time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)}
	service, err := sessionapp.NewSessionService(memory.NewSessionRepository(), pricing.DefaultTariffTable(), clock)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	handler, err := NewHandler(service, clock, time.UTC)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler, clock
}

func TestHandler_StartAndStop(t *testing.T) {
	handler, clock := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/start", strings.NewReader(`{"console_name":"PS5-1"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode start response: %v", err)
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("expected session id, got %v", created)
	}
	if _, ok := created["price"]; ok {
		t.Fatalf("running session must not carry a price: %v", created)
	}

	clock.now = clock.now.Add(61 * time.Minute)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+id+"/stop", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var stopped map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &stopped); err != nil {
		t.Fatalf("decode stop response: %v", err)
	}
	if got := stopped["price"]; got != 25.0 {
		t.Fatalf("expected price 25, got %v", got)
	}
	if got := stopped["status"]; got != "completed" {
		t.Fatalf("expected completed, got %v", got)
	}
}

func TestHandler_StartBusyConsoleConflict(t *testing.T) {
	handler, _ := newTestHandler(t)

	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/start", strings.NewReader(`{"console_name":"PS5-1"}`))
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != want {
			t.Fatalf("start %d: expected %d, got %d", i, want, resp.Code)
		}
	}
}

func TestHandler_ManualAddOvernight(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := `{"console_name":"PS4-2","start_time":"23:00","end_time":"01:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got := created["duration"]; got != 2.0 {
		t.Fatalf("expected 2h duration, got %v", got)
	}
	if got := created["price"]; got != 50.0 {
		t.Fatalf("expected price 50, got %v", got)
	}
}

func TestHandler_ManualAddMissingTime(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := `{"console_name":"PS4-2","start_time":"23:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHandler_StopUnknownSession(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/nope/stop", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestHandler_DeleteAndList(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/start", strings.NewReader(`{"console_name":"PS5-1"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	var created map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	id := created["id"].(string)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+id, nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	var listed struct {
		Sessions []map[string]any `json:"sessions"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Sessions) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(listed.Sessions))
	}
}

func TestHandler_ListInvalidStatus(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions?status=paused", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHandler_StopAll(t *testing.T) {
	handler, clock := newTestHandler(t)

	for _, console := range []string{"PS5-1", "PS5-2"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/start", strings.NewReader(`{"console_name":"`+console+`"}`))
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusCreated {
			t.Fatalf("start %s: got %d", console, resp.Code)
		}
	}
	clock.now = clock.now.Add(45 * time.Minute)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/stop-all", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var result struct {
		Stopped []map[string]any `json:"stopped"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result.Stopped) != 2 {
		t.Fatalf("expected 2 stopped sessions, got %d", len(result.Stopped))
	}
	for _, s := range result.Stopped {
		if s["status"] != "completed" {
			t.Fatalf("expected completed, got %v", s["status"])
		}
	}
}
