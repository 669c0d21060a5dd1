package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"arbor/internal/config"
	chatModels "arbor/internal/domain/models/chat"
	llmSvc "arbor/internal/domain/services/llm"
	"arbor/internal/repository/memory"
	chatService "arbor/internal/service/chat"
)

type cannedProvider struct {
	reply string
}

func (p *cannedProvider) Complete(ctx context.Context, req *llmSvc.CompletionRequest) (string, error) {
	return p.reply, nil
}

func (p *cannedProvider) Name() string { return "canned" }

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := &config.Config{
		DefaultModel:   "test-model",
		MaxReplyTokens: 64,
		SystemPrompt:   "test system prompt",
	}
	conversation := chatService.NewService(memory.NewForest(), &cannedProvider{reply: "Hi there"}, cfg, logger)
	chatHandler := NewChatHandler(conversation, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", HealthCheck)
	mux.HandleFunc("GET /api/forest", chatHandler.GetForest)
	mux.HandleFunc("POST /api/messages", chatHandler.PostMessage)
	mux.HandleFunc("DELETE /api/messages/{id}", chatHandler.DeleteMessage)
	mux.HandleFunc("GET /api/messages/{id}/path", chatHandler.GetMessagePath)
	return mux
}

func postMessage(t *testing.T, mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestPostMessage_CreatesExchange(t *testing.T) {
	mux := newTestMux(t)

	rec := postMessage(t, mux, `{"content":"Hello"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var forest chatModels.Forest
	if err := json.Unmarshal(rec.Body.Bytes(), &forest); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(forest.RootIDs) != 1 || len(forest.Nodes) != 2 {
		t.Errorf("expected one pruned exchange, got %+v", forest)
	}
}

func TestPostMessage_InvalidJSON(t *testing.T) {
	mux := newTestMux(t)

	rec := postMessage(t, mux, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json error, got %s", ct)
	}
}

func TestPostMessage_EmptyContent(t *testing.T) {
	mux := newTestMux(t)

	rec := postMessage(t, mux, `{"content":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteMessage_NotFound(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/messages/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteMessage_RootRejected(t *testing.T) {
	mux := newTestMux(t)

	rec := postMessage(t, mux, `{"content":"Hello"}`)
	var forest chatModels.Forest
	if err := json.Unmarshal(rec.Body.Bytes(), &forest); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/messages/"+forest.RootIDs[0], nil)
	del := httptest.NewRecorder()
	mux.ServeHTTP(del, req)
	if del.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for root deletion, got %d: %s", del.Code, del.Body.String())
	}
}

func TestGetMessagePath(t *testing.T) {
	mux := newTestMux(t)

	rec := postMessage(t, mux, `{"content":"Hello"}`)
	var forest chatModels.Forest
	if err := json.Unmarshal(rec.Body.Bytes(), &forest); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	assistantID := forest.Nodes[forest.RootIDs[0]].Children[0]

	req := httptest.NewRequest(http.MethodGet, "/api/messages/"+assistantID+"/path", nil)
	pathRec := httptest.NewRecorder()
	mux.ServeHTTP(pathRec, req)
	if pathRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", pathRec.Code)
	}

	var path []chatModels.Node
	if err := json.Unmarshal(pathRec.Body.Bytes(), &path); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(path) != 2 || path[0].Role != chatModels.RoleUser || path[1].ID != assistantID {
		t.Errorf("unexpected path: %+v", path)
	}
}

func TestGetForest_Empty(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/api/forest", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "root_ids") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHealthCheck(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
