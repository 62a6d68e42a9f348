// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the RAG ingestion and query API.
package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	return client, srv
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestNewClientWithConfig_Defaults(t *testing.T) {
	client := NewClientWithConfig(nil)
	cfg := client.GetConfig()

	if cfg.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
	if cfg.QueryPath != "query" {
		t.Errorf("QueryPath = %q, want %q", cfg.QueryPath, "query")
	}
	if cfg.Timeout == 0 || cfg.UploadTimeout == 0 {
		t.Error("timeouts not defaulted")
	}
}

func TestNewClientWithConfig_NormalizesPaths(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{
		BaseURL:   "http://example.test/",
		QueryPath: "/chat/",
	})
	cfg := client.GetConfig()

	if cfg.BaseURL != "http://example.test" {
		t.Errorf("BaseURL = %q, want trailing slash stripped", cfg.BaseURL)
	}
	if cfg.QueryPath != "chat" {
		t.Errorf("QueryPath = %q, want %q", cfg.QueryPath, "chat")
	}
}

// =============================================================================
// HEALTH TESTS
// =============================================================================

func TestHealth_OK(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(HealthResponse{Status: "healthy", Message: "RAG API is running"})
	}))

	if err := client.Health(context.Background()); err != nil {
		t.Errorf("Health() = %v, want nil", err)
	}
}

func TestHealth_UnhealthyStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(HealthResponse{Status: "degraded"})
	}))

	if err := client.Health(context.Background()); err == nil {
		t.Error("Health() = nil, want error for degraded status")
	}
}

func TestHealth_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	err := client.Health(context.Background())
	if !IsUnreachable(err) {
		t.Errorf("Health() = %v, want unreachable error", err)
	}
}

// =============================================================================
// NAMESPACES TESTS
// =============================================================================

func TestNamespaces(t *testing.T) {
	want := []string{"m9x2k1_ab3z9", "m9x3p7_qq1r2"}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/namespaces" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(NamespacesResponse{Namespaces: want})
	}))

	got, err := client.Namespaces(context.Background())
	if err != nil {
		t.Fatalf("Namespaces() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Namespaces() = %v, want %v", got, want)
	}
}

func TestNamespaces_Empty(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(NamespacesResponse{Namespaces: []string{}})
	}))

	got, err := client.Namespaces(context.Background())
	if err != nil {
		t.Fatalf("Namespaces() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Namespaces() = %v, want empty", got)
	}
}

// =============================================================================
// SESSION VALIDATION TESTS
// =============================================================================

func TestValidateSession_Valid(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ValidateSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.SessionID != "m9x2k1_ab3z9" {
			t.Errorf("session_id = %q", req.SessionID)
		}
		json.NewEncoder(w).Encode(SessionValidation{
			Valid:       true,
			SessionID:   req.SessionID,
			VectorCount: 42,
			Message:     "Session found with 42 documents",
		})
	}))

	got, err := client.ValidateSession(context.Background(), "m9x2k1_ab3z9")
	if err != nil {
		t.Fatalf("ValidateSession() error = %v", err)
	}
	if !got.Valid || got.VectorCount != 42 {
		t.Errorf("ValidateSession() = %+v, want valid with 42 vectors", got)
	}
}

func TestValidateSession_Invalid(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SessionValidation{
			Valid:      false,
			SessionID:  "nope",
			Error:      "Session ID 'nope' does not exist or has no content. Please check your session ID or contact admin.",
			Suggestion: "Make sure your session ID is correct and that documents have been processed for this session.",
		})
	}))

	got, err := client.ValidateSession(context.Background(), "nope")
	if err != nil {
		t.Fatalf("ValidateSession() error = %v", err)
	}
	if got.Valid {
		t.Error("ValidateSession() reported valid for unknown session")
	}
	if got.Error == "" || got.Suggestion == "" {
		t.Errorf("ValidateSession() = %+v, want error and suggestion preserved", got)
	}
}

func TestSessionStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/session/m9x2k1_ab3z9/status" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(SessionStatus{
			SessionID:   "m9x2k1_ab3z9",
			Exists:      true,
			VectorCount: 7,
			Status:      "active",
			Valid:       true,
		})
	}))

	got, err := client.SessionStatus(context.Background(), "m9x2k1_ab3z9")
	if err != nil {
		t.Fatalf("SessionStatus() error = %v", err)
	}
	if !got.Exists || got.Status != "active" {
		t.Errorf("SessionStatus() = %+v", got)
	}
}

// =============================================================================
// QUERY TESTS
// =============================================================================

func TestQuery_User(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.IsAdmin {
			t.Error("is_admin = true for user query")
		}
		json.NewEncoder(w).Encode(QueryResponse{
			Answer:       "The policy covers water damage.",
			SessionID:    req.SessionID,
			ContextCount: 3,
		})
	}))

	got, err := client.Query(context.Background(), "what is covered?", "m9x2k1_ab3z9", false)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got.Answer == "" {
		t.Error("Query() returned empty answer")
	}
}

func TestQuery_AdminWildcard(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.SessionID != AdminScope || !req.IsAdmin {
			t.Errorf("admin query = %+v, want wildcard scope with is_admin", req)
		}
		json.NewEncoder(w).Encode(QueryResponse{
			Answer:       "Found across 3 namespaces.",
			SessionID:    req.SessionID,
			IsAdminQuery: true,
		})
	}))

	got, err := client.Query(context.Background(), "summarize everything", AdminScope, true)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if !got.IsAdminQuery {
		t.Error("Query() lost is_admin_query flag")
	}
}

func TestQuery_CustomPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(QueryResponse{Answer: "ok"})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, QueryPath: "chat"})
	if _, err := client.Query(context.Background(), "q", "s", false); err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if gotPath != "/chat" {
		t.Errorf("query path = %q, want /chat", gotPath)
	}
}

func TestQuery_EmptyNamespaceRejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(QueryResponse{
			Error:      "No content found for this session",
			Suggestion: "Use /process endpoint to upload and process documents first",
		})
	}))

	_, err := client.Query(context.Background(), "q", "empty_1a2b3", false)
	if !IsRejected(err) {
		t.Errorf("Query() error = %v, want rejected", err)
	}
}

// =============================================================================
// PROCESS TESTS
// =============================================================================

func TestProcess_URLOnly(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/process" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("url"); got != "https://example.com/doc" {
			t.Errorf("url field = %q", got)
		}
		if got := r.FormValue("session_id"); got != "m9x2k1_ab3z9" {
			t.Errorf("session_id field = %q", got)
		}
		if _, _, err := r.FormFile("file"); err == nil {
			t.Error("unexpected file part for URL-only upload")
		}
		json.NewEncoder(w).Encode(ProcessResponse{
			Status:            "Sources processed and indexed successfully",
			SessionID:         "m9x2k1_ab3z9",
			ProcessingDetails: []string{"✓ URL scraped and processed: 12 chunks"},
			SourcesProcessed:  SourcesProcessed{URLProvided: true, TotalChunks: 12},
		})
	}))

	got, err := client.Process(context.Background(), ProcessInput{
		URL:       "https://example.com/doc",
		SessionID: "m9x2k1_ab3z9",
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got.ProcessingDetails) != 1 {
		t.Errorf("ProcessingDetails = %v", got.ProcessingDetails)
	}
}

func TestProcess_WithPDF(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "notes.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4 fake"), 0644); err != nil {
		t.Fatal(err)
	}

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "notes.pdf" {
			t.Errorf("filename = %q", header.Filename)
		}
		json.NewEncoder(w).Encode(ProcessResponse{
			Status:           "Sources processed and indexed successfully",
			SourcesProcessed: SourcesProcessed{DocumentProvided: true, TotalChunks: 4},
		})
	}))

	got, err := client.Process(context.Background(), ProcessInput{
		FilePath:  pdfPath,
		SessionID: "m9x2k1_ab3z9",
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !got.SourcesProcessed.DocumentProvided {
		t.Error("DocumentProvided = false")
	}
}

func TestProcess_RejectsNonPDF(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent for invalid input")
	}))

	_, err := client.Process(context.Background(), ProcessInput{
		FilePath:  "/tmp/notes.txt",
		SessionID: "s_1",
	})
	if !IsBadInput(err) {
		t.Errorf("Process() error = %v, want bad input", err)
	}
}

func TestProcess_RequiresSource(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent with no sources")
	}))

	_, err := client.Process(context.Background(), ProcessInput{SessionID: "s_1"})
	if !IsBadInput(err) {
		t.Errorf("Process() error = %v, want bad input", err)
	}
}

func TestProcess_BackendError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Embedding creation failed: rate limited"})
	}))

	_, err := client.Process(context.Background(), ProcessInput{
		URL:       "https://example.com",
		SessionID: "s_1",
	})
	if !IsRejected(err) {
		t.Errorf("Process() error = %v, want rejected with backend detail", err)
	}
}

// =============================================================================
// ERROR PREDICATE TESTS
// =============================================================================

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		err       error
		predicate func(error) bool
		want      bool
	}{
		{ErrUnreachable, IsUnreachable, true},
		{ErrTimeout, IsTimeout, true},
		{ErrNoSources, IsBadInput, true},
		{ErrTimeout, IsUnreachable, false},
		{nil, IsRejected, false},
		{&ClientError{Type: ErrTypeRejected, Message: "nope"}, IsRejected, true},
	}

	for _, tt := range tests {
		if got := tt.predicate(tt.err); got != tt.want {
			t.Errorf("predicate(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestClientErrorUnwrap(t *testing.T) {
	cause := os.ErrNotExist
	err := &ClientError{Type: ErrTypeBadInput, Message: "failed to open PDF file", Cause: cause}

	if err.Unwrap() != cause {
		t.Error("Unwrap() did not return cause")
	}
	if err.Error() != "failed to open PDF file: "+cause.Error() {
		t.Errorf("Error() = %q", err.Error())
	}
}
