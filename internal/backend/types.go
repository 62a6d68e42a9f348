// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the RAG ingestion and query API.
package backend

// AdminScope is the session wildcard that asks the backend to search
// every namespace instead of a single session's namespace. Only admin
// queries may use it.
const AdminScope = "*"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ValidateSessionRequest asks the backend whether a session namespace
// exists and holds indexed content.
type ValidateSessionRequest struct {
	SessionID string `json:"session_id"`
}

// QueryRequest is a question scoped to one session namespace, or to all
// namespaces when IsAdmin is set and SessionID is AdminScope.
type QueryRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
	IsAdmin   bool   `json:"is_admin"`
}

// ProcessInput describes the sources to ingest into a session namespace.
// URL and FilePath are each optional but at least one must be set.
// FilePath must name a PDF on the local filesystem.
type ProcessInput struct {
	URL       string
	FilePath  string
	SessionID string
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// HealthResponse is the backend liveness report.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NamespacesResponse lists every session namespace known to the vector store.
type NamespacesResponse struct {
	Namespaces []string `json:"namespaces"`
}

// SessionValidation is the result of a session existence check.
// On failure Valid is false and Error carries the reason; Suggestion,
// when present, tells the user how to recover.
type SessionValidation struct {
	Valid       bool   `json:"valid"`
	SessionID   string `json:"session_id"`
	VectorCount int    `json:"vector_count"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// QueryResponse is the answer to a question, with the retrieved context
// that produced it. Error and Suggestion are set instead of Answer when
// the target namespace is empty or missing.
type QueryResponse struct {
	Answer           string   `json:"answer"`
	SessionID        string   `json:"session_id"`
	RetrievedSources []string `json:"retrieved_sources"`
	ContextCount     int      `json:"context_count"`
	IsAdminQuery     bool     `json:"is_admin_query"`
	Error            string   `json:"error,omitempty"`
	Suggestion       string   `json:"suggestion,omitempty"`
}

// SourcesProcessed summarizes which inputs an ingestion run consumed.
type SourcesProcessed struct {
	URLProvided      bool `json:"url_provided"`
	DocumentProvided bool `json:"document_provided"`
	TotalChunks      int  `json:"total_chunks"`
}

// ProcessResponse reports the outcome of an ingestion run. Each entry in
// ProcessingDetails is a human-readable line prefixed with a check or
// cross marker for per-source success or failure.
type ProcessResponse struct {
	Status            string           `json:"status"`
	SessionID         string           `json:"session_id"`
	ProcessingDetails []string         `json:"processing_details"`
	SourcesProcessed  SourcesProcessed `json:"sources_processed"`
}

// SessionStatus is the standing of a single session namespace.
type SessionStatus struct {
	SessionID   string `json:"session_id"`
	Exists      bool   `json:"exists"`
	VectorCount int    `json:"vector_count"`
	Status      string `json:"status"`
	Valid       bool   `json:"valid"`
}

// apiError is the error envelope FastAPI-style backends return for
// non-2xx responses.
type apiError struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (e apiError) message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Error
}
