// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the RAG ingestion and query API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeConnection
	ErrTypeInvalidResponse
	ErrTypeRejected
	ErrTypeBadInput
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "backend is not reachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrNoSources   = &ClientError{Type: ErrTypeBadInput, Message: "either a URL or a PDF file is required"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the RAG API base URL (default: http://127.0.0.1:8000)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6 resolution issues on Windows
	BaseURL string

	// QueryPath is the path of the question endpoint relative to BaseURL
	// (default: "query"). Deployments that mount the API under a
	// different route override this.
	QueryPath string

	// Timeout for query and validation requests (default: 30s)
	Timeout time.Duration

	// UploadTimeout for document ingestion, which scrapes and embeds
	// sources server-side and can run long (default: 5m)
	UploadTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       "http://127.0.0.1:8000",
		QueryPath:     "query",
		Timeout:       30 * time.Second,
		UploadTimeout: 5 * time.Minute,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the RAG backend API.
// It provides methods for health checks, session validation, namespace
// listing, querying, and document ingestion.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := backend.NewClient()
//	if err := client.Health(ctx); err != nil {
//	    log.Fatal("backend not available:", err)
//	}
//	resp, err := client.Query(ctx, "what is covered?", sessionID, false)
type Client struct {
	config       *ClientConfig
	httpClient   *http.Client
	uploadClient *http.Client
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.QueryPath == "" {
		config.QueryPath = "query"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UploadTimeout == 0 {
		config.UploadTimeout = 5 * time.Minute
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	config.QueryPath = strings.Trim(config.QueryPath, "/")

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		uploadClient: &http.Client{
			Timeout: config.UploadTimeout,
		},
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// Health verifies that the backend is reachable and reports itself healthy.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "unexpected status from backend: " + resp.Status,
		}
	}

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	if result.Status != "healthy" {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "backend reports status " + result.Status,
		}
	}

	return nil
}

// =============================================================================
// NAMESPACES
// =============================================================================

// Namespaces retrieves all session namespaces known to the vector store.
func (c *Client) Namespaces(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/namespaces", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp, "failed to list namespaces")
	}

	var result NamespacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return result.Namespaces, nil
}

// =============================================================================
// SESSION VALIDATION
// =============================================================================

// ValidateSession checks whether a session namespace exists and has
// indexed content. A response with Valid set to false is not an error;
// the caller inspects the Error and Suggestion fields.
func (c *Client) ValidateSession(ctx context.Context, sessionID string) (*SessionValidation, error) {
	body, err := json.Marshal(ValidateSessionRequest{SessionID: sessionID})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/validate-session", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp, "session validation failed")
	}

	var result SessionValidation
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// SessionStatus retrieves the standing of a single session namespace.
func (c *Client) SessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	endpoint := c.config.BaseURL + "/session/" + url.PathEscape(sessionID) + "/status"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp, "session status check failed")
	}

	var result SessionStatus
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// QUERY
// =============================================================================

// Query sends a question scoped to the given session. Admin queries pass
// AdminScope as the session ID together with isAdmin to search every
// namespace. A namespace with no content comes back as a rejected
// ClientError carrying the backend's explanation.
func (c *Client) Query(ctx context.Context, question, sessionID string, isAdmin bool) (*QueryResponse, error) {
	reqBody := QueryRequest{
		Question:  question,
		SessionID: sessionID,
		IsAdmin:   isAdmin,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/"+c.config.QueryPath, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp, "query request failed")
	}

	var result QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	// The backend signals "namespace exists but is empty" as a 200 with
	// an error payload instead of an answer.
	if result.Answer == "" && result.Error != "" {
		msg := result.Error
		if result.Suggestion != "" {
			msg += " (" + result.Suggestion + ")"
		}
		return nil, &ClientError{Type: ErrTypeRejected, Message: msg}
	}

	return &result, nil
}

// =============================================================================
// DOCUMENT INGESTION
// =============================================================================

// Process uploads sources for ingestion into a session namespace. The
// request is multipart form data with an optional url field, an optional
// PDF file part, and the session_id. At least one source is required and
// the file, when given, must have a .pdf extension.
func (c *Client) Process(ctx context.Context, input ProcessInput) (*ProcessResponse, error) {
	input.URL = strings.TrimSpace(input.URL)
	input.FilePath = strings.TrimSpace(input.FilePath)

	if input.URL == "" && input.FilePath == "" {
		return nil, ErrNoSources
	}
	if input.FilePath != "" && !strings.EqualFold(filepath.Ext(input.FilePath), ".pdf") {
		return nil, &ClientError{
			Type:    ErrTypeBadInput,
			Message: fmt.Sprintf("only PDF files are supported, got %q", filepath.Base(input.FilePath)),
		}
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if input.URL != "" {
		if err := mw.WriteField("url", input.URL); err != nil {
			return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to build upload form", Cause: err}
		}
	}
	if input.FilePath != "" {
		f, err := os.Open(input.FilePath)
		if err != nil {
			return nil, &ClientError{Type: ErrTypeBadInput, Message: "failed to open PDF file", Cause: err}
		}
		defer f.Close()

		part, err := mw.CreateFormFile("file", filepath.Base(input.FilePath))
		if err != nil {
			return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to build upload form", Cause: err}
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to read PDF file", Cause: err}
		}
	}
	if err := mw.WriteField("session_id", input.SessionID); err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to build upload form", Cause: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to build upload form", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/process", &buf)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp, "document processing failed")
	}

	var result ProcessResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// decodeError turns a non-2xx response into a ClientError, preferring the
// backend's own error message when the body carries one. Non-JSON bodies
// surface verbatim so server-side detail is never lost.
func (c *Client) decodeError(resp *http.Response, fallback string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.message() != "" {
		return &ClientError{Type: ErrTypeRejected, Message: apiErr.message()}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return &ClientError{Type: ErrTypeRejected, Message: text}
	}
	return &ClientError{
		Type:    ErrTypeInvalidResponse,
		Message: fallback + ": " + resp.Status,
	}
}

// IsUnreachable checks if an error indicates the backend is not running.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnreachable
	}
	return errors.Is(err, ErrUnreachable)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsRejected checks if an error carries a message from the backend rather
// than a transport failure.
func IsRejected(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeRejected
	}
	return false
}

// IsBadInput checks if an error was caused by invalid local input before
// any request was sent.
func IsBadInput(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeBadInput
	}
	return false
}
