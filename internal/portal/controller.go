// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package portal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/neuroportal-tui/internal/backend"
	"github.com/jeranaias/neuroportal-tui/internal/util"
)

// =============================================================================
// VIEWS
// =============================================================================

// View is which screen the UI is showing. The controller keeps view and
// identity consistent: the ingestion console is only reachable as admin,
// and the query screen requires a queryable identity.
type View int

const (
	// ViewPortalChoice is the landing screen where the operator picks
	// the user or admin portal.
	ViewPortalChoice View = iota
	// ViewLoginForm is the user login form (session ID plus password).
	ViewLoginForm
	// ViewQuery is the question-and-answer screen.
	ViewQuery
	// ViewIngest is the admin document ingestion console.
	ViewIngest
)

func (v View) String() string {
	switch v {
	case ViewLoginForm:
		return "login"
	case ViewQuery:
		return "query"
	case ViewIngest:
		return "ingest"
	default:
		return "portal-choice"
	}
}

// NamespaceMode is how the admin is choosing the ingestion target.
type NamespaceMode int

const (
	// NamespaceUnset means no target mode has been picked yet.
	NamespaceUnset NamespaceMode = iota
	// NamespaceNew targets a client-generated (or hand-edited) new name.
	NamespaceNew
	// NamespaceExisting targets a namespace picked from the backend's list.
	NamespaceExisting
)

// =============================================================================
// MESSAGES
// =============================================================================

// User-facing strings surfaced by the controller. Kept in one place so
// the views and the tests agree on them.
const (
	MsgInvalidPassword  = `Invalid password. Default password is "password".`
	MsgEmptySessionID   = "Please enter a session ID."
	MsgSessionNotFound  = "Session not found"
	MsgCannotConnect    = "Cannot connect to server. Please make sure the backend is running."
	MsgValidateFailed   = "Failed to validate session. Please try again."
	MsgPDFOnly          = "Please upload only PDF files."
	MsgQueryFailed      = "Failed to get answer. Please try again."
	MsgProcessFailed    = "Failed to process sources. Please try again."
	MsgReadyToChat      = "Content processed successfully! You can now ask questions about it."
	MsgNamespacesFailed = "Failed to load existing sessions. Please try again."
)

// Local validation errors returned by Begin* methods. The matching
// message has already been written into the state when these come back.
var (
	ErrInvalidPassword   = errors.New("invalid password")
	ErrEmptySessionID    = errors.New("empty session id")
	ErrNotAdmin          = errors.New("ingestion console requires admin")
	ErrBusy              = errors.New("operation already in flight")
	ErrNoQuestion        = errors.New("question is empty")
	ErrNoContentSource   = errors.New("no content source")
	ErrNoNamespace       = errors.New("no namespace resolved")
	ErrUnknownNamespace  = errors.New("selection is not a known namespace")
	ErrNotQueryable      = errors.New("identity cannot query")
	ErrWrongView         = errors.New("action not available on this view")
	ErrNonPDF            = errors.New("file is not a PDF")
	ErrNamespacesPending = errors.New("namespace list not loaded")
)

// =============================================================================
// STATE
// =============================================================================

// State is the complete transient UI state. It is owned by the
// Controller; views receive copies and never mutate it directly.
type State struct {
	Identity Identity
	View     View

	// Login form
	LoginSessionID string
	LoginError     string
	LoginInFlight  bool

	// Banner messages shared across screens
	Success string
	Error   string

	// Query screen
	Question      string
	Answer        string
	AnswerSources int
	QueryInFlight bool

	// Ingestion console
	Mode              NamespaceMode
	NewName           string
	SelectedNamespace string
	Namespaces        []string
	NamespacesLoading bool
	URL               string
	FilePath          string
	StatusLines       []string
	IngestInFlight    bool
	ShowNextSteps     bool

	// ActiveSessionID caches the namespace adopted by the last
	// successful ingestion so "chat with this document" can reuse it.
	ActiveSessionID string
}

// clone returns a deep copy safe to hand to views.
func (s State) clone() State {
	out := s
	out.Namespaces = append([]string(nil), s.Namespaces...)
	out.StatusLines = append([]string(nil), s.StatusLines...)
	return out
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the state and applies every transition. It is not
// goroutine-safe; the event loop is the single writer, matching the
// one-handler-at-a-time execution model of the UI.
type Controller struct {
	state  State
	secret string
	gen    IDGenerator
	epoch  uint64

	// pendingNamespace holds the target resolved at BeginIngestion so
	// FinishIngestion can adopt it after the inputs are cleared.
	pendingNamespace string
}

// NewController creates a controller checking logins against secret and
// drawing new-namespace candidates from gen. A nil gen uses the default
// generator; an empty secret falls back to the stock portal password.
func NewController(secret string, gen IDGenerator) *Controller {
	if secret == "" {
		secret = "password"
	}
	if gen == nil {
		gen = DefaultGenerator()
	}
	return &Controller{
		state:  State{Identity: Anonymous(), View: ViewPortalChoice},
		secret: secret,
		gen:    gen,
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state.clone()
}

// Epoch returns the current generation counter. Async outcomes report
// back with the epoch they started under; a mismatch means the world
// moved on and the outcome is dropped.
func (c *Controller) Epoch() uint64 {
	return c.epoch
}

// bump invalidates every outstanding async operation.
func (c *Controller) bump() {
	c.epoch++
	c.state.LoginInFlight = false
	c.state.QueryInFlight = false
	c.state.IngestInFlight = false
	c.state.NamespacesLoading = false
}

// =============================================================================
// PORTAL CHOICE AND LOGIN
// =============================================================================

// ChooseUserPortal moves from the landing screen to the user login form.
func (c *Controller) ChooseUserPortal() {
	c.state.View = ViewLoginForm
	c.state.LoginError = ""
}

// ChooseAdminPortal grants admin access immediately, with no credential
// check, and lands on the ingestion console. Admin gating is left to
// the deployment surrounding the backend.
func (c *Controller) ChooseAdminPortal() {
	c.bump()
	c.state.Identity = AdminIdentity()
	c.state.View = ViewIngest
	c.state.LoginError = ""
	c.resetIngestForm()
}

// BeginUserLogin validates the login form locally. The password and the
// session ID are checked before any network call; only a clean form
// yields a validation intent. The returned epoch must be echoed to
// FinishUserLogin.
func (c *Controller) BeginUserLogin(sessionID, password string) (epoch uint64, err error) {
	if c.state.LoginInFlight {
		return 0, ErrBusy
	}

	c.state.LoginError = ""

	if password != c.secret {
		c.state.LoginError = MsgInvalidPassword
		return 0, ErrInvalidPassword
	}
	if strings.TrimSpace(sessionID) == "" {
		c.state.LoginError = MsgEmptySessionID
		return 0, ErrEmptySessionID
	}

	c.state.LoginSessionID = strings.TrimSpace(sessionID)
	c.state.LoginInFlight = true
	return c.epoch, nil
}

// FinishUserLogin applies the outcome of a session validation request.
// Returns false when the outcome is stale and was dropped.
func (c *Controller) FinishUserLogin(epoch uint64, v *backend.SessionValidation, callErr error) bool {
	if epoch != c.epoch {
		return false
	}
	c.state.LoginInFlight = false

	if callErr != nil {
		if backend.IsUnreachable(callErr) || backend.IsTimeout(callErr) {
			c.state.LoginError = MsgCannotConnect
		} else {
			c.state.LoginError = MsgValidateFailed
		}
		return true
	}

	if v == nil || !v.Valid {
		msg := MsgSessionNotFound
		if v != nil && v.Error != "" {
			msg = v.Error
		}
		c.state.LoginError = msg
		return true
	}

	c.bump()
	c.state.Identity = UserIdentity(v.SessionID)
	c.state.ActiveSessionID = v.SessionID
	c.state.View = ViewQuery
	c.state.LoginError = ""
	c.state.Success = fmt.Sprintf("Welcome! Session %q loaded with %d documents.", v.SessionID, v.VectorCount)
	return true
}

// Logout unconditionally returns to the landing screen, clearing all
// derived state so nothing leaks into the next login.
func (c *Controller) Logout() {
	c.bump()
	c.state = State{Identity: Anonymous(), View: ViewPortalChoice}
	c.pendingNamespace = ""
}

// =============================================================================
// ROLE SWITCHING
// =============================================================================

// SwitchToIngest moves an admin back to the ingestion console, resetting
// all namespace-selection and content-input state so no stale partial
// submission persists across visits. Identity survives the switch.
func (c *Controller) SwitchToIngest() error {
	if !c.state.Identity.CanIngest() {
		return ErrNotAdmin
	}
	c.bump()
	c.state.View = ViewIngest
	c.state.Error = ""
	c.state.Success = ""
	c.state.Answer = ""
	c.state.AnswerSources = 0
	c.state.Question = ""
	c.resetIngestForm()
	return nil
}

// SwitchToQuery moves an admin to the question screen without touching
// the ingestion state.
func (c *Controller) SwitchToQuery() error {
	if !c.state.Identity.CanQuery() {
		return ErrNotQueryable
	}
	c.bump()
	c.state.View = ViewQuery
	return nil
}

// ChatWithDocument adopts the namespace of the last ingestion as the
// active session and moves to the question screen. Admin identity is
// kept, so queries still run under the wildcard scope.
func (c *Controller) ChatWithDocument() error {
	if !c.state.Identity.CanQuery() {
		return ErrNotQueryable
	}
	if target, ok := c.resolvedNamespace(); ok && target != c.state.ActiveSessionID {
		c.state.ActiveSessionID = target
	}
	c.bump()
	c.state.View = ViewQuery
	c.state.ShowNextSteps = false
	c.state.Success = MsgReadyToChat
	c.state.Error = ""
	c.state.StatusLines = nil
	return nil
}

// UploadAnother resets the console for a fresh ingestion, staying in
// admin mode.
func (c *Controller) UploadAnother() error {
	if c.state.View != ViewIngest {
		return ErrWrongView
	}
	c.bump()
	c.state.ShowNextSteps = false
	c.state.Success = ""
	c.state.Error = ""
	c.state.StatusLines = nil
	c.resetIngestForm()
	return nil
}

// resetIngestForm clears namespace selection and content inputs.
func (c *Controller) resetIngestForm() {
	c.state.Mode = NamespaceUnset
	c.state.NewName = ""
	c.state.SelectedNamespace = ""
	c.state.Namespaces = nil
	c.state.NamespacesLoading = false
	c.state.URL = ""
	c.state.FilePath = ""
	c.state.StatusLines = nil
	c.state.ShowNextSteps = false
	c.pendingNamespace = ""
}

// =============================================================================
// NAMESPACE RESOLUTION
// =============================================================================

// SetNamespaceMode picks how the ingestion target is chosen. Entering
// new mode pre-populates a generated candidate; entering existing mode
// clears the candidate and asks the caller to fetch the namespace list
// (needFetch). Either way the other mode's value is cleared.
func (c *Controller) SetNamespaceMode(mode NamespaceMode) (needFetch bool, epoch uint64) {
	c.state.Mode = mode
	switch mode {
	case NamespaceNew:
		c.state.NewName = c.gen.Next()
		c.state.SelectedNamespace = ""
	case NamespaceExisting:
		c.state.NewName = ""
		c.state.NamespacesLoading = true
		return true, c.epoch
	default:
		c.state.NewName = ""
		c.state.SelectedNamespace = ""
	}
	return false, c.epoch
}

// FinishNamespaceFetch applies the result of a namespace list fetch.
// Returns false when the outcome is stale and was dropped.
func (c *Controller) FinishNamespaceFetch(epoch uint64, namespaces []string, callErr error) bool {
	if epoch != c.epoch {
		return false
	}
	c.state.NamespacesLoading = false

	if callErr != nil {
		c.state.Error = MsgNamespacesFailed
		return true
	}
	c.state.Namespaces = append([]string(nil), namespaces...)
	if c.state.SelectedNamespace != "" && !contains(c.state.Namespaces, c.state.SelectedNamespace) {
		c.state.SelectedNamespace = ""
	}
	return true
}

// SetNewName overrides the generated candidate with free text.
func (c *Controller) SetNewName(name string) {
	c.state.NewName = name
}

// SelectNamespace picks an existing namespace from the fetched list.
func (c *Controller) SelectNamespace(name string) error {
	if c.state.Mode != NamespaceExisting {
		return ErrWrongView
	}
	if c.state.NamespacesLoading {
		return ErrNamespacesPending
	}
	if !contains(c.state.Namespaces, name) {
		return ErrUnknownNamespace
	}
	c.state.SelectedNamespace = name
	return nil
}

// resolvedNamespace returns the concrete ingestion target, if any.
func (c *Controller) resolvedNamespace() (string, bool) {
	switch c.state.Mode {
	case NamespaceNew:
		name := strings.TrimSpace(c.state.NewName)
		return name, name != ""
	case NamespaceExisting:
		return c.state.SelectedNamespace, c.state.SelectedNamespace != ""
	default:
		return "", false
	}
}

// ResolvedNamespace is resolvedNamespace for callers outside the package.
func (c *Controller) ResolvedNamespace() (string, bool) {
	return c.resolvedNamespace()
}

// =============================================================================
// CONTENT INPUTS
// =============================================================================

// SetURL records the web source input.
func (c *Controller) SetURL(u string) {
	c.state.URL = u
}

// AttachFile records a pending upload. Anything that is not a PDF is
// rejected up front and the previously attached file, if any, is kept.
func (c *Controller) AttachFile(path string) error {
	if path != "" && !util.HasPDFExtension(path) {
		c.state.Error = MsgPDFOnly
		return ErrNonPDF
	}
	c.state.FilePath = strings.TrimSpace(path)
	c.state.Error = ""
	return nil
}

// DetachFile clears the pending upload.
func (c *Controller) DetachFile() {
	c.state.FilePath = ""
}

// SetQuestion records the question input.
func (c *Controller) SetQuestion(q string) {
	c.state.Question = q
}

// =============================================================================
// GATING
// =============================================================================

// CanSubmitIngestion reports whether the ingestion submit control is
// enabled: a content source is present, a namespace is resolved, and no
// submission is in flight.
func (c *Controller) CanSubmitIngestion() bool {
	hasContent := strings.TrimSpace(c.state.URL) != "" || c.state.FilePath != ""
	_, hasNamespace := c.resolvedNamespace()
	return hasContent && hasNamespace && !c.state.IngestInFlight
}

// CanSubmitQuery reports whether the ask control is enabled: the
// question is non-empty, the identity can query, and no query is in
// flight.
func (c *Controller) CanSubmitQuery() bool {
	return strings.TrimSpace(c.state.Question) != "" &&
		c.state.Identity.CanQuery() &&
		!c.state.QueryInFlight
}

// =============================================================================
// INGESTION SUBMISSION
// =============================================================================

// BeginIngestion gates and packages one ingestion request. The returned
// epoch must be echoed to FinishIngestion.
func (c *Controller) BeginIngestion() (epoch uint64, input backend.ProcessInput, err error) {
	if c.state.IngestInFlight {
		return 0, backend.ProcessInput{}, ErrBusy
	}
	target, ok := c.resolvedNamespace()
	if !ok {
		return 0, backend.ProcessInput{}, ErrNoNamespace
	}
	if strings.TrimSpace(c.state.URL) == "" && c.state.FilePath == "" {
		return 0, backend.ProcessInput{}, ErrNoContentSource
	}

	c.state.IngestInFlight = true
	c.state.Error = ""
	c.state.Success = ""
	c.state.StatusLines = nil
	c.pendingNamespace = target

	return c.epoch, backend.ProcessInput{
		URL:       strings.TrimSpace(c.state.URL),
		FilePath:  c.state.FilePath,
		SessionID: target,
	}, nil
}

// FinishIngestion applies the outcome of an ingestion request. On
// success the content inputs are cleared, the per-step status lines are
// surfaced, and the target namespace becomes the active session. The
// next-step choice is revealed separately (RevealNextSteps) after a
// short delay so the operator can read the detail. Returns false when
// the outcome is stale and was dropped.
func (c *Controller) FinishIngestion(epoch uint64, resp *backend.ProcessResponse, callErr error) bool {
	if epoch != c.epoch {
		return false
	}
	c.state.IngestInFlight = false

	if callErr != nil {
		if backend.IsUnreachable(callErr) || backend.IsTimeout(callErr) {
			c.state.Error = MsgCannotConnect
		} else if backend.IsRejected(callErr) || backend.IsBadInput(callErr) {
			c.state.Error = callErr.Error()
		} else {
			c.state.Error = MsgProcessFailed
		}
		return true
	}

	c.state.Success = resp.Status
	c.state.StatusLines = append([]string(nil), resp.ProcessingDetails...)
	c.state.ActiveSessionID = c.pendingNamespace
	c.state.URL = ""
	c.state.FilePath = ""
	return true
}

// RevealNextSteps shows the continue-or-upload choice once the post-
// ingestion delay elapses. Dropped when stale or when the ingestion did
// not succeed.
func (c *Controller) RevealNextSteps(epoch uint64) bool {
	if epoch != c.epoch {
		return false
	}
	if c.state.IngestInFlight || c.state.Error != "" || len(c.state.StatusLines) == 0 {
		return false
	}
	c.state.ShowNextSteps = true
	return true
}

// =============================================================================
// QUERY SUBMISSION
// =============================================================================

// BeginQuery gates and packages one question. The returned epoch must be
// echoed to FinishQuery.
func (c *Controller) BeginQuery() (epoch uint64, req backend.QueryRequest, err error) {
	if c.state.QueryInFlight {
		return 0, backend.QueryRequest{}, ErrBusy
	}
	question := strings.TrimSpace(c.state.Question)
	if question == "" {
		return 0, backend.QueryRequest{}, ErrNoQuestion
	}
	if !c.state.Identity.CanQuery() {
		return 0, backend.QueryRequest{}, ErrNotQueryable
	}

	sessionID, isAdmin := c.state.Identity.QueryScope()

	c.state.QueryInFlight = true
	c.state.Error = ""
	c.state.Answer = ""
	c.state.AnswerSources = 0

	return c.epoch, backend.QueryRequest{
		Question:  question,
		SessionID: sessionID,
		IsAdmin:   isAdmin,
	}, nil
}

// FinishQuery applies the outcome of a question. The new answer replaces
// any previous one. Returns false when the outcome is stale and was
// dropped.
func (c *Controller) FinishQuery(epoch uint64, resp *backend.QueryResponse, callErr error) bool {
	if epoch != c.epoch {
		return false
	}
	c.state.QueryInFlight = false

	if callErr != nil {
		if backend.IsUnreachable(callErr) || backend.IsTimeout(callErr) {
			c.state.Error = MsgCannotConnect
		} else if backend.IsRejected(callErr) {
			c.state.Error = callErr.Error()
		} else {
			c.state.Error = MsgQueryFailed
		}
		return true
	}

	c.state.Answer = resp.Answer
	c.state.AnswerSources = resp.ContextCount
	return true
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
