/*
handlers.go - HTTP handlers for the exam results portal

PURPOSE:
  Exposes the lookup service and the admin import panel over a JSON API.
  Handles HTTP request/response and delegates everything else to the
  exam package.

ENDPOINTS:
  Public:
    POST   /api/lookup          Look up a result by national ID (rate limited)
    GET    /api/health          Liveness check

  Admin (session cookie + CSRF required):
    POST   /api/admin/login     Authenticate, issue session + CSRF cookies
    POST   /api/admin/logout    Clear session
    GET    /api/admin/status    Stored record count
    GET    /api/admin/template  Download the xlsx import template
    POST   /api/admin/import    Upload an xlsx file (multipart, "file" field,
                                optional "wipe" form value)

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Empty lookup key, no valid rows, malformed request body
  - 401: Missing/invalid session
  - 403: CSRF failure
  - 404: Result not found
  - 422: Upload not decodable as a spreadsheet
  - 500: Storage failures (atomicity means nothing was written)

SEE ALSO:
  - dto.go: Request/response data structures
  - auth.go: Session and CSRF middleware
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/artexam/results-portal/exam"
)

// maxUploadBytes caps import uploads at 10MB.
const maxUploadBytes = 10 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Lookup     *exam.LookupService
	Reconciler *exam.Reconciler
	Store      exam.Store
	Auth       *Auth
}

// NewHandler creates a new handler over the given store and admin config.
func NewHandler(store exam.Store, auth *Auth) *Handler {
	return &Handler{
		Lookup:     exam.NewLookupService(store),
		Reconciler: exam.NewReconciler(store),
		Store:      store,
		Auth:       auth,
	}
}

// =============================================================================
// PUBLIC HANDLERS
// =============================================================================

// HandleLookup returns the result for a national ID.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.Lookup.Lookup(r.Context(), req.NationalID)
	switch {
	case errors.Is(err, exam.ErrEmptyNationalID):
		writeError(w, http.StatusBadRequest, "Please enter a national ID", nil)
		return
	case errors.Is(err, exam.ErrNotFound):
		writeError(w, http.StatusNotFound, "No result found for this national ID", nil)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Lookup failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toResultDTO(result))
}

// HandleHealth is the liveness check.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// HandleLogin authenticates the admin and issues the session cookies.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required", nil)
		return
	}

	if !h.Auth.Authenticate(req.Username, req.Password) {
		writeError(w, http.StatusUnauthorized, "Wrong username or password", nil)
		return
	}

	token, csrf, expires, err := h.Auth.IssueSession()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session", err)
		return
	}

	setSessionCookies(w, token, csrf, expires)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleLogout clears the session cookies.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookies(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleStatus reports the number of stored results.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	n, err := h.Store.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count results", err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Results: n})
}

// HandleTemplate streams the xlsx import template.
func (h *Handler) HandleTemplate(w http.ResponseWriter, r *http.Request) {
	f, err := buildTemplate()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build template", err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Disposition", `attachment; filename="mau_import_ket_qua.xlsx"`)
	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(w); err != nil {
		// Headers already sent; nothing more to do than log upstream
		return
	}
}

// HandleImport decodes an uploaded spreadsheet and runs the import pipeline.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart upload", err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Please attach an .xlsx file", err)
		return
	}
	defer file.Close()

	rows, err := decodeRows(file)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "File could not be read as a spreadsheet", err)
		return
	}

	wipe := r.FormValue("wipe") != ""
	summary, err := h.Reconciler.Import(r.Context(), rows, wipe)
	switch {
	case errors.Is(err, exam.ErrNoValidRows):
		writeError(w, http.StatusBadRequest, "File contains no valid rows", nil)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Import failed, nothing was written", err)
		return
	}

	writeJSON(w, http.StatusOK, ImportResponse{
		Accepted:   summary.Accepted,
		Mismatched: summary.Mismatched,
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
