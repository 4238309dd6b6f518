package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/strivehq/strive/internal/apperr"
)

// statusOf maps an application error code onto an HTTP status.
func statusOf(err error) int {
	switch apperr.CodeOf(err) {
	case apperr.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperr.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperr.CodePermissionDenied:
		return http.StatusForbidden
	case apperr.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError surfaces caller errors verbatim and hides infrastructure
// failures behind a generic message. Internal errors are logged here so the
// callers don't have to.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		message = "something went wrong"
	}
	writeJSON(w, status, map[string]string{"error": message})
}

// redirectError sends the browser back to target with the message encoded
// in the error query parameter.
func redirectError(w http.ResponseWriter, r *http.Request, target string, err error) {
	message := err.Error()
	if statusOf(err) == http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		message = "something went wrong"
	}
	http.Redirect(w, r, target+"?error="+url.QueryEscape(message), http.StatusSeeOther)
}

// formString reports a field as a pointer so handlers can distinguish an
// omitted field (nil) from one submitted empty. Callers must have parsed
// the form already.
func formString(r *http.Request, key string) *string {
	values, ok := r.Form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// formInt parses an optional integer field. Absence and parse failures both
// collapse to nil ("unset"); an explicit "0" survives as zero, which
// matters for duration where zero means unbounded.
func formInt(r *http.Request, key string) *int {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func formFloat(r *http.Request, key string) *float64 {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func formBool(r *http.Request, key string) *bool {
	values, ok := r.Form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	b := values[0] == "true" || values[0] == "on" || values[0] == "1"
	return &b
}
