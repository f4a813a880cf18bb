// Package respond holds the JSON helpers shared by all feature handlers.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/slatetrack/slatetrack/internal/app/state"
	"github.com/slatetrack/slatetrack/internal/app/system/limits"
	projectstore "github.com/slatetrack/slatetrack/internal/app/store/projects"
	workitemstore "github.com/slatetrack/slatetrack/internal/app/store/workitems"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error body with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Decode unmarshals the request body into v, capped at the standard
// JSON body limit. On failure it writes a 400 and reports false.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	return DecodeMax(w, r, v, limits.MaxJSONBody)
}

// DecodeMax is Decode with a caller-chosen body cap. Oversized bodies
// get a 413 instead of a 400.
func DecodeMax(w http.ResponseWriter, r *http.Request, v any, max int64) bool {
	body := http.MaxBytesReader(w, r.Body, max)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// DomainError writes err with the HTTP status it maps to.
func DomainError(w http.ResponseWriter, err error) {
	Error(w, StatusFor(err), err.Error())
}

// StatusFor maps domain errors onto HTTP status codes. Unknown errors
// are treated as internal.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, state.ErrNoActor),
		errors.Is(err, state.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, state.ErrCannotManageUsers),
		errors.Is(err, state.ErrCannotAssignRole),
		errors.Is(err, state.ErrCannotRemoveUser),
		errors.Is(err, state.ErrCannotRemoveSelf),
		errors.Is(err, state.ErrCannotCreateProjects),
		errors.Is(err, state.ErrCannotEditProject),
		errors.Is(err, state.ErrCannotCreateTickets),
		errors.Is(err, state.ErrCannotEditTickets):
		return http.StatusForbidden

	case errors.Is(err, state.ErrUserNotFound),
		errors.Is(err, projectstore.ErrProjectNotFound),
		errors.Is(err, workitemstore.ErrWorkItemNotFound):
		return http.StatusNotFound

	case errors.Is(err, state.ErrDuplicateEmail),
		errors.Is(err, state.ErrDuplicateUsername),
		errors.Is(err, state.ErrAlreadyMember),
		errors.Is(err, state.ErrAlreadyInvited),
		errors.Is(err, state.ErrCreatorIsMember),
		errors.Is(err, state.ErrCannotRemoveCreator),
		errors.Is(err, projectstore.ErrDuplicateProjectID),
		errors.Is(err, workitemstore.ErrDuplicateWorkItemID):
		return http.StatusConflict

	case errors.Is(err, state.ErrUserFieldsRequired),
		errors.Is(err, state.ErrInvalidPosition),
		errors.Is(err, state.ErrPasswordMismatch),
		errors.Is(err, state.ErrNotPublicProject),
		errors.Is(err, state.ErrEmptyComment),
		errors.Is(err, projectstore.ErrProjectIDRequired),
		errors.Is(err, projectstore.ErrProjectNameRequired),
		errors.Is(err, workitemstore.ErrTitleRequired),
		errors.Is(err, workitemstore.ErrInvalidState):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
