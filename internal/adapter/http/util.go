package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"bmitracker/internal/app"
	"bmitracker/internal/domain"
)

// Notices shown to the user alongside an error.
const (
	noticeUserExists   = "User already exists!"
	noticeInvalidInput = "Invalid input"
	noticeSelectUser   = "Select a user!"
	noticeNoData       = "No data to show!"
	noticeBadDate      = "Date parsing failed"
	noticeInternal     = "Something went wrong"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status and notice. Unexpected errors are logged
// and their message is not exposed.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, notice := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		msg = "internal error"
	}
	writeJSON(w, status, map[string]any{"error": msg, "notice": notice})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, noticeUserExists
	case errors.Is(err, domain.ErrInvalidInput):
		var ie *app.InputError
		if errors.As(err, &ie) && ie.Field == "user" {
			return http.StatusBadRequest, noticeSelectUser
		}
		return http.StatusBadRequest, noticeInvalidInput
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, noticeSelectUser
	case errors.Is(err, domain.ErrNoData):
		return http.StatusNotFound, noticeNoData
	case errors.Is(err, domain.ErrBadDate):
		return http.StatusInternalServerError, noticeBadDate
	default:
		return http.StatusInternalServerError, noticeInternal
	}
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
