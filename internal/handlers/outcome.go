package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-inventory/internal/apperr"
	"github.com/sbilibin2017/gw-inventory/internal/logger"
)

// Outcome is what a handler decided to do with a request: Success, Redirect
// or Rejected, plus CSVFile for attachments.
type Outcome interface {
	Write(w http.ResponseWriter)
}

// Success renders Body as JSON with Status. A nil Body writes no content.
type Success struct {
	Status int
	Body   any
}

// Redirect sends the client to Location with 303 See Other, after setting
// Cookies. Body, when present, is rendered as JSON for API clients.
type Redirect struct {
	Location string
	Cookies  []*http.Cookie
	Body     any
}

// Rejected reports a failed request.
type Rejected struct {
	Status  int
	Message string
	Fields  map[string]string
}

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: invalid request body
	Error string `json:"error"`

	// Field level messages for validation errors
	Fields map[string]string `json:"fields,omitempty"`
}

func (o Success) Write(w http.ResponseWriter) {
	if o.Body == nil {
		w.WriteHeader(o.Status)
		return
	}
	writeJSON(w, o.Status, o.Body)
}

func (o Redirect) Write(w http.ResponseWriter) {
	for _, c := range o.Cookies {
		http.SetCookie(w, c)
	}
	w.Header().Set("Location", o.Location)
	if o.Body == nil {
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusSeeOther, o.Body)
}

func (o Rejected) Write(w http.ResponseWriter) {
	writeJSON(w, o.Status, ErrorResponse{Error: o.Message, Fields: o.Fields})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorw("failed to encode response", "error", err)
	}
}

// handle adapts an Outcome-producing function to an http.HandlerFunc.
func handle(fn func(r *http.Request) Outcome) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(r).Write(w)
	}
}

func badRequest(message string) Rejected {
	return Rejected{Status: http.StatusBadRequest, Message: message}
}

func internalError(err error, msg string, keysAndValues ...any) Rejected {
	logger.Log.Errorw(msg, append(keysAndValues, "error", err)...)
	return Rejected{Status: http.StatusInternalServerError, Message: "internal server error"}
}

// rejectError maps an error category to a Rejected outcome. Uncategorised
// errors are logged and become a 500.
func rejectError(err error, msg string, keysAndValues ...any) Rejected {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		return Rejected{Status: http.StatusBadRequest, Message: "validation error", Fields: verr.Fields}
	case errors.Is(err, apperr.ErrConflict):
		return Rejected{Status: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, apperr.ErrNotFound):
		return Rejected{Status: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, apperr.ErrAuthentication):
		return Rejected{Status: http.StatusUnauthorized, Message: err.Error()}
	}
	return internalError(err, msg, keysAndValues...)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
