// internal/app/features/errors/logger.go
package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/assisberlanda/sousolidario/internal/app/system/apperr"
	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
	"github.com/assisberlanda/sousolidario/internal/app/system/inputval"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// validationBody is the 400 body for failed input.
type validationBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// ErrorLogger logs handler failures and writes the matching JSON response.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	fs := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		fs = append(fs, zap.String("request_id", id))
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	return fs
}

// LogServerError logs err at error level and answers 500 with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Error(msg, e.fields(r, err)...)
	if userMsg == "" {
		userMsg = "An internal error occurred."
	}
	httpjson.Message(w, http.StatusInternalServerError, "internal", userMsg)
}

// LogBadRequest logs err at warn level and answers 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Warn(msg, e.fields(r, err)...)
	httpjson.Message(w, http.StatusBadRequest, "bad_request", userMsg)
}

// LogForbidden logs the refusal at info level and answers 403.
func (e *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, msg string) {
	e.Log.Info(msg, e.fields(r, nil)...)
	RenderForbidden(w, r, "")
}

// Respond maps a service error to its HTTP response:
//
//	validation            → 400 with per-field messages
//	malformed body        → 400
//	apperr.ErrNotFound    → 404
//	apperr.ErrForbidden   → 403
//	transition / conflict → 409
//	anything else         → 500, logged
//
// op names the failed operation in the log entry.
func (e *ErrorLogger) Respond(w http.ResponseWriter, r *http.Request, op string, err error) {
	if res, ok := inputval.AsValidation(err); ok {
		httpjson.Write(w, http.StatusBadRequest, validationBody{
			Error:   "validation",
			Message: res.First(),
			Fields:  res.Fields(),
		})
		return
	}
	switch {
	case stderrors.Is(err, httpjson.ErrBadBody):
		e.LogBadRequest(w, r, op+": bad body", err, "The request body is not valid JSON for this endpoint.")
	case stderrors.Is(err, apperr.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "not_found", err.Error())
	case stderrors.Is(err, apperr.ErrForbidden):
		RenderForbidden(w, r, "")
	case stderrors.Is(err, apperr.ErrInvalidTransition):
		httpjson.Message(w, http.StatusConflict, "invalid_transition", err.Error())
	case stderrors.Is(err, apperr.ErrConflict):
		httpjson.Message(w, http.StatusConflict, "conflict", err.Error())
	default:
		e.LogServerError(w, r, op+" failed", err, "")
	}
}
