package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pantry/internal/middleware"
	"pantry/internal/model"
	"pantry/internal/validator"

	"github.com/rs/zerolog"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Str("code", code).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: middleware.GetRequestID(r.Context()),
	})
}

// writeResult reports the outcome of a mutating operation. Domain errors are
// reported as {success:false, message} with status 200; anything else is an
// internal error.
func writeResult(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	if err == nil {
		writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		logger.Debug().Str("code", domainErr.Code).Msg(domainErr.Message)
		writeJSON(w, http.StatusOK, model.SuccessResponse{Success: false, Message: domainErr.Message})
		return
	}

	logger.Error().Err(err).Msg("operation failed")
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// requireMethod rejects the request with 405 unless it uses method. HEAD is
// accepted wherever GET is.
func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger zerolog.Logger) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	allow := method
	if method == http.MethodGet {
		allow = "GET, HEAD"
	}
	w.Header().Set("Allow", allow)
	writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", logger)
	return false
}

// decodeAndValidate decodes the JSON body into dst and validates it. On
// failure it writes a 400 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			writeValidationError(w, r, []model.FieldError{typeFieldError(typeErr)}, logger)
			return false
		}

		message := "invalid request body"
		if errors.Is(err, io.EOF) {
			message = "request body is empty"
		}
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, message, logger)
		return false
	}

	if fields := validator.ValidateStruct(dst); len(fields) > 0 {
		writeValidationError(w, r, fields, logger)
		return false
	}

	return true
}

func writeValidationError(w http.ResponseWriter, r *http.Request, fields []model.FieldError, logger zerolog.Logger) {
	logger.Debug().Interface("fields", fields).Msg("request validation failed")
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
		Error:         model.ErrCodeValidationFailed,
		Message:       "request validation failed",
		Fields:        fields,
		CorrelationID: middleware.GetRequestID(r.Context()),
	})
}

// typeFieldError names the field whose JSON value had the wrong type. The
// decoder reports nested paths with dots, e.g. "ingredients.egg".
func typeFieldError(err *json.UnmarshalTypeError) model.FieldError {
	field := err.Field
	if field == "" {
		field = "body"
	}
	return model.FieldError{Field: field, Tag: "type", Param: err.Value}
}
