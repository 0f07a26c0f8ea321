package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"luct-reporting/internal/apperr"
)

// validate is the shared request validator. Repository list methods always
// return initialized slices, so responses never carry null where an array is
// expected.
var validate = validator.New()

// respondWithJSON writes payload as a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondWithError writes a JSON error envelope
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]any{
		"success": false,
		"error":   message,
	})
}

// respondServiceError translates a service error into an HTTP response.
// Internal errors are logged and reported with a generic message so details
// never leak to clients.
func respondServiceError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		slog.Error("Request handling failed", "error", err)
	}
	respondWithError(w, kind.Status(), apperr.MessageOf(err))
}

// pathID parses the named path parameter as an unsigned integer, writing the
// error response itself on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 32)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return 0, false
	}
	return uint(id), true
}

// decodeAndValidate decodes the request body into dst and runs struct
// validation, writing the error response itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
