package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vlemaire/flashdeck/internal/errors"
	"github.com/vlemaire/flashdeck/internal/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const maxBodyBytes = 1 << 20 // 1 MiB

// decodeJSON decodes and validates a JSON request body into dst. Unknown
// fields and oversized bodies are rejected.
func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError(fmt.Sprintf("invalid request body: %v", err))
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			field := strings.ToLower(fieldErrs[0].Field())
			return errors.NewValidationError(field, fmt.Sprintf("failed %q constraint", fieldErrs[0].Tag()))
		}
		return errors.NewBadRequestError("invalid request body")
	}
	return nil
}

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}
