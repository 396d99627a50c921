package httputil

import (
	"encoding/json"
	"net/http"

	"academic-service/internal/validation"
)

// ValidationResponse is the body returned for struct tag violations.
type ValidationResponse struct {
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors"`
}

// RespondWithError writes an error response in JSON format
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// RespondWithValidation writes a 400 with the itemized field messages
func RespondWithValidation(w http.ResponseWriter, errs validation.Errors) {
	RespondWithJSON(w, http.StatusBadRequest, ValidationResponse{
		Message: "Validation failed",
		Errors:  errs,
	})
}

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// DecodeAndValidate decodes a JSON body into dst and checks its struct tags.
// It writes the 400 response itself and reports whether the caller may go on.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v *validation.Validator, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := v.Struct(dst); err != nil {
		if fieldErrs, ok := err.(validation.Errors); ok {
			RespondWithValidation(w, fieldErrs)
			return false
		}
		RespondWithError(w, http.StatusBadRequest, "invalid request")
		return false
	}
	return true
}
