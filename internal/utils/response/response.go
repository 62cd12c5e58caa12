package response

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorBody is the failure envelope: a single human-readable error string.
type ErrorBody struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(data)
}

func Error(err error) ErrorBody {
	return ErrorBody{Error: err.Error()}
}

func ValidationError(errs validator.ValidationErrors) ErrorBody {
	var errorMessages string
	for _, err := range errs {
		errorMessages += err.Field() + ": " + err.Tag() + "; "
	}

	return ErrorBody{Error: errorMessages}
}
