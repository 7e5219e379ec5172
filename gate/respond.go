package gate

import (
	"encoding/json"
	"net/http"
)

// errorBody is the JSON shape of a rejection response.
type errorBody struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Required []string `json:"required,omitempty"`
	Current  []string `json:"current,omitempty"`
}

// WriteError writes a gate rejection as a JSON response. Errors that are
// not *Error are reported as an internal error without leaking detail.
func WriteError(w http.ResponseWriter, err error) {
	body := errorBody{Code: "INTERNAL", Message: "internal error"}
	status := http.StatusInternalServerError

	if ge, ok := err.(*Error); ok {
		status = ge.Status
		body = errorBody{
			Code:     ge.Code,
			Message:  ge.Message,
			Required: ge.Required,
			Current:  ge.Current,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
