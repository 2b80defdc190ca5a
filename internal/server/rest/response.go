package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/server/auth"
)

const (
	msgInternal     = "Internal server error."
	msgNotFound     = "Resource not found."
	msgUnauthorized = "Invalid username or password."
	msgBodyTooLarge = "Request body too large."
)

// problem is the body of every failed response.
type problem struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type insertedResponse struct {
	InsertedID string `json:"inserted_id"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, problem{Error: http.StatusText(status), Message: message})
}

// writeError maps err onto a status and a structured body. Internal errors
// are logged and never echoed to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *auth.AuthError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &ae):
		writeJSON(w, ae.Status(), problem{Error: ae.Label(), Message: ae.Message()})
	case errors.As(err, &tooLarge):
		writeProblem(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
	case errors.Is(err, common.ErrorValidation):
		writeProblem(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		writeProblem(w, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, common.ErrorNotFound):
		writeProblem(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, common.ErrorConflict):
		writeProblem(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
		writeProblem(w, http.StatusInternalServerError, msgInternal)
	}
}
