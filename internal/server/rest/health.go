package rest

import (
	"context"
	"net/http"
	"time"
)

const healthTimeout = 2 * time.Second

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error(r.Context(), "store ping failed", "error", err.Error())
		writeProblem(w, http.StatusServiceUnavailable, "Store unavailable.")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
