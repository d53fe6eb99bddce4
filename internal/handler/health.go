package handler

import "net/http"

// healthResponse is the body for GET /healthz.
type healthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /healthz. It reports liveness only; readiness against
// the database is covered by the startup ping in cmd/api.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
