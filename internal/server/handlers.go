package server

import (
	"encoding/json"
	"net/http"

	"github.com/kamipad/stash/internal/app"
	"github.com/kamipad/stash/internal/logging"
	"go.uber.org/zap"
)

type indexData struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, indexData{
		Name:        app.Name,
		Version:     app.Version,
		Description: app.Description,
	})
}

func (s *Server) logs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.app.AllLogs())
}

// logByRequest returns the entries logged by an earlier request, or an
// empty list when the id is unknown, malformed or expired.
func (s *Server) logByRequest(w http.ResponseWriter, r *http.Request) {
	log := Logger(r.Context())
	entries := []logging.Entry{}

	id, ok := logging.ParseRequestID(r.PathValue("req"))
	if !ok {
		log.Debug("malformed request id", zap.String("req", r.PathValue("req")))
		writeJSON(w, r, entries)
		return
	}

	cache := s.app.RequestLogs()
	cache.Purge()
	if saved, ok := cache.Get(id); ok {
		entries = saved
	} else {
		log.Debug("no logs for request", zap.Stringer("req", id))
	}
	writeJSON(w, r, entries)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Logger(r.Context()).Warn("write response", zap.Error(err))
	}
}
