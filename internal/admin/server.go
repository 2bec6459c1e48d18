package admin

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"director-sim/internal/sim"
)

// Server exposes a small operator UI and JSON API over a running match.
type Server struct {
	Runner *sim.Runner
	tpl    *template.Template
	mux    *http.ServeMux
}

//go:embed templates/index.html
var content embed.FS

func NewServer(runner *sim.Runner) *Server {
	funcs := template.FuncMap{
		"pct": func(v float64) int { return int(v * 100) },
	}
	tpl := template.Must(template.New("index.html").Funcs(funcs).ParseFS(content, "templates/index.html"))
	s := &Server{Runner: runner, tpl: tpl, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/status", s.handleStatus)
	s.mux.HandleFunc("/history", s.handleHistory)
	s.mux.HandleFunc("/set-difficulty", s.handleSetDifficulty)
	s.mux.HandleFunc("/toggle-adaptive", s.handleToggleAdaptive)
	s.mux.HandleFunc("/reset-round", s.handleResetRound)
}

// Handler returns the server's routing handler.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.tpl.Execute(w, s.Runner.Status())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Runner.Status())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Runner.Director().History())
}

func (s *Server) handleSetDifficulty(w http.ResponseWriter, r *http.Request) {
	profile := r.URL.Query().Get("profile")
	if profile == "" {
		http.Error(w, "profile parameter required", http.StatusBadRequest)
		return
	}
	s.Runner.SetProfile(profile)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"profile": s.Runner.Status().Profile})
}

func (s *Server) handleToggleAdaptive(w http.ResponseWriter, r *http.Request) {
	state := s.Runner.ToggleAdaptive()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"adaptive": state})
}

func (s *Server) handleResetRound(w http.ResponseWriter, r *http.Request) {
	s.Runner.ResetRound()
	w.WriteHeader(http.StatusNoContent)
}
