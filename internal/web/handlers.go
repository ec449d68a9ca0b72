package web

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/colonyops/dialogview/internal/core/dialog"
	"github.com/colonyops/dialogview/internal/core/viewer"
	"github.com/colonyops/dialogview/pkg/iojson"
)

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

type pageData struct {
	Title     string
	Location  string
	PrevLabel string
	NextLabel string
	Surface   viewer.Surface
}

type listResponse struct {
	Source  string           `json:"source"`
	Phase   string           `json:"phase"`
	Total   int              `json:"total"`
	Dialogs []dialog.Summary `json:"dialogs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"phase":  s.viewer.State().Phase.String(),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, 0)
}

func (s *Server) handleDialog(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.renderPage(w, r, index)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, index int) {
	surface, ok := s.surface(index)
	if !ok {
		http.NotFound(w, r)
		return
	}

	title, _ := surface.Title()
	data := pageData{
		Title:     title,
		Location:  s.opts.Location,
		PrevLabel: viewer.PrevLabel,
		NextLabel: viewer.NextLabel,
		Surface:   surface,
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.log.Error().Err(err).Int("index", index).Msg("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleAPIList(w http.ResponseWriter, _ *http.Request) {
	st := s.viewer.State()
	if st.Phase == viewer.PhaseFailed {
		s.writeError(w, http.StatusServiceUnavailable, viewer.ErrorPrefix+st.Err.Error())
		return
	}

	dialogs := st.Dialogs.Summaries()
	s.writeJSON(w, http.StatusOK, listResponse{
		Source:  s.opts.Location,
		Phase:   st.Phase.String(),
		Total:   len(dialogs),
		Dialogs: dialogs,
	})
}

func (s *Server) handleAPIDialog(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, "invalid dialog index")
		return
	}

	surface, ok := s.surface(index)
	if !ok {
		s.writeError(w, http.StatusNotFound, "dialog index out of range")
		return
	}

	status := http.StatusOK
	if s.viewer.State().Phase == viewer.PhaseFailed {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, surface)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, obj any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := iojson.Write(w, obj); err != nil {
		s.log.Error().Err(err).Msg("write json")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = iojson.WriteError(w, msg, map[string]any{"status": status})
}

func indexParam(r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, false
	}
	return index, true
}
