package server

import (
	"encoding/json"
	"net/http"

	"github.com/matsen/labsite/internal/theme"
)

type themeResponse struct {
	Mode      string `json:"mode"`
	BodyClass string `json:"body_class"`
	Checked   bool   `json:"checked"`
}

type themeRequest struct {
	Checked *bool `json:"checked"`
}

// themeFor loads the requesting visitor's theme. Store failures fall back to light mode.
func (s *Server) themeFor(r *http.Request) *theme.Context {
	tc := theme.NewContext(s.themes.Scope(VisitorID(r.Context())))
	if err := tc.Load(r.Context()); err != nil {
		s.logger.WithError(err).Warn("loading theme preference")
	}
	return tc
}

func themeJSON(tc *theme.Context) themeResponse {
	return themeResponse{Mode: tc.Mode().String(), BodyClass: tc.BodyClass(), Checked: tc.Checked()}
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeJSON(s.themeFor(r)))
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Checked == nil {
		writeError(w, http.StatusBadRequest, `body must be {"checked": true|false}`)
		return
	}

	tc := s.themeFor(r)
	if err := tc.Toggle(r.Context(), *req.Checked); err != nil {
		s.logger.WithError(err).Error("saving theme preference")
		writeError(w, http.StatusInternalServerError, "saving theme preference failed")
		return
	}
	writeJSON(w, http.StatusOK, themeJSON(tc))
}
