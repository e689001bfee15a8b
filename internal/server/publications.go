package server

import (
	"errors"
	"net/http"

	"github.com/matsen/labsite/internal/chain"
	"github.com/matsen/labsite/internal/orcid"
	"github.com/matsen/labsite/internal/publication"
	"github.com/matsen/labsite/internal/render"
)

type publicationsResponse struct {
	ORCID        string                    `json:"orcid"`
	State        chain.State               `json:"state"`
	Provider     string                    `json:"provider,omitempty"`
	Publications []publication.Publication `json:"publications"`
	Stages       []chain.StageResult       `json:"stages"`
	Trace        []chain.State             `json:"trace"`
}

func (s *Server) orcidParam(r *http.Request) string {
	if v := r.URL.Query().Get("orcid"); v != "" {
		return v
	}
	return s.cfg.DefaultORCID
}

func (s *Server) handlePublicationsJSON(w http.ResponseWriter, r *http.Request) {
	id, err := orcid.Validate(s.orcidParam(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := s.runner.Run(r.Context(), id)
	pubs := render.Sort(res.Publications)
	if pubs == nil {
		pubs = []publication.Publication{}
	}
	writeJSON(w, http.StatusOK, publicationsResponse{
		ORCID:        id,
		State:        res.State,
		Provider:     res.Provider,
		Publications: pubs,
		Stages:       res.Stages,
		Trace:        res.Trace,
	})
}

func (s *Server) newPanel(r *http.Request) *render.Panel {
	tc := s.themeFor(r)
	return render.NewPanel(
		render.WithSearchForm("/fragments/publications"),
		render.WithSampleAction("/fragments/publications/sample"),
		render.WithBodyClass(tc.BodyClass()),
	)
}

func (s *Server) handlePublicationsFragment(w http.ResponseWriter, r *http.Request) {
	panel := s.newPanel(r)
	status := http.StatusOK

	if input := s.orcidParam(r); input != "" {
		_, err := render.NewLoader(s.runner).Search(r.Context(), panel, input)
		switch {
		case errors.Is(err, orcid.ErrInvalidID):
			status = http.StatusBadRequest
		case err != nil:
			s.logger.WithError(err).Error("rendering publications")
			http.Error(w, "rendering publications failed", http.StatusInternalServerError)
			return
		}
	}

	s.writePanel(w, status, panel)
}

func (s *Server) handleSampleFragment(w http.ResponseWriter, r *http.Request) {
	panel := s.newPanel(r)
	if err := panel.LoadSamples(); err != nil {
		s.logger.WithError(err).Error("rendering sample publications")
		http.Error(w, "rendering publications failed", http.StatusInternalServerError)
		return
	}
	s.writePanel(w, http.StatusOK, panel)
}

func (s *Server) writePanel(w http.ResponseWriter, status int, panel *render.Panel) {
	html, err := panel.HTML()
	if err != nil {
		s.logger.WithError(err).Error("rendering publications section")
		http.Error(w, "rendering publications failed", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, html)
}
