package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matsen/labsite/internal/contact"
)

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if s.contact == nil {
		writeError(w, http.StatusServiceUnavailable, "contact form is not configured")
		return
	}

	var form contact.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	receipt, err := s.contact.Submit(r.Context(), form)
	var verrs contact.ValidationErrors
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, receipt)
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": verrs})
	case errors.Is(err, contact.ErrNoEndpoint):
		writeError(w, http.StatusServiceUnavailable, "contact form is not configured")
	default:
		s.logger.WithError(err).WithField("status", contact.StatusCode(err)).Error("forwarding contact form")
		writeError(w, http.StatusBadGateway, "message could not be delivered, please try again later")
	}
}
