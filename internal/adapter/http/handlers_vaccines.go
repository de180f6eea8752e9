package adapthttp

import (
	"net/http"

	"petcare/internal/app"
	"petcare/internal/domain"
)

func (s *Server) handleListVaccines(w http.ResponseWriter, r *http.Request) {
	items, err := s.Vaccines.List(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": nonNil(items)})
}

func (s *Server) handleUpcomingVaccines(w http.ResponseWriter, r *http.Request) {
	items, err := s.Vaccines.Upcoming(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": nonNil(items)})
}

func (s *Server) handleVaccineStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Vaccines.Stats(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleCreateVaccine(w http.ResponseWriter, r *http.Request) {
	var form domain.VaccineForm
	if err := parseJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	v, err := s.Vaccines.Create(r.Context(), currentUser(r).ID, form)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleGetVaccine(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	v, err := s.Vaccines.Get(r.Context(), currentUser(r).ID, id)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleUpdateVaccine(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var form domain.VaccineForm
	if err := parseJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	v, err := s.Vaccines.Update(r.Context(), currentUser(r).ID, id, form)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDeleteVaccine(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.Vaccines.Delete(r.Context(), currentUser(r).ID, id); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func nonNil(items []app.VaccineView) []app.VaccineView {
	if items == nil {
		return []app.VaccineView{}
	}
	return items
}
