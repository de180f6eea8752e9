package adapthttp

import (
	"net/http"

	"petcare/internal/domain"
)

func (s *Server) handleListPets(w http.ResponseWriter, r *http.Request) {
	items, err := s.Pets.List(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.Pet{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCreatePet(w http.ResponseWriter, r *http.Request) {
	var form domain.PetForm
	if err := parseJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pet, err := s.Pets.Create(r.Context(), currentUser(r).ID, form)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, pet)
}

func (s *Server) handleGetPet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pet, err := s.Pets.Get(r.Context(), currentUser(r).ID, id)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

func (s *Server) handleUpdatePet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var form domain.PetForm
	if err := parseJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pet, err := s.Pets.Update(r.Context(), currentUser(r).ID, id, form)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

func (s *Server) handleDeletePet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.Pets.Delete(r.Context(), currentUser(r).ID, id); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
