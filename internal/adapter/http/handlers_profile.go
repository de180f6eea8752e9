package adapthttp

import (
	"net/http"

	"go.uber.org/zap"

	"petcare/internal/domain"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.Profile.Get(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var form domain.ProfileForm
	if err := parseJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	user, err := s.Profile.Update(r.Context(), currentUser(r).ID, form)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var form domain.PasswordChangeForm
	if err := parseJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.Auth.ChangePassword(r.Context(), currentUser(r).ID, form); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := currentUser(r).ID
	if err := s.Auth.DeleteAccount(r.Context(), id); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	s.log.Info("account deleted", zap.Int64("user_id", id))
	clearSessionCookie(w, r)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
