package adapthttp

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"petcare/internal/app"
	"petcare/internal/domain"
)

const stateCookie = "oauth_state"

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sso_enabled": s.sso != nil,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var form domain.RegistrationForm
	if err := parseJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := s.Auth.Register(r.Context(), form)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}

	s.metrics.IncRegistrations()
	s.log.Info("account registered", zap.Int64("user_id", user.ID))
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	token, err := s.Auth.Login(r.Context(), req.Email, req.Password, r.UserAgent(), clientIP(r))
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}

	s.setSessionCookie(w, r, token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := s.Auth.Logout(r.Context(), cookie.Value); err != nil {
			s.log.Warn("logout failed", zap.Error(err))
		}
	}

	clearSessionCookie(w, r)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	if s.sso == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "sso disabled"})
		return
	}
	state := generateState()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode, // Lax required for cross-site redirect returns
		MaxAge:   300,
	})
	http.Redirect(w, r, s.sso.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleSSOCallback(w http.ResponseWriter, r *http.Request) {
	if s.sso == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "sso disabled"})
		return
	}

	state, err := r.Cookie(stateCookie)
	if err != nil || state.Value == "" || r.URL.Query().Get("state") != state.Value {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid state"})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, MaxAge: -1, Path: "/"})

	email, err := s.sso.Email(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		s.log.Warn("sso callback rejected", zap.Error(err))
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "sso login failed"})
		return
	}

	token, err := s.Auth.LoginWithSSO(r.Context(), email, r.UserAgent(), clientIP(r))
	if errors.Is(err, app.ErrAccountNotFound) {
		http.Redirect(w, r, "/auth/register?sso=unknown", http.StatusFound)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	s.setSessionCookie(w, r, token)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.Auth.SessionTTL().Seconds()),
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		MaxAge:   -1,
	})
}
