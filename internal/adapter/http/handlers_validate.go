package adapthttp

import (
	"net/http"

	"petcare/internal/validation"
)

// The validate endpoints back per-keystroke form feedback and never fail on
// content, only on malformed JSON.

func (s *Server) handleValidatePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, validation.Password(req.Password))
}

func (s *Server) handleValidateCPF(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CPF string `json:"cpf"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":     validation.CPF(req.CPF),
		"formatted": validation.FormatCPF(req.CPF),
	})
}
