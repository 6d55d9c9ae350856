package rewards

import (
	"encoding/json"
	"net/http"
	"strings"

	"soycraft-insights/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me/credits", getCreditsHandler(svc))
}

type creditsResponse struct {
	Credits int `json:"credits"`
}

// getCreditsHandler godoc
// @Summary Saldo de créditos del usuario
// @Tags rewards
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {object} creditsResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/credits [get]
func getCreditsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		total, err := svc.Balance(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, creditsResponse{Credits: total})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
