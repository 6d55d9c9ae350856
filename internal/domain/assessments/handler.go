package assessments

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"soycraft-insights/internal/domain/pets"
	"soycraft-insights/internal/domain/triage"
	"soycraft-insights/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Get("/pets/{petID}/notes", listNotesHandler(svc, petsSvc))
}

// noteResponse representa un assessment devuelto por la API.
type noteResponse struct {
	ID              string          `json:"id"`
	PetID           string          `json:"pet_id"`
	Summary         string          `json:"summary"`
	Recommendations string          `json:"recommendations,omitempty"`
	RiskLevel       triage.RiskTier `json:"risk_level"`
	OwnerMessage    string          `json:"owner_message,omitempty"`
	TriggeredRules  []string        `json:"triggered_rules,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// listNotesHandler godoc
// @Summary Historia de assessments de una mascota
// @Description Devuelve las notas de salud generadas, más reciente primero.
// @Tags assessments
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param limit query int false "Máximo de notas (1-100). Por defecto 20"
// @Success 200 {array} noteResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/notes [get]
func listNotesHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.GetOwned(r.Context(), petID, claims.UserID); err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		limit := 20
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		items, err := svc.ListByPet(r.Context(), petID, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]noteResponse, 0, len(items))
		for _, n := range items {
			out = append(out, toNoteResponse(n))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toNoteResponse(n HealthNote) noteResponse {
	return noteResponse{
		ID:              n.ID,
		PetID:           n.PetID,
		Summary:         n.Summary,
		Recommendations: n.Recommendations,
		RiskLevel:       n.RiskLevel,
		OwnerMessage:    n.OwnerMessage,
		TriggeredRules:  n.TriggeredRules,
		CreatedAt:       n.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
