package wellness

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"soycraft-insights/internal/domain/assessments"
	"soycraft-insights/internal/domain/logs"
	"soycraft-insights/internal/domain/pets"
	"soycraft-insights/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, logsSvc *logs.Service, petsSvc *pets.Service, notesSvc *assessments.Service) {
	r.Get("/pets/{petID}/wellness", getWellnessHandler(logsSvc, petsSvc, notesSvc))
	r.Get("/pets/{petID}/trend", getTrendHandler(logsSvc, petsSvc))
}

// getWellnessHandler godoc
// @Summary Radar de bienestar
// @Description Computa los cinco sub-scores sobre la ventana pedida (por
// @Description defecto 1 día). Derivado puro: se recomputa en cada request.
// @Tags wellness
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param days query int false "Ventana en días (1-31). Por defecto 1"
// @Success 200 {object} ScoreSet
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/wellness [get]
func getWellnessHandler(logsSvc *logs.Service, petsSvc *pets.Service, notesSvc *assessments.Service) http.HandlerFunc {
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

		days := 1
		if v := r.URL.Query().Get("days"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 31 {
				days = n
			}
		}

		now := time.Now()
		window := logs.Since(now, days)

		food, err := logsSvc.ListFood(r.Context(), petID, window)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		stool, err := logsSvc.ListStool(r.Context(), petID, window)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		supps, err := logsSvc.ListSupplements(r.Context(), petID, window)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		// Mediciones sin recorte de ventana: growth compara las dos últimas.
		measurements, err := logsSvc.ListMeasurements(r.Context(), petID, logs.ListFilter{Limit: 10})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		in := ScoreInput{
			RangeDays:    days,
			Food:         food,
			Stool:        stool,
			Supplements:  supps,
			Measurements: measurements,
		}
		if latest, err := notesSvc.Latest(r.Context(), petID); err == nil && latest != nil {
			risk := latest.RiskLevel
			in.LatestRisk = &risk
		}

		writeJSON(w, http.StatusOK, Scores(in))
	}
}

// getTrendHandler godoc
// @Summary Trend de frecuencia y aspecto para el dashboard
// @Tags wellness
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} Trend
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/trend [get]
func getTrendHandler(logsSvc *logs.Service, petsSvc *pets.Service) http.HandlerFunc {
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

		now := time.Now()
		stool, err := logsSvc.ListStool(r.Context(), petID, logs.Since(now, 8))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, BuildTrend(now, stool))
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
