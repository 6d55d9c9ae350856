package insights

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"soycraft-insights/internal/domain/logs"
	"soycraft-insights/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/context/{petID}", getContextHandler(svc))
	r.Post("/analyze", analyzeHandler(svc))
	r.Post("/breed-breakdown", breedBreakdownHandler(svc))
	r.Post("/chat", chatHandler(svc))
}

// contextResponse replica el shape del agregado para el frontend.
type contextResponse struct {
	Pet         contextPet          `json:"pet"`
	Food        []contextFood       `json:"food"`
	Poop        []contextStool      `json:"poop"`
	Supplements []contextSupplement `json:"supplements"`
	Notes       []contextNote       `json:"notes"`
}

type contextPet struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Species        string     `json:"species"`
	Breed          string     `json:"breed,omitempty"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	WeightKg       *float64   `json:"weight_kg,omitempty"`
	PhotoURL       string     `json:"photo_url,omitempty"`
	OwnerName      string     `json:"owner_name,omitempty"`
	MedicalHistory string     `json:"medical_history,omitempty"`
	Allergies      string     `json:"allergies,omitempty"`
}

type contextFood struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	AmountG  float64   `json:"amount_grams"`
	MealType string    `json:"meal_type,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

type contextStool struct {
	ID            string    `json:"id"`
	Consistency   string    `json:"consistency"`
	Color         string    `json:"color"`
	Moisture      string    `json:"moisture_level,omitempty"`
	BloodPresent  bool      `json:"blood_present"`
	MucusPresent  bool      `json:"mucus_present"`
	SmellLevel    int       `json:"smell_level,omitempty"`
	Behaviors     []string  `json:"undesirable_behaviors,omitempty"`
	BehaviorNotes string    `json:"undesirable_behavior_notes,omitempty"`
	LoggedAt      time.Time `json:"logged_at"`
}

type contextSupplement struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage,omitempty"`
	Frequency string    `json:"frequency,omitempty"`
	LoggedAt  time.Time `json:"logged_at"`
}

type contextNote struct {
	ID              string    `json:"id"`
	Summary         string    `json:"summary"`
	Recommendations string    `json:"recommendations,omitempty"`
	RiskLevel       string    `json:"risk_level"`
	OwnerMessage    string    `json:"owner_message,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// getContextHandler godoc
// @Summary Contexto agregado de una mascota
// @Description Perfil + últimos logs + últimas notas, tal como alimenta los
// @Description prompts. Se lee fresco del store en cada request.
// @Tags insights
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} contextResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /context/{petID} [get]
func getContextHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		pc, err := svc.Context(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writeInsightError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toContextResponse(pc))
	}
}

type analyzeRequest struct {
	PetID    string `json:"petId"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// analyzeHandler godoc
// @Summary Assessment de salud digestiva
// @Description Evalúa las reglas sobre los logs recientes, consulta el
// @Description modelo y persiste la nota resultante. El tier devuelto es el
// @Description derivado de reglas, no el que opine el modelo.
// @Tags insights
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body analyzeRequest true "petId y foto opcional"
// @Success 200 {object} Assessment
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /analyze [post]
func analyzeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		out, err := svc.Analyze(r.Context(), req.PetID, claims.UserID, req.ImageURL)
		if err != nil {
			writeInsightError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// breedBreakdownHandler godoc
// @Summary Desglose estimado de raza
// @Tags insights
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body analyzeRequest true "petId y foto opcional"
// @Success 200 {object} BreedBreakdown
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /breed-breakdown [post]
func breedBreakdownHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		out, err := svc.BreedBreakdown(r.Context(), req.PetID, claims.UserID, req.ImageURL)
		if err != nil {
			writeInsightError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type chatRequest struct {
	PetID    string        `json:"petId"`
	Messages []ChatMessage `json:"messages"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// chatHandler godoc
// @Summary Chat contextualizado sobre una mascota
// @Tags insights
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body chatRequest true "petId e historial completo"
// @Success 200 {object} chatResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /chat [post]
func chatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		reply, err := svc.Chat(r.Context(), req.PetID, claims.UserID, req.Messages)
		if err != nil {
			writeInsightError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
	}
}

func toContextResponse(pc PetContext) contextResponse {
	out := contextResponse{
		Pet: contextPet{
			ID:             pc.Pet.ID,
			Name:           pc.Pet.Name,
			Species:        pc.Pet.Species,
			Breed:          pc.Pet.Breed,
			BirthDate:      pc.Pet.BirthDate,
			WeightKg:       pc.Pet.WeightKg,
			PhotoURL:       pc.Pet.PhotoURL,
			OwnerName:      pc.Pet.OwnerName,
			MedicalHistory: pc.Pet.MedicalHistory,
			Allergies:      pc.Pet.Allergies,
		},
		Food:        make([]contextFood, 0, len(pc.Food)),
		Poop:        make([]contextStool, 0, len(pc.Stool)),
		Supplements: make([]contextSupplement, 0, len(pc.Supplements)),
		Notes:       make([]contextNote, 0, len(pc.Notes)),
	}

	for _, f := range pc.Food {
		out.Food = append(out.Food, contextFood{
			ID:       f.ID,
			Name:     f.FoodName,
			AmountG:  f.AmountG,
			MealType: string(f.MealType),
			LoggedAt: f.LoggedAt,
		})
	}
	for _, o := range pc.Stool {
		out.Poop = append(out.Poop, contextStool{
			ID:            o.ID,
			Consistency:   string(o.Consistency),
			Color:         string(o.Color),
			Moisture:      string(o.Moisture),
			BloodPresent:  o.BloodPresent,
			MucusPresent:  o.MucusPresent,
			SmellLevel:    o.SmellLevel,
			Behaviors:     behaviorStrings(o.Behaviors),
			BehaviorNotes: o.BehaviorNotes,
			LoggedAt:      o.LoggedAt,
		})
	}
	for _, sl := range pc.Supplements {
		out.Supplements = append(out.Supplements, contextSupplement{
			ID:        sl.ID,
			Name:      sl.SupplementName,
			Dosage:    sl.Dosage,
			Frequency: string(sl.Frequency),
			LoggedAt:  sl.LoggedAt,
		})
	}
	for _, n := range pc.Notes {
		out.Notes = append(out.Notes, contextNote{
			ID:              n.ID,
			Summary:         n.Summary,
			Recommendations: n.Recommendations,
			RiskLevel:       string(n.RiskLevel),
			OwnerMessage:    n.OwnerMessage,
			CreatedAt:       n.CreatedAt,
		})
	}
	return out
}

func behaviorStrings(in []logs.Behavior) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, b := range in {
		out = append(out, string(b))
	}
	return out
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeInsightError mapea los errores del pipeline al contrato HTTP: 400
// input inválido, 404 mascota ajena o inexistente, 500 modelo/parse/store
// con el mensaje visible para el cliente.
func writeInsightError(w http.ResponseWriter, err error) {
	var parseErr *ParseError
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrPetNotFound):
		writeError(w, http.StatusNotFound, "pet not found")
	case errors.As(err, &parseErr):
		writeError(w, http.StatusInternalServerError, parseErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
