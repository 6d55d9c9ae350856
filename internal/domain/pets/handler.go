package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"soycraft-insights/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
	})
}

// createPetRequest es el cuerpo para registrar una mascota.
type createPetRequest struct {
	Name           string   `json:"name"`
	Handle         string   `json:"handle"`
	Species        string   `json:"species" enums:"dog,cat"`
	Breed          string   `json:"breed"`
	Sex            string   `json:"sex" enums:"male,female,unknown"`
	BirthDate      string   `json:"birth_date"` // YYYY-MM-DD opcional
	WeightKg       *float64 `json:"weight_kg"`
	PhotoURL       string   `json:"photo_url"`
	OwnerName      string   `json:"owner_name"`
	MedicalHistory string   `json:"medical_history"`
	Allergies      string   `json:"allergies"`
	Notes          string   `json:"notes"`
}

// petResponse representa el perfil de mascota devuelto por la API.
type petResponse struct {
	ID             string     `json:"id"`
	OwnerUserID    string     `json:"owner_user_id"`
	Name           string     `json:"name"`
	Handle         string     `json:"handle"`
	Species        string     `json:"species"`
	Breed          string     `json:"breed"`
	Sex            string     `json:"sex"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	WeightKg       *float64   `json:"weight_kg,omitempty"`
	PhotoURL       string     `json:"photo_url,omitempty"`
	OwnerName      string     `json:"owner_name,omitempty"`
	MedicalHistory string     `json:"medical_history,omitempty"`
	Allergies      string     `json:"allergies,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name           *string  `json:"name"`
	Handle         *string  `json:"handle"`
	Species        *string  `json:"species"`
	Breed          *string  `json:"breed"`
	Sex            *string  `json:"sex"`
	BirthDate      *string  `json:"birth_date"` // YYYY-MM-DD
	WeightKg       *float64 `json:"weight_kg"`
	PhotoURL       *string  `json:"photo_url"`
	OwnerName      *string  `json:"owner_name"`
	MedicalHistory *string  `json:"medical_history"`
	Allergies      *string  `json:"allergies"`
	Notes          *string  `json:"notes"`
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea el perfil de una mascota para el usuario autenticado.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body createPetRequest true "Datos de la mascota; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:           req.Name,
			Handle:         req.Handle,
			Species:        req.Species,
			Breed:          req.Breed,
			Sex:            req.Sex,
			BirthDate:      bd,
			WeightKg:       req.WeightKg,
			PhotoURL:       req.PhotoURL,
			OwnerName:      req.OwnerName,
			MedicalHistory: req.MedicalHistory,
			Allergies:      req.Allergies,
			Notes:          req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} petResponse
// @Failure 401 {string} string "unauthorized"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver perfil de mascota
// @Tags pets
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetOwned(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			// No revelamos si el pet existe pero es de otro usuario.
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota (PATCH)
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar; omitidos = sin cambios"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:           req.Name,
			Handle:         req.Handle,
			Species:        req.Species,
			Breed:          req.Breed,
			Sex:            req.Sex,
			WeightKg:       req.WeightKg,
			PhotoURL:       req.PhotoURL,
			OwnerName:      req.OwnerName,
			MedicalHistory: req.MedicalHistory,
			Allergies:      req.Allergies,
			Notes:          req.Notes,
		}
		if req.BirthDate != nil {
			t, err := time.Parse("2006-01-02", *req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.BirthDate = &t
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), claims.UserID, in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:             p.ID,
		OwnerUserID:    p.OwnerUserID,
		Name:           p.Name,
		Handle:         p.Handle,
		Species:        p.Species,
		Breed:          p.Breed,
		Sex:            p.Sex,
		BirthDate:      p.BirthDate,
		WeightKg:       p.WeightKg,
		PhotoURL:       p.PhotoURL,
		OwnerName:      p.OwnerName,
		MedicalHistory: p.MedicalHistory,
		Allergies:      p.Allergies,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
