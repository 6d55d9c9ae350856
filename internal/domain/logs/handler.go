package logs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"soycraft-insights/internal/domain/pets"
	"soycraft-insights/internal/domain/rewards"
	"soycraft-insights/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service, rewardsSvc *rewards.Service) {
	r.Route("/pets/{petID}/logs", func(lr chi.Router) {
		lr.Post("/food", createFoodHandler(svc, petsSvc, rewardsSvc))
		lr.Get("/food", listFoodHandler(svc, petsSvc))
		lr.Delete("/food/{logID}", deleteLogHandler(svc, petsSvc, KindFood))

		lr.Post("/stool", createStoolHandler(svc, petsSvc, rewardsSvc))
		lr.Get("/stool", listStoolHandler(svc, petsSvc))
		lr.Delete("/stool/{logID}", deleteLogHandler(svc, petsSvc, KindStool))

		lr.Post("/supplements", createSupplementHandler(svc, petsSvc, rewardsSvc))
		lr.Get("/supplements", listSupplementsHandler(svc, petsSvc))
		lr.Delete("/supplements/{logID}", deleteLogHandler(svc, petsSvc, KindSupplement))

		lr.Post("/measurements", createMeasurementHandler(svc, petsSvc, rewardsSvc))
		lr.Get("/measurements", listMeasurementsHandler(svc, petsSvc))
		lr.Delete("/measurements/{logID}", deleteLogHandler(svc, petsSvc, KindMeasurement))
	})
}

// photoMetaRequest es la metadata declarada del adjunto (se valida server-side
// aunque el cliente ya haya validado: tipo imagen, ≤5MB).
type photoMetaRequest struct {
	PhotoURL         string `json:"photo_url"`
	PhotoContentType string `json:"photo_content_type"`
	PhotoSizeBytes   int64  `json:"photo_size_bytes"`
}

func (p photoMetaRequest) toMeta() PhotoMeta {
	return PhotoMeta{
		URL:         p.PhotoURL,
		ContentType: p.PhotoContentType,
		SizeBytes:   p.PhotoSizeBytes,
	}
}

type createFoodRequest struct {
	FoodName   string   `json:"food_name"`
	AmountG    float64  `json:"amount_grams"`
	MealType   MealType `json:"meal_type" enums:"breakfast,lunch,dinner,snack"`
	Calories   *float64 `json:"calories"`
	ProteinPct *float64 `json:"protein_percent"`
	FatPct     *float64 `json:"fat_percent"`
	CarbPct    *float64 `json:"carb_percent"`
	Notes      string   `json:"notes"`
	LoggedAt   string   `json:"logged_at"` // RFC3339 opcional
	photoMetaRequest
}

type foodLogResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	FoodName   string    `json:"food_name"`
	AmountG    float64   `json:"amount_grams"`
	MealType   MealType  `json:"meal_type"`
	Calories   *float64  `json:"calories,omitempty"`
	ProteinPct *float64  `json:"protein_percent,omitempty"`
	FatPct     *float64  `json:"fat_percent,omitempty"`
	CarbPct    *float64  `json:"carb_percent,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	LoggedAt   time.Time `json:"logged_at"`
	RecordedAt time.Time `json:"recorded_at"`
}

type createStoolRequest struct {
	Consistency   Consistency `json:"consistency" enums:"regular,soft,sticky,hard,diarrhea"`
	Color         Color       `json:"color" enums:"brown,dark_brown,light_brown,black,red,green,yellow,orange,white,grey,clay"`
	Amount        Amount      `json:"amount" enums:"small,medium,large"`
	Moisture      Moisture    `json:"moisture_level" enums:"dry,normal,wet"`
	BloodPresent  bool        `json:"blood_present"`
	MucusPresent  bool        `json:"mucus_present"`
	SmellLevel    int         `json:"smell_level"` // 1-5
	Behaviors     []Behavior  `json:"undesirable_behaviors"`
	BehaviorNotes string      `json:"undesirable_behavior_notes"`
	UserRating    int         `json:"user_rating"` // 1-10
	Location      string      `json:"location"`
	Notes         string      `json:"notes"`
	LoggedAt      string      `json:"logged_at"` // RFC3339 opcional
	photoMetaRequest
}

type stoolLogResponse struct {
	ID            string      `json:"id"`
	PetID         string      `json:"pet_id"`
	Consistency   Consistency `json:"consistency"`
	Color         Color       `json:"color"`
	Amount        Amount      `json:"amount,omitempty"`
	Moisture      Moisture    `json:"moisture_level,omitempty"`
	BloodPresent  bool        `json:"blood_present"`
	MucusPresent  bool        `json:"mucus_present"`
	SmellLevel    int         `json:"smell_level,omitempty"`
	Behaviors     []Behavior  `json:"undesirable_behaviors,omitempty"`
	BehaviorNotes string      `json:"undesirable_behavior_notes,omitempty"`
	UserRating    int         `json:"user_rating,omitempty"`
	Location      string      `json:"location,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	PhotoURL      string      `json:"photo_url,omitempty"`
	LoggedAt      time.Time   `json:"logged_at"`
	RecordedAt    time.Time   `json:"recorded_at"`
}

type createSupplementRequest struct {
	SupplementName string              `json:"supplement_name"`
	Dosage         string              `json:"dosage"`
	Frequency      SupplementFrequency `json:"frequency" enums:"daily,weekly,as_needed"`
	Purpose        string              `json:"purpose"`
	Notes          string              `json:"notes"`
	LoggedAt       string              `json:"logged_at"`
	photoMetaRequest
}

type supplementLogResponse struct {
	ID             string              `json:"id"`
	PetID          string              `json:"pet_id"`
	SupplementName string              `json:"supplement_name"`
	Dosage         string              `json:"dosage,omitempty"`
	Frequency      SupplementFrequency `json:"frequency"`
	Purpose        string              `json:"purpose,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	PhotoURL       string              `json:"photo_url,omitempty"`
	LoggedAt       time.Time           `json:"logged_at"`
	RecordedAt     time.Time           `json:"recorded_at"`
}

type createMeasurementRequest struct {
	WeightKg     *float64 `json:"weight_kg"`
	NeckCm       *float64 `json:"neck_cm"`
	ChestCm      *float64 `json:"chest_cm"`
	BodyLengthCm *float64 `json:"body_length_cm"`
	Notes        string   `json:"notes"`
	LoggedAt     string   `json:"logged_at"`
}

type measurementLogResponse struct {
	ID           string    `json:"id"`
	PetID        string    `json:"pet_id"`
	WeightKg     *float64  `json:"weight_kg,omitempty"`
	NeckCm       *float64  `json:"neck_cm,omitempty"`
	ChestCm      *float64  `json:"chest_cm,omitempty"`
	BodyLengthCm *float64  `json:"body_length_cm,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	LoggedAt     time.Time `json:"logged_at"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// requireOwnedPet resuelve claims + ownership. Devuelve userID vacío si ya respondió.
func requireOwnedPet(w http.ResponseWriter, r *http.Request, petsSvc *pets.Service) (petID, userID string) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", ""
	}

	petID = chi.URLParam(r, "petID")
	if _, err := petsSvc.GetOwned(r.Context(), petID, claims.UserID); err != nil {
		http.Error(w, "pet not found", http.StatusNotFound)
		return "", ""
	}
	return petID, claims.UserID
}

// createFoodHandler godoc
// @Summary Registrar comida
// @Tags logs
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param payload body createFoodRequest true "Datos de la comida"
// @Success 201 {object} foodLogResponse
// @Failure 400 {string} string "invalid json / foto inválida / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/logs/food [post]
func createFoodHandler(svc *Service, petsSvc *pets.Service, rewardsSvc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, userID := requireOwnedPet(w, r, petsSvc)
		if userID == "" {
			return
		}

		var req createFoodRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		loggedAt, ok := parseLoggedAt(w, req.LoggedAt)
		if !ok {
			return
		}

		l, err := svc.CreateFood(r.Context(), petID, CreateFoodInput{
			FoodName:   req.FoodName,
			AmountG:    req.AmountG,
			MealType:   req.MealType,
			Calories:   req.Calories,
			ProteinPct: req.ProteinPct,
			FatPct:     req.FatPct,
			CarbPct:    req.CarbPct,
			Notes:      req.Notes,
			Photo:      req.toMeta(),
			LoggedAt:   loggedAt,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rewardsSvc.Award(r.Context(), userID, rewards.ActivityFoodLog, map[string]string{"log_id": l.ID})

		writeJSON(w, http.StatusCreated, toFoodResponse(l))
	}
}

// createStoolHandler godoc
// @Summary Registrar deposición
// @Description Crea una observación de deposición. Los campos opcionales no
// @Description registrados simplemente no participan de la evaluación de reglas.
// @Tags logs
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param payload body createStoolRequest true "Observación"
// @Success 201 {object} stoolLogResponse
// @Failure 400 {string} string "invalid json / foto inválida / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/logs/stool [post]
func createStoolHandler(svc *Service, petsSvc *pets.Service, rewardsSvc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, userID := requireOwnedPet(w, r, petsSvc)
		if userID == "" {
			return
		}

		var req createStoolRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		loggedAt, ok := parseLoggedAt(w, req.LoggedAt)
		if !ok {
			return
		}

		l, err := svc.CreateStool(r.Context(), petID, CreateStoolInput{
			Consistency:   req.Consistency,
			Color:         req.Color,
			Amount:        req.Amount,
			Moisture:      req.Moisture,
			BloodPresent:  req.BloodPresent,
			MucusPresent:  req.MucusPresent,
			SmellLevel:    req.SmellLevel,
			Behaviors:     req.Behaviors,
			BehaviorNotes: req.BehaviorNotes,
			UserRating:    req.UserRating,
			Location:      req.Location,
			Notes:         req.Notes,
			Photo:         req.toMeta(),
			LoggedAt:      loggedAt,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rewardsSvc.Award(r.Context(), userID, rewards.ActivityStoolLog, map[string]string{"log_id": l.ID})

		writeJSON(w, http.StatusCreated, toStoolResponse(l))
	}
}

// createSupplementHandler godoc
// @Summary Registrar suplemento
// @Tags logs
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param payload body createSupplementRequest true "Datos del suplemento"
// @Success 201 {object} supplementLogResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/logs/supplements [post]
func createSupplementHandler(svc *Service, petsSvc *pets.Service, rewardsSvc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, userID := requireOwnedPet(w, r, petsSvc)
		if userID == "" {
			return
		}

		var req createSupplementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		loggedAt, ok := parseLoggedAt(w, req.LoggedAt)
		if !ok {
			return
		}

		l, err := svc.CreateSupplement(r.Context(), petID, CreateSupplementInput{
			SupplementName: req.SupplementName,
			Dosage:         req.Dosage,
			Frequency:      req.Frequency,
			Purpose:        req.Purpose,
			Notes:          req.Notes,
			Photo:          req.toMeta(),
			LoggedAt:       loggedAt,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rewardsSvc.Award(r.Context(), userID, rewards.ActivitySupplementLog, map[string]string{"log_id": l.ID})

		writeJSON(w, http.StatusCreated, toSupplementResponse(l))
	}
}

// createMeasurementHandler godoc
// @Summary Registrar medición corporal
// @Tags logs
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param payload body createMeasurementRequest true "Mediciones; al menos una con valor"
// @Success 201 {object} measurementLogResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/logs/measurements [post]
func createMeasurementHandler(svc *Service, petsSvc *pets.Service, rewardsSvc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, userID := requireOwnedPet(w, r, petsSvc)
		if userID == "" {
			return
		}

		var req createMeasurementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		loggedAt, ok := parseLoggedAt(w, req.LoggedAt)
		if !ok {
			return
		}

		l, err := svc.CreateMeasurement(r.Context(), petID, CreateMeasurementInput{
			WeightKg:     req.WeightKg,
			NeckCm:       req.NeckCm,
			ChestCm:      req.ChestCm,
			BodyLengthCm: req.BodyLengthCm,
			Notes:        req.Notes,
			LoggedAt:     loggedAt,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rewardsSvc.Award(r.Context(), userID, rewards.ActivityMeasurementLog, map[string]string{"log_id": l.ID})

		writeJSON(w, http.StatusCreated, toMeasurementResponse(l))
	}
}

// listFoodHandler godoc
// @Summary Listar comidas
// @Tags logs
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param days query int false "Ventana en días hacia atrás"
// @Param limit query int false "Máximo de registros (1-200). Por defecto 50"
// @Success 200 {array} foodLogResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/logs/food [get]
func listFoodHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, userID := requireOwnedPet(w, r, petsSvc)
		if userID == "" {
			return
		}

		items, err := svc.ListFood(r.Context(), petID, parseListFilter(r))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]foodLogResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toFoodResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listStoolHandler godoc
// @Summary Listar deposiciones
// @Tags logs
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param days query int false "Ventana en días hacia atrás"
// @Param limit query int false "Máximo de registros (1-200). Por defecto 50"
// @Success 200 {array} stoolLogResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/logs/stool [get]
func listStoolHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, userID := requireOwnedPet(w, r, petsSvc)
		if userID == "" {
			return
		}

		items, err := svc.ListStool(r.Context(), petID, parseListFilter(r))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]stoolLogResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toStoolResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listSupplementsHandler godoc
// @Summary Listar suplementos
// @Tags logs
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param days query int false "Ventana en días hacia atrás"
// @Param limit query int false "Máximo de registros (1-200). Por defecto 50"
// @Success 200 {array} supplementLogResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/logs/supplements [get]
func listSupplementsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, userID := requireOwnedPet(w, r, petsSvc)
		if userID == "" {
			return
		}

		items, err := svc.ListSupplements(r.Context(), petID, parseListFilter(r))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]supplementLogResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toSupplementResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listMeasurementsHandler godoc
// @Summary Listar mediciones
// @Tags logs
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param days query int false "Ventana en días hacia atrás"
// @Param limit query int false "Máximo de registros (1-200). Por defecto 50"
// @Success 200 {array} measurementLogResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/logs/measurements [get]
func listMeasurementsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, userID := requireOwnedPet(w, r, petsSvc)
		if userID == "" {
			return
		}

		items, err := svc.ListMeasurements(r.Context(), petID, parseListFilter(r))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]measurementLogResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toMeasurementResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// deleteLogHandler godoc
// @Summary Borrar un registro
// @Description Borrado explícito por el dueño; los assessments ya creados no se tocan.
// @Tags logs
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param logID path string true "ID del registro"
// @Success 204 {string} string "sin contenido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "log not found"
// @Router /pets/{petID}/logs/{kind}/{logID} [delete]
func deleteLogHandler(svc *Service, petsSvc *pets.Service, kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, userID := requireOwnedPet(w, r, petsSvc)
		if userID == "" {
			return
		}

		if err := svc.Delete(r.Context(), kind, petID, chi.URLParam(r, "logID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "log not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func parseLoggedAt(w http.ResponseWriter, raw string) (time.Time, bool) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		http.Error(w, "logged_at must be RFC3339", http.StatusBadRequest)
		return time.Time{}, false
	}
	return t, true
}

func parseListFilter(r *http.Request) ListFilter {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	filter := ListFilter{Limit: limit}

	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			from := time.Now().AddDate(0, 0, -n)
			filter.From = &from
		}
	}

	return filter
}

func toFoodResponse(l FoodLog) foodLogResponse {
	return foodLogResponse{
		ID:         l.ID,
		PetID:      l.PetID,
		FoodName:   l.FoodName,
		AmountG:    l.AmountG,
		MealType:   l.MealType,
		Calories:   l.Calories,
		ProteinPct: l.ProteinPct,
		FatPct:     l.FatPct,
		CarbPct:    l.CarbPct,
		Notes:      l.Notes,
		PhotoURL:   l.PhotoURL,
		LoggedAt:   l.LoggedAt,
		RecordedAt: l.RecordedAt,
	}
}

func toStoolResponse(l StoolLog) stoolLogResponse {
	return stoolLogResponse{
		ID:            l.ID,
		PetID:         l.PetID,
		Consistency:   l.Consistency,
		Color:         l.Color,
		Amount:        l.Amount,
		Moisture:      l.Moisture,
		BloodPresent:  l.BloodPresent,
		MucusPresent:  l.MucusPresent,
		SmellLevel:    l.SmellLevel,
		Behaviors:     l.Behaviors,
		BehaviorNotes: l.BehaviorNotes,
		UserRating:    l.UserRating,
		Location:      l.Location,
		Notes:         l.Notes,
		PhotoURL:      l.PhotoURL,
		LoggedAt:      l.LoggedAt,
		RecordedAt:    l.RecordedAt,
	}
}

func toSupplementResponse(l SupplementLog) supplementLogResponse {
	return supplementLogResponse{
		ID:             l.ID,
		PetID:          l.PetID,
		SupplementName: l.SupplementName,
		Dosage:         l.Dosage,
		Frequency:      l.Frequency,
		Purpose:        l.Purpose,
		Notes:          l.Notes,
		PhotoURL:       l.PhotoURL,
		LoggedAt:       l.LoggedAt,
		RecordedAt:     l.RecordedAt,
	}
}

func toMeasurementResponse(l MeasurementLog) measurementLogResponse {
	return measurementLogResponse{
		ID:           l.ID,
		PetID:        l.PetID,
		WeightKg:     l.WeightKg,
		NeckCm:       l.NeckCm,
		ChestCm:      l.ChestCm,
		BodyLengthCm: l.BodyLengthCm,
		Notes:        l.Notes,
		LoggedAt:     l.LoggedAt,
		RecordedAt:   l.RecordedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
