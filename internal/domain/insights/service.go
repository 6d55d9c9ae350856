package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"soycraft-insights/internal/domain/assessments"
	"soycraft-insights/internal/domain/logs"
	"soycraft-insights/internal/domain/pets"
	"soycraft-insights/internal/domain/triage"
	"soycraft-insights/internal/ports/llm"

	"go.uber.org/zap"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrPetNotFound  = errors.New("pet not found")
	// ErrUpstream cubre fallas del modelo o del store al armar un insight.
	ErrUpstream = errors.New("upstream failure")
)

// Service orquesta el pipeline de insights: agrega contexto, evalúa reglas
// localmente, arma el prompt, llama al modelo UNA vez (sin reintentos: el
// caller decide si reintenta) y persiste la nota resultante.
type Service struct {
	pets  *pets.Service
	logs  *logs.Service
	notes *assessments.Service
	chat  llm.ChatCompleter
	log   *zap.Logger
	now   func() time.Time
}

func NewService(petsSvc *pets.Service, logsSvc *logs.Service, notesSvc *assessments.Service, chat llm.ChatCompleter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		pets:  petsSvc,
		logs:  logsSvc,
		notes: notesSvc,
		chat:  chat,
		log:   log,
		now:   time.Now,
	}
}

// Context expone el agregado crudo para GET /context/{petID}.
func (s *Service) Context(ctx context.Context, petID, userID string) (PetContext, error) {
	if strings.TrimSpace(petID) == "" {
		return PetContext{}, fmt.Errorf("%w: petId is required", ErrInvalidInput)
	}
	return s.fetchContext(ctx, petID, userID)
}

// Analyze corre el assessment completo sobre el contexto reciente de la
// mascota. El tier de riesgo que se persiste y se devuelve es SIEMPRE el
// local: si el modelo opina distinto se loggea y se pisa.
func (s *Service) Analyze(ctx context.Context, petID, userID, imageURL string) (Assessment, error) {
	if strings.TrimSpace(petID) == "" {
		return Assessment{}, fmt.Errorf("%w: petId is required", ErrInvalidInput)
	}

	pc, err := s.fetchContext(ctx, petID, userID)
	if err != nil {
		return Assessment{}, err
	}
	rag := ragSnippets(pc.Notes)

	triggered := triage.EvaluateBatch(pc.Stool)

	// Regla 11 (frecuencia) se mira sobre el día calendario en curso, no
	// sobre los últimos 3 logs.
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.logs.ListStool(ctx, petID, logs.ListFilter{From: &startOfDay, To: &now})
	if err != nil {
		return Assessment{}, fmt.Errorf("%w: stool logs: %v", ErrUpstream, err)
	}
	if cite, ok := triage.FrequencyCitation(len(today)); ok {
		triggered = append(triggered, cite)
	}

	esc := triage.Escalate(triggered)
	prompt := BuildTriagePrompt(pc, rag, triggered, esc)

	messages := []llm.Message{
		{Role: "system", Content: systemTriage},
		{Role: "user", Content: prompt},
	}
	if strings.TrimSpace(imageURL) != "" {
		messages = append(messages, llm.Message{
			Role:     "user",
			Content:  "Analyze the attached stool photo for additional signals.",
			ImageURL: imageURL,
		})
	}

	raw, err := s.chat.Complete(ctx, llm.CompletionRequest{
		Messages:    messages,
		Temperature: 0.2,
		JSONObject:  true,
	})
	if err != nil {
		return Assessment{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	parsed, err := ParseAssessment(raw)
	if err != nil {
		return Assessment{}, err
	}

	if parsed.RiskLevel != esc.RiskTier {
		s.log.Warn("model risk tier disagrees with rule evaluation, keeping local tier",
			zap.String("pet_id", petID),
			zap.String("model_tier", string(parsed.RiskLevel)),
			zap.String("local_tier", string(esc.RiskTier)))
		parsed.RiskLevel = esc.RiskTier
	}

	if _, err := s.notes.Create(ctx, petID, assessments.CreateInput{
		Summary:         parsed.Summary,
		Recommendations: parsed.Recommendations,
		RiskLevel:       parsed.RiskLevel,
		OwnerMessage:    parsed.OwnerMessage,
		TriggeredRules:  triage.Citations(triggered),
	}); err != nil {
		return Assessment{}, fmt.Errorf("%w: persist health note: %v", ErrUpstream, err)
	}

	return parsed, nil
}

// BreedBreakdown arma el desglose de raza estimado. No persiste nada: es
// un juguete informativo, no un dato clínico.
func (s *Service) BreedBreakdown(ctx context.Context, petID, userID, imageURL string) (BreedBreakdown, error) {
	if strings.TrimSpace(petID) == "" {
		return BreedBreakdown{}, fmt.Errorf("%w: petId is required", ErrInvalidInput)
	}

	pc, err := s.fetchContext(ctx, petID, userID)
	if err != nil {
		return BreedBreakdown{}, err
	}

	visualURL := strings.TrimSpace(imageURL)
	if visualURL == "" {
		visualURL = pc.Pet.PhotoURL
	}

	messages := []llm.Message{
		{Role: "system", Content: systemBreed},
		{Role: "user", Content: BuildBreedPrompt(pc)},
	}
	if visualURL != "" {
		messages = append(messages, llm.Message{
			Role:     "user",
			Content:  "Here is the most recent pet photo. Incorporate clear visual cues if visible.",
			ImageURL: visualURL,
		})
	}

	raw, err := s.chat.Complete(ctx, llm.CompletionRequest{
		Messages:    messages,
		Temperature: 0.4,
		JSONObject:  true,
	})
	if err != nil {
		return BreedBreakdown{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return ParseBreedBreakdown(raw)
}

// ChatMessage es un turno del historial que manda el cliente. El servidor
// no guarda conversaciones: el historial viaja completo en cada request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat responde un turno de conversación contextualizada.
func (s *Service) Chat(ctx context.Context, petID, userID string, history []ChatMessage) (string, error) {
	if strings.TrimSpace(petID) == "" || history == nil {
		return "", fmt.Errorf("%w: petId and messages are required", ErrInvalidInput)
	}

	pc, err := s.fetchContext(ctx, petID, userID)
	if err != nil {
		return "", err
	}
	rag := ragSnippets(pc.Notes)

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: "system", Content: buildChatSystem(pc, rag)})
	messages = append(messages, sanitizeChatMessages(history)...)

	raw, err := s.chat.Complete(ctx, llm.CompletionRequest{
		Messages:    messages,
		Temperature: 0.35,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	reply := strings.TrimSpace(raw)
	if reply == "" {
		return "", fmt.Errorf("%w: empty model reply", ErrUpstream)
	}
	return reply, nil
}
