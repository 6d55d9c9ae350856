package insights

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	mem "soycraft-insights/internal/adapters/storage/memory"
	"soycraft-insights/internal/domain/assessments"
	"soycraft-insights/internal/domain/logs"
	"soycraft-insights/internal/domain/pets"
	"soycraft-insights/internal/domain/triage"
	"soycraft-insights/internal/ports/llm"
)

// fakeChat devuelve respuestas en orden y captura los requests.
type fakeChat struct {
	responses []string
	err       error
	calls     []llm.CompletionRequest
}

func (f *fakeChat) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("fakeChat: no responses left")
	}
	out := f.responses[0]
	f.responses = f.responses[1:]
	return out, nil
}

type fixture struct {
	svc   *Service
	pets  *pets.Service
	logs  *logs.Service
	notes *assessments.Service
	chat  *fakeChat
	petID string
}

const testOwner = "owner-1"

func newFixture(t *testing.T, chat *fakeChat) *fixture {
	t.Helper()

	petsSvc := pets.NewService(mem.NewPetRepo())
	logsSvc := logs.NewService(mem.NewLogsRepo())
	notesSvc := assessments.NewService(mem.NewNotesRepo())

	p, err := petsSvc.Create(context.Background(), testOwner, pets.CreateInput{
		Name:    "Milo",
		Species: "dog",
		Breed:   "mixed",
	})
	if err != nil {
		t.Fatalf("create pet: %v", err)
	}

	return &fixture{
		svc:   NewService(petsSvc, logsSvc, notesSvc, chat, nil),
		pets:  petsSvc,
		logs:  logsSvc,
		notes: notesSvc,
		chat:  chat,
		petID: p.ID,
	}
}

func (f *fixture) addStool(t *testing.T, mutate func(*logs.CreateStoolInput)) {
	t.Helper()

	in := logs.CreateStoolInput{
		Consistency: logs.ConsistencyRegular,
		Color:       logs.ColorBrown,
		LoggedAt:    time.Now().Add(-1 * time.Hour),
	}
	if mutate != nil {
		mutate(&in)
	}
	if _, err := f.logs.CreateStool(context.Background(), f.petID, in); err != nil {
		t.Fatalf("create stool log: %v", err)
	}
}

func validModelResponse(tier string) string {
	return `{"summary":"Summary here.","recommendations":"Rule findings. ` +
		triage.SafetySentence + `","riskLevel":"` + tier + `","ownerMessage":"msg"}`
}

func TestAnalyze_PersistsNoteWithLocalTier(t *testing.T) {
	chat := &fakeChat{responses: []string{validModelResponse("normal")}}
	f := newFixture(t, chat)

	// una observación negra => regla 3 => watch local; el modelo dice normal
	f.addStool(t, func(in *logs.CreateStoolInput) { in.Color = logs.ColorBlack })

	got, err := f.svc.Analyze(context.Background(), f.petID, testOwner, "")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if got.RiskLevel != triage.RiskWatch {
		t.Fatalf("local tier must win: expected watch, got %s", got.RiskLevel)
	}

	notes, err := f.notes.ListByPet(context.Background(), f.petID, 10)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected one persisted note, got %d", len(notes))
	}
	if notes[0].RiskLevel != triage.RiskWatch {
		t.Fatalf("persisted tier must be local: expected watch, got %s", notes[0].RiskLevel)
	}
	if len(notes[0].TriggeredRules) != 1 || !strings.HasPrefix(notes[0].TriggeredRules[0], "Rule 3") {
		t.Fatalf("expected Rule 3 citation, got %v", notes[0].TriggeredRules)
	}
}

func TestAnalyze_RequestShape(t *testing.T) {
	chat := &fakeChat{responses: []string{validModelResponse("normal")}}
	f := newFixture(t, chat)

	if _, err := f.svc.Analyze(context.Background(), f.petID, testOwner, "https://cdn/photo.jpg"); err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if len(chat.calls) != 1 {
		t.Fatalf("expected exactly one model call, got %d", len(chat.calls))
	}
	req := chat.calls[0]
	if !req.JSONObject {
		t.Fatalf("analyze must request a JSON object response")
	}
	if req.Temperature != 0.2 {
		t.Fatalf("expected temperature 0.2, got %v", req.Temperature)
	}
	if len(req.Messages) != 3 {
		t.Fatalf("expected system+prompt+image messages, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "system" {
		t.Fatalf("first message must be system, got %q", req.Messages[0].Role)
	}
	if req.Messages[2].ImageURL != "https://cdn/photo.jpg" {
		t.Fatalf("image url not forwarded: %q", req.Messages[2].ImageURL)
	}
}

func TestAnalyze_ParseFailureDoesNotPersist(t *testing.T) {
	chat := &fakeChat{responses: []string{`{"summary":"ok"}`}}
	f := newFixture(t, chat)

	_, err := f.svc.Analyze(context.Background(), f.petID, testOwner, "")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}

	notes, _ := f.notes.ListByPet(context.Background(), f.petID, 10)
	if len(notes) != 0 {
		t.Fatalf("a failed parse must not persist a note, got %d", len(notes))
	}
}

func TestAnalyze_UpstreamFailure_NoRetry(t *testing.T) {
	chat := &fakeChat{err: errors.New("boom")}
	f := newFixture(t, chat)

	_, err := f.svc.Analyze(context.Background(), f.petID, testOwner, "")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if len(chat.calls) != 1 {
		t.Fatalf("must not retry: expected 1 call, got %d", len(chat.calls))
	}
}

func TestAnalyze_UnownedPet_NotFound(t *testing.T) {
	chat := &fakeChat{responses: []string{validModelResponse("normal")}}
	f := newFixture(t, chat)

	_, err := f.svc.Analyze(context.Background(), f.petID, "someone-else", "")
	if !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("expected ErrPetNotFound for foreign pet, got %v", err)
	}
	if len(chat.calls) != 0 {
		t.Fatalf("the model must not be called for a foreign pet")
	}
}

func TestAnalyze_MissingPetID(t *testing.T) {
	f := newFixture(t, &fakeChat{})

	_, err := f.svc.Analyze(context.Background(), "", testOwner, "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnalyze_FrequencyRuleFromTodayCount(t *testing.T) {
	chat := &fakeChat{responses: []string{validModelResponse("watch")}}
	f := newFixture(t, chat)

	noon := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return noon }

	// cinco deposiciones sanas hoy: ninguna regla por observación, pero
	// dispara la 11 por frecuencia
	for i := 0; i < 5; i++ {
		at := noon.Add(-time.Duration(i+1) * time.Hour)
		f.addStool(t, func(in *logs.CreateStoolInput) { in.LoggedAt = at })
	}

	got, err := f.svc.Analyze(context.Background(), f.petID, testOwner, "")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if got.RiskLevel != triage.RiskWatch {
		t.Fatalf("one rule (11) should yield watch, got %s", got.RiskLevel)
	}

	notes, _ := f.notes.ListByPet(context.Background(), f.petID, 10)
	if len(notes) != 1 || len(notes[0].TriggeredRules) != 1 || !strings.HasPrefix(notes[0].TriggeredRules[0], "Rule 11") {
		t.Fatalf("expected Rule 11 citation, got %+v", notes)
	}
}

func TestAnalyze_FrequencyWindowIsCalendarDay(t *testing.T) {
	chat := &fakeChat{responses: []string{validModelResponse("normal")}}
	f := newFixture(t, chat)

	// 01:00 de la madrugada: las deposiciones de ayer a la noche quedan
	// fuera aunque estén dentro de las últimas 24 horas
	early := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return early }

	for i := 0; i < 5; i++ {
		at := time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC).Add(-time.Duration(i) * time.Minute)
		f.addStool(t, func(in *logs.CreateStoolInput) { in.LoggedAt = at })
	}

	got, err := f.svc.Analyze(context.Background(), f.petID, testOwner, "")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if got.RiskLevel != triage.RiskNormal {
		t.Fatalf("yesterday's logs must not trigger the frequency rule, got %s", got.RiskLevel)
	}

	notes, _ := f.notes.ListByPet(context.Background(), f.petID, 10)
	if len(notes) != 1 || len(notes[0].TriggeredRules) != 0 {
		t.Fatalf("expected a note without citations, got %+v", notes)
	}
}

func TestBreedBreakdown_UsesPetPhotoWhenNoImageGiven(t *testing.T) {
	breed := `{"breakdown":[{"label":"Mixed","percentage":100,"traits":"sturdy"}],"originStory":"s","watchouts":[]}`
	chat := &fakeChat{responses: []string{breed}}
	f := newFixture(t, chat)

	photo := "https://cdn/profile.jpg"
	if _, err := f.pets.Update(context.Background(), f.petID, testOwner, pets.UpdateInput{PhotoURL: &photo}); err != nil {
		t.Fatalf("update pet: %v", err)
	}

	got, err := f.svc.BreedBreakdown(context.Background(), f.petID, testOwner, "")
	if err != nil {
		t.Fatalf("BreedBreakdown returned error: %v", err)
	}
	if len(got.Breakdown) != 1 {
		t.Fatalf("expected one entry, got %d", len(got.Breakdown))
	}

	req := chat.calls[0]
	if req.Temperature != 0.4 {
		t.Fatalf("expected temperature 0.4, got %v", req.Temperature)
	}
	if len(req.Messages) != 3 || req.Messages[2].ImageURL != photo {
		t.Fatalf("profile photo should back the visual message, got %+v", req.Messages)
	}
}

func TestChat_SystemPromptAndSanitizedHistory(t *testing.T) {
	chat := &fakeChat{responses: []string{"  Try smaller portions tonight.  "}}
	f := newFixture(t, chat)

	reply, err := f.svc.Chat(context.Background(), f.petID, testOwner, []ChatMessage{
		{Role: "user", Content: "Is Milo eating enough?"},
		{Role: "assistant", Content: "Earlier answer."},
	})
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if reply != "Try smaller portions tonight." {
		t.Fatalf("reply should be trimmed, got %q", reply)
	}

	req := chat.calls[0]
	if req.JSONObject {
		t.Fatalf("chat must not force JSON mode")
	}
	if req.Temperature != 0.35 {
		t.Fatalf("expected temperature 0.35, got %v", req.Temperature)
	}
	if len(req.Messages) != 3 || req.Messages[0].Role != "system" {
		t.Fatalf("expected system + 2 history messages, got %+v", req.Messages)
	}
	if !strings.Contains(req.Messages[0].Content, "Keep replies under 80 words") {
		t.Fatalf("system prompt missing length instruction")
	}
}

func TestChat_NilHistoryRejected(t *testing.T) {
	f := newFixture(t, &fakeChat{})

	_, err := f.svc.Chat(context.Background(), f.petID, testOwner, nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil history, got %v", err)
	}
}
