package insights

import (
	"context"
	"fmt"
	"strings"

	"soycraft-insights/internal/domain/assessments"
	"soycraft-insights/internal/domain/logs"
	"soycraft-insights/internal/domain/pets"
)

const (
	recentLogsLimit = 3
	ragLimit        = 5
)

// PetContext es el agregado que alimenta los prompts y el endpoint
// GET /context/{petID}: perfil + los 3 logs más recientes de cada tipo +
// las últimas notas. Se lee fresco en cada request (frontera con el store;
// sin cache, sin estado compartido entre requests).
type PetContext struct {
	Pet         pets.Pet
	Food        []logs.FoodLog
	Stool       []logs.StoolLog
	Supplements []logs.SupplementLog
	Notes       []assessments.HealthNote
}

// fetchContext arma el PetContext validando ownership primero.
func (s *Service) fetchContext(ctx context.Context, petID, userID string) (PetContext, error) {
	p, err := s.pets.GetOwned(ctx, petID, userID)
	if err != nil {
		return PetContext{}, fmt.Errorf("%w: %v", ErrPetNotFound, err)
	}

	out := PetContext{Pet: p}

	if out.Food, err = s.logs.ListFood(ctx, petID, logs.ListFilter{Limit: recentLogsLimit}); err != nil {
		return PetContext{}, fmt.Errorf("%w: food logs: %v", ErrUpstream, err)
	}
	if out.Stool, err = s.logs.ListStool(ctx, petID, logs.ListFilter{Limit: recentLogsLimit}); err != nil {
		return PetContext{}, fmt.Errorf("%w: stool logs: %v", ErrUpstream, err)
	}
	if out.Supplements, err = s.logs.ListSupplements(ctx, petID, logs.ListFilter{Limit: recentLogsLimit}); err != nil {
		return PetContext{}, fmt.Errorf("%w: supplement logs: %v", ErrUpstream, err)
	}
	if out.Notes, err = s.notes.ListByPet(ctx, petID, ragLimit); err != nil {
		return PetContext{}, fmt.Errorf("%w: health notes: %v", ErrUpstream, err)
	}

	return out, nil
}

// ragSnippets rinde hasta 5 líneas de memoria semántica a partir de las
// notas previas (el "knowledge base" del prompt).
func ragSnippets(notes []assessments.HealthNote) []string {
	out := make([]string, 0, ragLimit)
	for _, n := range notes {
		if len(out) >= ragLimit {
			break
		}
		line := fmt.Sprintf("Insight | %s | %s", riskOrNA(string(n.RiskLevel)), n.Summary)
		if strings.TrimSpace(n.Recommendations) != "" {
			line += " → " + n.Recommendations
		}
		out = append(out, line)
	}
	return out
}

func riskOrNA(risk string) string {
	if strings.TrimSpace(risk) == "" {
		return "risk n/a"
	}
	return risk
}

// chatDigest resume el contexto en una línea para el system prompt del chat.
func chatDigest(pc PetContext) string {
	p := pc.Pet

	basic := fmt.Sprintf("%s (%s", p.Name, p.Species)
	if p.Breed != "" {
		basic += ", " + p.Breed
	}
	basic += fmt.Sprintf(") age %s weighing %s.", orUnknown(birthDateString(p)), weightString(p))

	meals := "No meals logged recently."
	if len(pc.Food) > 0 {
		parts := make([]string, 0, len(pc.Food))
		for _, f := range pc.Food {
			parts = append(parts, fmt.Sprintf("%s %.0fg", f.FoodName, f.AmountG))
		}
		meals = "Meals logged: " + strings.Join(parts, "; ")
	}

	stool := "No poop entries this week."
	if len(pc.Stool) > 0 {
		parts := make([]string, 0, len(pc.Stool))
		for _, l := range pc.Stool {
			parts = append(parts, strings.TrimSpace(fmt.Sprintf("%s %s", l.Consistency, l.Color)))
		}
		stool = "Digestive notes: " + strings.Join(parts, ", ")
	}

	supps := "No supplements logged."
	if len(pc.Supplements) > 0 {
		parts := make([]string, 0, len(pc.Supplements))
		for _, sl := range pc.Supplements {
			parts = append(parts, strings.TrimSpace(sl.SupplementName+" "+sl.Dosage))
		}
		supps = "Supplements: " + strings.Join(parts, "; ")
	}

	insight := "No AI notes yet."
	if len(pc.Notes) > 0 && strings.TrimSpace(pc.Notes[0].Summary) != "" {
		insight = "Latest AI note: " + pc.Notes[0].Summary
	}

	return strings.Join([]string{basic, meals, stool, supps, insight}, " ")
}

func birthDateString(p pets.Pet) string {
	if p.BirthDate == nil {
		return ""
	}
	return p.BirthDate.Format("2006-01-02")
}

func weightString(p pets.Pet) string {
	if p.WeightKg == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1fkg", *p.WeightKg)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "not provided"
	}
	return s
}
