package insights

import (
	"fmt"
	"strings"

	"soycraft-insights/internal/domain/logs"
	"soycraft-insights/internal/domain/triage"
	"soycraft-insights/internal/ports/llm"
)

const (
	systemTriage = "You are a concise pet health triage assistant."
	systemBreed  = "You turn photos and metadata into estimated breed mix."

	chatMaxMessageLen = 800
)

// BuildTriagePrompt arma el prompt determinístico del assessment: mismo
// contexto => mismo texto. Los hallazgos locales (reglas ya evaluadas y el
// tier derivado) van embebidos para que el modelo redacte sobre hechos, no
// para que decida: la escalación se computó antes en triage.Escalate.
func BuildTriagePrompt(pc PetContext, rag []string, triggered []triage.Triggered, esc triage.Escalation) string {
	pet := pc.Pet
	owner := pet.OwnerName
	if strings.TrimSpace(owner) == "" {
		owner = "Owner"
	}

	foodLines := make([]string, 0, len(pc.Food))
	for _, f := range pc.Food {
		foodLines = append(foodLines, fmt.Sprintf("%s (%.0fg) at %s", f.FoodName, f.AmountG, f.LoggedAt.Format("2006-01-02 15:04")))
	}

	stoolLines := make([]string, 0, len(pc.Stool))
	for _, o := range pc.Stool {
		stoolLines = append(stoolLines, stoolLine(o))
	}

	suppLines := make([]string, 0, len(pc.Supplements))
	for _, sl := range pc.Supplements {
		suppLines = append(suppLines, strings.TrimSpace(fmt.Sprintf("%s %s (%s)", sl.SupplementName, sl.Dosage, sl.Frequency)))
	}

	ragBlock := "None recorded."
	if len(rag) > 0 {
		b := make([]string, 0, len(rag))
		for _, chunk := range rag {
			b = append(b, "- "+chunk)
		}
		ragBlock = strings.Join(b, "\n")
	}

	findings := "No structured rules triggered by the recent observations."
	if len(triggered) > 0 {
		lines := make([]string, 0, len(triggered))
		for _, t := range triggered {
			lines = append(lines, fmt.Sprintf("- Rule %d – %s: %s.", t.RuleID, t.Name, t.Cause))
		}
		findings = strings.Join(lines, "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are the Soycraft pet health assistant.\n\n")
	fmt.Fprintf(&b, "Owner: %s\n", owner)
	fmt.Fprintf(&b, "Pet: %s (%s, %s)\n", pet.Name, pet.Species, pet.Breed)
	fmt.Fprintf(&b, "Age: %s\n", orUnknown(birthDateString(pet)))
	fmt.Fprintf(&b, "Medical history: %s\n", orNotProvided(pet.MedicalHistory))
	fmt.Fprintf(&b, "Allergies: %s\n\n", orNotProvided(pet.Allergies))

	fmt.Fprintf(&b, "Recent food intake:\n%s\n\n", joinOr(foodLines, "No meals logged."))
	fmt.Fprintf(&b, "Recent poop observations:\n%s\n\n", joinOr(stoolLines, "No poop logs yet."))
	fmt.Fprintf(&b, "Supplements provided:\n%s\n\n", joinOr(suppLines, "None logged."))
	fmt.Fprintf(&b, "Knowledge base:\n%s\n\n", ragBlock)

	fmt.Fprintf(&b, "General veterinary alert rules (use them to flag issues and cite triggered rule numbers):\n%s\n\n", triage.CatalogueText())

	fmt.Fprintf(&b, "Rules already triggered by structured evaluation (authoritative; do not drop any):\n%s\n", findings)
	fmt.Fprintf(&b, "Derived risk tier: %s\n\n", esc.RiskTier)

	b.WriteString("Instructions:\n")
	b.WriteString("- Mention every triggered rule above in recommendations (e.g., \"Rule 2 watery stool triggered\") along with likely causes from the rule description.\n")
	b.WriteString("- Check the notes and photo against rules 8 and 10 (visible contents, greasy film) and mention them if they apply.\n")
	if esc.MustUseUrgentLanguage {
		b.WriteString("- Three or more rules triggered together: explicitly state \"urgent veterinary attention recommended\" and set riskLevel to see_vet.\n")
	}
	b.WriteString("- Always include this sentence verbatim somewhere in recommendations or ownerMessage: \"" + triage.SafetySentence + "\"\n")
	b.WriteString("- Keep summary under 80 words. Return JSON with keys summary, recommendations, riskLevel (normal|watch|see_vet) and ownerMessage.")
	return b.String()
}

func stoolLine(o logs.StoolLog) string {
	line := fmt.Sprintf("%s/%s • moisture: %s • blood: %s • mucus: %s • smell: %s",
		o.Color, o.Consistency,
		orNA(string(o.Moisture)),
		yesNo(o.BloodPresent),
		yesNo(o.MucusPresent),
		smellString(o.SmellLevel))
	if o.HasMeaningfulBehaviors() {
		behaviors := make([]string, 0, len(o.Behaviors))
		for _, bh := range o.Behaviors {
			behaviors = append(behaviors, string(bh))
		}
		line += " • behavior: " + strings.Join(behaviors, ", ")
		if strings.TrimSpace(o.BehaviorNotes) != "" {
			line += " (" + o.BehaviorNotes + ")"
		}
	}
	return line + " on " + o.LoggedAt.Format("2006-01-02 15:04")
}

// BuildBreedPrompt arma el prompt del desglose de raza estimado.
func BuildBreedPrompt(pc PetContext) string {
	pet := pc.Pet

	var b strings.Builder
	b.WriteString("You are a playful but precise veterinary genetic counselor.\n\n")
	b.WriteString("Pet profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", pet.Name)
	fmt.Fprintf(&b, "- Species: %s\n", pet.Species)
	fmt.Fprintf(&b, "- Owner reported breed: %s\n", orUnknown(pet.Breed))
	fmt.Fprintf(&b, "- Allergies: %s\n", orNotProvided(pet.Allergies))
	fmt.Fprintf(&b, "- Medical flags: %s\n\n", orDefault(pet.MedicalHistory, "none logged"))
	b.WriteString("Return JSON with keys breakdown (array of {label, percentage, traits}),\n")
	b.WriteString("originStory (2 short sentences about notable mixes and what they imply for care),\n")
	b.WriteString("and watchouts (array of concise care tips referencing allergies/poop trends when possible).\n")
	b.WriteString("Percentages must sum to ~100. If no image supplied, lean on metadata but stay transparent about uncertainty.")
	return b.String()
}

// buildChatSystem compone el system prompt del chat: digest de una línea +
// snippets RAG + instrucción de largo.
func buildChatSystem(pc PetContext, rag []string) string {
	var b strings.Builder
	b.WriteString("You are Soycraft's AI exchange. Blend recent care data with actionable coaching.\n")
	b.WriteString("Context digest: " + chatDigest(pc) + "\n")
	b.WriteString("RAG snippets:\n")
	b.WriteString(strings.Join(rag, "\n"))
	b.WriteString("\nKeep replies under 80 words and focus on next best steps.")
	return b.String()
}

// sanitizeChatMessages trunca cada mensaje a 800 caracteres y fuerza el rol
// a user salvo que sea exactamente assistant. El historial lo manda el
// cliente; acá solo lo saneamos, nunca lo persistimos.
func sanitizeChatMessages(in []ChatMessage) []llm.Message {
	out := make([]llm.Message, 0, len(in))
	for _, m := range in {
		role := "user"
		if m.Role == "assistant" {
			role = "assistant"
		}
		content := m.Content
		if runes := []rune(content); len(runes) > chatMaxMessageLen {
			content = string(runes[:chatMaxMessageLen])
		}
		out = append(out, llm.Message{Role: role, Content: content})
	}
	return out
}

func joinOr(lines []string, empty string) string {
	if len(lines) == 0 {
		return empty
	}
	return strings.Join(lines, "\n")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "n/a"
	}
	return s
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func smellString(level int) string {
	if level == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", level)
}
