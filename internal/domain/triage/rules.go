package triage

import (
	"fmt"
	"sort"
	"strings"

	"soycraft-insights/internal/domain/logs"
)

// Rule es una condición numerada del catálogo veterinario. El predicado es
// nil para las reglas que hoy no tienen campo estructurado (8 y 10): esas
// viven solo como texto en el prompt y las interpreta el modelo sobre
// notas/foto. La regla 11 (frecuencia) se evalúa a nivel de batch diario,
// no por observación (ver ClassifyDayCount).
type Rule struct {
	ID    int
	Name  string
	Cause string

	predicate func(logs.StoolLog) bool
}

// Structured indica si la regla tiene predicado evaluable localmente.
func (r Rule) Structured() bool { return r.predicate != nil }

// Triggered es una cita de regla disparada por una observación.
type Triggered struct {
	RuleID int
	Name   string
	Cause  string
}

var catalogue = []Rule{
	{
		ID:    1,
		Name:  "Consistency too hard/dry",
		Cause: "hard pellets or crumbly masses that signal dehydration, low fiber, constipation, or poor digestibility",
		predicate: func(o logs.StoolLog) bool {
			return o.Consistency == logs.ConsistencyHard || o.Moisture == logs.MoistureDry
		},
	},
	{
		ID:    2,
		Name:  "Consistency too soft/unformed/watery",
		Cause: "mushy or pourable piles tied to diarrhea, infections, malabsorption, or IBD",
		predicate: func(o logs.StoolLog) bool {
			return o.Consistency == logs.ConsistencySoft ||
				o.Consistency == logs.ConsistencyDiarrhea ||
				o.Moisture == logs.MoistureWet
		},
	},
	{
		ID:    3,
		Name:  "Abnormal color (black/tarry)",
		Cause: "dark black or tar-like stool pointing to upper GI bleeding from ulcers, toxins, or ingested blood",
		predicate: func(o logs.StoolLog) bool {
			return o.Color == logs.ColorBlack
		},
	},
	{
		ID:    4,
		Name:  "Abnormal color (white/grey/clay)",
		Cause: "pale or chalky stool indicating bile duct, liver, or pancreatic issues",
		predicate: func(o logs.StoolLog) bool {
			return o.Color == logs.ColorWhite || o.Color == logs.ColorGrey || o.Color == logs.ColorClay
		},
	},
	{
		ID:    5,
		Name:  "Abnormal color (yellow/orange)",
		Cause: "bright yellow or orange tint suggesting rapid transit, biliary problems, or food intolerance",
		predicate: func(o logs.StoolLog) bool {
			return o.Color == logs.ColorYellow || o.Color == logs.ColorOrange
		},
	},
	{
		ID:    6,
		Name:  "Abnormal color (green)",
		Cause: "distinct green color from bacterial overgrowth, rapid transit, or possible toxin ingestion",
		predicate: func(o logs.StoolLog) bool {
			return o.Color == logs.ColorGreen
		},
	},
	{
		ID:    7,
		Name:  "Abnormal color (red/bloody)",
		Cause: "visible fresh blood or streaks highlighting lower GI bleeding, parasites, or anal gland problems",
		predicate: func(o logs.StoolLog) bool {
			return o.Color == logs.ColorRed || o.BloodPresent
		},
	},
	{
		ID:    8,
		Name:  "Visible content abnormalities",
		Cause: "undigested food, worms, grass, foreign objects, or excess hair implying parasites, pica, poor digestion, or blockage",
	},
	{
		ID:    9,
		Name:  "Excessive mucus coating",
		Cause: "slimy or jelly-like film that indicates colonic inflammation, allergies, stress, or infection",
		predicate: func(o logs.StoolLog) bool {
			return o.MucusPresent
		},
	},
	{
		ID:    10,
		Name:  "Greasy/oily appearance",
		Cause: "shiny residue or oily puddles signalling fat malabsorption, pancreatic insufficiency, or very high-fat diets",
	},
	{
		ID:    11,
		Name:  "Abnormal frequency/volume",
		Cause: "more than four bowel movements per day, very small/hard outputs, or excessively large/soggy piles pointing to dietary imbalance, stress, maldigestion, or GI disease",
	},
}

// Catalogue devuelve el catálogo completo (copia; el catálogo es config
// estática, no una entidad persistida).
func Catalogue() []Rule {
	out := make([]Rule, len(catalogue))
	copy(out, catalogue)
	return out
}

// Evaluate aplica cada predicado estructurado sobre UNA observación.
// Las reglas son independientes: no hay precedencia ni short-circuit, y
// varias pueden dispararse juntas. Campos no registrados (moisture vacío,
// smell 0) nunca fallan: solo no disparan. Determinística, sin side effects.
func Evaluate(o logs.StoolLog) []Triggered {
	out := make([]Triggered, 0, 4)
	for _, r := range catalogue {
		if r.predicate == nil {
			continue
		}
		if r.predicate(o) {
			out = append(out, Triggered{RuleID: r.ID, Name: r.Name, Cause: r.Cause})
		}
	}
	return out
}

// EvaluateBatch evalúa un lote y devuelve las citas DISTINTAS disparadas
// (una por regla, sin importar cuántas observaciones la dispararon).
func EvaluateBatch(obs []logs.StoolLog) []Triggered {
	seen := make(map[int]Triggered)
	for _, o := range obs {
		for _, t := range Evaluate(o) {
			if _, ok := seen[t.RuleID]; !ok {
				seen[t.RuleID] = t
			}
		}
	}

	out := make([]Triggered, 0, len(seen))
	for _, t := range seen {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RuleID < out[j].RuleID })
	return out
}

// FrequencyCitation devuelve la cita de la regla 11 cuando el conteo diario
// supera el umbral (más de cuatro deposiciones en el día). La regla 11 no
// tiene predicado por observación: se dispara acá, a nivel de batch.
func FrequencyCitation(dayCount int) (Triggered, bool) {
	if dayCount <= 4 {
		return Triggered{}, false
	}
	for _, r := range catalogue {
		if r.ID == 11 {
			return Triggered{RuleID: r.ID, Name: r.Name, Cause: r.Cause}, true
		}
	}
	return Triggered{}, false
}

// Citations formatea las citas como "Rule N – Name" para prompts y notas.
func Citations(triggered []Triggered) []string {
	out := make([]string, 0, len(triggered))
	for _, t := range triggered {
		out = append(out, fmt.Sprintf("Rule %d – %s", t.RuleID, t.Name))
	}
	return out
}

// SafetySentence debe aparecer VERBATIM en recommendations u ownerMessage de
// todo assessment. No tocar el texto.
const SafetySentence = "Consult a veterinarian for persistent or severe changes, especially with blood, black color, or sudden onset."

const baselineText = "Healthy stool baseline: medium to dark brown, firm yet moist, easy to pick up with minimal residue, and 1–3 bowel movements per day (Purina 2–3 reference)."

// CatalogueText serializa el catálogo para embeber en prompts. Al modelo le
// pasamos solo las DESCRIPCIONES: la lógica de disparo y la escalación se
// computan localmente (ver Escalate), nunca se delegan.
func CatalogueText() string {
	var b strings.Builder
	b.WriteString(baselineText)
	b.WriteString("\n\n")
	for _, r := range catalogue {
		fmt.Fprintf(&b, "Rule %d – %s: %s.\n", r.ID, r.Name, r.Cause)
	}
	b.WriteString("\nGuidance:\n")
	b.WriteString("- Treat any single triggered rule as a potential concern that must be mentioned explicitly.\n")
	b.WriteString("- If three or more rules appear simultaneously (e.g., watery + blood + foul odor), escalate to urgent veterinary attention.\n")
	b.WriteString(`- Always include this advisory sentence verbatim somewhere in recommendations or ownerMessage: "` + SafetySentence + `"`)
	return b.String()
}
