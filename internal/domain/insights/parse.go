package insights

import (
	"encoding/json"
	"fmt"
	"strings"

	"soycraft-insights/internal/domain/triage"
)

// ParseError indica que la respuesta del modelo no cumple el contrato de
// salida. Nunca se degrada a defaults: un assessment con riesgo inventado
// es peor que un error visible.
type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	return "unparseable model response: " + e.Reason
}

// Assessment es la salida estructurada del análisis de triage.
type Assessment struct {
	Summary         string          `json:"summary"`
	Recommendations string          `json:"recommendations"`
	RiskLevel       triage.RiskTier `json:"riskLevel"`
	OwnerMessage    string          `json:"ownerMessage"`
}

// BreedEntry es una componente del desglose de raza estimado.
type BreedEntry struct {
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
	Traits     string  `json:"traits"`
}

// BreedBreakdown es la salida estructurada del análisis de raza.
type BreedBreakdown struct {
	Breakdown   []BreedEntry `json:"breakdown"`
	OriginStory string       `json:"originStory"`
	Watchouts   []string     `json:"watchouts"`
}

// stripFences remueve el cerco markdown (```json ... ```) que algunos
// modelos agregan aunque se pida JSON puro.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseAssessment valida estricto: JSON objeto, las cuatro claves presentes
// y no vacías (recommendations y ownerMessage pueden venir vacías), y
// riskLevel uno de los tres tiers exactos. "critical", "high" o cualquier
// variante no se coercionan.
func ParseAssessment(raw string) (Assessment, error) {
	clean := stripFences(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &fields); err != nil {
		return Assessment{}, &ParseError{Reason: "not a JSON object: " + err.Error(), Raw: raw}
	}
	for _, key := range []string{"summary", "recommendations", "riskLevel", "ownerMessage"} {
		if _, ok := fields[key]; !ok {
			return Assessment{}, &ParseError{Reason: fmt.Sprintf("missing key %q", key), Raw: raw}
		}
	}

	var out Assessment
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return Assessment{}, &ParseError{Reason: "wrong field types: " + err.Error(), Raw: raw}
	}
	if strings.TrimSpace(out.Summary) == "" {
		return Assessment{}, &ParseError{Reason: "empty summary", Raw: raw}
	}
	if !triage.ValidRiskTier(string(out.RiskLevel)) {
		return Assessment{}, &ParseError{Reason: fmt.Sprintf("unknown riskLevel %q", out.RiskLevel), Raw: raw}
	}
	return out, nil
}

// ParseBreedBreakdown valida el desglose de raza: al menos una entrada y
// porcentajes que sumen ~100 (tolerancia 90–110, el prompt pide "~100").
func ParseBreedBreakdown(raw string) (BreedBreakdown, error) {
	clean := stripFences(raw)

	var out BreedBreakdown
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return BreedBreakdown{}, &ParseError{Reason: "not a JSON object: " + err.Error(), Raw: raw}
	}
	if len(out.Breakdown) == 0 {
		return BreedBreakdown{}, &ParseError{Reason: "empty breakdown", Raw: raw}
	}

	var total float64
	for _, e := range out.Breakdown {
		if strings.TrimSpace(e.Label) == "" {
			return BreedBreakdown{}, &ParseError{Reason: "breakdown entry without label", Raw: raw}
		}
		if e.Percentage < 0 || e.Percentage > 100 {
			return BreedBreakdown{}, &ParseError{Reason: fmt.Sprintf("percentage out of range: %v", e.Percentage), Raw: raw}
		}
		total += e.Percentage
	}
	if total < 90 || total > 110 {
		return BreedBreakdown{}, &ParseError{Reason: fmt.Sprintf("percentages sum to %v, expected ~100", total), Raw: raw}
	}
	return out, nil
}
