package assessments

import (
	"time"

	"soycraft-insights/internal/domain/triage"
)

// HealthNote es un assessment persistido: el resultado parseado y validado
// de un análisis de triage. Append-only: nunca se muta ni se sobreescribe;
// la historia por mascota se lee de más reciente a más antigua. Referencia
// un snapshot de los logs (las citas quedan serializadas acá), no punteros
// vivos: borrar un log después no cambia la nota.
type HealthNote struct {
	ID    string
	PetID string

	Summary         string // ≤80 palabras por instrucción al modelo
	Recommendations string // incluye las citas de reglas disparadas
	RiskLevel       triage.RiskTier
	OwnerMessage    string

	TriggeredRules []string // citas "Rule N – Name" computadas localmente

	CreatedAt time.Time
}
