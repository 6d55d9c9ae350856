package triage

// RiskTier es el veredicto de riesgo de un assessment.
// @Enum normal, watch, see_vet
type RiskTier string

const (
	RiskNormal RiskTier = "normal"
	RiskWatch  RiskTier = "watch"
	RiskSeeVet RiskTier = "see_vet"
)

// ValidRiskTier reporta si s es uno de los tres tiers conocidos.
func ValidRiskTier(s string) bool {
	switch RiskTier(s) {
	case RiskNormal, RiskWatch, RiskSeeVet:
		return true
	}
	return false
}

// Escalation es el resultado de la política de escalación sobre un batch.
type Escalation struct {
	RiskTier              RiskTier
	MustUseUrgentLanguage bool
}

// Escalate combina las citas distintas de un batch en un tier único.
// Umbral duro: ≥3 reglas => see_vet con lenguaje urgente obligatorio.
// Esto se computa LOCALMENTE; al modelo solo se le explica el resultado.
func Escalate(triggered []Triggered) Escalation {
	n := len(triggered)
	switch {
	case n >= 3:
		return Escalation{RiskTier: RiskSeeVet, MustUseUrgentLanguage: true}
	case n >= 1:
		return Escalation{RiskTier: RiskWatch}
	default:
		return Escalation{RiskTier: RiskNormal}
	}
}

// DayStatus clasifica la frecuencia de deposiciones de un día.
// @Enum ok, watch, alert
type DayStatus string

const (
	DayOK    DayStatus = "ok"
	DayWatch DayStatus = "watch"
	DayAlert DayStatus = "alert"
)

// ClassifyDayCount es la regla 11 aplicada a un día: el rango sano es 1–3
// deposiciones. Cero es alerta (posible obstrucción / falta de registro
// grave); más de 3 es watch. Esta señal alimenta el trend del dashboard y
// se reporta separada del tier por reglas, nunca se mezcla con Escalate.
func ClassifyDayCount(count int) DayStatus {
	switch {
	case count == 0:
		return DayAlert
	case count > 3:
		return DayWatch
	default:
		return DayOK
	}
}
