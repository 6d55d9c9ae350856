package wellness

import (
	"time"

	"soycraft-insights/internal/domain/logs"
	"soycraft-insights/internal/domain/triage"
)

// DaySegment es la frecuencia de deposiciones de un día del trend.
type DaySegment struct {
	Label  string           `json:"label"` // día de la semana abreviado
	Date   string           `json:"date"`  // YYYY-MM-DD
	Count  int              `json:"count"`
	Status triage.DayStatus `json:"status"`
}

// Trend es el estado derivado del dashboard: señal de frecuencia (regla 11,
// 3 días hacia atrás) y señal de aspecto ("look") sobre la ventana de 7 días.
// Las dos señales se reportan por separado; ninguna se mezcla con el tier
// por reglas de un assessment. Derivado puro, recomputado por request.
type Trend struct {
	LookStatus  triage.DayStatus `json:"look_status"`
	LookMessage string           `json:"look_message"`

	FreqStatus    triage.DayStatus `json:"freq_status"`
	FreqMessage   string           `json:"freq_message"`
	Segments      []DaySegment     `json:"segments"`
	AveragePerDay float64          `json:"average_per_day"`
}

const trendDays = 3

// BuildTrend computa el trend a partir de la ventana de stool logs (se espera
// que cubra al menos los últimos 7 días respecto de now).
func BuildTrend(now time.Time, stool []logs.StoolLog) Trend {
	sevenDay := make([]logs.StoolLog, 0, len(stool))
	for _, l := range stool {
		if daysBetween(l.LoggedAt, now) <= 7 {
			sevenDay = append(sevenDay, l)
		}
	}

	look := lookStatus(sevenDay)

	segments := make([]DaySegment, 0, trendDays)
	total := 0
	for i := 0; i < trendDays; i++ {
		day := now.AddDate(0, 0, -i)
		count := 0
		for _, l := range stool {
			if sameDay(l.LoggedAt, day) {
				count++
			}
		}
		total += count
		segments = append(segments, DaySegment{
			Label:  day.Format("Mon"),
			Date:   day.Format("2006-01-02"),
			Count:  count,
			Status: triage.ClassifyDayCount(count),
		})
	}

	freq := triage.DayOK
	for _, seg := range segments {
		if seg.Status == triage.DayAlert {
			freq = triage.DayAlert
			break
		}
		if seg.Status == triage.DayWatch {
			freq = triage.DayWatch
		}
	}

	return Trend{
		LookStatus:    look,
		LookMessage:   lookMessage(look),
		FreqStatus:    freq,
		FreqMessage:   freqMessage(freq),
		Segments:      segments,
		AveragePerDay: float64(total) / float64(trendDays),
	}
}

// lookStatus: alert ante marcadores de alto riesgo (sangre, negro/rojo,
// conductas indeseables reales); watch ante textura blanda, mucosidad o
// colores inusuales sin esos marcadores; ok si no hay datos que flaggear
// (una ventana vacía NO es alerta de aspecto, solo de frecuencia).
func lookStatus(sevenDay []logs.StoolLog) triage.DayStatus {
	for _, l := range sevenDay {
		if l.BloodPresent || l.Color == logs.ColorBlack || l.Color == logs.ColorRed || l.HasMeaningfulBehaviors() {
			return triage.DayAlert
		}
	}
	for _, l := range sevenDay {
		if l.Consistency == logs.ConsistencyDiarrhea || l.MucusPresent || unusualColor(l.Color) {
			return triage.DayWatch
		}
	}
	return triage.DayOK
}

func unusualColor(c logs.Color) bool {
	switch c {
	case logs.ColorGreen, logs.ColorYellow, logs.ColorOrange, logs.ColorWhite, logs.ColorGrey, logs.ColorClay:
		return true
	}
	return false
}

func lookMessage(s triage.DayStatus) string {
	switch s {
	case triage.DayAlert:
		return "Recent stool logs contain high-risk markers (blood, tarry, or multiple undesirable behaviors)."
	case triage.DayWatch:
		return "Some logs show softer texture or unusual colors. Keep monitoring hydration and diet."
	default:
		return "Looks steady—recent entries stay within healthy color and texture ranges."
	}
}

func freqMessage(s triage.DayStatus) string {
	switch s {
	case triage.DayAlert:
		return "Log consistency suggests very low or no bowel movements. Check hydration and fiber."
	case triage.DayWatch:
		return "Stool frequency hit the edges of the 1–3 logs/day range. Keep an eye on routines."
	default:
		return "Average stool frequency is within the target 1–3 per day."
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// daysBetween cuenta días calendario entre t y now (0 = mismo día).
func daysBetween(t, now time.Time) int {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	start := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	end := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
