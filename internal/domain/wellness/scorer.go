package wellness

import (
	"math"

	"soycraft-insights/internal/domain/logs"
	"soycraft-insights/internal/domain/triage"
)

// ScoreSet son los cinco sub-scores del radar de bienestar. Cada uno queda
// clampeado a [10,100]. Se recomputa en cada lectura; nunca se persiste.
type ScoreSet struct {
	Nutrition   int `json:"nutrition"`
	Digestion   int `json:"digestion"`
	Supplements int `json:"supplements"`
	Mood        int `json:"mood"`
	Growth      int `json:"growth"`
}

// ScoreInput es la ventana de logs ya leída sobre la que se calculan los
// scores. Measurements viene ordenado por logged_at descendente (como lo
// devuelven los repos). LatestRisk nil = sin assessment previo.
type ScoreInput struct {
	RangeDays    int
	Food         []logs.FoodLog
	Stool        []logs.StoolLog
	Supplements  []logs.SupplementLog
	Measurements []logs.MeasurementLog
	LatestRisk   *triage.RiskTier
}

// Scores computa el set completo. Función pura: sin llamadas externas,
// sin estado, determinística sobre la misma ventana.
func Scores(in ScoreInput) ScoreSet {
	days := in.RangeDays
	if days < 1 {
		days = 1
	}

	return ScoreSet{
		Nutrition:   clampScore(float64(len(in.Food)) / float64(days) / 3 * 100),
		Digestion:   digestionScore(in.Stool),
		Supplements: clampScore(float64(len(in.Supplements)) / float64(days) * 120),
		Mood:        moodScore(in.LatestRisk),
		Growth:      growthScore(in.Measurements),
	}
}

// digestionScore: base 95 menos penalidades por registro; color manda sobre
// consistencia (un log negro/rojo ya penaliza 30 aunque además sea duro).
// Ventana vacía => base neutral 55.
func digestionScore(stool []logs.StoolLog) int {
	if len(stool) == 0 {
		return clampScore(55)
	}

	penalty := 0
	for _, l := range stool {
		switch {
		case l.Color == logs.ColorBlack || l.Color == logs.ColorRed:
			penalty += 30
		case l.Consistency == logs.ConsistencyDiarrhea || l.Consistency == logs.ConsistencySoft:
			penalty += 20
		case l.Consistency == logs.ConsistencyHard:
			penalty += 10
		}
	}
	return clampScore(float64(95 - penalty))
}

func moodScore(latest *triage.RiskTier) int {
	if latest == nil {
		return clampScore(60)
	}
	switch *latest {
	case triage.RiskSeeVet:
		return clampScore(35)
	case triage.RiskWatch:
		return clampScore(65)
	default:
		return clampScore(95)
	}
}

// growthScore castiga la variación brusca entre las DOS mediciones más
// recientes (no las dos últimas con peso: igual que el dashboard original).
func growthScore(measurements []logs.MeasurementLog) int {
	if len(measurements) < 2 ||
		measurements[0].WeightKg == nil ||
		measurements[1].WeightKg == nil {
		return clampScore(70)
	}
	delta := math.Abs(*measurements[0].WeightKg - *measurements[1].WeightKg)
	return clampScore(100 - delta*25)
}

// clampScore fija el rango [10,100]: un score nunca baja de 10 ni sube de
// 100, sin importar lo extremo del input (0 comidas => 10, no 0).
func clampScore(v float64) int {
	if v < 10 {
		return 10
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}
