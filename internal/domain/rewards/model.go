package rewards

import "time"

// Activity identifica la acción que genera créditos.
type Activity string

const (
	ActivityFoodLog        Activity = "food_log"
	ActivityStoolLog       Activity = "stool_log"
	ActivitySupplementLog  Activity = "supplement_log"
	ActivityMeasurementLog Activity = "measurement_log"
	ActivityPhotoUpload    Activity = "photo_upload"
)

// créditos por actividad; estático por ahora.
var creditsByActivity = map[Activity]int{
	ActivityFoodLog:        5,
	ActivityStoolLog:       5,
	ActivitySupplementLog:  3,
	ActivityMeasurementLog: 3,
	ActivityPhotoUpload:    2,
}

// Event es un movimiento de créditos ya aplicado.
type Event struct {
	ID       string
	UserID   string
	Activity Activity
	Credits  int
	Metadata map[string]string

	CreatedAt time.Time
}
