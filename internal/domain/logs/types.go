package logs

// Kind distingue los cuatro tipos de registro de cuidado.
type Kind string

const (
	KindFood        Kind = "food"
	KindStool       Kind = "stool"
	KindSupplement  Kind = "supplement"
	KindMeasurement Kind = "measurement"
)

// MealType clasifica una comida.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Consistency describe la textura de la deposición.
type Consistency string

const (
	ConsistencyRegular  Consistency = "regular"
	ConsistencySoft     Consistency = "soft"
	ConsistencySticky   Consistency = "sticky"
	ConsistencyHard     Consistency = "hard"
	ConsistencyDiarrhea Consistency = "diarrhea"
)

// Color es el swatch registrado por el dueño.
type Color string

const (
	ColorBrown      Color = "brown"
	ColorDarkBrown  Color = "dark_brown"
	ColorLightBrown Color = "light_brown"
	ColorBlack      Color = "black"
	ColorRed        Color = "red"
	ColorGreen      Color = "green"
	ColorYellow     Color = "yellow"
	ColorOrange     Color = "orange"
	ColorWhite      Color = "white"
	ColorGrey       Color = "grey"
	ColorClay       Color = "clay"
)

// Amount es el volumen observado.
type Amount string

const (
	AmountSmall  Amount = "small"
	AmountMedium Amount = "medium"
	AmountLarge  Amount = "large"
)

// Moisture es el nivel de humedad; vacío = no registrado.
type Moisture string

const (
	MoistureDry    Moisture = "dry"
	MoistureNormal Moisture = "normal"
	MoistureWet    Moisture = "wet"
)

// Behavior son flags de conducta asociados al registro.
type Behavior string

const (
	BehaviorNotApplicable Behavior = "not_applicable"
	BehaviorUndesirable   Behavior = "undesirable_behavior"
	BehaviorLipPaws       Behavior = "lip_paws"
	BehaviorVomit         Behavior = "vomit"
	BehaviorOther         Behavior = "other"
)

// SupplementFrequency indica la cadencia del suplemento.
type SupplementFrequency string

const (
	FrequencyDaily    SupplementFrequency = "daily"
	FrequencyWeekly   SupplementFrequency = "weekly"
	FrequencyAsNeeded SupplementFrequency = "as_needed"
)

func validConsistency(c Consistency) bool {
	switch c {
	case ConsistencyRegular, ConsistencySoft, ConsistencySticky, ConsistencyHard, ConsistencyDiarrhea:
		return true
	}
	return false
}

func validColor(c Color) bool {
	switch c {
	case ColorBrown, ColorDarkBrown, ColorLightBrown, ColorBlack, ColorRed,
		ColorGreen, ColorYellow, ColorOrange, ColorWhite, ColorGrey, ColorClay:
		return true
	}
	return false
}

func validMoisture(m Moisture) bool {
	switch m {
	case "", MoistureDry, MoistureNormal, MoistureWet:
		return true
	}
	return false
}
