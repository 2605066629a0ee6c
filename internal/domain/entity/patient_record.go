package entity

// Sex is the biological sex captured by the assessment form
type Sex string

// Sex constants
const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// PatientRecord represents one submission of the assessment form.
// It is built per request and never stored.
type PatientRecord struct {
	Age                   int     `json:"age"`
	Sex                   Sex     `json:"sex"`
	ChestPainType         int     `json:"chest_pain_type"`
	RestingBloodPressure  int     `json:"resting_blood_pressure"`
	Cholesterol           int     `json:"cholesterol"`
	FastingBloodSugarHigh int     `json:"fasting_blood_sugar_high"`
	RestingECG            int     `json:"resting_ecg"`
	MaxHeartRate          int     `json:"max_heart_rate"`
	ExerciseInducedAngina int     `json:"exercise_induced_angina"`
	STDepression          float64 `json:"st_depression"`
	STSlope               int     `json:"st_slope"`
	MajorVesselsColored   int     `json:"major_vessels_colored"`
	Thalassemia           int     `json:"thalassemia"`
}

// DefaultPatientRecord returns the values the form starts with
func DefaultPatientRecord() PatientRecord {
	return PatientRecord{
		Age:                  50,
		Sex:                  SexMale,
		RestingBloodPressure: 120,
		Cholesterol:          200,
		MaxHeartRate:         140,
		STDepression:         1.0,
	}
}
