package dto

// Request DTOs

// AssessmentRequest carries the raw form inputs. Codes that may legitimately
// be zero are pointers so that "required" can tell a missing field from 0.
type AssessmentRequest struct {
	Age                   int      `json:"age" validate:"required,gte=18,lte=100"`
	Sex                   string   `json:"sex" validate:"required,oneof=male female"`
	ChestPainType         *int     `json:"chest_pain_type" validate:"required,gte=0,lte=3"`
	RestingBloodPressure  int      `json:"resting_blood_pressure" validate:"required,gte=80,lte=200"`
	Cholesterol           int      `json:"cholesterol" validate:"required,gte=100,lte=400"`
	FastingBloodSugarHigh *int     `json:"fasting_blood_sugar_high" validate:"required,oneof=0 1"`
	RestingECG            *int     `json:"resting_ecg" validate:"required,gte=0,lte=2"`
	MaxHeartRate          int      `json:"max_heart_rate" validate:"required,gte=60,lte=220"`
	ExerciseInducedAngina *int     `json:"exercise_induced_angina" validate:"required,oneof=0 1"`
	STDepression          *float64 `json:"st_depression" validate:"required,gte=0,lte=6"`
	STSlope               *int     `json:"st_slope" validate:"required,gte=0,lte=2"`
	MajorVesselsColored   *int     `json:"major_vessels_colored" validate:"required,gte=0,lte=4"`
	Thalassemia           *int     `json:"thalassemia" validate:"required,gte=0,lte=3"`
}

// Response DTOs

type FeatureVectorResponse struct {
	Width   int       `json:"width"`
	Columns []string  `json:"columns"`
	Values  []float64 `json:"values"`
}

type AssessmentResponse struct {
	Label       int                   `json:"label"`
	Verdict     string                `json:"verdict"`
	Headline    string                `json:"headline"`
	Message     string                `json:"message"`
	ImageURL    string                `json:"image_url,omitempty"`
	Probability float64               `json:"probability"`
	Features    FeatureVectorResponse `json:"features"`
}

type SchemaResponse struct {
	ModelType string   `json:"model_type"`
	Width     int      `json:"width"`
	Columns   []string `json:"columns"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	ModelType string `json:"model_type"`
	Features  int    `json:"features"`
}
