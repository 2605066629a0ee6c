package service

import (
	"fmt"

	"heart-risk-predictor/internal/domain/entity"
)

// FeatureWidth is the number of columns the classifier was fit on.
const FeatureWidth = 30

// continuousField is passed through unscaled.
type continuousField struct {
	column string
	value  func(r *entity.PatientRecord) float64
}

// categoricalField expands into width one-hot columns named <prefix>_<i>.
type categoricalField struct {
	prefix string
	width  int
	encode func(r *entity.PatientRecord, width int) []float64
}

// The column labels and the encoded values both come from these two tables,
// in this order. Reordering an entry changes the schema, which ValidateSchema rejects.
var continuousFields = []continuousField{
	{"age", func(r *entity.PatientRecord) float64 { return float64(r.Age) }},
	{"trestbps", func(r *entity.PatientRecord) float64 { return float64(r.RestingBloodPressure) }},
	{"chol", func(r *entity.PatientRecord) float64 { return float64(r.Cholesterol) }},
	{"thalach", func(r *entity.PatientRecord) float64 { return float64(r.MaxHeartRate) }},
	{"oldpeak", func(r *entity.PatientRecord) float64 { return r.STDepression }},
}

var categoricalFields = []categoricalField{
	{"sex", 2, encodeSex},
	{"cp", 4, byCode(func(r *entity.PatientRecord) int { return r.ChestPainType })},
	{"fbs", 2, byCode(func(r *entity.PatientRecord) int { return r.FastingBloodSugarHigh })},
	{"restecg", 3, byCode(func(r *entity.PatientRecord) int { return r.RestingECG })},
	{"exang", 2, byCode(func(r *entity.PatientRecord) int { return r.ExerciseInducedAngina })},
	{"slope", 3, byCode(func(r *entity.PatientRecord) int { return r.STSlope })},
	{"ca", 5, byCode(func(r *entity.PatientRecord) int { return r.MajorVesselsColored })},
	{"thal", 4, byCode(func(r *entity.PatientRecord) int { return r.Thalassemia })},
}

// sex_0 is female, sex_1 is male (sex=1 means male in the training data).
var sexReference = map[entity.Sex][]float64{
	entity.SexFemale: {1, 0},
	entity.SexMale:   {0, 1},
}

func encodeSex(r *entity.PatientRecord, width int) []float64 {
	block := make([]float64, width)
	copy(block, sexReference[r.Sex])
	return block
}

func byCode(code func(r *entity.PatientRecord) int) func(r *entity.PatientRecord, width int) []float64 {
	return func(r *entity.PatientRecord, width int) []float64 {
		return oneHot(code(r), width)
	}
}

// oneHot leaves the block all zero when v is outside [0, width).
func oneHot(v, width int) []float64 {
	block := make([]float64, width)
	if v >= 0 && v < width {
		block[v] = 1
	}
	return block
}

// FeatureColumns returns the ordered column labels produced by the encoder.
func FeatureColumns() []string {
	columns := make([]string, 0, FeatureWidth)
	for _, f := range continuousFields {
		columns = append(columns, f.column)
	}
	for _, f := range categoricalFields {
		for i := 0; i < f.width; i++ {
			columns = append(columns, fmt.Sprintf("%s_%d", f.prefix, i))
		}
	}
	return columns
}
