package entity

// Verdict is the user-facing outcome of an assessment
type Verdict string

const (
	VerdictHighRisk Verdict = "high_risk"
	VerdictLowRisk  Verdict = "low_risk"
)

// Classifier labels
const (
	LabelNoDisease = 0
	LabelDisease   = 1
)

// RiskAssessment is the outcome of scoring one PatientRecord
type RiskAssessment struct {
	Label       int           `json:"label"`
	Verdict     Verdict       `json:"verdict"`
	Probability float64       `json:"probability"`
	Features    FeatureVector `json:"features"`
}

// VerdictForLabel maps a classifier label to its verdict
func VerdictForLabel(label int) Verdict {
	if label == LabelDisease {
		return VerdictHighRisk
	}
	return VerdictLowRisk
}
