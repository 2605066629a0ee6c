package converter

import (
	"heart-risk-predictor/internal/delivery/dto"
	"heart-risk-predictor/internal/domain/entity"
)

// AssessmentRequestToRecord converts a validated AssessmentRequest to a PatientRecord.
// Missing optional codes become 0.
func AssessmentRequestToRecord(req *dto.AssessmentRequest) entity.PatientRecord {
	return entity.PatientRecord{
		Age:                   req.Age,
		Sex:                   entity.Sex(req.Sex),
		ChestPainType:         intValue(req.ChestPainType),
		RestingBloodPressure:  req.RestingBloodPressure,
		Cholesterol:           req.Cholesterol,
		FastingBloodSugarHigh: intValue(req.FastingBloodSugarHigh),
		RestingECG:            intValue(req.RestingECG),
		MaxHeartRate:          req.MaxHeartRate,
		ExerciseInducedAngina: intValue(req.ExerciseInducedAngina),
		STDepression:          floatValue(req.STDepression),
		STSlope:               intValue(req.STSlope),
		MajorVesselsColored:   intValue(req.MajorVesselsColored),
		Thalassemia:           intValue(req.Thalassemia),
	}
}

// RecordToAssessmentRequest converts a PatientRecord back to a fully populated request
func RecordToAssessmentRequest(record entity.PatientRecord) *dto.AssessmentRequest {
	return &dto.AssessmentRequest{
		Age:                   record.Age,
		Sex:                   string(record.Sex),
		ChestPainType:         &record.ChestPainType,
		RestingBloodPressure:  record.RestingBloodPressure,
		Cholesterol:           record.Cholesterol,
		FastingBloodSugarHigh: &record.FastingBloodSugarHigh,
		RestingECG:            &record.RestingECG,
		MaxHeartRate:          record.MaxHeartRate,
		ExerciseInducedAngina: &record.ExerciseInducedAngina,
		STDepression:          &record.STDepression,
		STSlope:               &record.STSlope,
		MajorVesselsColored:   &record.MajorVesselsColored,
		Thalassemia:           &record.Thalassemia,
	}
}

// FeatureVectorToResponse converts a FeatureVector to FeatureVectorResponse DTO
func FeatureVectorToResponse(vector entity.FeatureVector) dto.FeatureVectorResponse {
	return dto.FeatureVectorResponse{
		Width:   vector.Len(),
		Columns: vector.Columns,
		Values:  vector.Values,
	}
}

// AssessmentToResponse converts a RiskAssessment and its display text to AssessmentResponse DTO
func AssessmentToResponse(assessment *entity.RiskAssessment, message entity.VerdictMessage) *dto.AssessmentResponse {
	if assessment == nil {
		return nil
	}

	return &dto.AssessmentResponse{
		Label:       assessment.Label,
		Verdict:     string(assessment.Verdict),
		Headline:    message.Headline,
		Message:     message.Message,
		ImageURL:    message.ImageURL,
		Probability: assessment.Probability,
		Features:    FeatureVectorToResponse(assessment.Features),
	}
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
