package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"heart-risk-predictor/internal/converter"
	"heart-risk-predictor/internal/delivery/dto"
	"heart-risk-predictor/internal/delivery/http/middleware"
	"heart-risk-predictor/internal/domain/entity"
	"heart-risk-predictor/internal/domain/predictor"
	"heart-risk-predictor/internal/infrastructure/metrics"
	"heart-risk-predictor/internal/service"

	"github.com/sirupsen/logrus"
)

var ErrPrediction = errors.New("prediction failed")

type AssessmentUsecase interface {
	Assess(ctx context.Context, req *dto.AssessmentRequest) (*dto.AssessmentResponse, error)
	EncodeFeatures(ctx context.Context, req *dto.AssessmentRequest) *dto.FeatureVectorResponse
	Schema(ctx context.Context) *dto.SchemaResponse
	Education(ctx context.Context) *entity.EducationContent
}

type assessmentUsecase struct {
	log       *logrus.Logger
	encoder   *service.FeatureEncoder
	predictor predictor.Predictor
	content   *entity.EducationContent
	modelType string
}

// NewAssessmentUsecase refuses to start when the classifier was fit on a
// different column layout than the encoder produces.
func NewAssessmentUsecase(
	log *logrus.Logger,
	encoder *service.FeatureEncoder,
	predictor predictor.Predictor,
	content *entity.EducationContent,
	modelType string,
) (AssessmentUsecase, error) {
	if err := encoder.ValidateSchema(predictor.FeatureNames()); err != nil {
		return nil, err
	}

	return &assessmentUsecase{
		log:       log,
		encoder:   encoder,
		predictor: predictor,
		content:   content,
		modelType: modelType,
	}, nil
}

// Assess encodes a validated request and scores it
func (u *assessmentUsecase) Assess(ctx context.Context, req *dto.AssessmentRequest) (*dto.AssessmentResponse, error) {
	requestID, _ := middleware.GetRequestIDFromContext(ctx)
	start := time.Now()

	record := converter.AssessmentRequestToRecord(req)
	features := u.encoder.Encode(&record)

	label, probability, err := u.predictor.Predict(features.Values)
	if err != nil {
		metrics.IncPredictionError()
		u.log.WithField("request_id", requestID).Errorf("Failed to score record: %+v", err)
		return nil, fmt.Errorf("%w: %v", ErrPrediction, err)
	}

	assessment := &entity.RiskAssessment{
		Label:       label,
		Verdict:     entity.VerdictForLabel(label),
		Probability: probability,
		Features:    features,
	}
	metrics.ObservePrediction(string(assessment.Verdict), time.Since(start))

	u.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"verdict":     assessment.Verdict,
		"probability": probability,
	}).Debug("Record scored")

	return converter.AssessmentToResponse(assessment, u.content.MessageFor(assessment.Verdict)), nil
}

// EncodeFeatures returns the vector that would be sent to the classifier
func (u *assessmentUsecase) EncodeFeatures(ctx context.Context, req *dto.AssessmentRequest) *dto.FeatureVectorResponse {
	record := converter.AssessmentRequestToRecord(req)
	resp := converter.FeatureVectorToResponse(u.encoder.Encode(&record))
	return &resp
}

func (u *assessmentUsecase) Schema(ctx context.Context) *dto.SchemaResponse {
	columns := u.encoder.Columns()
	return &dto.SchemaResponse{
		ModelType: u.modelType,
		Width:     len(columns),
		Columns:   columns,
	}
}

func (u *assessmentUsecase) Education(ctx context.Context) *entity.EducationContent {
	return u.content
}
