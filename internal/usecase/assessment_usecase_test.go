package usecase

import (
	"context"
	"errors"
	"testing"

	"heart-risk-predictor/internal/converter"
	"heart-risk-predictor/internal/delivery/dto"
	"heart-risk-predictor/internal/domain/entity"
	"heart-risk-predictor/internal/service"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePredictor struct {
	columns  []string
	label    int
	proba    float64
	err      error
	received []float64
}

func (f *fakePredictor) FeatureNames() []string { return f.columns }

func (f *fakePredictor) Predict(features []float64) (int, float64, error) {
	f.received = features
	return f.label, f.proba, f.err
}

func testContent() *entity.EducationContent {
	return &entity.EducationContent{
		Verdicts: entity.VerdictContent{
			HighRisk: entity.VerdictMessage{Headline: "High Risk", Message: "Consult a cardiologist"},
			LowRisk:  entity.VerdictMessage{Headline: "Low Risk", Message: "Keep it up"},
		},
	}
}

func seedRequest() *dto.AssessmentRequest {
	return converter.RecordToAssessmentRequest(entity.DefaultPatientRecord())
}

func newTestUsecase(t *testing.T, p *fakePredictor) AssessmentUsecase {
	t.Helper()
	log, _ := test.NewNullLogger()
	uc, err := NewAssessmentUsecase(log, service.NewFeatureEncoder(), p, testContent(), "random_forest")
	require.NoError(t, err)
	return uc
}

func TestNewAssessmentUsecase_SchemaMismatch(t *testing.T) {
	log, _ := test.NewNullLogger()
	columns := service.FeatureColumns()
	columns[5], columns[6] = columns[6], columns[5]

	_, err := NewAssessmentUsecase(log, service.NewFeatureEncoder(), &fakePredictor{columns: columns}, testContent(), "random_forest")

	assert.ErrorIs(t, err, service.ErrSchemaMismatch)
}

func TestAssess_HighRisk(t *testing.T) {
	p := &fakePredictor{columns: service.FeatureColumns(), label: 1, proba: 0.81}
	uc := newTestUsecase(t, p)

	resp, err := uc.Assess(context.Background(), seedRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Label)
	assert.Equal(t, "high_risk", resp.Verdict)
	assert.Equal(t, "High Risk", resp.Headline)
	assert.Equal(t, 0.81, resp.Probability)
	assert.Len(t, p.received, service.FeatureWidth)
	assert.Equal(t, p.received, resp.Features.Values)
}

func TestAssess_LowRisk(t *testing.T) {
	p := &fakePredictor{columns: service.FeatureColumns(), label: 0, proba: 0.2}
	uc := newTestUsecase(t, p)

	resp, err := uc.Assess(context.Background(), seedRequest())
	require.NoError(t, err)

	assert.Equal(t, "low_risk", resp.Verdict)
	assert.Equal(t, "Keep it up", resp.Message)
}

func TestAssess_PredictorFailure(t *testing.T) {
	p := &fakePredictor{columns: service.FeatureColumns(), err: errors.New("boom")}
	uc := newTestUsecase(t, p)

	_, err := uc.Assess(context.Background(), seedRequest())

	assert.ErrorIs(t, err, ErrPrediction)
}

func TestEncodeFeatures_DoesNotCallPredictor(t *testing.T) {
	p := &fakePredictor{columns: service.FeatureColumns()}
	uc := newTestUsecase(t, p)

	resp := uc.EncodeFeatures(context.Background(), seedRequest())

	assert.Nil(t, p.received)
	assert.Equal(t, service.FeatureWidth, resp.Width)
	assert.Equal(t, 1.0, resp.Values[6], "male sets sex_1")
}

func TestSchema(t *testing.T) {
	uc := newTestUsecase(t, &fakePredictor{columns: service.FeatureColumns()})

	schema := uc.Schema(context.Background())

	assert.Equal(t, "random_forest", schema.ModelType)
	assert.Equal(t, service.FeatureWidth, schema.Width)
	assert.Equal(t, service.FeatureColumns(), schema.Columns)
}
