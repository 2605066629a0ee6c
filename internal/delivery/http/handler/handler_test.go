package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"heart-risk-predictor/internal/delivery/http/view"
	"heart-risk-predictor/internal/domain/entity"
	"heart-risk-predictor/internal/service"
	"heart-risk-predictor/internal/usecase"
	"heart-risk-predictor/pkg/validator"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePredictor struct {
	label int
	proba float64
	err   error
	calls int
}

func (f *fakePredictor) FeatureNames() []string { return service.FeatureColumns() }

func (f *fakePredictor) Predict(features []float64) (int, float64, error) {
	f.calls++
	return f.label, f.proba, f.err
}

func testContent() *entity.EducationContent {
	return &entity.EducationContent{
		Title:            "Coronary Disease Prediction",
		EmergencyContact: "Call 108 for immediate medical help.",
		Verdicts: entity.VerdictContent{
			HighRisk: entity.VerdictMessage{Headline: "High Risk", Message: "Please consult a doctor."},
			LowRisk:  entity.VerdictMessage{Headline: "Low Risk", Message: "Your heart health looks good!"},
		},
	}
}

func newUsecase(t *testing.T, p *fakePredictor) usecase.AssessmentUsecase {
	t.Helper()
	log, _ := test.NewNullLogger()
	uc, err := usecase.NewAssessmentUsecase(log, service.NewFeatureEncoder(), p, testContent(), "random_forest")
	require.NoError(t, err)
	return uc
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"age":                      63,
		"sex":                      "female",
		"chest_pain_type":          3,
		"resting_blood_pressure":   145,
		"cholesterol":              233,
		"fasting_blood_sugar_high": 1,
		"resting_ecg":              0,
		"max_heart_rate":           150,
		"exercise_induced_angina":  0,
		"st_depression":            2.3,
		"st_slope":                 0,
		"major_vessels_colored":    0,
		"thalassemia":              1,
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predictions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAssess_Success(t *testing.T) {
	p := &fakePredictor{label: 1, proba: 0.9}
	h := NewAssessmentHandler(newUsecase(t, p), validator.NewValidator())

	w := postJSON(t, h.Assess, validBody())

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	var data struct {
		Verdict  string `json:"verdict"`
		Headline string `json:"headline"`
		Features struct {
			Width  int       `json:"width"`
			Values []float64 `json:"values"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "high_risk", data.Verdict)
	assert.Equal(t, "High Risk", data.Headline)
	assert.Equal(t, 30, data.Features.Width)
	assert.Equal(t, []float64{1, 0}, data.Features.Values[5:7], "female sets sex_0")
}

func TestAssess_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value interface{}
	}{
		{"age below range", "age", 17},
		{"blood pressure above range", "resting_blood_pressure", 201},
		{"unknown sex", "sex", "other"},
		{"chest pain out of domain", "chest_pain_type", 4},
		{"vessels out of domain", "major_vessels_colored", 5},
		{"negative st depression", "st_depression", -0.1},
		{"missing thalassemia", "thalassemia", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePredictor{}
			h := NewAssessmentHandler(newUsecase(t, p), validator.NewValidator())

			body := validBody()
			if tt.value == nil {
				delete(body, tt.field)
			} else {
				body[tt.field] = tt.value
			}
			w := postJSON(t, h.Assess, body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeEnvelope(t, w).Error, tt.field)
			assert.Zero(t, p.calls)
		})
	}
}

func TestAssess_ZeroCodesAreAccepted(t *testing.T) {
	p := &fakePredictor{}
	h := NewAssessmentHandler(newUsecase(t, p), validator.NewValidator())

	body := validBody()
	body["thalassemia"] = 0
	body["st_depression"] = 0
	w := postJSON(t, h.Assess, body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, p.calls)
}

func TestAssess_InvalidBody(t *testing.T) {
	h := NewAssessmentHandler(newUsecase(t, &fakePredictor{}), validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/predictions", strings.NewReader("{"))
	w := httptest.NewRecorder()
	h.Assess(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssess_PredictorFailure(t *testing.T) {
	h := NewAssessmentHandler(newUsecase(t, &fakePredictor{err: errors.New("boom")}), validator.NewValidator())

	w := postJSON(t, h.Assess, validBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, decodeEnvelope(t, w).Success)
}

func TestEncodeFeatures(t *testing.T) {
	p := &fakePredictor{}
	h := NewAssessmentHandler(newUsecase(t, p), validator.NewValidator())

	w := postJSON(t, h.EncodeFeatures, validBody())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, p.calls)

	var data struct {
		Columns []string  `json:"columns"`
		Values  []float64 `json:"values"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
	assert.Equal(t, service.FeatureColumns(), data.Columns)
	assert.Equal(t, []float64{63, 145, 233, 150, 2.3}, data.Values[:5])
}

func TestHealthAndSchema(t *testing.T) {
	h := NewAssessmentHandler(newUsecase(t, &fakePredictor{}), validator.NewValidator())

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","model_type":"random_forest","features":30}`, w.Body.String())

	w = httptest.NewRecorder()
	h.GetSchema(w, httptest.NewRequest(http.MethodGet, "/api/v1/schema", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"thal_3"`)
}

func newFormHandler(t *testing.T, p *fakePredictor) *FormHandler {
	t.Helper()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	log, _ := test.NewNullLogger()
	return NewFormHandler(newUsecase(t, p), validator.NewValidator(), renderer, log)
}

func validForm() url.Values {
	form := url.Values{}
	for key, value := range view.ValuesFromRecord(entity.DefaultPatientRecord()) {
		form.Set(key, value)
	}
	return form
}

func postForm(h http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestForm_Show(t *testing.T) {
	h := newFormHandler(t, &fakePredictor{})

	w := httptest.NewRecorder()
	h.Show(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Coronary Disease Prediction")
	assert.NotContains(t, w.Body.String(), "Input data sent to the model")
}

func TestForm_SubmitLowRisk(t *testing.T) {
	p := &fakePredictor{label: 0, proba: 0.3}
	h := newFormHandler(t, p)

	w := postForm(h.Submit, validForm())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, p.calls)
	assert.Contains(t, w.Body.String(), "Low Risk")
	assert.Contains(t, w.Body.String(), "30.0%")
	assert.Contains(t, w.Body.String(), "Input data sent to the model")
}

func TestForm_SubmitHighRisk(t *testing.T) {
	h := newFormHandler(t, &fakePredictor{label: 1, proba: 0.75})

	w := postForm(h.Submit, validForm())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please consult a doctor.")
}

func TestForm_SubmitInvalid(t *testing.T) {
	p := &fakePredictor{}
	h := newFormHandler(t, p)

	form := validForm()
	form.Set("cholesterol", "401")
	form.Set("age", "abc")
	w := postForm(h.Submit, form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, p.calls)
	assert.Contains(t, w.Body.String(), "cholesterol must be less than or equal to 400")
	assert.Contains(t, w.Body.String(), "age must be a whole number")
	assert.Contains(t, w.Body.String(), `value="401"`)
}

func TestFormToRequest(t *testing.T) {
	form := validForm()
	form.Set("sex", " Female ")
	form.Set("st_depression", "2.5")
	form.Del("thalassemia")

	req, errs := formToRequest(form)

	assert.Empty(t, errs)
	assert.Equal(t, 50, req.Age)
	assert.Equal(t, "female", req.Sex)
	require.NotNil(t, req.STDepression)
	assert.Equal(t, 2.5, *req.STDepression)
	assert.Nil(t, req.Thalassemia)
}

func TestFormToRequest_DecimalOnly(t *testing.T) {
	form := validForm()
	form.Set("cholesterol", "0250")
	form.Set("resting_blood_pressure", "0x64")
	form.Set("st_depression", "01.5")

	req, errs := formToRequest(form)

	assert.Equal(t, 250, req.Cholesterol)
	require.NotNil(t, req.STDepression)
	assert.Equal(t, 1.5, *req.STDepression)
	assert.Equal(t, "resting_blood_pressure must be a whole number", errs["resting_blood_pressure"])
	assert.NotContains(t, errs, "cholesterol")
}

func TestForm_SubmitRejectsHexValue(t *testing.T) {
	p := &fakePredictor{}
	h := newFormHandler(t, p)

	form := validForm()
	form.Set("resting_blood_pressure", "0x64")
	w := postForm(h.Submit, form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, p.calls)
	assert.Contains(t, w.Body.String(), "resting_blood_pressure must be a whole number")
}
