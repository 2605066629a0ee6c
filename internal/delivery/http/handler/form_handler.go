package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"heart-risk-predictor/internal/converter"
	"heart-risk-predictor/internal/delivery/dto"
	"heart-risk-predictor/internal/delivery/http/view"
	"heart-risk-predictor/internal/domain/entity"
	"heart-risk-predictor/internal/infrastructure/metrics"
	"heart-risk-predictor/internal/usecase"
	"heart-risk-predictor/pkg/validator"

	"github.com/sirupsen/logrus"
)

type FormHandler struct {
	assessmentUsecase usecase.AssessmentUsecase
	validator         *validator.CustomValidator
	renderer          *view.Renderer
	log               *logrus.Logger
}

func NewFormHandler(
	assessmentUsecase usecase.AssessmentUsecase,
	validator *validator.CustomValidator,
	renderer *view.Renderer,
	log *logrus.Logger,
) *FormHandler {
	return &FormHandler{
		assessmentUsecase: assessmentUsecase,
		validator:         validator,
		renderer:          renderer,
		log:               log,
	}
}

// Show renders the empty form with its starting values
func (h *FormHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, &view.Page{
		Content: h.assessmentUsecase.Education(r.Context()),
		Values:  view.ValuesFromRecord(entity.DefaultPatientRecord()),
	})
}

// Submit scores the posted form and renders the verdict below it
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	page := &view.Page{
		Content: h.assessmentUsecase.Education(r.Context()),
		Values:  view.ValuesFromRecord(entity.DefaultPatientRecord()),
	}

	if err := r.ParseForm(); err != nil {
		metrics.IncValidationFailure("form")
		page.Error = "Invalid form submission"
		h.render(w, http.StatusBadRequest, page)
		return
	}
	for key := range page.Values {
		if _, ok := r.PostForm[key]; ok {
			page.Values[key] = r.PostForm.Get(key)
		}
	}

	req, parseErrs := formToRequest(r.PostForm)
	fieldErrs := parseErrs
	if err := h.validator.Validate(req); err != nil {
		for field, msg := range h.validator.FormatValidationErrors(err) {
			if _, ok := fieldErrs[field]; !ok {
				fieldErrs[field] = msg
			}
		}
	}
	if len(fieldErrs) > 0 {
		metrics.IncValidationFailure("form")
		page.Errors = fieldErrs
		page.Error = "Please correct the highlighted fields."
		h.render(w, http.StatusBadRequest, page)
		return
	}

	assessment, err := h.assessmentUsecase.Assess(r.Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrPrediction) {
			page.Error = "The assessment could not be completed. Please try again."
		} else {
			page.Error = "Internal server error"
		}
		h.render(w, http.StatusInternalServerError, page)
		return
	}

	page.Result = assessment
	h.render(w, http.StatusOK, page)
}

func (h *FormHandler) render(w http.ResponseWriter, status int, page *view.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.Render(w, page); err != nil {
		h.log.Errorf("Failed to render page: %+v", err)
	}
}

// formToRequest coerces posted strings into an AssessmentRequest. Fields
// that are present but not numeric are reported by name; missing ones are
// left for the validator.
func formToRequest(form url.Values) (*dto.AssessmentRequest, map[string]string) {
	errs := make(map[string]string)

	intField := func(key string) *int {
		raw := strings.TrimSpace(form.Get(key))
		if raw == "" {
			return nil
		}
		v, err := converter.ParseWholeNumber(raw)
		if err != nil {
			errs[key] = key + " must be a whole number"
			return nil
		}
		return &v
	}
	floatField := func(key string) *float64 {
		raw := strings.TrimSpace(form.Get(key))
		if raw == "" {
			return nil
		}
		v, err := converter.ParseDecimal(raw)
		if err != nil {
			errs[key] = key + " must be a number"
			return nil
		}
		return &v
	}
	value := func(v *int) int {
		if v == nil {
			return 0
		}
		return *v
	}

	req := &dto.AssessmentRequest{
		Age:                   value(intField("age")),
		Sex:                   strings.ToLower(strings.TrimSpace(form.Get("sex"))),
		ChestPainType:         intField("chest_pain_type"),
		RestingBloodPressure:  value(intField("resting_blood_pressure")),
		Cholesterol:           value(intField("cholesterol")),
		FastingBloodSugarHigh: intField("fasting_blood_sugar_high"),
		RestingECG:            intField("resting_ecg"),
		MaxHeartRate:          value(intField("max_heart_rate")),
		ExerciseInducedAngina: intField("exercise_induced_angina"),
		STDepression:          floatField("st_depression"),
		STSlope:               intField("st_slope"),
		MajorVesselsColored:   intField("major_vessels_colored"),
		Thalassemia:           intField("thalassemia"),
	}

	return req, errs
}
