package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"heart-risk-predictor/internal/delivery/dto"
	"heart-risk-predictor/internal/infrastructure/metrics"
	"heart-risk-predictor/internal/usecase"
	"heart-risk-predictor/pkg/response"
	"heart-risk-predictor/pkg/validator"
)

type AssessmentHandler struct {
	assessmentUsecase usecase.AssessmentUsecase
	validator         *validator.CustomValidator
}

func NewAssessmentHandler(assessmentUsecase usecase.AssessmentUsecase, validator *validator.CustomValidator) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentUsecase: assessmentUsecase,
		validator:         validator,
	}
}

func (h *AssessmentHandler) Health(w http.ResponseWriter, r *http.Request) {
	schema := h.assessmentUsecase.Schema(r.Context())

	response.JSON(w, http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		ModelType: schema.ModelType,
		Features:  schema.Width,
	})
}

func (h *AssessmentHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Feature schema retrieved successfully", h.assessmentUsecase.Schema(r.Context()))
}

func (h *AssessmentHandler) GetEducation(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Educational content retrieved successfully", h.assessmentUsecase.Education(r.Context()))
}

func (h *AssessmentHandler) EncodeFeatures(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	response.Success(w, http.StatusOK, "Features encoded successfully", h.assessmentUsecase.EncodeFeatures(r.Context(), req))
}

func (h *AssessmentHandler) Assess(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	assessment, err := h.assessmentUsecase.Assess(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPrediction):
			response.InternalServerError(w, "Failed to score assessment")
		default:
			response.InternalServerError(w, "")
		}
		return
	}

	response.Success(w, http.StatusOK, "Assessment completed successfully", assessment)
}

// decode reads and validates an AssessmentRequest, writing the error response itself
func (h *AssessmentHandler) decode(w http.ResponseWriter, r *http.Request) (*dto.AssessmentRequest, bool) {
	var req dto.AssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.IncValidationFailure("api")
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return nil, false
	}

	if err := h.validator.Validate(&req); err != nil {
		metrics.IncValidationFailure("api")
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil, false
	}

	return &req, true
}
