package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"heart-risk-predictor/config"
	"heart-risk-predictor/internal/converter"
	"heart-risk-predictor/internal/delivery/dto"
	"heart-risk-predictor/internal/delivery/http/view"
	"heart-risk-predictor/internal/domain/entity"
	"heart-risk-predictor/internal/infrastructure/classifier"
	"heart-risk-predictor/internal/infrastructure/content"
	"heart-risk-predictor/internal/infrastructure/metrics"
	"heart-risk-predictor/internal/service"
	"heart-risk-predictor/internal/usecase"
	"heart-risk-predictor/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type modelFlags struct {
	path      string
	modelType string
}

func (f *modelFlags) register(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVar(&f.path, "model", cfg.Model.Path, "path to the model artifact")
	cmd.Flags().StringVar(&f.modelType, "type", cfg.Model.Type, "model type (random_forest or decision_tree)")
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "riskctl",
		Short:        "Coronary risk model tooling",
		SilenceUsage: true,
	}

	root.AddCommand(
		newSchemaCmd(),
		newValidateCmd(cfg),
		newEncodeCmd(),
		newPredictCmd(cfg),
	)

	return root
}

func newSchemaCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the feature columns the encoder produces, in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			columns := service.FeatureColumns()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), columns)
			}
			for i, column := range columns {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", i, column)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as a JSON array")

	return cmd
}

func newValidateCmd(cfg *config.Config) *cobra.Command {
	var model modelFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that a model artifact loads and matches the feature schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			forest, err := classifier.LoadModel(model.modelType, model.path)
			if err != nil {
				return err
			}
			if err := service.NewFeatureEncoder().ValidateSchema(forest.FeatureNames()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s with %d tree(s) over %d features\n",
				forest.ModelType(), forest.TreeCount(), len(forest.FeatureNames()))
			return nil
		},
	}
	model.register(cmd, cfg)

	return cmd
}

// numericFlags maps each numeric record flag to its request field, in form order
var numericFlags = []struct {
	flag  string
	field string
	usage string
}{
	{"age", "age", "age in years (18-100)"},
	{"cp", "chest_pain_type", "chest pain type (0-3)"},
	{"trestbps", "resting_blood_pressure", "resting blood pressure (80-200)"},
	{"chol", "cholesterol", "cholesterol level (100-400)"},
	{"fbs", "fasting_blood_sugar_high", "fasting blood sugar > 120 mg/dl (0 or 1)"},
	{"restecg", "resting_ecg", "resting ECG result (0-2)"},
	{"thalach", "max_heart_rate", "maximum heart rate (60-220)"},
	{"exang", "exercise_induced_angina", "exercise-induced angina (0 or 1)"},
	{"oldpeak", "st_depression", "ST depression (0-6)"},
	{"slope", "st_slope", "slope of peak exercise ST segment (0-2)"},
	{"ca", "major_vessels_colored", "major vessels colored (0-4)"},
	{"thal", "thalassemia", "thalassemia (0-3)"},
}

// recordFlags binds one flag per form input, defaulting to the form's starting
// values. Numbers are kept as typed and parsed as decimal.
type recordFlags struct {
	sex     string
	numbers map[string]*string
}

func (f *recordFlags) register(cmd *cobra.Command) {
	defaults := view.ValuesFromRecord(entity.DefaultPatientRecord())
	flags := cmd.Flags()
	flags.StringVar(&f.sex, "sex", defaults["sex"], "male or female")

	f.numbers = make(map[string]*string, len(numericFlags))
	for _, nf := range numericFlags {
		f.numbers[nf.field] = flags.String(nf.flag, defaults[nf.field], nf.usage)
	}
}

// request validates the flags the same way the HTTP surfaces do
func (f *recordFlags) request(v *validator.CustomValidator) (*dto.AssessmentRequest, error) {
	var messages []string
	whole := func(field string) int {
		n, err := converter.ParseWholeNumber(*f.numbers[field])
		if err != nil {
			messages = append(messages, field+" must be a whole number")
		}
		return n
	}
	oldpeak, err := converter.ParseDecimal(*f.numbers["st_depression"])
	if err != nil {
		messages = append(messages, "st_depression must be a number")
	}

	req := converter.RecordToAssessmentRequest(entity.PatientRecord{
		Age:                   whole("age"),
		Sex:                   entity.Sex(strings.ToLower(strings.TrimSpace(f.sex))),
		ChestPainType:         whole("chest_pain_type"),
		RestingBloodPressure:  whole("resting_blood_pressure"),
		Cholesterol:           whole("cholesterol"),
		FastingBloodSugarHigh: whole("fasting_blood_sugar_high"),
		RestingECG:            whole("resting_ecg"),
		MaxHeartRate:          whole("max_heart_rate"),
		ExerciseInducedAngina: whole("exercise_induced_angina"),
		STDepression:          oldpeak,
		STSlope:               whole("st_slope"),
		MajorVesselsColored:   whole("major_vessels_colored"),
		Thalassemia:           whole("thalassemia"),
	})
	if len(messages) > 0 {
		metrics.IncValidationFailure("cli")
		sort.Strings(messages)
		return nil, fmt.Errorf("invalid input: %s", strings.Join(messages, "; "))
	}

	if err := v.Validate(req); err != nil {
		metrics.IncValidationFailure("cli")
		errs := v.FormatValidationErrors(err)
		messages := make([]string, 0, len(errs))
		for _, msg := range errs {
			messages = append(messages, msg)
		}
		sort.Strings(messages)
		return nil, fmt.Errorf("invalid input: %s", strings.Join(messages, "; "))
	}

	return req, nil
}

func newEncodeCmd() *cobra.Command {
	var record recordFlags

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the feature vector for a record without scoring it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := record.request(validator.NewValidator())
			if err != nil {
				return err
			}
			r := converter.AssessmentRequestToRecord(req)
			return writeJSON(cmd.OutOrStdout(), converter.FeatureVectorToResponse(service.NewFeatureEncoder().Encode(&r)))
		},
	}
	record.register(cmd)

	return cmd
}

func newPredictCmd(cfg *config.Config) *cobra.Command {
	var (
		model  modelFlags
		record recordFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score one record against a model artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := validator.NewValidator()
			req, err := record.request(v)
			if err != nil {
				return err
			}

			forest, err := classifier.LoadModel(model.modelType, model.path)
			if err != nil {
				return err
			}
			education, err := content.LoadEducationContent(cfg.Content.Path)
			if err != nil {
				return err
			}
			uc, err := usecase.NewAssessmentUsecase(logrus.StandardLogger(), service.NewFeatureEncoder(), forest, education, forest.ModelType())
			if err != nil {
				return err
			}

			result, err := uc.Assess(context.Background(), req)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (label %d, probability %.3f)\n%s\n",
				result.Headline, result.Label, result.Probability, result.Message)
			return nil
		},
	}
	model.register(cmd, cfg)
	record.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full assessment as JSON")

	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
