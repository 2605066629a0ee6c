package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"heart-risk-predictor/internal/delivery/dto"
	"heart-risk-predictor/internal/domain/entity"

	"github.com/spf13/cast"
)

//go:embed templates/*.html
var templatesFS embed.FS

// InputKind selects the HTML control used for a field
type InputKind string

const (
	KindNumber InputKind = "number"
	KindRange  InputKind = "range"
	KindSelect InputKind = "select"
	KindRadio  InputKind = "radio"
)

type Option struct {
	Value string
	Label string
}

// Field is one form control. Min, Max and Options bound what the browser
// lets the user submit; the server validates again.
type Field struct {
	Name    string
	Label   string
	Kind    InputKind
	Min     string
	Max     string
	Step    string
	Options []Option
	Column  int
}

func codes(n int) []Option {
	options := make([]Option, n)
	for i := range options {
		options[i] = Option{Value: cast.ToString(i), Label: cast.ToString(i)}
	}
	return options
}

// Fields lists the form controls in display order.
var Fields = []Field{
	{Name: "age", Label: "Age", Kind: KindRange, Min: "18", Max: "100", Step: "1", Column: 1},
	{Name: "sex", Label: "Sex", Kind: KindRadio, Options: []Option{{"male", "Male"}, {"female", "Female"}}, Column: 1},
	{Name: "chest_pain_type", Label: "Chest Pain Type (CP)", Kind: KindSelect, Options: codes(4), Column: 1},
	{Name: "resting_blood_pressure", Label: "Resting Blood Pressure (trestbps)", Kind: KindNumber, Min: "80", Max: "200", Step: "1", Column: 1},
	{Name: "cholesterol", Label: "Cholesterol Level (chol)", Kind: KindNumber, Min: "100", Max: "400", Step: "1", Column: 1},
	{Name: "fasting_blood_sugar_high", Label: "Fasting Blood Sugar > 120 mg/dl (FBS)", Kind: KindRadio, Options: codes(2), Column: 1},
	{Name: "resting_ecg", Label: "Resting ECG Results (restecg)", Kind: KindSelect, Options: codes(3), Column: 2},
	{Name: "max_heart_rate", Label: "Maximum Heart Rate (thalach)", Kind: KindNumber, Min: "60", Max: "220", Step: "1", Column: 2},
	{Name: "exercise_induced_angina", Label: "Exercise-Induced Angina (exang)", Kind: KindRadio, Options: codes(2), Column: 2},
	{Name: "st_depression", Label: "ST Depression (oldpeak)", Kind: KindNumber, Min: "0", Max: "6", Step: "0.1", Column: 2},
	{Name: "st_slope", Label: "Slope of Peak Exercise ST Segment (slope)", Kind: KindSelect, Options: codes(3), Column: 2},
	{Name: "major_vessels_colored", Label: "Major Vessels Colored (ca)", Kind: KindRange, Min: "0", Max: "4", Step: "1", Column: 2},
	{Name: "thalassemia", Label: "Thalassemia (thal)", Kind: KindSelect, Options: codes(4), Column: 2},
}

// Page is the data the assessment page is rendered from
type Page struct {
	Content *entity.EducationContent
	Columns [][]Field
	Values  map[string]string
	Errors  map[string]string
	Error   string
	Result  *dto.AssessmentResponse
}

// ValuesFromRecord formats a record the way the form posts it back
func ValuesFromRecord(record entity.PatientRecord) map[string]string {
	return map[string]string{
		"age":                      cast.ToString(record.Age),
		"sex":                      string(record.Sex),
		"chest_pain_type":          cast.ToString(record.ChestPainType),
		"resting_blood_pressure":   cast.ToString(record.RestingBloodPressure),
		"cholesterol":              cast.ToString(record.Cholesterol),
		"fasting_blood_sugar_high": cast.ToString(record.FastingBloodSugarHigh),
		"resting_ecg":              cast.ToString(record.RestingECG),
		"max_heart_rate":           cast.ToString(record.MaxHeartRate),
		"exercise_induced_angina":  cast.ToString(record.ExerciseInducedAngina),
		"st_depression":            cast.ToString(record.STDepression),
		"st_slope":                 cast.ToString(record.STSlope),
		"major_vessels_colored":    cast.ToString(record.MajorVesselsColored),
		"thalassemia":              cast.ToString(record.Thalassemia),
	}
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("index.html").Funcs(template.FuncMap{
		"percent": func(p float64) string { return fmt.Sprintf("%.1f%%", p*100) },
		"number":  func(v float64) string { return cast.ToString(v) },
	}).ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// columns groups fields by their Column, in order of first appearance
func columns(fields []Field) [][]Field {
	var groups [][]Field
	index := make(map[int]int)
	for _, f := range fields {
		i, ok := index[f.Column]
		if !ok {
			i = len(groups)
			index[f.Column] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], f)
	}
	return groups
}

func (r *Renderer) Render(w io.Writer, page *Page) error {
	if page.Columns == nil {
		page.Columns = columns(Fields)
	}
	return r.tmpl.ExecuteTemplate(w, "index.html", page)
}
