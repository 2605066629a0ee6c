package service

import (
	"errors"
	"fmt"

	"heart-risk-predictor/internal/domain/entity"
)

// ErrSchemaMismatch is returned when a classifier declares a different column layout than the encoder produces
var ErrSchemaMismatch = errors.New("feature schema mismatch")

// FeatureEncoder turns a PatientRecord into the classifier's input vector.
// It holds no state besides the immutable column list.
type FeatureEncoder struct {
	columns []string
}

func NewFeatureEncoder() *FeatureEncoder {
	return &FeatureEncoder{columns: FeatureColumns()}
}

// Columns returns a copy of the encoder's column labels
func (e *FeatureEncoder) Columns() []string {
	columns := make([]string, len(e.columns))
	copy(columns, e.columns)
	return columns
}

// Encode builds the feature vector. Numeric values are not scaled and
// out-of-range values are not rejected here.
func (e *FeatureEncoder) Encode(record *entity.PatientRecord) entity.FeatureVector {
	values := make([]float64, 0, len(e.columns))
	for _, f := range continuousFields {
		values = append(values, f.value(record))
	}
	for _, f := range categoricalFields {
		values = append(values, f.encode(record, f.width)...)
	}

	return entity.FeatureVector{
		Columns: e.Columns(),
		Values:  values,
	}
}

// ValidateSchema checks the declared column order of a classifier against the encoder's.
func (e *FeatureEncoder) ValidateSchema(declared []string) error {
	if len(declared) != len(e.columns) {
		return fmt.Errorf("%w: model declares %d columns, encoder produces %d", ErrSchemaMismatch, len(declared), len(e.columns))
	}
	for i, column := range e.columns {
		if declared[i] != column {
			return fmt.Errorf("%w: column %d is %q in the model, encoder produces %q", ErrSchemaMismatch, i, declared[i], column)
		}
	}
	return nil
}
