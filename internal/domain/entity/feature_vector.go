package entity

// FeatureVector is the model input derived from a PatientRecord.
// Columns[i] labels Values[i].
type FeatureVector struct {
	Columns []string  `json:"columns"`
	Values  []float64 `json:"values"`
}

func (v FeatureVector) Len() int {
	return len(v.Values)
}
