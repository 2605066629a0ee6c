package predictor

// Predictor is a fitted binary classifier.
type Predictor interface {
	// FeatureNames returns the column order the classifier was fit on.
	FeatureNames() []string
	// Predict returns the class label and the probability of the positive class.
	Predict(features []float64) (int, float64, error)
}
