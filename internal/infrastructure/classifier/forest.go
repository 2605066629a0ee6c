package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrModelLoad is returned when a model artifact is missing, unreadable or inconsistent
var ErrModelLoad = errors.New("failed to load model artifact")

// Supported model types
const (
	TypeRandomForest = "random_forest"
	TypeDecisionTree = "decision_tree"
)

// Artifact is the JSON document a fitted classifier is exported to.
type Artifact struct {
	ModelType      string   `json:"model_type"`
	FeatureNamesIn []string `json:"feature_names_in"`
	Classes        []int    `json:"classes"`
	Estimators     []Tree   `json:"estimators"`
}

// Forest averages the class distributions of its trees, the way a
// scikit-learn RandomForestClassifier predicts. A decision tree is a
// forest of one.
type Forest struct {
	modelType    string
	featureNames []string
	classes      []int
	positive     int
	trees        []Tree
}

// LoadModel reads and validates the artifact at path.
func LoadModel(modelType, path string) (*Forest, error) {
	switch modelType {
	case TypeRandomForest, TypeDecisionTree:
	default:
		return nil, fmt.Errorf("%w: unsupported model type %q", ErrModelLoad, modelType)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}

	var artifact Artifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelLoad, path, err)
	}
	if artifact.ModelType != "" && artifact.ModelType != modelType {
		return nil, fmt.Errorf("%w: artifact is a %s, configured as %s", ErrModelLoad, artifact.ModelType, modelType)
	}
	artifact.ModelType = modelType

	return NewForest(artifact)
}

// NewForest validates an artifact and builds the classifier from it.
func NewForest(artifact Artifact) (*Forest, error) {
	if len(artifact.FeatureNamesIn) == 0 {
		return nil, fmt.Errorf("%w: artifact declares no feature names", ErrModelLoad)
	}
	positive, err := positiveClassIndex(artifact.Classes)
	if err != nil {
		return nil, err
	}
	if len(artifact.Estimators) == 0 {
		return nil, fmt.Errorf("%w: artifact has no estimators", ErrModelLoad)
	}
	if artifact.ModelType == TypeDecisionTree && len(artifact.Estimators) != 1 {
		return nil, fmt.Errorf("%w: decision tree artifact has %d estimators", ErrModelLoad, len(artifact.Estimators))
	}
	for i := range artifact.Estimators {
		if err := artifact.Estimators[i].validate(len(artifact.FeatureNamesIn), len(artifact.Classes)); err != nil {
			return nil, fmt.Errorf("%w: estimator %d: %v", ErrModelLoad, i, err)
		}
	}

	modelType := artifact.ModelType
	if modelType == "" {
		modelType = TypeRandomForest
	}

	return &Forest{
		modelType:    modelType,
		featureNames: append([]string(nil), artifact.FeatureNamesIn...),
		classes:      append([]int(nil), artifact.Classes...),
		positive:     positive,
		trees:        artifact.Estimators,
	}, nil
}

// positiveClassIndex requires classes to be exactly {0, 1}, in either order,
// and returns the position of label 1.
func positiveClassIndex(classes []int) (int, error) {
	if len(classes) != 2 {
		return 0, fmt.Errorf("%w: expected a binary classifier, got %d classes", ErrModelLoad, len(classes))
	}
	switch {
	case classes[0] == 0 && classes[1] == 1:
		return 1, nil
	case classes[0] == 1 && classes[1] == 0:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: classes %v must be exactly 0 and 1", ErrModelLoad, classes)
	}
}

func (f *Forest) ModelType() string {
	return f.modelType
}

func (f *Forest) FeatureNames() []string {
	return append([]string(nil), f.featureNames...)
}

func (f *Forest) TreeCount() int {
	return len(f.trees)
}

// Predict returns the most probable class and the probability of class 1.
// Ties go to the first class, as numpy argmax does.
func (f *Forest) Predict(features []float64) (int, float64, error) {
	if len(features) != len(f.featureNames) {
		return 0, 0, fmt.Errorf("expected %d features, got %d", len(f.featureNames), len(features))
	}

	proba := make([]float64, len(f.classes))
	for i := range f.trees {
		for c, p := range f.trees[i].leafDistribution(features) {
			proba[c] += p
		}
	}
	best := 0
	for c := range proba {
		proba[c] /= float64(len(f.trees))
		if proba[c] > proba[best] {
			best = c
		}
	}

	return f.classes[best], proba[f.positive], nil
}
