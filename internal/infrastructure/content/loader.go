package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"heart-risk-predictor/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed education.yaml
var defaultDocument []byte

// LoadEducationContent parses the content document at path, or the embedded
// document when path is empty.
func LoadEducationContent(path string) (*entity.EducationContent, error) {
	document := defaultDocument
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read content file: %w", err)
		}
		document = data
	}

	var content entity.EducationContent
	if err := yaml.Unmarshal(document, &content); err != nil {
		return nil, fmt.Errorf("failed to parse content file: %w", err)
	}
	if content.Verdicts.HighRisk.Headline == "" || content.Verdicts.LowRisk.Headline == "" {
		return nil, errors.New("content must define both verdict headlines")
	}

	source := "embedded"
	if path != "" {
		source = path
	}
	logrus.WithFields(logrus.Fields{
		"source": source,
		"tips":   len(content.PreventionTips),
	}).Info("Educational content loaded")

	return &content, nil
}
