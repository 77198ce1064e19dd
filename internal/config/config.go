// Package config loads AI settings from STYLESENSE_-prefixed environment
// variables. Example: STYLESENSE_GEMINI_API_KEY, STYLESENSE_STYLIST_MODEL.
// Paths and addresses come from command-line flags instead; only the AI
// configuration is environment-driven.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// AI holds the Gemini configuration.
type AI struct {
	// GeminiAPIKey authenticates against the Gemini API.
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY" required:"true"`

	// AnalysisModel serves single-item analysis and pairing text.
	AnalysisModel string `envconfig:"ANALYSIS_MODEL" default:"gemini-3-flash-preview"`

	// StylistModel serves multi-outfit reasoning.
	StylistModel string `envconfig:"STYLIST_MODEL" default:"gemini-3-pro-preview"`
}

// LoadAI populates AI from the environment (prefix STYLESENSE_).
func LoadAI() (AI, error) {
	var c AI
	if err := envconfig.Process("STYLESENSE", &c); err != nil {
		return c, fmt.Errorf("reading AI configuration: %w", err)
	}
	return c, nil
}
