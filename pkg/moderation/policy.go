package moderation

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/modfence/modfence/pkg/domain"
)

// Policy holds the kind-specific severity thresholds and pipeline limits.
type Policy struct {
	TextThreshold     int     `mapstructure:"text_threshold"`
	ImageThreshold    int     `mapstructure:"image_threshold"`
	FileThreshold     int     `mapstructure:"file_threshold"`
	MaxTextLength     int     `mapstructure:"max_text_length"`
	BlockedConfidence float64 `mapstructure:"blocked_confidence"`
	SafeConfidence    float64 `mapstructure:"safe_confidence"`
	SafeReason        string  `mapstructure:"safe_reason"`
}

// DefaultPolicy blocks image content earlier than text: nudity trips at
// severity 2 while text needs severity 4 (hate, violence). Extracted file
// text follows the text policy.
func DefaultPolicy() Policy {
	return Policy{
		TextThreshold:     4,
		ImageThreshold:    2,
		FileThreshold:     4,
		MaxTextLength:     1000,
		BlockedConfidence: 0.95,
		SafeConfidence:    0.98,
		SafeReason:        "Content is safe",
	}
}

// PolicyFromSettings overlays generic configuration settings on the default
// policy.
func PolicyFromSettings(settings map[string]interface{}) (Policy, error) {
	policy := DefaultPolicy()
	if len(settings) == 0 {
		return policy, nil
	}
	if err := mapstructure.Decode(settings, &policy); err != nil {
		return policy, fmt.Errorf("decode moderation settings: %w", err)
	}
	return policy, nil
}

func (p Policy) ThresholdFor(kind domain.Kind) int {
	switch kind {
	case domain.KindImage:
		return p.ImageThreshold
	case domain.KindFile:
		return p.FileThreshold
	default:
		return p.TextThreshold
	}
}
