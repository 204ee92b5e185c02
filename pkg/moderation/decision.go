package moderation

import (
	"fmt"

	"github.com/modfence/modfence/pkg/domain"
)

// Decide applies a severity threshold to a classification result. The first
// category at or above the threshold, in the backend's own order, names the
// block reason; ties are broken by encounter order, not by maximum severity.
func Decide(result *domain.AnalysisResult, threshold int, policy Policy) domain.Verdict {
	if result != nil {
		for _, category := range result.Categories {
			if category.Severity >= threshold {
				return domain.Verdict{
					Blocked:    true,
					Confidence: policy.BlockedConfidence,
					Reason:     fmt.Sprintf("%s (Level %d)", category.Category, category.Severity),
				}
			}
		}
	}
	return safeVerdict(policy)
}

func safeVerdict(policy Policy) domain.Verdict {
	return domain.Verdict{
		Blocked:    false,
		Confidence: policy.SafeConfidence,
		Reason:     policy.SafeReason,
	}
}
