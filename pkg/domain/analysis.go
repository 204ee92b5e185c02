package domain

// CategoryAnalysis is one (category, severity) pair reported by the
// classification backend. Severity follows the backend's scale, 0-7 in steps
// of two under EightSeverityLevels output.
type CategoryAnalysis struct {
	Category string `json:"category"`
	Severity int    `json:"severity"`
}

// AnalysisResult is the backend's full answer for one unit of content, in
// the backend's own category order.
type AnalysisResult struct {
	Categories []CategoryAnalysis `json:"categoriesAnalysis"`
}

// Verdict is the moderation outcome for one request. Confidence is a policy
// constant per branch, not a probability derived from severity.
type Verdict struct {
	Blocked    bool
	Confidence float64
	Reason     string
}
