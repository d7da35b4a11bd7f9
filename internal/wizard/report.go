package wizard

import "github.com/nightrabbit666/workassist/pkg/workassist"

// TokenUsage is the model token accounting of one analysis.
type TokenUsage = workassist.TokenUsage

// Report holds the optional extras of an analysis. It is only rendered.
type Report struct {
	LogicSummary string
	DiffReport   string
	TokenUsage   *TokenUsage
}

// Empty reports whether no field is present.
func (r Report) Empty() bool {
	return r.LogicSummary == "" && r.DiffReport == "" && r.TokenUsage == nil
}

func reportFrom(resp workassist.AnalyzeResponse) Report {
	r := Report{
		LogicSummary: resp.LogicSummary,
		DiffReport:   resp.DiffReport,
	}
	if resp.TokenUsage != nil {
		usage := *resp.TokenUsage
		r.TokenUsage = &usage
	}
	return r
}
