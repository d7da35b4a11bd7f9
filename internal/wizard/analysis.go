package wizard

import "github.com/nightrabbit666/workassist/pkg/workassist"

const (
	AnalyzeIdleLabel = "Start AI analysis"
	AnalyzeBusyLabel = "Analyzing documents..."
)

// Trigger is the state of the analyze control.
type Trigger struct {
	Enabled bool
	Busy    bool
	Label   string
}

// AnalysisCoordinator turns the upload slots into one analysis request and
// the response into the shared parameter list. At most one analysis is in
// flight at a time.
type AnalysisCoordinator struct {
	params  *ParamList
	nav     *Navigator
	report  Report
	busy    bool
	lastErr error
}

// NewAnalysisCoordinator wires the coordinator to the shared list and the
// navigator it advances.
func NewAnalysisCoordinator(params *ParamList, nav *Navigator) *AnalysisCoordinator {
	return &AnalysisCoordinator{params: params, nav: nav}
}

// Trigger returns the current state of the analyze control.
func (c *AnalysisCoordinator) Trigger() Trigger {
	if c.busy {
		return Trigger{Enabled: false, Busy: true, Label: AnalyzeBusyLabel}
	}
	return Trigger{Enabled: true, Label: AnalyzeIdleLabel}
}

// Busy reports whether an analysis is in flight.
func (c *AnalysisCoordinator) Busy() bool {
	return c.busy
}

// Report returns the extras of the last successful analysis.
func (c *AnalysisCoordinator) Report() Report {
	return c.report
}

// Err returns the error of the last failed attempt.
func (c *AnalysisCoordinator) Err() error {
	return c.lastErr
}

// Begin validates the slots and builds the request. On error nothing is
// marked in flight and no request may be sent.
func (c *AnalysisCoordinator) Begin(slots Slots) (workassist.AnalyzeRequest, error) {
	if c.busy {
		return workassist.AnalyzeRequest{}, ErrAnalysisInFlight
	}
	if c.nav.Step() != StepUpload {
		return workassist.AnalyzeRequest{}, ErrWrongStep
	}
	templateID := slots.FileID(SlotTemplate)
	if templateID == "" {
		c.lastErr = invalid("template", "upload at least the template file first")
		return workassist.AnalyzeRequest{}, c.lastErr
	}
	referenceID := slots.FileID(SlotReference)
	if referenceID != "" && referenceID == templateID {
		c.lastErr = invalid("reference", "the reference document is the same upload as the template")
		return workassist.AnalyzeRequest{}, c.lastErr
	}
	c.busy = true
	c.lastErr = nil
	return workassist.AnalyzeRequest{
		TemplateFileID: templateID,
		ExcelFileID:    slots.FileID(SlotSpreadsheet),
		OldDocFileID:   referenceID,
	}, nil
}

// Complete applies a successful response: the parameter list is replaced,
// the report captured and the wizard moved to review. A response that still
// carries an error field is treated as a rejection.
func (c *AnalysisCoordinator) Complete(resp workassist.AnalyzeResponse) error {
	if resp.Error != "" {
		return c.Fail(&workassist.RejectionError{Op: "analyze", Message: resp.Error})
	}
	c.busy = false
	c.lastErr = nil
	params := resp.Parameters
	if params == nil {
		params = []Parameter{}
	}
	c.params.Replace(params)
	c.report = reportFrom(resp)
	return c.nav.toReview()
}

// Fail records a failed attempt. The parameter list is left alone and the
// wizard goes back to upload if it had advanced.
func (c *AnalysisCoordinator) Fail(err error) error {
	c.busy = false
	c.lastErr = err
	c.nav.rollbackToUpload()
	return err
}

// Reset puts the trigger back to idle.
func (c *AnalysisCoordinator) Reset() {
	c.busy = false
	c.lastErr = nil
}
