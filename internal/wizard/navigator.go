package wizard

import "github.com/nightrabbit666/workassist/pkg/workassist"

// Step is a wizard stage. Exactly one is active at a time.
type Step int

const (
	StepUpload Step = iota
	StepReview
	StepDone
)

// AllSteps returns all steps in order.
func AllSteps() []Step {
	return []Step{StepUpload, StepReview, StepDone}
}

// ID returns a stable identifier for the step.
func (s Step) ID() string {
	switch s {
	case StepUpload:
		return "upload"
	case StepReview:
		return "review"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// Label returns the display label for the step.
func (s Step) Label() string {
	switch s {
	case StepUpload:
		return "Upload documents"
	case StepReview:
		return "Review parameters"
	case StepDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// IndicatorStyle is how a step indicator is drawn.
type IndicatorStyle int

const (
	IndicatorPending IndicatorStyle = iota
	IndicatorCurrent
	IndicatorCompleted
)

func (s IndicatorStyle) String() string {
	switch s {
	case IndicatorCurrent:
		return "current"
	case IndicatorCompleted:
		return "completed"
	default:
		return "pending"
	}
}

// StyleFor returns the indicator style of the step at index while current is
// active: lower indices are completed, the same index is current and higher
// indices are pending.
func StyleFor(index int, current Step) IndicatorStyle {
	switch {
	case index < int(current):
		return IndicatorCompleted
	case index == int(current):
		return IndicatorCurrent
	default:
		return IndicatorPending
	}
}

// Navigator owns the active step and the save transition.
type Navigator struct {
	step      Step
	saving    bool
	projectID string
	locator   string
	lastErr   error
}

// NewNavigator starts at the upload step.
func NewNavigator() *Navigator {
	return &Navigator{step: StepUpload}
}

// Step returns the active step.
func (n *Navigator) Step() Step {
	return n.step
}

// Indicators returns the style of every step indicator.
func (n *Navigator) Indicators() []IndicatorStyle {
	steps := AllSteps()
	out := make([]IndicatorStyle, len(steps))
	for i := range steps {
		out[i] = StyleFor(i, n.step)
	}
	return out
}

// Saving reports whether a save is in flight.
func (n *Navigator) Saving() bool {
	return n.saving
}

// Err returns the error of the last failed save.
func (n *Navigator) Err() error {
	return n.lastErr
}

// ProjectID returns the id of the created project once Done.
func (n *Navigator) ProjectID() string {
	return n.projectID
}

// Locator returns where the created project can be opened once Done.
func (n *Navigator) Locator() string {
	return n.locator
}

func (n *Navigator) toReview() error {
	if n.step != StepUpload {
		return ErrWrongStep
	}
	n.step = StepReview
	return nil
}

func (n *Navigator) rollbackToUpload() {
	if n.step == StepReview {
		n.step = StepUpload
	}
}

// Back returns from review to upload.
func (n *Navigator) Back() error {
	if n.step != StepReview || n.saving {
		return ErrWrongStep
	}
	n.step = StepUpload
	n.lastErr = nil
	return nil
}

// BeginSave validates draft and marks a save as in flight. No request may be
// sent when it returns an error.
func (n *Navigator) BeginSave(draft ProjectDraft) (workassist.SaveProjectRequest, error) {
	if n.step != StepReview {
		return workassist.SaveProjectRequest{}, ErrWrongStep
	}
	if n.saving {
		return workassist.SaveProjectRequest{}, ErrSaveInFlight
	}
	if err := draft.Validate(); err != nil {
		n.lastErr = err
		return workassist.SaveProjectRequest{}, err
	}
	n.saving = true
	n.lastErr = nil
	return draft.Request(), nil
}

// CompleteSave finishes a successful save and moves to Done. It is refused
// unless BeginSave started a save that has not finished yet.
func (n *Navigator) CompleteSave(projectID, locator string) error {
	if n.step != StepReview || !n.saving {
		return ErrWrongStep
	}
	n.saving = false
	n.projectID = projectID
	n.locator = locator
	n.step = StepDone
	return nil
}

// FailSave records a failed save; the step stays at Review so the user can
// retry.
func (n *Navigator) FailSave(err error) error {
	if n.step != StepReview || !n.saving {
		return ErrWrongStep
	}
	n.saving = false
	n.lastErr = err
	return nil
}
