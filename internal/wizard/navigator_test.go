package wizard

import (
	"errors"
	"testing"
)

func TestStyleForInvariant(t *testing.T) {
	steps := AllSteps()
	for _, current := range steps {
		for i := range steps {
			got := StyleFor(i, current)
			var want IndicatorStyle
			switch {
			case i < int(current):
				want = IndicatorCompleted
			case i == int(current):
				want = IndicatorCurrent
			default:
				want = IndicatorPending
			}
			if got != want {
				t.Fatalf("StyleFor(%d, %s) = %s, want %s", i, current.ID(), got, want)
			}
		}
	}
}

func TestIndicatorsFollowTransitions(t *testing.T) {
	n := NewNavigator()
	check := func(want ...IndicatorStyle) {
		t.Helper()
		got := n.Indicators()
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("step %s: indicators %v, want %v", n.Step().ID(), got, want)
			}
		}
	}
	check(IndicatorCurrent, IndicatorPending, IndicatorPending)

	if err := n.toReview(); err != nil {
		t.Fatal(err)
	}
	check(IndicatorCompleted, IndicatorCurrent, IndicatorPending)

	if err := n.Back(); err != nil {
		t.Fatal(err)
	}
	check(IndicatorCurrent, IndicatorPending, IndicatorPending)

	_ = n.toReview()
	if _, err := n.BeginSave(ProjectDraft{Name: "p", TemplateFileID: "f1"}); err != nil {
		t.Fatal(err)
	}
	if err := n.CompleteSave("p-1", "http://x/project/p-1"); err != nil {
		t.Fatal(err)
	}
	check(IndicatorCompleted, IndicatorCompleted, IndicatorCurrent)
}

func TestNavigatorDoneIsTerminal(t *testing.T) {
	n := NewNavigator()
	_ = n.toReview()
	_, _ = n.BeginSave(ProjectDraft{Name: "p", TemplateFileID: "f1"})
	if err := n.CompleteSave("p-1", "loc"); err != nil {
		t.Fatal(err)
	}

	if err := n.Back(); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected back refused from done, got %v", err)
	}
	if _, err := n.BeginSave(ProjectDraft{Name: "p", TemplateFileID: "f1"}); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected save refused from done, got %v", err)
	}
	if err := n.toReview(); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected review refused from done, got %v", err)
	}
	if n.Step() != StepDone || n.Locator() != "loc" || n.ProjectID() != "p-1" {
		t.Fatalf("unexpected done state %+v", n)
	}
}

func TestNavigatorSaveOutcomeNeedsSaveInFlight(t *testing.T) {
	n := NewNavigator()
	if err := n.CompleteSave("p-1", "loc"); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected completion refused on upload, got %v", err)
	}
	_ = n.toReview()
	if err := n.CompleteSave("p-1", "loc"); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected completion refused without a save, got %v", err)
	}
	if err := n.FailSave(errors.New("boom")); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected failure refused without a save, got %v", err)
	}
	if n.Step() != StepReview || n.ProjectID() != "" || n.Err() != nil {
		t.Fatalf("expected navigator untouched, got %+v", n)
	}
}

func TestNavigatorSaveValidation(t *testing.T) {
	n := NewNavigator()
	_ = n.toReview()
	for _, name := range []string{"", "   "} {
		if _, err := n.BeginSave(ProjectDraft{Name: name, TemplateFileID: "f1"}); Classify(err) != KindValidation {
			t.Fatalf("expected validation error for %q, got %v", name, err)
		}
		if n.Saving() {
			t.Fatal("expected no save in flight after validation error")
		}
	}
	if _, err := n.BeginSave(ProjectDraft{Name: "ok"}); Classify(err) != KindValidation {
		t.Fatalf("expected missing template rejected, got %v", err)
	}
}

func TestNavigatorSingleSaveInFlight(t *testing.T) {
	n := NewNavigator()
	_ = n.toReview()
	if _, err := n.BeginSave(ProjectDraft{Name: "p", TemplateFileID: "f1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := n.BeginSave(ProjectDraft{Name: "p", TemplateFileID: "f1"}); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("expected save in flight, got %v", err)
	}
	if err := n.Back(); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected back refused while saving, got %v", err)
	}
	if err := n.FailSave(errors.New("boom")); err != nil {
		t.Fatal(err)
	}
	if n.Step() != StepReview || n.Saving() {
		t.Fatalf("expected review after failure")
	}
	if _, err := n.BeginSave(ProjectDraft{Name: "p", TemplateFileID: "f1"}); err != nil {
		t.Fatalf("expected manual retry allowed, got %v", err)
	}
}

func TestDraftRequestDefaults(t *testing.T) {
	req := ProjectDraft{Name: "  Report  ", TemplateFileID: "f1"}.Request()
	if req.ProjectName != "Report" || req.Mode != string(ModeOneShot) {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.Parameters == nil {
		t.Fatal("expected empty parameters, not nil")
	}
	if ParseMode("MONTHLY") != ModeMonthly || ParseMode("weird") != ModeOneShot {
		t.Fatal("unexpected mode parsing")
	}
	if ModeOneShot.Toggle() != ModeMonthly || ModeMonthly.Toggle() != ModeOneShot {
		t.Fatal("unexpected mode toggle")
	}
}
