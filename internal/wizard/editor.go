package wizard

// NoParametersMessage is shown instead of an empty list.
const NoParametersMessage = "No parameters detected. Check that the template and reference document differ."

// RecordView is one parameter as the editor shows it. Name and Description
// are the only editable fields.
type RecordView struct {
	Index       int
	Name        string
	Description string
	Type        string
	Context     string
	Example     string
}

// ReportView is the report region. It is nil when there is nothing to show.
type ReportView struct {
	LogicSummary string
	DiffReport   string
	TokenUsage   *TokenUsage
}

// EditorView is a full description of the review screen's parameter area.
type EditorView struct {
	Version uint64
	Empty   bool
	Records []RecordView
	Report  *ReportView
}

// Render projects the parameter list and report into a view. It never
// modifies its inputs.
func Render(params []Parameter, version uint64, report Report) EditorView {
	view := EditorView{Version: version}
	if !report.Empty() {
		rv := &ReportView{
			LogicSummary: report.LogicSummary,
			DiffReport:   report.DiffReport,
		}
		if report.TokenUsage != nil {
			usage := *report.TokenUsage
			rv.TokenUsage = &usage
		}
		view.Report = rv
	}
	if len(params) == 0 {
		view.Empty = true
		return view
	}
	view.Records = make([]RecordView, len(params))
	for i, p := range params {
		view.Records[i] = RecordView{
			Index:       i,
			Name:        p.Name,
			Description: p.Description,
			Type:        p.Type,
			Context:     p.Context,
			Example:     p.Example,
		}
	}
	return view
}
