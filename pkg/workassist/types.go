package workassist

import (
	"bytes"
	"encoding/json"
	"sort"
)

// UploadResult is the body returned by POST /api/upload.
type UploadResult struct {
	Success      bool   `json:"success"`
	FileID       string `json:"file_id"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	Error        string `json:"error,omitempty"`
}

// AnalyzeRequest is the body sent to POST /api/analyze. Optional IDs are
// omitted from the payload when empty.
type AnalyzeRequest struct {
	TemplateFileID string `json:"template_file_id"`
	ExcelFileID    string `json:"excel_file_id,omitempty"`
	OldDocFileID   string `json:"old_doc_file_id,omitempty"`
}

// TokenUsage reports model token consumption for one analysis.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CandidatesTokens int `json:"candidates_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// AnalyzeResponse is the body returned by POST /api/analyze.
type AnalyzeResponse struct {
	Parameters   []Parameter `json:"parameters"`
	DiffReport   string      `json:"diff_report,omitempty"`
	LogicSummary string      `json:"logic_summary,omitempty"`
	TokenUsage   *TokenUsage `json:"token_usage,omitempty"`
	Error        string      `json:"error,omitempty"`
}

// Features toggles optional project behaviour.
type Features struct {
	Daily   bool `json:"daily"`
	Monthly bool `json:"monthly"`
	Debug   bool `json:"debug"`
}

// SaveProjectRequest is the body sent to POST /api/save_project.
type SaveProjectRequest struct {
	ProjectName    string      `json:"project_name"`
	ProjectDesc    string      `json:"project_desc,omitempty"`
	Mode           string      `json:"mode"`
	Features       Features    `json:"features"`
	TemplateFileID string      `json:"template_file_id"`
	Parameters     []Parameter `json:"parameters"`
}

// SaveProjectResponse is the body returned by POST /api/save_project.
type SaveProjectResponse struct {
	Success   bool   `json:"success"`
	ProjectID string `json:"project_id"`
	Error     string `json:"error,omitempty"`
}

// Parameter is one template variable detected by the analysis backend.
//
// Fields the backend sends beyond the five known ones (for example the
// original_text the server uses when rewriting the template) are kept in
// Extra and written back unchanged when the parameter is saved.
type Parameter struct {
	Name        string
	Type        string
	Description string
	Context     string
	Example     string
	Extra       map[string]json.RawMessage
}

var knownParameterFields = []string{"name", "type", "description", "context", "example"}

// UnmarshalJSON decodes a parameter, tolerating non-string values for the
// read-only fields.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Parameter{}
	dest := map[string]*string{
		"name":        &p.Name,
		"type":        &p.Type,
		"description": &p.Description,
		"context":     &p.Context,
		"example":     &p.Example,
	}
	for key, value := range raw {
		target, ok := dest[key]
		if !ok {
			if p.Extra == nil {
				p.Extra = make(map[string]json.RawMessage)
			}
			p.Extra[key] = value
			continue
		}
		*target = flattenJSON(value)
	}
	return nil
}

// MarshalJSON encodes the known fields followed by any extra fields in
// key order.
func (p Parameter) MarshalJSON() ([]byte, error) {
	values := []string{p.Name, p.Type, p.Description, p.Context, p.Example}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range knownParameterFields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		v, err := json.Marshal(values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	keys := make([]string, 0, len(p.Extra))
	for key := range p.Extra {
		if isKnownField(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		k, _ := json.Marshal(key)
		buf.WriteByte(',')
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(p.Extra[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Clone returns a deep copy of p.
func (p Parameter) Clone() Parameter {
	out := p
	if p.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(p.Extra))
		for k, v := range p.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

func isKnownField(key string) bool {
	for _, k := range knownParameterFields {
		if k == key {
			return true
		}
	}
	return false
}

// flattenJSON returns strings as-is, null as empty and anything else as its
// compact JSON text.
func flattenJSON(value json.RawMessage) string {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s
	}
	trimmed := bytes.TrimSpace(value)
	if bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return string(trimmed)
	}
	return compact.String()
}
