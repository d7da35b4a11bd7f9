package wizard

import (
	"sync"

	"github.com/nightrabbit666/workassist/pkg/workassist"
)

// Parameter is one AI-detected template variable. Only Name and Description
// are editable; everything else is owned by the analysis backend.
type Parameter = workassist.Parameter

// Field names an editable parameter field.
type Field int

const (
	FieldName Field = iota
	FieldDescription
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldDescription:
		return "description"
	default:
		return "unknown"
	}
}

// ParamList is the shared parameter sequence. It changes in exactly two ways:
// Replace swaps the whole sequence after an analysis, and Patch writes a
// single field of a single record. Each Replace bumps the version, and a
// Patch carrying an older version is rejected, so an edit made against a
// previous analysis can never land on a record of the new one.
type ParamList struct {
	mu      sync.Mutex
	items   []Parameter
	version uint64
}

// NewParamList creates an empty list at version 0.
func NewParamList() *ParamList {
	return &ParamList{}
}

// Replace installs ps as the new sequence and returns the new version. A nil
// slice is stored as an empty sequence.
func (l *ParamList) Replace(ps []Parameter) uint64 {
	items := make([]Parameter, len(ps))
	for i, p := range ps {
		items[i] = p.Clone()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = items
	l.version++
	return l.version
}

// Patch sets one editable field of the record at index.
func (l *ParamList) Patch(version uint64, index int, field Field, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if version != l.version {
		return ErrStaleEdit
	}
	if index < 0 || index >= len(l.items) {
		return invalid("parameter", "no parameter at index %d", index)
	}
	switch field {
	case FieldName:
		l.items[index].Name = value
	case FieldDescription:
		l.items[index].Description = value
	default:
		return invalid("parameter", "field %s is not editable", field)
	}
	return nil
}

// Version returns the current replace generation.
func (l *ParamList) Version() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// Len returns the number of parameters.
func (l *ParamList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// At returns a copy of the record at index.
func (l *ParamList) At(index int) (Parameter, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.items) {
		return Parameter{}, false
	}
	return l.items[index].Clone(), true
}

// Items returns a copy of the sequence together with its version.
func (l *ParamList) Items() ([]Parameter, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Parameter, len(l.items))
	for i, p := range l.items {
		out[i] = p.Clone()
	}
	return out, l.version
}
