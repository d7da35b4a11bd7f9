package wizard

import (
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
)

// SlotKey identifies one upload slot.
type SlotKey string

const (
	SlotTemplate    SlotKey = "template"
	SlotReference   SlotKey = "reference"
	SlotSpreadsheet SlotKey = "spreadsheet"
)

// AllSlotKeys returns the slots in display order.
func AllSlotKeys() []SlotKey {
	return []SlotKey{SlotTemplate, SlotReference, SlotSpreadsheet}
}

// Valid reports whether k is one of the known slots.
func (k SlotKey) Valid() bool {
	switch k {
	case SlotTemplate, SlotReference, SlotSpreadsheet:
		return true
	}
	return false
}

// Label returns the display label for the slot.
func (k SlotKey) Label() string {
	switch k {
	case SlotTemplate:
		return "Template"
	case SlotReference:
		return "Reference document"
	case SlotSpreadsheet:
		return "Spreadsheet"
	default:
		return "Unknown"
	}
}

// Required reports whether analysis needs this slot.
func (k SlotKey) Required() bool {
	return k == SlotTemplate
}

// UploadSlot is the server's record of one uploaded file.
type UploadSlot struct {
	FileID      string
	DisplayName string
	SizeBytes   int64
}

// Ready reports whether the slot holds a successful upload.
func (s UploadSlot) Ready() bool {
	return s.FileID != ""
}

// Slots is a read-only copy of the filled upload slots. Empty slots are absent.
type Slots map[SlotKey]UploadSlot

// FileID returns the file id in slot k, or "" when it is empty.
func (s Slots) FileID(k SlotKey) string {
	return s[k].FileID
}

// SlotPhase is the per-slot status indicator.
type SlotPhase int

const (
	SlotEmpty SlotPhase = iota
	SlotUploading
	SlotReady
	SlotFailed
)

// SlotStatus is what a slot's status line shows.
type SlotStatus struct {
	Phase   SlotPhase
	Message string
	// Err is set only when Phase is SlotFailed.
	Err error
	// Detail carries preflight information, e.g. spreadsheet sheet names.
	Detail string
}

// Ticket identifies one upload attempt. Seq increases per slot.
type Ticket struct {
	Key  SlotKey
	Seq  uint64
	Path string
}

// SlotManager owns the upload slots. Every completion is checked against the
// per-slot sequence: a completion older than one already resolved, by success
// or failure, is dropped, so a slow response can never overwrite a newer upload.
type SlotManager struct {
	mu       sync.Mutex
	slots    map[SlotKey]UploadSlot
	status   map[SlotKey]SlotStatus
	issued   map[SlotKey]uint64
	resolved map[SlotKey]uint64
}

// NewSlotManager creates a manager with all slots empty.
func NewSlotManager() *SlotManager {
	return &SlotManager{
		slots:    make(map[SlotKey]UploadSlot),
		status:   make(map[SlotKey]SlotStatus),
		issued:   make(map[SlotKey]uint64),
		resolved: make(map[SlotKey]uint64),
	}
}

// Begin starts an upload into key and marks the slot as uploading. The prior
// slot value stays in place until a completion is applied.
func (m *SlotManager) Begin(key SlotKey, path string) (Ticket, error) {
	if !key.Valid() {
		return Ticket{}, invalid("slot", "unknown upload slot %q", key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued[key]++
	t := Ticket{Key: key, Seq: m.issued[key], Path: path}
	m.status[key] = SlotStatus{Phase: SlotUploading, Message: "Uploading..."}
	return t, nil
}

// Annotate sets the preflight detail shown for the slot of an in-flight ticket.
func (m *SlotManager) Annotate(t Ticket, detail string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.Seq != m.issued[t.Key] {
		return
	}
	st := m.status[t.Key]
	st.Detail = detail
	m.status[t.Key] = st
}

// Apply stores a successful upload. It returns false when the completion was
// superseded by a newer completion, successful or not, on the same slot.
func (m *SlotManager) Apply(t Ticket, slot UploadSlot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.Seq <= m.resolved[t.Key] {
		return false
	}
	m.resolved[t.Key] = t.Seq
	m.slots[t.Key] = slot

	detail := m.status[t.Key].Detail
	if t.Seq < m.issued[t.Key] {
		// A newer upload is still pending; keep showing progress.
		return true
	}
	m.status[t.Key] = SlotStatus{
		Phase:   SlotReady,
		Message: fmt.Sprintf("Ready: %s (%s)", slot.DisplayName, FormatBytes(slot.SizeBytes)),
		Detail:  detail,
	}
	return true
}

// Fail records a failed upload. The previous slot value is untouched. Failures
// of attempts that a newer attempt has superseded are ignored.
func (m *SlotManager) Fail(t Ticket, err error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.Seq <= m.resolved[t.Key] {
		return false
	}
	m.resolved[t.Key] = t.Seq
	if t.Seq < m.issued[t.Key] {
		return false
	}
	m.status[t.Key] = SlotStatus{Phase: SlotFailed, Message: "Upload failed", Err: err}
	return true
}

// Slot returns the current value of key.
func (m *SlotManager) Slot(key SlotKey) (UploadSlot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[key]
	return s, ok
}

// Slots returns a copy of all filled slots.
func (m *SlotManager) Slots() Slots {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(Slots, len(m.slots))
	for k, v := range m.slots {
		out[k] = v
	}
	return out
}

// Status returns the status indicator of key.
func (m *SlotManager) Status(key SlotKey) SlotStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status[key]
}

// Pending reports whether any upload is in flight.
func (m *SlotManager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, st := range m.status {
		if st.Phase == SlotUploading {
			return true
		}
	}
	return false
}

// FormatBytes renders a byte count for slot status lines.
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(n))
}

func (m *SlotManager) restore(key SlotKey, slot UploadSlot) error {
	if !key.Valid() {
		return invalid("slot", "unknown upload slot %q", key)
	}
	if !slot.Ready() {
		return nil
	}
	t, err := m.Begin(key, slot.DisplayName)
	if err != nil {
		return err
	}
	m.Apply(t, slot)
	return nil
}
