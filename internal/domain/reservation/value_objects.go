package reservation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxCustomNameLength = 200
	MaxNoteLength       = 2000
	MaxRequesterLength  = 200
)

// TimeSlot is the half-open interval [start, end).
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time { return ts.start }
func (ts TimeSlot) End() time.Time   { return ts.end }

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps reports whether the two slots share an instant: a < d && b > c.
// Back-to-back slots (one ends exactly when the other starts) do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && ts.end.After(other.start)
}

func (ts TimeSlot) Contains(t time.Time) bool {
	return !t.Before(ts.start) && t.Before(ts.end)
}

func (ts TimeSlot) Equal(other TimeSlot) bool {
	return ts.start.Equal(other.start) && ts.end.Equal(other.end)
}

func (ts TimeSlot) String() string {
	return "[" + ts.start.Format(time.RFC3339) + "," + ts.end.Format(time.RFC3339) + ")"
}

type Quantity struct {
	value int
}

func NewQuantity(n int) (Quantity, error) {
	if n < 1 {
		return Quantity{}, ErrInvalidQuantity
	}
	return Quantity{value: n}, nil
}

func (q Quantity) Int() int { return q.value }

type targetKind uint8

const (
	targetCatalog targetKind = iota + 1
	targetAdHoc
)

// Target identifies what is borrowed: a catalog item or a free-text item the catalog lacks.
type Target struct {
	kind        targetKind
	equipmentID uuid.UUID
	name        string
}

func CatalogItem(equipmentID uuid.UUID) (Target, error) {
	if equipmentID == uuid.Nil {
		return Target{}, ErrInvalidTarget
	}
	return Target{kind: targetCatalog, equipmentID: equipmentID}, nil
}

func AdHoc(name string) (Target, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Target{}, ErrInvalidTarget
	}
	if utf8.RuneCountInString(name) > MaxCustomNameLength {
		return Target{}, ErrCustomNameTooLong
	}
	return Target{kind: targetAdHoc, name: name}, nil
}

// ResolveTarget picks the catalog reference when present and falls back to the custom name.
func ResolveTarget(equipmentID *uuid.UUID, customName *string) (Target, error) {
	if equipmentID != nil && *equipmentID != uuid.Nil {
		return CatalogItem(*equipmentID)
	}
	if customName != nil {
		return AdHoc(*customName)
	}
	return Target{}, ErrInvalidTarget
}

func (t Target) IsCatalog() bool { return t.kind == targetCatalog }
func (t Target) IsAdHoc() bool   { return t.kind == targetAdHoc }

func (t Target) EquipmentID() (uuid.UUID, bool) {
	if t.kind != targetCatalog {
		return uuid.Nil, false
	}
	return t.equipmentID, true
}

func (t Target) CustomName() (string, bool) {
	if t.kind != targetAdHoc {
		return "", false
	}
	return t.name, true
}

// Refers reports whether the target is the catalog item with the given id.
func (t Target) Refers(equipmentID uuid.UUID) bool {
	return t.kind == targetCatalog && t.equipmentID == equipmentID
}

// Requester holds who asked for the reservation. Contact doubles as proof of ownership.
type Requester struct {
	name       string
	contact    string
	department string
}

func NewRequester(name, contact, department string) (Requester, error) {
	name = strings.TrimSpace(name)
	contact = strings.TrimSpace(contact)
	department = strings.TrimSpace(department)
	if name == "" || contact == "" {
		return Requester{}, ErrInvalidRequester
	}
	if utf8.RuneCountInString(name) > MaxRequesterLength ||
		utf8.RuneCountInString(contact) > MaxRequesterLength ||
		utf8.RuneCountInString(department) > MaxRequesterLength {
		return Requester{}, ErrInvalidRequester
	}
	return Requester{name: name, contact: contact, department: department}, nil
}

func (r Requester) Name() string       { return r.name }
func (r Requester) Contact() string    { return r.contact }
func (r Requester) Department() string { return r.department }

func (r Requester) OwnsContact(contact string) bool {
	return r.contact != "" && strings.EqualFold(r.contact, strings.TrimSpace(contact))
}

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: value}, nil
}

func (n Note) String() string { return n.value }
func (n Note) IsEmpty() bool  { return n.value == "" }

// ReconstructTimeSlot rebuilds a slot from persisted state without validation.
func ReconstructTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: end}
}
