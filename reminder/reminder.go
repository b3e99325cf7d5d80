package reminder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyTitle occurs when a reminder is added or edited without a title
	ErrEmptyTitle = errors.New("reminder title is empty")
	// ErrInvalidKind occurs when a reminder type is not one of the known kinds
	ErrInvalidKind = errors.New("invalid reminder type")
	// ErrInvalidRepeat occurs when a repeat option is not one of the known options
	ErrInvalidRepeat = errors.New("invalid repeat option")
)

// Kind of reminder, used for grouping and labels
type Kind string

// Known reminder kinds
const (
	KindMedication  Kind = "medication"
	KindTest        Kind = "test"
	KindAppointment Kind = "appointment"
)

// Kinds in display order
var Kinds = []Kind{KindMedication, KindTest, KindAppointment}

// Label for display
func (k Kind) Label() string {
	switch k {
	case KindMedication:
		return "Medication"
	case KindTest:
		return "Test/Lab Work"
	case KindAppointment:
		return "Appointment"
	}

	return string(k)
}

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	switch k {
	case KindMedication, KindTest, KindAppointment:
		return true
	}

	return false
}

// ParseKind from its wire tag
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidKind)
	}

	return k, nil
}

// Repeat is the recurrence of a reminder
type Repeat string

// Known repeat options
const (
	RepeatNone    Repeat = "none"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
)

// Repeats in display order
var Repeats = []Repeat{RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly}

// Label for display
func (r Repeat) Label() string {
	switch r {
	case RepeatNone:
		return "Do not repeat"
	case RepeatDaily:
		return "Daily"
	case RepeatWeekly:
		return "Weekly"
	case RepeatMonthly:
		return "Monthly"
	}

	return string(r)
}

// Valid reports whether r is a known repeat option
func (r Repeat) Valid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return true
	}

	return false
}

// ParseRepeat from its wire tag. An empty string means RepeatNone.
func ParseRepeat(s string) (Repeat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RepeatNone, nil
	}

	r := Repeat(s)
	if !r.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidRepeat)
	}

	return r, nil
}

// Next occurrence after t. Monthly steps use calendar arithmetic, so a day of
// month that does not exist in the next month rolls over into the one after.
func (r Repeat) Next(t time.Time) (time.Time, bool) {
	switch r {
	case RepeatDaily:
		return t.AddDate(0, 0, 1), true
	case RepeatWeekly:
		return t.AddDate(0, 0, 7), true
	case RepeatMonthly:
		return t.AddDate(0, 1, 0), true
	}

	return time.Time{}, false
}

// Urgency of a reminder relative to a point in time
type Urgency int

// Urgency levels, most settled first
const (
	UrgencyFired Urgency = iota
	UrgencyOverdue
	UrgencySoon
	UrgencyUpcoming
)

func (u Urgency) String() string {
	switch u {
	case UrgencyFired:
		return "fired"
	case UrgencyOverdue:
		return "overdue"
	case UrgencySoon:
		return "soon"
	}

	return "upcoming"
}

// SoonWindow is how far ahead a pending reminder counts as soon
const SoonWindow = 24 * time.Hour

// Reminder information
type Reminder struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	Kind                Kind      `json:"type"`
	At                  time.Time `json:"datetime"`
	Repeat              Repeat    `json:"repeat"`
	NotificationEnabled bool      `json:"notificationEnabled"`
	Notified            bool      `json:"notified"`
}

// Fields a user supplies when adding or editing a reminder
type Fields struct {
	Title               string
	Kind                Kind
	At                  time.Time
	Repeat              Repeat
	NotificationEnabled bool
}

func (f Fields) normalize() (Fields, error) {
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		return f, ErrEmptyTitle
	}

	if !f.Kind.Valid() {
		return f, fmt.Errorf("%q: %w", f.Kind, ErrInvalidKind)
	}

	if f.Repeat == "" {
		f.Repeat = RepeatNone
	}

	if !f.Repeat.Valid() {
		return f, fmt.Errorf("%q: %w", f.Repeat, ErrInvalidRepeat)
	}

	return f, nil
}

// validate a stored record, normalising its title and repeat in place
func (r *Reminder) validate() error {
	f, err := Fields{Title: r.Title, Kind: r.Kind, At: r.At, Repeat: r.Repeat}.normalize()
	if err != nil {
		return err
	}

	if r.At.IsZero() {
		return errors.New("missing datetime")
	}

	r.Title = f.Title
	r.Repeat = f.Repeat

	return nil
}

// Due reports whether the occurrence has not fired and is at or before now
func (r *Reminder) Due(now time.Time) bool {
	return !r.Notified && !r.At.After(now)
}

// Urgency of the reminder at now
func (r *Reminder) Urgency(now time.Time) Urgency {
	switch {
	case r.Notified:
		return UrgencyFired
	case !r.At.After(now):
		return UrgencyOverdue
	case r.At.Before(now.Add(SoonWindow)):
		return UrgencySoon
	}

	return UrgencyUpcoming
}

// NotificationBody for the system notification of this reminder
func (r *Reminder) NotificationBody() string {
	return fmt.Sprintf("Time for your %s: %s", r.Kind.Label(), r.Title)
}

// next occurrence as a new pending record, if the reminder repeats. The step
// is taken on the wall clock of loc so the time of day survives DST changes.
func (r *Reminder) next(loc *time.Location) (*Reminder, bool) {
	if loc == nil {
		loc = time.Local
	}

	at, ok := r.Repeat.Next(r.At.In(loc))
	if !ok {
		return nil, false
	}

	n := *r
	n.ID = newID()
	n.At = at
	n.Notified = false

	return &n, true
}

func (r *Reminder) String() string {
	return fmt.Sprintf("%s [%s] %s at %s (%s)", r.ID, r.Kind.Label(), r.Title, r.At.Format(time.RFC3339), r.Repeat.Label())
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return id
}
