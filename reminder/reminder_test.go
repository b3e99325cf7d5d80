package reminder

import (
	"errors"
	"testing"
	"time"
)

func TestRepeatNext(t *testing.T) {
	base := time.Date(2024, time.April, 20, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		repeat Repeat
		want   time.Time
		ok     bool
	}{
		{RepeatNone, time.Time{}, false},
		{RepeatDaily, time.Date(2024, time.April, 21, 14, 30, 0, 0, time.UTC), true},
		{RepeatWeekly, time.Date(2024, time.April, 27, 14, 30, 0, 0, time.UTC), true},
		{RepeatMonthly, time.Date(2024, time.May, 20, 14, 30, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		got, ok := tt.repeat.Next(base)
		if ok != tt.ok {
			t.Fatalf("%s: expected ok=%v, got %v", tt.repeat, tt.ok, ok)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.repeat, tt.want, got)
		}
	}
}

func TestRepeatNextMonthlyRollsOver(t *testing.T) {
	jan31 := time.Date(2023, time.January, 31, 8, 0, 0, 0, time.UTC)

	got, _ := RepeatMonthly.Next(jan31)
	want := time.Date(2023, time.March, 3, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Medication ")
	if err != nil {
		t.Fatalf("ParseKind: %v", err)
	}
	if k != KindMedication {
		t.Fatalf("expected %s, got %s", KindMedication, k)
	}

	if _, err = ParseKind("surgery"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestParseRepeat(t *testing.T) {
	r, err := ParseRepeat("")
	if err != nil || r != RepeatNone {
		t.Fatalf("expected none for empty input, got %q, %v", r, err)
	}

	r, err = ParseRepeat("WEEKLY")
	if err != nil || r != RepeatWeekly {
		t.Fatalf("expected weekly, got %q, %v", r, err)
	}

	if _, err = ParseRepeat("yearly"); !errors.Is(err, ErrInvalidRepeat) {
		t.Fatalf("expected ErrInvalidRepeat, got %v", err)
	}
}

func TestUrgency(t *testing.T) {
	now := time.Date(2024, time.April, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		r    Reminder
		want Urgency
	}{
		{Reminder{At: now.Add(-time.Hour), Notified: true}, UrgencyFired},
		{Reminder{At: now.Add(time.Hour), Notified: true}, UrgencyFired},
		{Reminder{At: now.Add(-time.Minute)}, UrgencyOverdue},
		{Reminder{At: now}, UrgencyOverdue},
		{Reminder{At: now.Add(23 * time.Hour)}, UrgencySoon},
		{Reminder{At: now.Add(48 * time.Hour)}, UrgencyUpcoming},
	}

	for i, tt := range tests {
		if got := tt.r.Urgency(now); got != tt.want {
			t.Fatalf("case %d: expected %s, got %s", i, tt.want, got)
		}
	}
}

func TestNotificationBody(t *testing.T) {
	r := Reminder{Title: "Blood Test Results", Kind: KindTest}

	want := "Time for your Test/Lab Work: Blood Test Results"
	if got := r.NotificationBody(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNextKeepsFieldsAndResetsNotified(t *testing.T) {
	r := &Reminder{
		ID:                  newID(),
		Title:               "Take pill",
		Kind:                KindMedication,
		At:                  time.Date(2024, time.April, 20, 8, 0, 0, 0, time.UTC),
		Repeat:              RepeatDaily,
		NotificationEnabled: true,
		Notified:            true,
	}

	n, ok := r.next(time.UTC)
	if !ok {
		t.Fatalf("expected a successor for a daily reminder")
	}
	if n.ID == r.ID {
		t.Fatalf("expected a fresh id")
	}
	if n.Notified {
		t.Fatalf("expected successor to be pending")
	}
	if n.Title != r.Title || n.Kind != r.Kind || n.Repeat != r.Repeat || n.NotificationEnabled != r.NotificationEnabled {
		t.Fatalf("successor fields differ: %+v vs %+v", n, r)
	}
	if !r.Notified {
		t.Fatalf("original must stay notified")
	}

	r.Repeat = RepeatNone
	if _, ok = r.next(time.UTC); ok {
		t.Fatalf("expected no successor for a non repeating reminder")
	}
}
