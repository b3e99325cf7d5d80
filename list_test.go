package main

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"git.0xdad.com/tblyler/followup/reminder"
	"github.com/google/uuid"
)

func TestPrintList(t *testing.T) {
	now := time.Date(2024, time.April, 20, 12, 0, 0, 0, time.UTC)

	reminders := []*reminder.Reminder{
		{ID: uuid.New(), Title: "Take pill", Kind: reminder.KindMedication, At: now.Add(-time.Hour), Repeat: reminder.RepeatDaily, NotificationEnabled: true},
		{ID: uuid.New(), Title: "Blood test", Kind: reminder.KindTest, At: now.Add(72 * time.Hour), Repeat: reminder.RepeatNone},
	}

	var buf bytes.Buffer
	printList(&buf, reminders, now, time.UTC)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}

	for _, want := range []string{"overdue", "Medication", "Take pill", "1 hour ago", "repeats daily"} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("expected %q in %q", want, lines[0])
		}
	}

	for _, want := range []string{"upcoming", "Test/Lab Work", "Apr 23, 2024 12:00 PM", "from now", "[silent]"} {
		if !strings.Contains(lines[1], want) {
			t.Fatalf("expected %q in %q", want, lines[1])
		}
	}
}

func TestPrintListEmpty(t *testing.T) {
	var buf bytes.Buffer
	printList(&buf, nil, time.Now(), time.UTC)

	if buf.String() != "no reminders\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestPrompterFields(t *testing.T) {
	input := "Take pill\ntest\n2024-04-20 08:30\nweekly\nn\n"
	p := &prompter{scanner: bufio.NewScanner(strings.NewReader(input)), loc: time.UTC}

	fields, err := p.fields(nil)
	if err != nil {
		t.Fatalf("fields: %v", err)
	}

	if fields.Title != "Take pill" || fields.Kind != reminder.KindTest || fields.Repeat != reminder.RepeatWeekly || fields.NotificationEnabled {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if !fields.At.Equal(time.Date(2024, time.April, 20, 8, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected datetime %v", fields.At)
	}
}

func TestPrompterFieldsDefaultsToCurrent(t *testing.T) {
	current := &reminder.Reminder{
		ID:                  uuid.New(),
		Title:               "Check-up",
		Kind:                reminder.KindAppointment,
		At:                  time.Date(2024, time.April, 25, 10, 0, 0, 0, time.UTC),
		Repeat:              reminder.RepeatMonthly,
		NotificationEnabled: true,
	}

	p := &prompter{scanner: bufio.NewScanner(strings.NewReader("\n\n\n\n\n")), loc: time.UTC}

	fields, err := p.fields(current)
	if err != nil {
		t.Fatalf("fields: %v", err)
	}

	if fields.Title != current.Title || fields.Kind != current.Kind || !fields.At.Equal(current.At) ||
		fields.Repeat != current.Repeat || fields.NotificationEnabled != current.NotificationEnabled {
		t.Fatalf("expected current values, got %+v", fields)
	}
}

func TestPrompterFieldsEmptyTitle(t *testing.T) {
	p := &prompter{scanner: bufio.NewScanner(strings.NewReader("\n")), loc: time.UTC}

	if _, err := p.fields(nil); !errors.Is(err, reminder.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestRescheduleNote(t *testing.T) {
	now := time.Date(2024, time.April, 20, 12, 0, 0, 0, time.UTC)
	future := reminder.Fields{Title: "Take pill", Kind: reminder.KindMedication, At: now.Add(2 * time.Hour)}

	fired := &reminder.Reminder{ID: uuid.New(), Title: "Take pill", Kind: reminder.KindMedication, At: now.Add(-time.Hour), Notified: true}

	note := rescheduleNote(fired, future, now)
	for _, want := range []string{"will not fire again", "remove " + fired.ID.String(), "2024-04-20 14:00"} {
		if !strings.Contains(note, want) {
			t.Fatalf("expected %q in %q", want, note)
		}
	}

	pending := &reminder.Reminder{ID: uuid.New(), Title: "Take pill", Kind: reminder.KindMedication, At: now.Add(time.Hour)}
	if note = rescheduleNote(pending, future, now); note != "" {
		t.Fatalf("expected no note for a pending reminder, got %q", note)
	}

	past := future
	past.At = now.Add(-2 * time.Hour)
	if note = rescheduleNote(fired, past, now); note != "" {
		t.Fatalf("expected no note when the new time is in the past, got %q", note)
	}
}
