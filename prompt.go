package main

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"time"

	"git.0xdad.com/tblyler/followup/reminder"
	"github.com/google/uuid"
)

const inputTimeLayout = "2006-01-02 15:04"

type prompter struct {
	scanner *bufio.Scanner
	loc     *time.Location
}

// line prompts for one line of input, returning def for an empty answer
func (p *prompter) line(label, def string) (string, error) {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read %s from STDIN prompt: %w", label, err)
		}

		return def, nil
	}

	val := string(bytes.TrimSpace(p.scanner.Bytes()))
	if val == "" {
		return def, nil
	}

	return val, nil
}

func (p *prompter) id() (uuid.UUID, error) {
	val, err := p.line("reminder id", "")
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid reminder id %q: %w", val, err)
	}

	return id, nil
}

// fields prompts for every editable field, defaulting to current when set
func (p *prompter) fields(current *reminder.Reminder) (reminder.Fields, error) {
	def := reminder.Fields{
		Kind:                reminder.KindMedication,
		At:                  time.Now().In(p.loc),
		Repeat:              reminder.RepeatNone,
		NotificationEnabled: true,
	}

	if current != nil {
		def = reminder.Fields{
			Title:               current.Title,
			Kind:                current.Kind,
			At:                  current.At.In(p.loc),
			Repeat:              current.Repeat,
			NotificationEnabled: current.NotificationEnabled,
		}
	}

	var fields reminder.Fields

	title, err := p.line("title", def.Title)
	if err != nil {
		return fields, err
	}

	if title == "" {
		return fields, reminder.ErrEmptyTitle
	}
	fields.Title = title

	kind, err := p.line(fmt.Sprintf("type (%s)", joinKinds()), string(def.Kind))
	if err != nil {
		return fields, err
	}

	fields.Kind, err = reminder.ParseKind(kind)
	if err != nil {
		return fields, err
	}

	at, err := p.line("date and time ("+inputTimeLayout+")", def.At.Format(inputTimeLayout))
	if err != nil {
		return fields, err
	}

	fields.At, err = time.ParseInLocation(inputTimeLayout, at, p.loc)
	if err != nil {
		return fields, fmt.Errorf("invalid date and time %q: %w", at, err)
	}

	repeat, err := p.line(fmt.Sprintf("repeat (%s)", joinRepeats()), string(def.Repeat))
	if err != nil {
		return fields, err
	}

	fields.Repeat, err = reminder.ParseRepeat(repeat)
	if err != nil {
		return fields, err
	}

	notifyDef := "n"
	if def.NotificationEnabled {
		notifyDef = "y"
	}

	enabled, err := p.line("enable notifications (y/n)", notifyDef)
	if err != nil {
		return fields, err
	}

	switch strings.ToLower(enabled) {
	case "y", "yes", "true":
		fields.NotificationEnabled = true
	case "n", "no", "false":
		fields.NotificationEnabled = false
	default:
		return fields, fmt.Errorf("invalid answer %q, expected y or n", enabled)
	}

	return fields, nil
}

func joinKinds() string {
	names := make([]string, 0, len(reminder.Kinds))
	for _, k := range reminder.Kinds {
		names = append(names, string(k))
	}

	return strings.Join(names, "/")
}

func joinRepeats() string {
	names := make([]string, 0, len(reminder.Repeats))
	for _, r := range reminder.Repeats {
		names = append(names, string(r))
	}

	return strings.Join(names, "/")
}

// rescheduleNote explains that moving an already fired occurrence into the
// future does not re-arm it. Empty when there is nothing to say.
func rescheduleNote(current *reminder.Reminder, fields reminder.Fields, now time.Time) string {
	if current == nil || !current.Notified || !fields.At.After(now) {
		return ""
	}

	return fmt.Sprintf("note: this occurrence already fired and will not fire again; "+
		"remove %s and add a new reminder to schedule it for %s", current.ID, fields.At.Format(inputTimeLayout))
}
