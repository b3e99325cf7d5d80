package main

import (
	"fmt"
	"io"
	"time"

	"git.0xdad.com/tblyler/followup/reminder"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func urgencyStyles(r *lipgloss.Renderer) map[reminder.Urgency]lipgloss.Style {
	return map[reminder.Urgency]lipgloss.Style{
		reminder.UrgencyFired:    r.NewStyle().Faint(true),
		reminder.UrgencyOverdue:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		reminder.UrgencySoon:     r.NewStyle().Foreground(lipgloss.Color("11")),
		reminder.UrgencyUpcoming: r.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

// printList writes one line per reminder, coloured by urgency
func printList(w io.Writer, reminders []*reminder.Reminder, now time.Time, loc *time.Location) {
	if len(reminders) == 0 {
		fmt.Fprintln(w, "no reminders")
		return
	}

	styles := urgencyStyles(lipgloss.NewRenderer(w))

	for _, r := range reminders {
		urgency := r.Urgency(now)

		line := fmt.Sprintf("%-9s %-13s %s  %s (%s)",
			urgency,
			r.Kind.Label(),
			r.At.In(loc).Format("Jan 2, 2006 3:04 PM"),
			r.Title,
			humanize.RelTime(r.At, now, "ago", "from now"),
		)

		if r.Repeat != reminder.RepeatNone {
			line += " repeats " + string(r.Repeat)
		}

		if !r.NotificationEnabled {
			line += " [silent]"
		}

		fmt.Fprintf(w, "%s  %s\n", r.ID, styles[urgency].Render(line))
	}
}
