package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Console writes acknowledgments as a highlighted banner line
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	style lipgloss.Style
	now   func() time.Time
}

// NewConsole acknowledger writing to w
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)

	return &Console{
		w: w,
		style: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("4")).
			Padding(0, 1),
		now: time.Now,
	}
}

// Acknowledge prints the message with the local time it was shown
func (c *Console) Acknowledge(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.w, "%s %s\n", c.now().Format("15:04"), c.style.Render(message))
}
