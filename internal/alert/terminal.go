package alert

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dawsen1208/shelfd/internal/notify"

	"charm.land/lipgloss/v2"
)

// TerminalChannel renders transient toasts on the controlling
// terminal, styled by event status and kind.
type TerminalChannel struct {
	out io.Writer

	approvedStyle lipgloss.Style
	rejectedStyle lipgloss.Style
	reminderStyle lipgloss.Style
	infoStyle     lipgloss.Style
	bodyStyle     lipgloss.Style
}

func NewTerminalChannel(out io.Writer) *TerminalChannel {
	if out == nil {
		out = os.Stdout
	}

	green := lipgloss.Color("42")
	red := lipgloss.Color("160")
	amber := lipgloss.Color("214")
	gray := lipgloss.Color("245")

	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	return &TerminalChannel{
		out:           out,
		approvedStyle: badge.Foreground(lipgloss.Color("0")).Background(green),
		rejectedStyle: badge.Foreground(lipgloss.Color("15")).Background(red),
		reminderStyle: badge.Foreground(lipgloss.Color("0")).Background(amber),
		infoStyle:     badge.Foreground(lipgloss.Color("15")).Background(gray),
		bodyStyle:     lipgloss.NewStyle().Foreground(gray),
	}
}

func (t *TerminalChannel) Name() string {
	return "terminal"
}

func (t *TerminalChannel) Notify(_ context.Context, evt notify.Event, opts Options) error {
	badge := t.badgeFor(evt)
	line := fmt.Sprintf("%s %s", badge.Render(evt.Title), t.bodyStyle.Render(evt.Body))
	if opts.Sound {
		line += "\a"
	}

	_, err := fmt.Fprintln(t.out, line)
	return err
}

func (t *TerminalChannel) Health(_ context.Context) error {
	return nil
}

func (t *TerminalChannel) badgeFor(evt notify.Event) lipgloss.Style {
	if evt.Kind == notify.KindReviewReminder {
		return t.reminderStyle
	}
	switch evt.Status {
	case notify.StatusApproved:
		return t.approvedStyle
	case notify.StatusRejected:
		return t.rejectedStyle
	default:
		return t.infoStyle
	}
}
