package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/command"
	"github.com/fitbook/fitbook/internal/errors"
	"github.com/fitbook/fitbook/internal/logic"
	"github.com/fitbook/fitbook/internal/ops"
)

var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorDimmed  = lipgloss.Color("#374151")
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(colorPrimary)
	messageStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	nameStyle    = lipgloss.NewStyle().Bold(true)
	tagStyle     = lipgloss.NewStyle().Foreground(colorPrimary).Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDimmed).
			Padding(0, 1)
)

// runREPL reads command lines from in until exit or end of input. After every
// command that is not help, the clients currently shown are rendered to out.
func runREPL(ctx context.Context, mg *logic.Manager, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, titleStyle.Render("fitbook")+" "+mutedStyle.Render("type help for the command list"))
	fmt.Fprintln(out, renderClients(mg.Filtered(), len(mg.Clients())))

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(out, promptStyle.Render("> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result, err := mg.Execute(ctx, line)
		if err != nil {
			fmt.Fprintln(out, renderError(err))
			continue
		}

		fmt.Fprintln(out, messageStyle.Render(result.Message))
		if result.Exit {
			return nil
		}
		if result.ShowHelp {
			fmt.Fprintln(out, command.HelpText())
			continue
		}
		if result.SuggestedInput != "" {
			fmt.Fprintln(out, mutedStyle.Render("Edit and enter: ")+result.SuggestedInput)
		}
		fmt.Fprintln(out, renderClients(mg.Filtered(), len(mg.Clients())))
	}
}

// renderError shows the user-facing message of err, with usage text for parse errors.
func renderError(err error) string {
	var fErr *errors.FitError
	if !stderrors.As(err, &fErr) {
		return errorStyle.Render(err.Error())
	}
	s := errorStyle.Render(fErr.Message)
	if fErr.Usage != "" {
		s += "\n" + mutedStyle.Render(fErr.Usage)
	}
	return s
}

// renderClients renders one card per shown client, numbered from 1.
func renderClients(shown []*client.Client, total int) string {
	if len(shown) == 0 {
		return mutedStyle.Render(fmt.Sprintf("No clients shown (%d in total).", total))
	}

	cards := make([]string, 0, len(shown)+1)
	for i, c := range shown {
		cards = append(cards, renderCard(ops.ViewOf(i+1, c)))
	}
	cards = append(cards, mutedStyle.Render(fmt.Sprintf("%d of %d clients shown", len(shown), total)))
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderCard(v ops.ClientView) string {
	header := nameStyle.Render(fmt.Sprintf("%d. %s", v.Index, v.Name))
	for _, t := range v.Tags {
		header += " " + tagStyle.Render(t)
	}

	lines := []string{header, "Phone: " + v.Phone}
	if v.Email != "" {
		lines = append(lines, "Email: "+v.Email)
	}
	if v.Address != "" {
		lines = append(lines, "Address: "+v.Address)
	}

	var measures []string
	if v.Weight != nil {
		measures = append(measures, fmt.Sprintf("Weight: %g kg", *v.Weight))
	}
	if v.Height != nil {
		measures = append(measures, fmt.Sprintf("Height: %g cm", *v.Height))
	}
	if len(measures) > 0 {
		lines = append(lines, strings.Join(measures, "  "))
	}

	if v.Note != "" {
		lines = append(lines, mutedStyle.Render("Note: "+v.Note))
	}
	for _, e := range v.Exercises {
		lines = append(lines, fmt.Sprintf("  %s: %d x %d, %ds rest", e.Name, e.Sets, e.Reps, e.Rest))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
