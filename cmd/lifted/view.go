package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/benjamonnguyen/lifted-go/workout"
)

const (
	timerBarLength     = 20
	timerBarFilledChar = "⣶"
	timerBarEmptyChar  = "⡀"

	helpText = "[space] start/pause  [enter] complete set  [s] skip rest  [q] quit"
)

var (
	baseStyle    = lipgloss.NewStyle().Margin(1, 2)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	clockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	restStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpDisabled = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Strikethrough(true)
)

func (m model) View() string {
	s := m.snap
	var b strings.Builder

	b.WriteString(headerStyle.Render(m.planName))
	b.WriteString("\n\n")

	if s.Done {
		b.WriteString(alertStyle.Render("Workout complete!"))
		b.WriteString("\n")
		b.WriteString(clockStyle.Render("Total " + s.ElapsedClock()))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("[q] quit"))
		return baseStyle.Render(b.String())
	}

	fmt.Fprintf(&b, "%s  %s\n", s.Exercise, dimStyle.Render(fmt.Sprintf("set %d/%d", s.Set, s.TotalSets)))

	status := "running"
	if !s.Running {
		status = "paused"
	}
	fmt.Fprintf(&b, "%s %s\n", clockStyle.Render("Workout "+s.ElapsedClock()), dimStyle.Render(status))

	if s.Resting() {
		fmt.Fprintf(&b, "%s %s\n", restStyle.Render("Rest "+s.RestClock()), timerBar(s.RestFraction))
	}
	if m.alert != "" {
		b.WriteString("\n")
		b.WriteString(alertStyle.Render(m.alert))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(help(s))
	return baseStyle.Render(b.String())
}

// help greys out start/pause while a rest is running.
func help(s workout.Snapshot) string {
	if !s.Resting() {
		return dimStyle.Render(helpText)
	}
	toggle, rest, _ := strings.Cut(helpText, "  ")
	return helpDisabled.Render(toggle) + dimStyle.Render("  "+rest)
}

// timerBar renders the remaining share of a rest.
func timerBar(fraction float64) string {
	if fraction <= 0 {
		return strings.Repeat(timerBarEmptyChar, timerBarLength)
	}
	filled := min(int(math.Round(fraction*timerBarLength*10)/10), timerBarLength)
	return strings.Repeat(timerBarFilledChar, filled) + strings.Repeat(timerBarEmptyChar, timerBarLength-filled)
}
